package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vinyle_backend/internal/feature/vinyle/domain/entity"
	"vinyle_backend/internal/feature/vinyle/usecase"
	"vinyle_backend/internal/platform/validation"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// mockVinyleUsecase is a mock implementation of the VinyleUsecase interface.
type mockVinyleUsecase struct {
	GetAllFunc       func(ctx context.Context) ([]entity.Vinyle, error)
	GetByIDFunc      func(ctx context.Context, id string) (*entity.Vinyle, error)
	GetByArtisteFunc func(ctx context.Context, name string) ([]entity.Vinyle, error)
	GetByTitreFunc   func(ctx context.Context, title string) ([]entity.Vinyle, error)
	AddFunc          func(ctx context.Context, v entity.Vinyle) (*entity.Vinyle, error)
	UpdateFunc       func(ctx context.Context, v entity.Vinyle) (*entity.Vinyle, error)
	DeleteFunc       func(ctx context.Context, id string) (*entity.Vinyle, error)
}

func (m *mockVinyleUsecase) GetAll(ctx context.Context) ([]entity.Vinyle, error) {
	if m.GetAllFunc != nil {
		return m.GetAllFunc(ctx)
	}
	return []entity.Vinyle{}, nil
}

func (m *mockVinyleUsecase) GetByID(ctx context.Context, id string) (*entity.Vinyle, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, usecase.ErrVinyleNotFound
}

func (m *mockVinyleUsecase) GetByArtiste(ctx context.Context, name string) ([]entity.Vinyle, error) {
	if m.GetByArtisteFunc != nil {
		return m.GetByArtisteFunc(ctx, name)
	}
	return []entity.Vinyle{}, nil
}

func (m *mockVinyleUsecase) GetByTitre(ctx context.Context, title string) ([]entity.Vinyle, error) {
	if m.GetByTitreFunc != nil {
		return m.GetByTitreFunc(ctx, title)
	}
	return []entity.Vinyle{}, nil
}

func (m *mockVinyleUsecase) Add(ctx context.Context, v entity.Vinyle) (*entity.Vinyle, error) {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, v)
	}
	v.ID = "new-id"
	return &v, nil
}

func (m *mockVinyleUsecase) Update(ctx context.Context, v entity.Vinyle) (*entity.Vinyle, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, v)
	}
	return nil, usecase.ErrVinyleNotFound
}

func (m *mockVinyleUsecase) Delete(ctx context.Context, id string) (*entity.Vinyle, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil, usecase.ErrVinyleNotFound
}

// setupRouter mounts the handlers the same way the application router does.
func setupRouter(uc VinyleUsecase) *gin.Engine {
	h := NewVinyleHandler(uc, validation.New())
	r := gin.New()
	g := r.Group("/api/vinyles")
	g.GET("/", h.GetAll)
	g.GET("/artiste/:nomArtiste", h.GetByArtiste)
	g.GET("/titre/:titreVinyle", h.GetByTitre)
	g.GET("/:idVinyle", h.GetByID)
	g.POST("/", h.ValidateVinyle, h.Add)
	g.PUT("/", h.ValidateVinyle, h.Update)
	g.DELETE("/:id", h.Delete)
	return r
}

func doRequest(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) gin.H {
	t.Helper()
	var body gin.H
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func crimsonKing() entity.Vinyle {
	d := 444.0
	return entity.Vinyle{
		ID:      "2",
		Titre:   "In the Court of the Crimson King",
		Artiste: "King Crimson",
		Chansons: []entity.Song{
			{Nom: "21st Century Schizoid Man", Duree: &d},
			{Nom: "I Talk to the Wind"},
		},
		Genres:       []string{"Rock Progressif"},
		DateParution: time.Date(1969, time.October, 10, 0, 0, 0, 0, time.UTC),
		Possession:   true,
	}
}

func validPayload() gin.H {
	return gin.H{
		"titre":   "The Dark Side of the Moon",
		"artiste": "Pink Floyd",
		"chansons": []gin.H{
			{"nom": "Speak To Me"},
			{"nom": "Time", "duree": 413},
		},
		"genres":        []string{"Rock Progressif", "Rock Psychadelique"},
		"date_parution": "1973-03-01T00:00:00Z",
		"possession":    true,
	}
}

func TestNewVinyleHandler(t *testing.T) {
	h := NewVinyleHandler(&mockVinyleUsecase{}, validation.New())

	assert.NotNil(t, h)
	assert.NotNil(t, h.uc)
	assert.NotNil(t, h.validator)
}

func TestVinyleHandler_GetAll(t *testing.T) {
	t.Run("success: returns every record under auteurs", func(t *testing.T) {
		r := setupRouter(&mockVinyleUsecase{
			GetAllFunc: func(ctx context.Context) ([]entity.Vinyle, error) {
				return []entity.Vinyle{crimsonKing()}, nil
			},
		})

		w := doRequest(r, http.MethodGet, "/api/vinyles/", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		auteurs, ok := body["auteurs"].([]any)
		require.True(t, ok)
		require.Len(t, auteurs, 1)
		first := auteurs[0].(map[string]any)
		assert.Equal(t, "In the Court of the Crimson King", first["titre"])
		assert.Equal(t, "King Crimson", first["artiste"])
		assert.Equal(t, true, first["possession"])
		assert.Equal(t, "1969-10-10T00:00:00Z", first["date_parution"])
		assert.NotContains(t, first, "prix_achat")
	})

	t.Run("success: empty store returns an empty array", func(t *testing.T) {
		r := setupRouter(&mockVinyleUsecase{})

		w := doRequest(r, http.MethodGet, "/api/vinyles/", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"auteurs":[]}`, w.Body.String())
	})

	t.Run("failure: store error is hidden", func(t *testing.T) {
		r := setupRouter(&mockVinyleUsecase{
			GetAllFunc: func(ctx context.Context) ([]entity.Vinyle, error) {
				return nil, errors.New("connection refused")
			},
		})

		w := doRequest(r, http.MethodGet, "/api/vinyles/", nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Erreur interne"}`, w.Body.String())
	})
}

func TestVinyleHandler_GetByID(t *testing.T) {
	r := setupRouter(&mockVinyleUsecase{
		GetByIDFunc: func(ctx context.Context, id string) (*entity.Vinyle, error) {
			if id == "2" {
				v := crimsonKing()
				return &v, nil
			}
			return nil, usecase.ErrVinyleNotFound
		},
	})

	tests := []struct {
		name           string
		path           string
		expectedStatus int
	}{
		{"success: existing id", "/api/vinyles/2", http.StatusOK},
		{"failure: unknown id", "/api/vinyles/1", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, http.MethodGet, tt.path, nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
			body := decodeBody(t, w)
			if tt.expectedStatus == http.StatusOK {
				vinyle := body["vinyle"].(map[string]any)
				assert.Equal(t, "2", vinyle["id"])
			} else {
				assert.Equal(t, "Vinyle non trouvé", body["error"])
			}
		})
	}
}

func TestVinyleHandler_GetByArtisteAndTitre(t *testing.T) {
	var gotArtiste, gotTitre string
	r := setupRouter(&mockVinyleUsecase{
		GetByArtisteFunc: func(ctx context.Context, name string) ([]entity.Vinyle, error) {
			gotArtiste = name
			return []entity.Vinyle{crimsonKing()}, nil
		},
		GetByTitreFunc: func(ctx context.Context, title string) ([]entity.Vinyle, error) {
			gotTitre = title
			return []entity.Vinyle{}, nil
		},
	})

	w := doRequest(r, http.MethodGet, "/api/vinyles/artiste/King%20Crimson", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "King Crimson", gotArtiste)
	body := decodeBody(t, w)
	assert.Len(t, body["vinyles"], 1)

	w = doRequest(r, http.MethodGet, "/api/vinyles/titre/Red", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Red", gotTitre)
	assert.JSONEq(t, `{"vinyles":[]}`, w.Body.String())
}

func TestVinyleHandler_Add(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		addFunc        func(ctx context.Context, v entity.Vinyle) (*entity.Vinyle, error)
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "success: valid vinyle",
			body:           gin.H{"vinyle": validPayload()},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "failure: vinyle is null",
			body:           gin.H{"vinyle": nil},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Vinyle requis",
		},
		{
			name:           "failure: vinyle key missing",
			body:           gin.H{"autre": 1},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Vinyle requis",
		},
		{
			name:           "failure: body is null",
			body:           "null",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Vinyle requis",
		},
		{
			name:           "failure: empty body",
			body:           nil,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Vinyle requis",
		},
		{
			name:           "failure: malformed JSON",
			body:           `{"vinyle": {`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Vinyle invalide",
		},
		{
			name: "failure: store error",
			body: gin.H{"vinyle": validPayload()},
			addFunc: func(ctx context.Context, v entity.Vinyle) (*entity.Vinyle, error) {
				return nil, errors.New("disk full")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "Erreur interne",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupRouter(&mockVinyleUsecase{AddFunc: tt.addFunc})

			w := doRequest(r, http.MethodPost, "/api/vinyles/", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			body := decodeBody(t, w)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, body["error"])
				return
			}
			vinyle := body["vinyle"].(map[string]any)
			assert.Equal(t, "new-id", vinyle["id"])
			assert.Equal(t, "The Dark Side of the Moon", vinyle["titre"])
			assert.Len(t, vinyle["chansons"], 2)
		})
	}
}

func TestVinyleHandler_Add_ValidationDetails(t *testing.T) {
	called := false
	r := setupRouter(&mockVinyleUsecase{
		AddFunc: func(ctx context.Context, v entity.Vinyle) (*entity.Vinyle, error) {
			called = true
			return &v, nil
		},
	})

	payload := validPayload()
	delete(payload, "titre")
	delete(payload, "possession")
	payload["prix_achat"] = -3

	w := doRequest(r, http.MethodPost, "/api/vinyles/", gin.H{"vinyle": payload})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, called, "usecase must not be called for an invalid vinyle")

	var body struct {
		Error   string                  `json:"error"`
		Details []validation.FieldError `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Vinyle invalide", body.Error)
	fields := make([]string, 0, len(body.Details))
	for _, d := range body.Details {
		fields = append(fields, d.Field)
	}
	assert.ElementsMatch(t, []string{"titre", "possession", "prix_achat"}, fields)
}

func TestVinyleHandler_Add_PossessionFalseIsValid(t *testing.T) {
	var got entity.Vinyle
	r := setupRouter(&mockVinyleUsecase{
		AddFunc: func(ctx context.Context, v entity.Vinyle) (*entity.Vinyle, error) {
			got = v
			v.ID = "x"
			return &v, nil
		},
	})
	payload := validPayload()
	payload["possession"] = false
	payload["chansons"] = []gin.H{}

	w := doRequest(r, http.MethodPost, "/api/vinyles/", gin.H{"vinyle": payload})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.False(t, got.Possession)
	assert.Empty(t, got.Chansons)
	assert.Equal(t, time.Date(1973, time.March, 1, 0, 0, 0, 0, time.UTC), got.DateParution.UTC())
}

func TestVinyleHandler_Add_DateParutionFormats(t *testing.T) {
	tests := []struct {
		name           string
		date           any
		expectedStatus int
		expectedDate   time.Time
	}{
		{"success: RFC 3339", "1973-03-01T00:00:00Z", http.StatusCreated, time.Date(1973, time.March, 1, 0, 0, 0, 0, time.UTC)},
		{"success: calendar date", "1973-03-01", http.StatusCreated, time.Date(1973, time.March, 1, 0, 0, 0, 0, time.UTC)},
		{"failure: day first", "01/03/1973", http.StatusBadRequest, time.Time{}},
		{"failure: not a string", 1973, http.StatusBadRequest, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got entity.Vinyle
			r := setupRouter(&mockVinyleUsecase{
				AddFunc: func(ctx context.Context, v entity.Vinyle) (*entity.Vinyle, error) {
					got = v
					v.ID = "x"
					return &v, nil
				},
			})
			payload := validPayload()
			payload["date_parution"] = tt.date

			w := doRequest(r, http.MethodPost, "/api/vinyles/", gin.H{"vinyle": payload})

			assert.Equal(t, tt.expectedStatus, w.Code)
			body := decodeBody(t, w)
			if tt.expectedStatus != http.StatusCreated {
				assert.Equal(t, "Vinyle invalide", body["error"])
				details := body["details"].([]any)
				require.Len(t, details, 1)
				assert.Equal(t, "date_parution", details[0].(map[string]any)["field"])
				return
			}
			assert.True(t, tt.expectedDate.Equal(got.DateParution))
			vinyle := body["vinyle"].(map[string]any)
			assert.Equal(t, "1973-03-01T00:00:00Z", vinyle["date_parution"])
		})
	}
}

func TestVinyleHandler_Update(t *testing.T) {
	tests := []struct {
		name           string
		id             string
		expectedStatus int
		expectedError  string
	}{
		{"success: existing id", "2", http.StatusOK, ""},
		{"failure: unknown id", "0", http.StatusNotFound, "Vinyle non trouvé"},
		{"failure: missing id", "", http.StatusNotFound, "Vinyle non trouvé"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupRouter(&mockVinyleUsecase{
				UpdateFunc: func(ctx context.Context, v entity.Vinyle) (*entity.Vinyle, error) {
					if v.ID != "2" {
						return nil, usecase.ErrVinyleNotFound
					}
					return &v, nil
				},
			})
			payload := validPayload()
			if tt.id != "" {
				payload["id"] = tt.id
			}

			w := doRequest(r, http.MethodPut, "/api/vinyles/", gin.H{"vinyle": payload})

			assert.Equal(t, tt.expectedStatus, w.Code)
			body := decodeBody(t, w)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, body["error"])
				return
			}
			assert.Equal(t, "2", body["vinyle"].(map[string]any)["id"])
		})
	}

	t.Run("failure: null vinyle", func(t *testing.T) {
		r := setupRouter(&mockVinyleUsecase{})

		w := doRequest(r, http.MethodPut, "/api/vinyles/", gin.H{"vinyle": nil})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Vinyle requis", decodeBody(t, w)["error"])
	})

	t.Run("failure: partial payload is not a patch", func(t *testing.T) {
		called := false
		r := setupRouter(&mockVinyleUsecase{
			UpdateFunc: func(ctx context.Context, v entity.Vinyle) (*entity.Vinyle, error) {
				called = true
				return &v, nil
			},
		})

		w := doRequest(r, http.MethodPut, "/api/vinyles/", gin.H{"vinyle": gin.H{"id": "2", "prix_achat": 25}})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Vinyle invalide", decodeBody(t, w)["error"])
		assert.False(t, called)
	})
}

func TestVinyleHandler_Delete(t *testing.T) {
	r := setupRouter(&mockVinyleUsecase{
		DeleteFunc: func(ctx context.Context, id string) (*entity.Vinyle, error) {
			if id == "2" {
				v := crimsonKing()
				return &v, nil
			}
			return nil, usecase.ErrVinyleNotFound
		},
	})

	w := doRequest(r, http.MethodDelete, "/api/vinyles/2", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", decodeBody(t, w)["vinyle"].(map[string]any)["id"])

	w = doRequest(r, http.MethodDelete, "/api/vinyles/-1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Vinyle non trouvé"}`, w.Body.String())
}

func TestVinyleHandler_Add_WithoutMiddleware(t *testing.T) {
	h := NewVinyleHandler(&mockVinyleUsecase{}, validation.New())
	r := gin.New()
	r.POST("/", h.Add)

	w := doRequest(r, http.MethodPost, "/", gin.H{"vinyle": validPayload()})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Vinyle requis", decodeBody(t, w)["error"])
}
