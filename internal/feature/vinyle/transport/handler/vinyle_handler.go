// Package handler provides the HTTP handlers for the vinyle feature.
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"vinyle_backend/internal/feature/vinyle/domain/entity"
	"vinyle_backend/internal/feature/vinyle/transport/http/dto"
	"vinyle_backend/internal/feature/vinyle/usecase"
	"vinyle_backend/internal/platform/validation"
)

const (
	// MsgVinyleRequis is returned when the body carries no vinyle.
	MsgVinyleRequis = "Vinyle requis"
	// MsgVinyleInvalide is returned when the vinyle fails schema validation.
	MsgVinyleInvalide = "Vinyle invalide"
	// MsgErreurInterne hides store failures from clients.
	MsgErreurInterne = "Erreur interne"

	ctxKeyVinyle = "vinyle"
)

// VinyleUsecase defines the vinyle operations used by the handlers.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type VinyleUsecase interface {
	GetAll(ctx context.Context) ([]entity.Vinyle, error)
	GetByID(ctx context.Context, id string) (*entity.Vinyle, error)
	GetByArtiste(ctx context.Context, name string) ([]entity.Vinyle, error)
	GetByTitre(ctx context.Context, title string) ([]entity.Vinyle, error)
	Add(ctx context.Context, v entity.Vinyle) (*entity.Vinyle, error)
	Update(ctx context.Context, v entity.Vinyle) (*entity.Vinyle, error)
	Delete(ctx context.Context, id string) (*entity.Vinyle, error)
}

// VinyleHandler handles HTTP requests on the vinyle collection.
type VinyleHandler struct {
	uc        VinyleUsecase
	validator *validation.Validator
}

// NewVinyleHandler creates a new VinyleHandler.
func NewVinyleHandler(uc VinyleUsecase, v *validation.Validator) *VinyleHandler {
	return &VinyleHandler{uc: uc, validator: v}
}

// ValidateVinyle is a middleware for POST and PUT routes.
// - a missing body, a null body or a null/absent "vinyle" key yields 400 "Vinyle requis"
// - malformed JSON or a schema violation yields 400 "Vinyle invalide" with details
// On success the payload is stored in the context for the next handler.
func (h *VinyleHandler) ValidateVinyle(c *gin.Context) {
	var req dto.VinyleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if errors.Is(err, io.EOF) {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: MsgVinyleRequis})
			return
		}
		slog.Warn("vinyle body decode failed", "error", err, "remote_addr", c.ClientIP())
		var dateErr *dto.DateError
		if errors.As(err, &dateErr) {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: MsgVinyleInvalide, Details: []validation.FieldError{{
				Field:   "date_parution",
				Rule:    "datetime",
				Message: "date_parution must be an RFC 3339 date-time or a YYYY-MM-DD date",
			}}})
			return
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: MsgVinyleInvalide, Details: "JSON mal formé"})
		return
	}
	if req.Vinyle == nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: MsgVinyleRequis})
		return
	}

	res := h.validator.Validate(req.Vinyle)
	if !res.Valid() {
		slog.Warn("vinyle validation failed", "errors", res.Errors(), "remote_addr", c.ClientIP())
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: MsgVinyleInvalide, Details: res.Errors()})
		return
	}

	c.Set(ctxKeyVinyle, req.Vinyle)
	c.Next()
}

// GetAll returns every record as {"auteurs": [...]}.
func (h *VinyleHandler) GetAll(c *gin.Context) {
	vinyles, err := h.uc.GetAll(c.Request.Context())
	if err != nil {
		h.fail(c, "get all", err)
		return
	}
	c.JSON(http.StatusOK, dto.AllVinylesResponse{Auteurs: dto.FromEntities(vinyles)})
}

// GetByID returns one record, or 404.
//
// GET /api/vinyles/:idVinyle
func (h *VinyleHandler) GetByID(c *gin.Context) {
	v, err := h.uc.GetByID(c.Request.Context(), c.Param("idVinyle"))
	if err != nil {
		h.fail(c, "get by id", err)
		return
	}
	c.JSON(http.StatusOK, dto.VinyleResponse{Vinyle: dto.FromEntity(v)})
}

// GetByArtiste returns the records of an artist.
//
// GET /api/vinyles/artiste/:nomArtiste
func (h *VinyleHandler) GetByArtiste(c *gin.Context) {
	vinyles, err := h.uc.GetByArtiste(c.Request.Context(), c.Param("nomArtiste"))
	if err != nil {
		h.fail(c, "get by artiste", err)
		return
	}
	c.JSON(http.StatusOK, dto.VinyleListResponse{Vinyles: dto.FromEntities(vinyles)})
}

// GetByTitre returns the records with a title.
//
// GET /api/vinyles/titre/:titreVinyle
func (h *VinyleHandler) GetByTitre(c *gin.Context) {
	vinyles, err := h.uc.GetByTitre(c.Request.Context(), c.Param("titreVinyle"))
	if err != nil {
		h.fail(c, "get by titre", err)
		return
	}
	c.JSON(http.StatusOK, dto.VinyleListResponse{Vinyles: dto.FromEntities(vinyles)})
}

// Add creates a record and returns it with 201.
func (h *VinyleHandler) Add(c *gin.Context) {
	payload, ok := vinyleFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: MsgVinyleRequis})
		return
	}
	created, err := h.uc.Add(c.Request.Context(), payload.ToEntity())
	if err != nil {
		h.fail(c, "add", err)
		return
	}
	slog.Info("vinyle added", "id", created.ID, "titre", created.Titre)
	c.JSON(http.StatusCreated, dto.VinyleResponse{Vinyle: dto.FromEntity(created)})
}

// Update overwrites the record identified by vinyle.id. The payload goes
// through the same ValidateVinyle rules as Add, so every required field must
// be present: an update is a full replacement, never a partial patch.
func (h *VinyleHandler) Update(c *gin.Context) {
	payload, ok := vinyleFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: MsgVinyleRequis})
		return
	}
	updated, err := h.uc.Update(c.Request.Context(), payload.ToEntity())
	if err != nil {
		h.fail(c, "update", err)
		return
	}
	slog.Info("vinyle updated", "id", updated.ID)
	c.JSON(http.StatusOK, dto.VinyleResponse{Vinyle: dto.FromEntity(updated)})
}

// Delete removes a record and returns it.
//
// DELETE /api/vinyles/:id
func (h *VinyleHandler) Delete(c *gin.Context) {
	removed, err := h.uc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "delete", err)
		return
	}
	slog.Info("vinyle deleted", "id", removed.ID)
	c.JSON(http.StatusOK, dto.VinyleResponse{Vinyle: dto.FromEntity(removed)})
}

// fail maps usecase errors to responses. Only the not-found message is
// exposed; anything else is logged and reported as an internal error.
func (h *VinyleHandler) fail(c *gin.Context, op string, err error) {
	if errors.Is(err, usecase.ErrVinyleNotFound) {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: usecase.ErrVinyleNotFound.Error()})
		return
	}
	slog.Error("vinyle operation failed", "op", op, "error", err, "path", c.Request.URL.Path)
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: MsgErreurInterne})
}

func vinyleFromContext(c *gin.Context) (*dto.Vinyle, bool) {
	raw, ok := c.Get(ctxKeyVinyle)
	if !ok {
		return nil, false
	}
	v, ok := raw.(*dto.Vinyle)
	return v, ok && v != nil
}
