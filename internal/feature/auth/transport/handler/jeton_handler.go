// Package handler provides the HTTP handlers for the auth feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"vinyle_backend/internal/feature/auth/transport/http/dto"
	"vinyle_backend/internal/feature/auth/usecase"
)

const (
	// MsgRequeteInvalide is returned when the login body cannot be bound.
	MsgRequeteInvalide = "Requête invalide"
	// MsgErreurInterne hides store failures from clients.
	MsgErreurInterne = "Erreur interne"
)

// JetonUsecase defines the token issuance operation.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type JetonUsecase interface {
	GenerateToken(ctx context.Context, courriel, motDePasse string) (string, error)
}

// JetonHandler handles the token endpoint.
type JetonHandler struct {
	uc JetonUsecase
}

// NewJetonHandler creates a new JetonHandler.
func NewJetonHandler(uc JetonUsecase) *JetonHandler {
	return &JetonHandler{uc: uc}
}

// GenerateToken handles POST /api/jeton.
// - 400 when the body does not carry utilisateurLogin with an email and a password
// - 401 when the credentials do not match a user
// - 200 with the signed token otherwise
func (h *JetonHandler) GenerateToken(c *gin.Context) {
	var req dto.JetonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("jeton request validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.JetonResponse{Error: MsgRequeteInvalide})
		return
	}

	login := req.UtilisateurLogin
	token, err := h.uc.GenerateToken(c.Request.Context(), login.Courriel, login.MotDePasse)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			// the response does not tell an unknown user from a wrong password
			slog.Warn("jeton refused", "courriel", login.Courriel, "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, dto.JetonResponse{Error: usecase.ErrInvalidCredentials.Error()})
			return
		}
		slog.Error("jeton generation failed", "error", err, "courriel", login.Courriel)
		c.JSON(http.StatusInternalServerError, dto.JetonResponse{Error: MsgErreurInterne})
		return
	}

	slog.Info("jeton issued", "courriel", login.Courriel, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.JetonResponse{Token: token})
}
