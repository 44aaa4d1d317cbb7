package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"doccstock/internal/core/id"
	"doccstock/internal/domain/auth"
	"doccstock/internal/infrastructure/http/v1/dto"
)

// AuthService is the part of auth.Service used over HTTP.
type AuthService interface {
	Login(ctx context.Context, creds auth.Credentials) (*auth.LoginResult, error)
	CurrentUser(ctx context.Context, userID id.ID) (*auth.User, error)
}

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	*BaseHandler
	service AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(base *BaseHandler, service AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.service.Login(c.Request.Context(), req.ToCredentials())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromLoginResult(result))
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	actor, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	user, err := h.service.CurrentUser(c.Request.Context(), actor.UserID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromUser(user))
}
