// Package handler provides the HTTP handlers for the auth feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"todo_backend/internal/feature/auth/domain/entity"
	"todo_backend/internal/feature/auth/transport/http/dto"
	"todo_backend/internal/platform/http/httperr"
	jwtmw "todo_backend/internal/platform/jwt"
)

// AuthUsecase defines the authentication operations used by the handler.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type AuthUsecase interface {
	Signup(ctx context.Context, email, password string) (*entity.User, string, error)
	Signin(ctx context.Context, email, password string) (*entity.User, string, error)
	Refresh(ctx context.Context, userID uuid.UUID) (string, error)
	Profile(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Signup handles POST /signup.
// - 400 on a malformed body or usecase validation error
// - 409 when the email is already registered
// - 201 with the user and a token on success
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signup validation failed", "error", err, "remote_addr", c.ClientIP())
		httperr.BadRequest(c, err.Error())
		return
	}

	user, token, err := h.auth.Signup(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		slog.Warn("signup failed", "error", err, "remote_addr", c.ClientIP())
		httperr.Respond(c, err)
		return
	}

	slog.Info("user signup successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.AuthRes{User: dto.NewUserRes(user), Token: token})
}

// Signin handles POST /signin.
// An unknown email and a wrong password produce the same 401 response.
func (h *AuthHandler) Signin(c *gin.Context) {
	var req dto.SigninReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signin validation failed", "error", err, "remote_addr", c.ClientIP())
		httperr.BadRequest(c, err.Error())
		return
	}

	user, token, err := h.auth.Signin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		slog.Warn("signin failed", "error", err, "remote_addr", c.ClientIP())
		httperr.Respond(c, err)
		return
	}

	slog.Info("user signin successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.AuthRes{User: dto.NewUserRes(user), Token: token})
}

// Refresh handles POST /refresh. It requires AuthRequired upstream.
func (h *AuthHandler) Refresh(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		jwtmw.Unauthorized(c, "missing authentication credentials")
		return
	}

	token, err := h.auth.Refresh(c.Request.Context(), userID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TokenRes{Token: token})
}

// Me handles GET /me. It requires AuthRequired upstream.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		jwtmw.Unauthorized(c, "missing authentication credentials")
		return
	}

	user, err := h.auth.Profile(c.Request.Context(), userID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserRes(user))
}
