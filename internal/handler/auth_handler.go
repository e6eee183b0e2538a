// Package handler contains the Gin HTTP handlers and the route table of
// the todo service.
package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/mytodoapp/todo/internal/apperrors"
	"github.com/mytodoapp/todo/internal/auth"
	"github.com/mytodoapp/todo/internal/server"
	"github.com/mytodoapp/todo/internal/validation"
)

type registerRequest struct {
	Username        string `json:"username" validate:"required,username_format"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,strong_password"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// AuthHandler exposes the register, login, and refresh operations.
type AuthHandler struct {
	svc *auth.Service
}

// NewAuthHandler creates the auth handler.
func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	session, err := h.svc.Register(c.Request.Context(), auth.RegisterRequest{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondCreated(c, session)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	session, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, session)
}

// Refresh handles POST /api/auth/refresh. The refresh token is echoed
// back unchanged alongside the new access token.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := bindAndValidate(c, &req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	session, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, session)
}

// bindAndValidate decodes the JSON body into req and runs struct tag
// validation.
func bindAndValidate(c *gin.Context, req any) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return apperrors.Validation("invalid request body").WithCause(err)
	}
	return validation.Validate(req)
}
