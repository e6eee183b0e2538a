package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mytodoapp/todo/internal/apperrors"
	"github.com/mytodoapp/todo/internal/domain"
	"github.com/mytodoapp/todo/internal/server"
	"github.com/mytodoapp/todo/internal/user"
)

type createUserRequest struct {
	Username string `json:"username" validate:"required,username_format"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,strong_password"`
	Role     string `json:"role" validate:"omitempty,oneof=USER ADMIN"`
}

type updateUserRequest struct {
	Username              string `json:"username" validate:"required,username_format"`
	Email                 string `json:"email" validate:"required,email"`
	Role                  string `json:"role" validate:"omitempty,oneof=USER ADMIN"`
	Enabled               bool   `json:"enabled"`
	AccountNonExpired     bool   `json:"accountNonExpired"`
	AccountNonLocked      bool   `json:"accountNonLocked"`
	CredentialsNonExpired bool   `json:"credentialsNonExpired"`
}

// UserHandler exposes the admin user CRUD operations.
type UserHandler struct {
	svc *user.Service
}

// NewUserHandler creates the user handler.
func NewUserHandler(svc *user.Service) *UserHandler {
	return &UserHandler{svc: svc}
}

// Create handles POST /api/users.
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	created, err := h.svc.Create(c.Request.Context(), user.CreateInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondCreated(c, created)
}

// List handles GET /api/users.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.svc.FindAll(c.Request.Context())
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, users)
}

// Get handles GET /api/users/:userId.
func (h *UserHandler) Get(c *gin.Context) {
	id, err := pathID(c, "userId")
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	u, err := h.svc.FindByID(c.Request.Context(), id)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, u)
}

// Update handles PUT /api/users/:userId.
func (h *UserHandler) Update(c *gin.Context) {
	id, err := pathID(c, "userId")
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	var req updateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), id, user.UpdateInput{
		Username:              req.Username,
		Email:                 req.Email,
		Role:                  domain.Role(req.Role),
		Enabled:               req.Enabled,
		AccountNonExpired:     req.AccountNonExpired,
		AccountNonLocked:      req.AccountNonLocked,
		CredentialsNonExpired: req.CredentialsNonExpired,
	})
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, updated)
}

// Delete handles DELETE /api/users/:userId.
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "userId")
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondNoContent(c)
}

// pathID parses a positive integer path parameter.
func pathID(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.InvalidInput(name + " must be a positive integer")
	}
	return uint(id), nil
}
