package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/illineats/backend/internal/middleware"
	"github.com/illineats/backend/internal/service"
	"github.com/illineats/backend/internal/types"
)

// UserHandler serves the caller's profile
type UserHandler struct {
	users       service.IUserService
	authService service.IAuthService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users service.IUserService, authService service.IAuthService) *UserHandler {
	return &UserHandler{users: users, authService: authService}
}

// RegisterRoutes registers the user routes
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	users.Use(middleware.AuthMiddleware(h.authService))
	{
		users.POST("", h.CreateUser)
		users.GET("/me", h.GetUser)
		users.PUT("/me", h.UpdateUser)
		users.DELETE("/me", h.DeleteUser)
	}
}

// CreateUser creates the profile for the token subject, returning 201 the
// first time and 200 afterwards
func (h *UserHandler) CreateUser(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req types.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, created, err := h.users.CreateUser(c.Request.Context(), userID, middleware.Email(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, user)
}

// GetUser returns the caller's profile
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	user, err := h.users.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUser edits the caller's profile
func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req types.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.users.UpdateUser(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser removes the caller and their contributions
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.users.DeleteUser(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
