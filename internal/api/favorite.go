package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/illineats/backend/internal/middleware"
	"github.com/illineats/backend/internal/service"
	"github.com/illineats/backend/internal/types"
)

// FavoriteHandler serves the caller's favorites
type FavoriteHandler struct {
	favorites   service.IFavoriteService
	authService service.IAuthService
}

// NewFavoriteHandler creates a new FavoriteHandler
func NewFavoriteHandler(favorites service.IFavoriteService, authService service.IAuthService) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites, authService: authService}
}

// RegisterRoutes registers the favorite routes
func (h *FavoriteHandler) RegisterRoutes(router *gin.RouterGroup) {
	favorites := router.Group("/favorites")
	favorites.Use(middleware.AuthMiddleware(h.authService))
	{
		favorites.GET("", h.ListFavorites)
		favorites.POST("", h.AddFavorite)
		favorites.DELETE("/:foodId", h.RemoveFavorite)
	}
}

// ListFavorites returns the caller's favorites with their meal entries
func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	favs, err := h.favorites.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": favs})
}

// AddFavorite marks a food as a favorite
func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req types.AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	fav, err := h.favorites.AddFavorite(c.Request.Context(), userID, req.FoodID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fav)
}

// RemoveFavorite unmarks a food
func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	foodID, ok := uuidParam(c, "foodId")
	if !ok {
		return
	}
	if err := h.favorites.RemoveFavorite(c.Request.Context(), userID, foodID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
