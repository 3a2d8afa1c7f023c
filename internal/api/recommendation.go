package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/illineats/backend/internal/middleware"
	"github.com/illineats/backend/internal/service"
)

// RecommendationHandler serves personalized rankings
type RecommendationHandler struct {
	recommendations service.IRecommendationService
	authService     service.IAuthService
}

// NewRecommendationHandler creates a new RecommendationHandler
func NewRecommendationHandler(recommendations service.IRecommendationService, authService service.IAuthService) *RecommendationHandler {
	return &RecommendationHandler{recommendations: recommendations, authService: authService}
}

// RegisterRoutes registers the recommendation routes
func (h *RecommendationHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/recommendations", middleware.AuthMiddleware(h.authService), h.Recommend)
}

// Recommend returns the caller's top ranked foods
func (h *RecommendationHandler) Recommend(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	resp, err := h.recommendations.Recommend(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
