package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/illineats/backend/internal/middleware"
	"github.com/illineats/backend/internal/service"
	"github.com/illineats/backend/internal/types"
)

// ReviewHandler serves food reviews
type ReviewHandler struct {
	reviews     service.IReviewService
	authService service.IAuthService
	limiter     *middleware.RateLimiter
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviews service.IReviewService, authService service.IAuthService, limiter *middleware.RateLimiter) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, authService: authService, limiter: limiter}
}

// RegisterRoutes registers the review routes
func (h *ReviewHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := middleware.AuthMiddleware(h.authService)

	router.GET("/foods/:id/reviews", h.ListForFood)
	router.GET("/reviews", h.ListGrouped)
	router.POST("/reviews", auth, h.limiter.RateLimitMiddleware(), h.CreateReview)
	router.POST("/reviews/:id/like", auth, h.LikeReview)
	router.DELETE("/reviews/:id", auth, h.DeleteReview)
}

// CreateReview records the caller's rating of a food
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req types.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	review, err := h.reviews.CreateReview(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// ListForFood returns a food's reviews, newest first
func (h *ReviewHandler) ListForFood(c *gin.Context) {
	foodID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	reviews, err := h.reviews.ListForFood(c.Request.Context(), foodID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

// ListGrouped returns reviews keyed by food id
func (h *ReviewHandler) ListGrouped(c *gin.Context) {
	ids, ok := idListQuery(c)
	if !ok {
		return
	}
	grouped, err := h.reviews.ListGrouped(c.Request.Context(), ids)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": grouped})
}

// LikeReview increments a review's likes
func (h *ReviewHandler) LikeReview(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	review, err := h.reviews.LikeReview(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// DeleteReview removes one of the caller's reviews
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.reviews.DeleteReview(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
