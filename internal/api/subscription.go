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

// SubscriptionHandler serves browser push subscriptions
type SubscriptionHandler struct {
	subscriptions service.ISubscriptionService
	authService   service.IAuthService
}

// NewSubscriptionHandler creates a new SubscriptionHandler
func NewSubscriptionHandler(subscriptions service.ISubscriptionService, authService service.IAuthService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptions: subscriptions, authService: authService}
}

// RegisterRoutes registers the subscription routes
func (h *SubscriptionHandler) RegisterRoutes(router *gin.RouterGroup) {
	subs := router.Group("/subscriptions")
	subs.Use(middleware.AuthMiddleware(h.authService))
	{
		subs.GET("", h.Status)
		subs.POST("", h.Subscribe)
		subs.DELETE("", h.Unsubscribe)
	}
}

// Status reports whether the caller has a push subscription
func (h *SubscriptionHandler) Status(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	has, err := h.subscriptions.HasSubscription(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hasSubscription": has})
}

// Subscribe stores the caller's push endpoint
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req types.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sub, err := h.subscriptions.Subscribe(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

// Unsubscribe removes one endpoint, or all of the caller's endpoints when the body names none
func (h *SubscriptionHandler) Unsubscribe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req types.UnsubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	removed, err := h.subscriptions.Unsubscribe(c.Request.Context(), userID, req.Endpoint)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}
