// Package api exposes the IllinEats services over HTTP.
package api

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/illineats/backend/internal/middleware"
	"github.com/illineats/backend/internal/service"
)

// Services are the handlers' dependencies.
type Services struct {
	Auth            service.IAuthService
	Foods           service.IFoodService
	Recommendations service.IRecommendationService
	Users           service.IUserService
	Reviews         service.IReviewService
	Favorites       service.IFavoriteService
	Images          service.IImageService
	Subscriptions   service.ISubscriptionService
	Import          service.IImportService
}

// Options tune route registration.
type Options struct {
	// AdminKeyHash is the bcrypt hash guarding /admin routes; empty disables them.
	AdminKeyHash string
	// Redis backs the rate limiters; nil disables limiting.
	Redis *redis.Client
}

// RegisterRoutes mounts every handler under /api/v1
func RegisterRoutes(router *gin.Engine, svc Services, opts Options) {
	v1 := router.Group("/api/v1")

	NewFoodHandler(svc.Foods).RegisterRoutes(v1)
	NewRecommendationHandler(svc.Recommendations, svc.Auth).RegisterRoutes(v1)
	NewUserHandler(svc.Users, svc.Auth).RegisterRoutes(v1)
	NewReviewHandler(svc.Reviews, svc.Auth, middleware.NewReviewRateLimiter(opts.Redis)).RegisterRoutes(v1)
	NewFavoriteHandler(svc.Favorites, svc.Auth).RegisterRoutes(v1)
	NewImageHandler(svc.Images, svc.Auth, middleware.NewImageUploadRateLimiter(opts.Redis)).RegisterRoutes(v1)
	NewSubscriptionHandler(svc.Subscriptions, svc.Auth).RegisterRoutes(v1)
	NewAdminHandler(svc.Import, opts.AdminKeyHash).RegisterRoutes(v1)
}
