package service

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/illineats/backend/internal/catalog"
	"github.com/illineats/backend/internal/models"
	"github.com/illineats/backend/internal/types"
)

// Clock returns the current time; tests substitute a fixed one.
type Clock func() time.Time

// IAuthService defines the interface for access token operations
type IAuthService interface {
	ValidateToken(token string) (*types.TokenClaims, error)
	GenerateToken(claims *types.TokenClaims) (string, error)
}

// IFoodService defines the interface for menu browsing
type IFoodService interface {
	ListFoods(ctx context.Context, q catalog.Query) (*types.FoodListResponse, error)
	GetFood(ctx context.Context, id uuid.UUID) (*types.FoodDetail, error)
	HallMenu(ctx context.Context, hall, mealType, dateServed string) (*types.HallMenuResponse, error)
	HallStatus(ctx context.Context, hall string) (*types.HallStatusResponse, error)
	Schedule() *types.ScheduleResponse
}

// IRecommendationService defines the interface for personalized rankings
type IRecommendationService interface {
	Recommend(ctx context.Context, userID uuid.UUID) (*types.RecommendationResponse, error)
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

// IUserService defines the interface for diner profiles
type IUserService interface {
	CreateUser(ctx context.Context, userID uuid.UUID, email string, req *types.CreateUserRequest) (*models.User, bool, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error)
	UpdateUser(ctx context.Context, userID uuid.UUID, req *types.UpdateUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}

// IReviewService defines the interface for food reviews
type IReviewService interface {
	CreateReview(ctx context.Context, userID uuid.UUID, req *types.CreateReviewRequest) (*models.Review, error)
	ListForFood(ctx context.Context, foodID uuid.UUID) ([]models.Review, error)
	ListGrouped(ctx context.Context, foodIDs []uuid.UUID) (map[string][]models.Review, error)
	LikeReview(ctx context.Context, id uuid.UUID) (*models.Review, error)
	DeleteReview(ctx context.Context, userID, id uuid.UUID) error
}

// IFavoriteService defines the interface for favorites
type IFavoriteService interface {
	AddFavorite(ctx context.Context, userID, foodID uuid.UUID) (*models.Favorite, error)
	ListFavorites(ctx context.Context, userID uuid.UUID) ([]models.Favorite, error)
	RemoveFavorite(ctx context.Context, userID, foodID uuid.UUID) error
}

// IImageService defines the interface for food photos
type IImageService interface {
	UploadImage(ctx context.Context, userID, foodID uuid.UUID, filename string, body io.Reader, size int64) (*models.FoodImage, error)
	ListGrouped(ctx context.Context, foodIDs []uuid.UUID) (map[string][]models.FoodImage, error)
	LikeImage(ctx context.Context, id uuid.UUID) (*models.FoodImage, error)
}

// ISubscriptionService defines the interface for push subscriptions
type ISubscriptionService interface {
	Subscribe(ctx context.Context, userID uuid.UUID, req *types.SubscribeRequest) (*models.PushSubscription, error)
	Unsubscribe(ctx context.Context, userID uuid.UUID, endpoint string) (int64, error)
	HasSubscription(ctx context.Context, userID uuid.UUID) (bool, error)
}

// IImportService defines the interface for loading scraped menus
type IImportService interface {
	Import(ctx context.Context, foods []types.ImportFood) (*types.ImportSummary, error)
	PrunePast(ctx context.Context) (*types.PruneSummary, error)
}

// RecommendationCache stores ranked food ids per user and day
type RecommendationCache interface {
	Get(ctx context.Context, userID uuid.UUID, day string) ([]uuid.UUID, bool, error)
	Set(ctx context.Context, userID uuid.UUID, day string, ids []uuid.UUID) error
	Invalidate(ctx context.Context, userID uuid.UUID) error
}
