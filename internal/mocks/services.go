// Package mocks provides testify mocks of the service interfaces for handler tests.
package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/illineats/backend/internal/catalog"
	"github.com/illineats/backend/internal/models"
	"github.com/illineats/backend/internal/service"
	"github.com/illineats/backend/internal/types"
)

var (
	_ service.IAuthService           = (*MockAuthService)(nil)
	_ service.IFoodService           = (*MockFoodService)(nil)
	_ service.IRecommendationService = (*MockRecommendationService)(nil)
	_ service.IUserService           = (*MockUserService)(nil)
	_ service.IReviewService         = (*MockReviewService)(nil)
	_ service.IFavoriteService       = (*MockFavoriteService)(nil)
	_ service.IImageService          = (*MockImageService)(nil)
	_ service.ISubscriptionService   = (*MockSubscriptionService)(nil)
	_ service.IImportService         = (*MockImportService)(nil)
)

// MockAuthService is a mock implementation of the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) ValidateToken(token string) (*types.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}

func (m *MockAuthService) GenerateToken(claims *types.TokenClaims) (string, error) {
	args := m.Called(claims)
	return args.String(0), args.Error(1)
}

// MockFoodService is a mock implementation of the FoodService interface
type MockFoodService struct {
	mock.Mock
}

func (m *MockFoodService) ListFoods(ctx context.Context, q catalog.Query) (*types.FoodListResponse, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.FoodListResponse), args.Error(1)
}

func (m *MockFoodService) GetFood(ctx context.Context, id uuid.UUID) (*types.FoodDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.FoodDetail), args.Error(1)
}

func (m *MockFoodService) HallMenu(ctx context.Context, hall, mealType, dateServed string) (*types.HallMenuResponse, error) {
	args := m.Called(ctx, hall, mealType, dateServed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.HallMenuResponse), args.Error(1)
}

func (m *MockFoodService) HallStatus(ctx context.Context, hall string) (*types.HallStatusResponse, error) {
	args := m.Called(ctx, hall)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.HallStatusResponse), args.Error(1)
}

func (m *MockFoodService) Schedule() *types.ScheduleResponse {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*types.ScheduleResponse)
}

// MockRecommendationService is a mock implementation of the RecommendationService interface
type MockRecommendationService struct {
	mock.Mock
}

func (m *MockRecommendationService) Recommend(ctx context.Context, userID uuid.UUID) (*types.RecommendationResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecommendationResponse), args.Error(1)
}

func (m *MockRecommendationService) Invalidate(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockUserService is a mock implementation of the UserService interface
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) CreateUser(ctx context.Context, userID uuid.UUID, email string, req *types.CreateUserRequest) (*models.User, bool, error) {
	args := m.Called(ctx, userID, email, req)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.User), args.Bool(1), args.Error(2)
}

func (m *MockUserService) GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, userID uuid.UUID, req *types.UpdateUserRequest) (*models.User, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockReviewService is a mock implementation of the ReviewService interface
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) CreateReview(ctx context.Context, userID uuid.UUID, req *types.CreateReviewRequest) (*models.Review, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewService) ListForFood(ctx context.Context, foodID uuid.UUID) ([]models.Review, error) {
	args := m.Called(ctx, foodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *MockReviewService) ListGrouped(ctx context.Context, foodIDs []uuid.UUID) (map[string][]models.Review, error) {
	args := m.Called(ctx, foodIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]models.Review), args.Error(1)
}

func (m *MockReviewService) LikeReview(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewService) DeleteReview(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

// MockFavoriteService is a mock implementation of the FavoriteService interface
type MockFavoriteService struct {
	mock.Mock
}

func (m *MockFavoriteService) AddFavorite(ctx context.Context, userID, foodID uuid.UUID) (*models.Favorite, error) {
	args := m.Called(ctx, userID, foodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Favorite), args.Error(1)
}

func (m *MockFavoriteService) ListFavorites(ctx context.Context, userID uuid.UUID) ([]models.Favorite, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Favorite), args.Error(1)
}

func (m *MockFavoriteService) RemoveFavorite(ctx context.Context, userID, foodID uuid.UUID) error {
	args := m.Called(ctx, userID, foodID)
	return args.Error(0)
}

// MockImageService is a mock implementation of the ImageService interface
type MockImageService struct {
	mock.Mock
}

func (m *MockImageService) UploadImage(ctx context.Context, userID, foodID uuid.UUID, filename string, body io.Reader, size int64) (*models.FoodImage, error) {
	args := m.Called(ctx, userID, foodID, filename, body, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FoodImage), args.Error(1)
}

func (m *MockImageService) ListGrouped(ctx context.Context, foodIDs []uuid.UUID) (map[string][]models.FoodImage, error) {
	args := m.Called(ctx, foodIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]models.FoodImage), args.Error(1)
}

func (m *MockImageService) LikeImage(ctx context.Context, id uuid.UUID) (*models.FoodImage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FoodImage), args.Error(1)
}

// MockSubscriptionService is a mock implementation of the SubscriptionService interface
type MockSubscriptionService struct {
	mock.Mock
}

func (m *MockSubscriptionService) Subscribe(ctx context.Context, userID uuid.UUID, req *types.SubscribeRequest) (*models.PushSubscription, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PushSubscription), args.Error(1)
}

func (m *MockSubscriptionService) Unsubscribe(ctx context.Context, userID uuid.UUID, endpoint string) (int64, error) {
	args := m.Called(ctx, userID, endpoint)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSubscriptionService) HasSubscription(ctx context.Context, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

// MockImportService is a mock implementation of the ImportService interface
type MockImportService struct {
	mock.Mock
}

func (m *MockImportService) Import(ctx context.Context, foods []types.ImportFood) (*types.ImportSummary, error) {
	args := m.Called(ctx, foods)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ImportSummary), args.Error(1)
}

func (m *MockImportService) PrunePast(ctx context.Context) (*types.PruneSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.PruneSummary), args.Error(1)
}
