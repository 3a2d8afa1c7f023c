package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/illineats/backend/internal/logging"
	"github.com/illineats/backend/internal/models"
	"github.com/illineats/backend/internal/tags"
	"github.com/illineats/backend/internal/types"
)

// UserService implements IUserService
type UserService struct {
	db    *gorm.DB
	cache RecommendationCache
}

// Ensure UserService implements IUserService
var _ IUserService = (*UserService)(nil)

// NewUserService creates a new UserService instance. cache may be nil.
func NewUserService(db *gorm.DB, cache RecommendationCache) *UserService {
	return &UserService{db: db, cache: cache}
}

// CreateUser creates the profile for a token subject. Calling it again returns
// the existing profile with created=false.
func (s *UserService) CreateUser(ctx context.Context, userID uuid.UUID, email string, req *types.CreateUserRequest) (*models.User, bool, error) {
	var existing models.User
	err := s.db.WithContext(ctx).First(&existing, "id = ?", userID).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to get user: %w", err)
	}

	user := &models.User{
		ID:    userID,
		Email: strings.TrimSpace(email),
		IsNew: true,
	}
	if req != nil {
		user.Name = strings.TrimSpace(req.Name)
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, false, fmt.Errorf("failed to create user: %w", err)
	}
	logging.Ctx(ctx).Info().Str("user_id", userID.String()).Msg("User created")
	return user, true, nil
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// UpdateUser applies the non-nil fields of req. Tag lists are stored in
// canonical form so that scoring and filtering see the same values.
func (s *UserService) UpdateUser(ctx context.Context, userID uuid.UUID, req *types.UpdateUserRequest) (*models.User, error) {
	if req.Goal != nil && !models.ValidGoal(strings.TrimSpace(*req.Goal)) {
		return nil, ErrInvalidGoal
	}

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Allergies != nil {
		user.Allergies = tags.ParseList(*req.Allergies).String()
	}
	if req.Preferences != nil {
		user.Preferences = tags.ParseWords(*req.Preferences).String()
	}
	if req.Locations != nil {
		user.Locations = *req.Locations
		user.Locations = strings.Join(user.LocationList(), ",")
	}
	if req.Goal != nil {
		user.Goal = strings.TrimSpace(*req.Goal)
	}
	if req.IsNew != nil {
		user.IsNew = *req.IsNew
	}

	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, userID); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("user_id", userID.String()).Msg("Failed to invalidate recommendations")
		}
	}
	return user, nil
}

// DeleteUser removes the user and everything they contributed
func (s *UserService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// TODO: remove the deleted images' objects from storage as well.
		for _, m := range []interface{}{&models.Review{}, &models.Favorite{}, &models.FoodImage{}, &models.PushSubscription{}} {
			if err := tx.Where("user_id = ?", userID).Delete(m).Error; err != nil {
				return fmt.Errorf("failed to delete user data: %w", err)
			}
		}
		res := tx.Unscoped().Delete(&models.User{}, "id = ?", userID)
		if res.Error != nil {
			return fmt.Errorf("failed to delete user: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrUserNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, userID); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("user_id", userID.String()).Msg("Failed to invalidate recommendations")
		}
	}
	return nil
}
