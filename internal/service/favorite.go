package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/illineats/backend/internal/models"
)

// FavoriteService implements IFavoriteService
type FavoriteService struct {
	db *gorm.DB
}

// Ensure FavoriteService implements IFavoriteService
var _ IFavoriteService = (*FavoriteService)(nil)

// NewFavoriteService creates a new FavoriteService instance
func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{db: db}
}

// AddFavorite marks a food as a favorite. Adding it twice is not an error.
func (s *FavoriteService) AddFavorite(ctx context.Context, userID, foodID uuid.UUID) (*models.Favorite, error) {
	db := s.db.WithContext(ctx)
	if err := exists(db, &models.FoodItem{}, foodID, ErrFoodNotFound); err != nil {
		return nil, err
	}

	fav := &models.Favorite{UserID: userID, FoodID: foodID}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "food_id"}},
		DoNothing: true,
	}).Create(fav).Error
	if err != nil {
		return nil, fmt.Errorf("failed to add favorite: %w", err)
	}

	var stored models.Favorite
	if err := db.Preload("Food").First(&stored, "user_id = ? AND food_id = ?", userID, foodID).Error; err != nil {
		return nil, fmt.Errorf("failed to get favorite: %w", err)
	}
	return &stored, nil
}

// ListFavorites returns the user's favorites with each food's meal entries, newest first
func (s *FavoriteService) ListFavorites(ctx context.Context, userID uuid.UUID) ([]models.Favorite, error) {
	var favs []models.Favorite
	err := s.db.WithContext(ctx).
		Preload("Food.MealEntries").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return favs, nil
}

// RemoveFavorite unmarks a food. Removing a food that is not a favorite is not an error.
func (s *FavoriteService) RemoveFavorite(ctx context.Context, userID, foodID uuid.UUID) error {
	if err := s.db.WithContext(ctx).Where("user_id = ? AND food_id = ?", userID, foodID).Delete(&models.Favorite{}).Error; err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}
