package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/illineats/backend/internal/models"
	"github.com/illineats/backend/internal/schedule"
	"github.com/illineats/backend/internal/types"
)

// ReviewService implements IReviewService
type ReviewService struct {
	db       *gorm.DB
	schedule *schedule.Schedule
	now      Clock
}

// Ensure ReviewService implements IReviewService
var _ IReviewService = (*ReviewService)(nil)

// NewReviewService creates a new ReviewService instance
func NewReviewService(db *gorm.DB, s *schedule.Schedule) *ReviewService {
	return &ReviewService{db: db, schedule: s, now: time.Now}
}

// SetClock replaces the time source
func (s *ReviewService) SetClock(c Clock) {
	s.now = c
}

// CreateReview records the user's rating of a food. A user may review each
// food once per calendar day in the schedule's zone.
func (s *ReviewService) CreateReview(ctx context.Context, userID uuid.UUID, req *types.CreateReviewRequest) (*models.Review, error) {
	rating := models.Rating(strings.ToLower(strings.TrimSpace(req.Rating)))
	if !rating.Valid() {
		return nil, ErrInvalidRating
	}

	now := s.now()
	review := &models.Review{
		UserID:    userID,
		FoodID:    req.FoodID,
		ReviewDay: now.In(s.schedule.Location()).Format("2006-01-02"),
		Rating:    rating,
		Text:      strings.TrimSpace(req.Text),
		CreatedAt: now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, &models.User{}, userID, ErrUserNotFound); err != nil {
			return err
		}
		if err := exists(tx, &models.FoodItem{}, req.FoodID, ErrFoodNotFound); err != nil {
			return err
		}

		var count int64
		err := tx.Model(&models.Review{}).
			Where("user_id = ? AND food_id = ? AND review_day = ?", userID, req.FoodID, review.ReviewDay).
			Count(&count).Error
		if err != nil {
			return fmt.Errorf("failed to check existing reviews: %w", err)
		}
		if count > 0 {
			return ErrDuplicateReview
		}

		if err := tx.Create(review).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateReview
			}
			return fmt.Errorf("failed to create review: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

// ListForFood returns a food's reviews, newest first
func (s *ReviewService) ListForFood(ctx context.Context, foodID uuid.UUID) ([]models.Review, error) {
	if err := exists(s.db.WithContext(ctx), &models.FoodItem{}, foodID, ErrFoodNotFound); err != nil {
		return nil, err
	}
	reviews := []models.Review{}
	if err := s.db.WithContext(ctx).Where("food_id = ?", foodID).Order("created_at DESC").Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// ListGrouped returns the reviews of several foods keyed by food id, newest
// first. Every requested id has an entry.
func (s *ReviewService) ListGrouped(ctx context.Context, foodIDs []uuid.UUID) (map[string][]models.Review, error) {
	out := make(map[string][]models.Review, len(foodIDs))
	for _, id := range foodIDs {
		out[id.String()] = []models.Review{}
	}
	if len(foodIDs) == 0 {
		return out, nil
	}
	var reviews []models.Review
	if err := s.db.WithContext(ctx).Where("food_id IN ?", foodIDs).Order("created_at DESC").Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	for _, r := range reviews {
		key := r.FoodID.String()
		out[key] = append(out[key], r)
	}
	return out, nil
}

// LikeReview increments a review's like count
func (s *ReviewService) LikeReview(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	res := s.db.WithContext(ctx).Model(&models.Review{}).Where("id = ?", id).
		UpdateColumn("likes", gorm.Expr("likes + ?", 1))
	if res.Error != nil {
		return nil, fmt.Errorf("failed to like review: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrReviewNotFound
	}
	var review models.Review
	if err := s.db.WithContext(ctx).First(&review, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return &review, nil
}

// DeleteReview removes one of the user's own reviews
func (s *ReviewService) DeleteReview(ctx context.Context, userID, id uuid.UUID) error {
	var review models.Review
	if err := s.db.WithContext(ctx).First(&review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return fmt.Errorf("failed to get review: %w", err)
	}
	if review.UserID != userID {
		return ErrForbidden
	}
	if err := s.db.WithContext(ctx).Delete(&review).Error; err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return nil
}

// exists returns notFound unless a row of model has the given id
func exists(db *gorm.DB, model interface{}, id uuid.UUID, notFound error) error {
	var count int64
	if err := db.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to look up record: %w", err)
	}
	if count == 0 {
		return notFound
	}
	return nil
}
