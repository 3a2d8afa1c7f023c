package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/illineats/backend/internal/catalog"
	"github.com/illineats/backend/internal/logging"
	"github.com/illineats/backend/internal/metrics"
	"github.com/illineats/backend/internal/models"
	"github.com/illineats/backend/internal/schedule"
	"github.com/illineats/backend/internal/scoring"
	"github.com/illineats/backend/internal/types"
)

// RecommendationService implements IRecommendationService
type RecommendationService struct {
	db          *gorm.DB
	schedule    *schedule.Schedule
	recommender *scoring.Recommender
	pipeline    *catalog.Pipeline
	cache       RecommendationCache
	now         Clock
}

// Ensure RecommendationService implements IRecommendationService
var _ IRecommendationService = (*RecommendationService)(nil)

// NewRecommendationService creates a new RecommendationService instance.
// cache may be nil.
func NewRecommendationService(db *gorm.DB, s *schedule.Schedule, cache RecommendationCache) *RecommendationService {
	return &RecommendationService{
		db:          db,
		schedule:    s,
		recommender: scoring.NewRecommender(s, scoring.NewScorer()),
		pipeline:    catalog.NewPipeline(s),
		cache:       cache,
		now:         time.Now,
	}
}

// SetClock replaces the time source
func (s *RecommendationService) SetClock(c Clock) {
	s.now = c
}

// Recommend ranks today's and tomorrow's eligible foods for the user
func (s *RecommendationService) Recommend(ctx context.Context, userID uuid.UUID) (*types.RecommendationResponse, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	profile := scoring.ProfileFromUser(&user)

	now := s.now()
	today := s.schedule.Today(now)

	dates, err := s.availableDates(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		ids, ok, err := s.cache.Get(ctx, userID, today)
		if err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("user_id", userID.String()).Msg("Recommendation cache read failed")
		}
		if ok {
			foods, err := s.foodsByID(ctx, ids)
			if err != nil {
				return nil, err
			}
			items := make([]types.RecommendedFood, len(foods))
			for i := range foods {
				items[i] = types.RecommendedFood{FoodItem: foods[i], Score: s.recommender.Score(&foods[i], profile, now)}
			}
			metrics.RecommendationsServed.WithLabelValues("cache").Inc()
			return &types.RecommendationResponse{FoodItems: items, AvailableDates: dates, Cached: true}, nil
		}
	}

	var foods []models.FoodItem
	days := []string{today, s.schedule.Tomorrow(now)}
	err = s.db.WithContext(ctx).
		Preload("MealEntries").
		Where("id IN (?)", s.db.Model(&models.MealEntry{}).Select("food_id").Where("date_served IN ?", days)).
		Order("created_at, name").
		Find(&foods).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate foods: %w", err)
	}
	metrics.RecommendationPoolSize.Observe(float64(len(foods)))

	ranked := s.recommender.Recommend(foods, profile, now)
	items := make([]types.RecommendedFood, len(ranked))
	ids := make([]uuid.UUID, len(ranked))
	for i, r := range ranked {
		items[i] = types.RecommendedFood{FoodItem: *r.Food, Score: r.Score}
		ids[i] = r.Food.ID
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, userID, today, ids); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("user_id", userID.String()).Msg("Recommendation cache write failed")
		}
	}
	metrics.RecommendationsServed.WithLabelValues("computed").Inc()
	return &types.RecommendationResponse{FoodItems: items, AvailableDates: dates}, nil
}

// Invalidate drops the user's cached ranking
func (s *RecommendationService) Invalidate(ctx context.Context, userID uuid.UUID) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		return fmt.Errorf("failed to invalidate recommendations: %w", err)
	}
	return nil
}

// foodsByID loads foods with their entries in the order of ids, skipping deleted ones
func (s *RecommendationService) foodsByID(ctx context.Context, ids []uuid.UUID) ([]models.FoodItem, error) {
	if len(ids) == 0 {
		return []models.FoodItem{}, nil
	}
	var found []models.FoodItem
	if err := s.db.WithContext(ctx).Preload("MealEntries").Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, fmt.Errorf("failed to load cached foods: %w", err)
	}
	byID := make(map[uuid.UUID]models.FoodItem, len(found))
	for _, f := range found {
		byID[f.ID] = f
	}
	out := make([]models.FoodItem, 0, len(ids))
	for _, id := range ids {
		if f, ok := byID[id]; ok {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *RecommendationService) availableDates(ctx context.Context) ([]string, error) {
	var dates []string
	if err := s.db.WithContext(ctx).Model(&models.MealEntry{}).Distinct().Pluck("date_served", &dates).Error; err != nil {
		return nil, fmt.Errorf("failed to list dates: %w", err)
	}
	return s.pipeline.SortDates(dates), nil
}
