package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/illineats/backend/internal/catalog"
	"github.com/illineats/backend/internal/metrics"
	"github.com/illineats/backend/internal/models"
	"github.com/illineats/backend/internal/schedule"
	"github.com/illineats/backend/internal/types"
)

// ratingAverageSQL maps ratings onto the 0-100 scale of models.Rating.Score.
const ratingAverageSQL = "AVG(CASE rating WHEN 'good' THEN 100.0 WHEN 'mid' THEN 50.0 ELSE 0.0 END)"

// FoodService implements IFoodService
type FoodService struct {
	db       *gorm.DB
	schedule *schedule.Schedule
	pipeline *catalog.Pipeline
	now      Clock
}

// Ensure FoodService implements IFoodService
var _ IFoodService = (*FoodService)(nil)

// NewFoodService creates a new FoodService instance
func NewFoodService(db *gorm.DB, s *schedule.Schedule) *FoodService {
	return &FoodService{
		db:       db,
		schedule: s,
		pipeline: catalog.NewPipeline(s),
		now:      time.Now,
	}
}

// SetClock replaces the time source
func (s *FoodService) SetClock(c Clock) {
	s.now = c
}

// ListFoods runs a browse query over every food and its meal entries
func (s *FoodService) ListFoods(ctx context.Context, q catalog.Query) (*types.FoodListResponse, error) {
	foods, err := loadFoods(s.db.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	ratings, err := loadRatings(s.db.WithContext(ctx), nil)
	if err != nil {
		return nil, err
	}

	result := s.pipeline.Run(foods, ratings, q, s.now())

	ids := make([]uuid.UUID, len(result.Items))
	for i, it := range result.Items {
		ids[i] = it.Food.ID
	}
	images, err := loadTopImages(s.db.WithContext(ctx), ids)
	if err != nil {
		return nil, err
	}

	items := make([]types.FoodSummary, len(result.Items))
	for i, it := range result.Items {
		items[i] = types.FoodSummary{
			FoodItem:      *it.Food,
			ReviewSummary: it.Rating,
			TopImage:      images[it.Food.ID],
		}
	}
	return &types.FoodListResponse{
		FoodItems:      items,
		TotalPages:     result.TotalPages,
		CurrentPage:    result.CurrentPage,
		TotalItems:     result.TotalItems,
		AvailableDates: result.AvailableDates,
	}, nil
}

// GetFood returns one food with the serving state of each of its entries
func (s *FoodService) GetFood(ctx context.Context, id uuid.UUID) (*types.FoodDetail, error) {
	var food models.FoodItem
	if err := s.db.WithContext(ctx).Preload("MealEntries").First(&food, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFoodNotFound
		}
		return nil, fmt.Errorf("failed to get food: %w", err)
	}

	ratings, err := loadRatings(s.db.WithContext(ctx), []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	images, err := loadTopImages(s.db.WithContext(ctx), []uuid.UUID{id})
	if err != nil {
		return nil, err
	}

	now := s.now()
	entries := make([]types.EntryStatus, len(food.MealEntries))
	for i, e := range food.MealEntries {
		status := s.schedule.Resolve(e.DiningHall, e.MealType, e.DateServed, now)
		metrics.ServingStatusLookups.WithLabelValues(string(status)).Inc()
		entries[i] = types.EntryStatus{MealEntry: e, Status: status}
	}

	detail := &types.FoodDetail{
		FoodItem:    food,
		MealEntries: entries,
		TopImage:    images[id],
	}
	detail.FoodItem.MealEntries = nil
	if r, ok := ratings[id]; ok {
		detail.ReviewSummary = &r
	}
	return detail, nil
}

// HallMenu lists what a hall serves on a date, grouped by facility.
// An empty date means today; an empty meal type means every meal.
func (s *FoodService) HallMenu(ctx context.Context, hall, mealType, dateServed string) (*types.HallMenuResponse, error) {
	hall = strings.TrimSpace(hall)
	if h, ok := s.schedule.Hall(hall); ok {
		hall = h.Name
	}
	if strings.TrimSpace(dateServed) == "" {
		dateServed = s.schedule.Today(s.now())
	}

	q := s.db.WithContext(ctx).Where("dining_hall = ? AND date_served = ?", hall, dateServed)
	if mealType != "" {
		q = q.Where("meal_type IN ?", catalog.ExpandMealType(mealType))
	}
	var entries []models.MealEntry
	if err := q.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list meal entries: %w", err)
	}

	resp := &types.HallMenuResponse{
		DiningHall: hall,
		MealType:   mealType,
		DateServed: dateServed,
		Facilities: []types.FacilityMenu{},
	}
	if len(entries) == 0 {
		return resp, nil
	}

	byFacility := make(map[string]map[uuid.UUID]bool)
	var ids []uuid.UUID
	seen := make(map[uuid.UUID]bool)
	for _, e := range entries {
		if byFacility[e.DiningFacility] == nil {
			byFacility[e.DiningFacility] = make(map[uuid.UUID]bool)
		}
		byFacility[e.DiningFacility][e.FoodID] = true
		if !seen[e.FoodID] {
			seen[e.FoodID] = true
			ids = append(ids, e.FoodID)
		}
	}

	var foods []models.FoodItem
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Order("name").Find(&foods).Error; err != nil {
		return nil, fmt.Errorf("failed to load foods: %w", err)
	}

	facilities := make([]string, 0, len(byFacility))
	for f := range byFacility {
		facilities = append(facilities, f)
	}
	sort.Strings(facilities)
	for _, name := range facilities {
		menu := types.FacilityMenu{DiningFacility: name, FoodItems: []models.FoodItem{}}
		for _, f := range foods {
			if byFacility[name][f.ID] {
				menu.FoodItems = append(menu.FoodItems, f)
			}
		}
		resp.Facilities = append(resp.Facilities, menu)
	}
	return resp, nil
}

// HallStatus reports each meal of a hall as NOW, LATER or CLOSED
func (s *FoodService) HallStatus(ctx context.Context, hall string) (*types.HallStatusResponse, error) {
	h, ok := s.schedule.Hall(hall)
	if !ok {
		return nil, ErrHallNotFound
	}
	now := s.now()
	meals, _ := s.schedule.HallStatus(h.Name, now)
	for _, m := range meals {
		metrics.ServingStatusLookups.WithLabelValues(string(m.Status)).Inc()
	}
	return &types.HallStatusResponse{
		DiningHall: h.Name,
		Date:       s.schedule.Today(now),
		Meals:      meals,
	}, nil
}

// Schedule returns the serving windows in effect
func (s *FoodService) Schedule() *types.ScheduleResponse {
	return &types.ScheduleResponse{
		Version:       s.schedule.Version(),
		Timezone:      s.schedule.Location().String(),
		BufferMinutes: int(s.schedule.Buffer() / time.Minute),
		Halls:         s.schedule.Halls(),
	}
}

// loadFoods returns every food with its meal entries, oldest first
func loadFoods(db *gorm.DB) ([]models.FoodItem, error) {
	var foods []models.FoodItem
	if err := db.Preload("MealEntries").Order("created_at, name").Find(&foods).Error; err != nil {
		return nil, fmt.Errorf("failed to load foods: %w", err)
	}
	return foods, nil
}

type ratingRow struct {
	FoodID  uuid.UUID
	Count   int
	Average float64
}

// loadRatings aggregates reviews per food, restricted to ids when given
func loadRatings(db *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]catalog.RatingSummary, error) {
	q := db.Model(&models.Review{}).
		Select("food_id, COUNT(*) AS count, " + ratingAverageSQL + " AS average").
		Group("food_id")
	if ids != nil {
		q = q.Where("food_id IN ?", ids)
	}
	var rows []ratingRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate ratings: %w", err)
	}
	out := make(map[uuid.UUID]catalog.RatingSummary, len(rows))
	for _, r := range rows {
		out[r.FoodID] = catalog.RatingSummary{Count: r.Count, Average: r.Average}
	}
	return out, nil
}

// loadTopImages returns the most liked image of each food, earliest upload on ties
func loadTopImages(db *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]*models.FoodImage, error) {
	out := make(map[uuid.UUID]*models.FoodImage)
	if len(ids) == 0 {
		return out, nil
	}
	var images []models.FoodImage
	if err := db.Where("food_id IN ?", ids).Order("likes DESC, created_at ASC").Find(&images).Error; err != nil {
		return nil, fmt.Errorf("failed to load images: %w", err)
	}
	for i := range images {
		if _, ok := out[images[i].FoodID]; !ok {
			out[images[i].FoodID] = &images[i]
		}
	}
	return out, nil
}
