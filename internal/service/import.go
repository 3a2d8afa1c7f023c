package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/illineats/backend/internal/logging"
	"github.com/illineats/backend/internal/metrics"
	"github.com/illineats/backend/internal/models"
	"github.com/illineats/backend/internal/schedule"
	"github.com/illineats/backend/internal/types"
)

// ImportService implements IImportService
type ImportService struct {
	db       *gorm.DB
	schedule *schedule.Schedule
	now      Clock
}

// Ensure ImportService implements IImportService
var _ IImportService = (*ImportService)(nil)

// NewImportService creates a new ImportService instance
func NewImportService(db *gorm.DB, s *schedule.Schedule) *ImportService {
	return &ImportService{db: db, schedule: s, now: time.Now}
}

// SetClock replaces the time source
func (s *ImportService) SetClock(c Clock) {
	s.now = c
}

// Import loads scraped foods in one transaction. Foods are matched by name;
// a matched food keeps its nutrition facts and only gains new meal entries.
// Entries already recorded for the same serving are skipped.
func (s *ImportService) Import(ctx context.Context, foods []types.ImportFood) (*types.ImportSummary, error) {
	summary := &types.ImportSummary{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range foods {
			in := &foods[i]
			name := strings.TrimSpace(in.Name)
			if name == "" {
				return fmt.Errorf("%w: food %d has no name", ErrInvalidImport, i)
			}

			var food models.FoodItem
			res := tx.Where("name = ?", name).Limit(1).Find(&food)
			if res.Error != nil {
				return fmt.Errorf("failed to look up food %q: %w", name, res.Error)
			}
			if res.RowsAffected == 0 {
				food = foodFromImport(name, in)
				if err := tx.Create(&food).Error; err != nil {
					return fmt.Errorf("failed to create food %q: %w", name, err)
				}
				summary.FoodsCreated++
				metrics.ImportedRecords.WithLabelValues("food_created").Inc()
			} else {
				summary.FoodsMatched++
			}

			for _, e := range in.MealEntries {
				entry := models.MealEntry{
					FoodID:         food.ID,
					DiningHall:     strings.TrimSpace(e.DiningHall),
					DiningFacility: strings.TrimSpace(e.DiningFacility),
					MealType:       strings.TrimSpace(e.MealType),
					DateServed:     strings.TrimSpace(e.DateServed),
				}
				if entry.DiningHall == "" || entry.MealType == "" || entry.DateServed == "" {
					return fmt.Errorf("%w: food %q has a meal entry without hall, meal or date", ErrInvalidImport, name)
				}
				var count int64
				err := tx.Model(&models.MealEntry{}).
					Where("food_id = ? AND dining_hall = ? AND dining_facility = ? AND meal_type = ? AND date_served = ?",
						entry.FoodID, entry.DiningHall, entry.DiningFacility, entry.MealType, entry.DateServed).
					Count(&count).Error
				if err != nil {
					return fmt.Errorf("failed to check meal entry: %w", err)
				}
				if count > 0 {
					summary.EntriesSkipped++
					metrics.ImportedRecords.WithLabelValues("entry_skipped").Inc()
					continue
				}
				if err := tx.Create(&entry).Error; err != nil {
					return fmt.Errorf("failed to create meal entry for %q: %w", name, err)
				}
				summary.EntriesCreated++
				metrics.ImportedRecords.WithLabelValues("entry_created").Inc()
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Info().
		Int("foods_created", summary.FoodsCreated).
		Int("foods_matched", summary.FoodsMatched).
		Int("entries_created", summary.EntriesCreated).
		Int("entries_skipped", summary.EntriesSkipped).
		Msg("Menu import complete")
	return summary, nil
}

// PrunePast deletes meal entries dated before today. Entries whose date does
// not parse are kept.
func (s *ImportService) PrunePast(ctx context.Context) (*types.PruneSummary, error) {
	today := s.schedule.Today(s.now())
	cutoff, err := s.schedule.ParseDate(today)
	if err != nil {
		return nil, fmt.Errorf("failed to parse today's date: %w", err)
	}

	var dates []string
	if err := s.db.WithContext(ctx).Model(&models.MealEntry{}).Distinct().Pluck("date_served", &dates).Error; err != nil {
		return nil, fmt.Errorf("failed to list dates: %w", err)
	}
	var past []string
	for _, d := range dates {
		if t, err := s.schedule.ParseDate(d); err == nil && t.Before(cutoff) {
			past = append(past, d)
		}
	}

	summary := &types.PruneSummary{Before: today}
	if len(past) == 0 {
		return summary, nil
	}
	res := s.db.WithContext(ctx).Where("date_served IN ?", past).Delete(&models.MealEntry{})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to prune meal entries: %w", res.Error)
	}
	summary.EntriesDeleted = res.RowsAffected

	logging.Ctx(ctx).Info().
		Int64("entries_deleted", summary.EntriesDeleted).
		Str("before", today).
		Msg("Pruned past meal entries")
	return summary, nil
}

func foodFromImport(name string, in *types.ImportFood) models.FoodItem {
	return models.FoodItem{
		Name:               name,
		ServingSize:        strings.TrimSpace(in.ServingSize),
		Ingredients:        strings.TrimSpace(in.Ingredients),
		Allergens:          strings.TrimSpace(in.Allergens),
		Preferences:        strings.TrimSpace(in.Preferences),
		Calories:           in.Calories,
		CaloriesFat:        in.CaloriesFat,
		TotalFat:           in.TotalFat,
		SaturatedFat:       in.SaturatedFat,
		TransFat:           in.TransFat,
		Cholesterol:        in.Cholesterol,
		Sodium:             in.Sodium,
		TotalCarbohydrates: in.TotalCarbohydrates,
		Fiber:              in.Fiber,
		Sugars:             in.Sugars,
		Protein:            in.Protein,
		CalciumDV:          in.CalciumDV,
		IronDV:             in.IronDV,
	}
}
