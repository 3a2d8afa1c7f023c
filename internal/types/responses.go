package types

import (
	"github.com/illineats/backend/internal/catalog"
	"github.com/illineats/backend/internal/models"
	"github.com/illineats/backend/internal/schedule"
)

// FoodSummary is a food as listed in browse and recommendation views
type FoodSummary struct {
	models.FoodItem
	ReviewSummary *catalog.RatingSummary `json:"reviewSummary,omitempty"`
	TopImage      *models.FoodImage      `json:"topImage,omitempty"`
}

// FoodListResponse is one page of the browse view
type FoodListResponse struct {
	FoodItems      []FoodSummary `json:"foodItems"`
	TotalPages     int           `json:"totalPages"`
	CurrentPage    int           `json:"currentPage"`
	TotalItems     int           `json:"totalItems"`
	AvailableDates []string      `json:"availableDates"`
}

// EntryStatus is a meal entry with its current serving state
type EntryStatus struct {
	models.MealEntry
	Status schedule.Status `json:"status"`
}

// FoodDetail is the single-food view
type FoodDetail struct {
	models.FoodItem
	MealEntries   []EntryStatus          `json:"mealEntries"`
	ReviewSummary *catalog.RatingSummary `json:"reviewSummary,omitempty"`
	TopImage      *models.FoodImage      `json:"topImage,omitempty"`
}

// FacilityMenu lists the foods served at one facility of a hall
type FacilityMenu struct {
	DiningFacility string            `json:"diningFacility"`
	FoodItems      []models.FoodItem `json:"foodItems"`
}

// HallMenuResponse groups a hall's foods by facility
type HallMenuResponse struct {
	DiningHall string         `json:"diningHall"`
	MealType   string         `json:"mealType,omitempty"`
	DateServed string         `json:"dateServed"`
	Facilities []FacilityMenu `json:"facilities"`
}

// HallStatusResponse lists a hall's meals and whether each is being served
type HallStatusResponse struct {
	DiningHall string                `json:"diningHall"`
	Date       string                `json:"date"`
	Meals      []schedule.MealStatus `json:"meals"`
}

// ScheduleResponse is the full serving schedule
type ScheduleResponse struct {
	Version       string          `json:"version"`
	Timezone      string          `json:"timezone"`
	BufferMinutes int             `json:"bufferMinutes"`
	Halls         []schedule.Hall `json:"halls"`
}

// RecommendedFood is a ranked food
type RecommendedFood struct {
	models.FoodItem
	Score float64 `json:"score"`
}

// RecommendationResponse is the ranked list for the caller
type RecommendationResponse struct {
	FoodItems      []RecommendedFood `json:"foodItems"`
	AvailableDates []string          `json:"availableDates"`
	Cached         bool              `json:"cached"`
}

// ImportSummary reports what a bulk import changed
type ImportSummary struct {
	FoodsCreated   int `json:"foodsCreated"`
	FoodsMatched   int `json:"foodsMatched"`
	EntriesCreated int `json:"entriesCreated"`
	EntriesSkipped int `json:"entriesSkipped"`
}

// PruneSummary reports how many past meal entries were removed
type PruneSummary struct {
	EntriesDeleted int64  `json:"entriesDeleted"`
	Before         string `json:"before"`
}
