package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/illineats/backend/internal/tags"
)

// FoodItem is a dish with its nutrition facts, as published by the dining service.
type FoodItem struct {
	ID                 uuid.UUID   `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt          time.Time   `json:"createdAt"`
	UpdatedAt          time.Time   `json:"updatedAt"`
	Name               string      `gorm:"size:255;not null;index" json:"name"`
	ServingSize        string      `gorm:"size:100" json:"servingSize"`
	Calories           float64     `json:"calories"`
	CaloriesFat        float64     `json:"caloriesFat"`
	TotalFat           float64     `json:"totalFat"`
	SaturatedFat       float64     `json:"saturatedFat"`
	TransFat           float64     `json:"transFat"`
	Cholesterol        float64     `json:"cholesterol"`
	Sodium             float64     `json:"sodium"`
	TotalCarbohydrates float64     `json:"totalCarbohydrates"`
	Fiber              float64     `json:"fiber"`
	Sugars             float64     `json:"sugars"`
	Protein            float64     `json:"protein"`
	CalciumDV          float64     `gorm:"column:calcium_dv" json:"calciumDV"`
	IronDV             float64     `gorm:"column:iron_dv" json:"ironDV"`
	Ingredients        string      `gorm:"type:text" json:"ingredients"`
	Allergens          string      `gorm:"type:text" json:"allergens"`
	Preferences        string      `gorm:"type:text" json:"preferences"`
	MealEntries        []MealEntry `gorm:"foreignKey:FoodID;constraint:OnDelete:CASCADE" json:"mealEntries"`
}

// BeforeCreate assigns an ID when the caller did not.
func (f *FoodItem) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// AllergenSet parses the comma separated allergen list.
func (f *FoodItem) AllergenSet() tags.Set {
	return tags.ParseList(f.Allergens)
}

// PreferenceSet parses the preference words.
func (f *FoodItem) PreferenceSet() tags.Set {
	return tags.ParseWords(f.Preferences)
}

// MealEntry records that a food is served at a hall and facility for one meal on one date.
type MealEntry struct {
	ID             uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	FoodID         uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_meal_entries_serving" json:"foodId"`
	DiningHall     string    `gorm:"size:255;not null;index;uniqueIndex:idx_meal_entries_serving" json:"diningHall"`
	DiningFacility string    `gorm:"size:255;uniqueIndex:idx_meal_entries_serving" json:"diningFacility"`
	MealType       string    `gorm:"size:100;not null;uniqueIndex:idx_meal_entries_serving" json:"mealType"`
	DateServed     string    `gorm:"size:64;not null;index;uniqueIndex:idx_meal_entries_serving" json:"dateServed"`
	CreatedAt      time.Time `json:"createdAt"`
}

// BeforeCreate assigns an ID when the caller did not.
func (m *MealEntry) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
