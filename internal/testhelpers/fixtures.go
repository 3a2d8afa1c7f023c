package testhelpers

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/illineats/backend/internal/models"
)

// CreateUser inserts a user with the given profile fields.
func CreateUser(t *testing.T, db *gorm.DB, mutate ...func(*models.User)) *models.User {
	t.Helper()
	id := uuid.New()
	user := &models.User{
		ID:    id,
		Email: id.String() + "@illinois.edu",
		Name:  "Test Diner",
		IsNew: true,
	}
	for _, m := range mutate {
		m(user)
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

// Entry builds an unsaved meal entry.
func Entry(hall, meal, date string) models.MealEntry {
	return models.MealEntry{DiningHall: hall, DiningFacility: "Main Line", MealType: meal, DateServed: date}
}

// CreateFood inserts a food and its meal entries.
func CreateFood(t *testing.T, db *gorm.DB, food models.FoodItem, entries ...models.MealEntry) *models.FoodItem {
	t.Helper()
	food.MealEntries = entries
	if err := db.Create(&food).Error; err != nil {
		t.Fatalf("failed to create food %q: %v", food.Name, err)
	}
	return &food
}

// CreateReview inserts a review for a day string such as "2024-10-07".
func CreateReview(t *testing.T, db *gorm.DB, userID, foodID uuid.UUID, rating models.Rating, day string) *models.Review {
	t.Helper()
	review := &models.Review{UserID: userID, FoodID: foodID, Rating: rating, ReviewDay: day}
	if err := db.Create(review).Error; err != nil {
		t.Fatalf("failed to create review: %v", err)
	}
	return review
}
