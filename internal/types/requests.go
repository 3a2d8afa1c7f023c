package types

import (
	"github.com/google/uuid"
)

// CreateUserRequest represents the request body for creating the caller's profile
type CreateUserRequest struct {
	Name string `json:"name" binding:"max=255"`
}

// UpdateUserRequest represents the request body for editing a profile.
// Nil fields are left unchanged.
type UpdateUserRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	Allergies   *string `json:"allergies"`
	Preferences *string `json:"preferences"`
	Locations   *string `json:"locations"`
	Goal        *string `json:"goal"`
	IsNew       *bool   `json:"isNew"`
}

// CreateReviewRequest represents the request body for reviewing a food
type CreateReviewRequest struct {
	FoodID uuid.UUID `json:"foodId" binding:"required"`
	Rating string    `json:"rating" binding:"required"`
	Text   string    `json:"text" binding:"max=2000"`
}

// AddFavoriteRequest represents the request body for favoriting a food
type AddFavoriteRequest struct {
	FoodID uuid.UUID `json:"foodId" binding:"required"`
}

// SubscriptionKeys are the browser's push encryption keys
type SubscriptionKeys struct {
	P256dh string `json:"p256dh" binding:"required"`
	Auth   string `json:"auth" binding:"required"`
}

// SubscribeRequest mirrors the browser PushSubscription JSON
type SubscribeRequest struct {
	Endpoint string           `json:"endpoint" binding:"required,url"`
	Keys     SubscriptionKeys `json:"keys" binding:"required"`
}

// UnsubscribeRequest removes one endpoint, or every endpoint when empty
type UnsubscribeRequest struct {
	Endpoint string `json:"endpoint"`
}

// ImportMealEntry is one serving of an imported food
type ImportMealEntry struct {
	DiningHall     string `json:"diningHall" binding:"required"`
	DiningFacility string `json:"diningFacility"`
	MealType       string `json:"mealType" binding:"required"`
	DateServed     string `json:"dateServed" binding:"required"`
}

// ImportFood is one scraped food with its servings
type ImportFood struct {
	Name               string            `json:"name" binding:"required"`
	ServingSize        string            `json:"servingSize"`
	Ingredients        string            `json:"ingredients"`
	Allergens          string            `json:"allergens"`
	Preferences        string            `json:"preferences"`
	Calories           float64           `json:"calories"`
	CaloriesFat        float64           `json:"caloriesFat"`
	TotalFat           float64           `json:"totalFat"`
	SaturatedFat       float64           `json:"saturatedFat"`
	TransFat           float64           `json:"transFat"`
	Cholesterol        float64           `json:"cholesterol"`
	Sodium             float64           `json:"sodium"`
	TotalCarbohydrates float64           `json:"totalCarbohydrates"`
	Fiber              float64           `json:"fiber"`
	Sugars             float64           `json:"sugars"`
	Protein            float64           `json:"protein"`
	CalciumDV          float64           `json:"calciumDV"`
	IronDV             float64           `json:"ironDV"`
	MealEntries        []ImportMealEntry `json:"mealEntries" binding:"dive"`
}
