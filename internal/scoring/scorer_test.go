package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/illineats/backend/internal/models"
	"github.com/illineats/backend/internal/tags"
)

func TestNutritionScoreBulkExample(t *testing.T) {
	f := &models.FoodItem{Calories: 600, Protein: 40, TotalCarbohydrates: 50}

	assert.InDelta(t, 0.9333, NutritionScore(models.GoalBulk, f), 0.0001)
}

func TestNutritionScoreBulkIsMonotonicInProtein(t *testing.T) {
	f := &models.FoodItem{Calories: 350, TotalCarbohydrates: 40}
	prev := -1.0
	for protein := 0.0; protein <= 60; protein += 2.5 {
		f.Protein = protein
		got := NutritionScore(models.GoalBulk, f)
		assert.GreaterOrEqual(t, got, prev, "protein %.1f", protein)
		prev = got
	}
}

func TestNutritionScoreLoseWeight(t *testing.T) {
	light := &models.FoodItem{Calories: 300, Protein: 25, Fiber: 8, Sugars: 0}
	assert.InDelta(t, 1.0, NutritionScore(models.GoalLoseWeight, light), 1e-9)

	heavy := &models.FoodItem{Calories: 900, Protein: 0, Fiber: 0, Sugars: 40}
	assert.InDelta(t, 0.0, NutritionScore(models.GoalLoseWeight, heavy), 1e-9)

	// halfway between the calorie floor and ceiling
	mid := &models.FoodItem{Calories: 600}
	assert.InDelta(t, 0.4*0.5+0.15, NutritionScore(models.GoalLoseWeight, mid), 1e-9)
}

func TestNutritionScoreEatHealthy(t *testing.T) {
	f := &models.FoodItem{Protein: 25, Fiber: 4, CalciumDV: 10, IronDV: 10, Sugars: 5, SaturatedFat: 20}

	want := 0.25*1 + 0.25*0.5 + 0.2*0.5 + 0.15*0.8 + 0.15*0
	assert.InDelta(t, want, NutritionScore(models.GoalEatHealthy, f), 1e-9)
}

func TestNutritionScoreDefault(t *testing.T) {
	f := &models.FoodItem{Calories: 1000}

	assert.Equal(t, DefaultNutritionScore, NutritionScore("", f))
	assert.Equal(t, DefaultNutritionScore, NutritionScore("cut", f))
}

func TestPreferenceScore(t *testing.T) {
	f := &models.FoodItem{Preferences: "Vegetarian Vegan"}

	assert.Equal(t, 0.0, PreferenceScore(tags.NewSet(), f))
	assert.Equal(t, 1.0, PreferenceScore(tags.ParseWords("vegan"), f))
	assert.Equal(t, 0.5, PreferenceScore(tags.ParseWords("vegan halal"), f))
}

func TestLocationScore(t *testing.T) {
	f := &models.FoodItem{MealEntries: []models.MealEntry{{DiningHall: "Ikenberry Dining Center (Ike)"}}}

	assert.Equal(t, 1.0, LocationScore([]string{"ikenberry"}, f))
	assert.Equal(t, 1.0, LocationScore([]string{"Ikenberry Dining Center (Ike) - North"}, f))
	assert.Equal(t, 0.0, LocationScore([]string{"ISR"}, f))
	assert.Equal(t, 0.0, LocationScore(nil, f))
	assert.Equal(t, 0.0, LocationScore([]string{"  "}, f))
}

func TestLocationScoreIgnoresEntriesWithoutHall(t *testing.T) {
	f := &models.FoodItem{MealEntries: []models.MealEntry{{DiningHall: ""}, {DiningHall: "   "}}}

	assert.Equal(t, 0.0, LocationScore([]string{"ISR"}, f))
	assert.Equal(t, 0.0, LocationScore([]string{"Ikenberry Dining Center (Ike)"}, f))
}

func TestScoreWeights(t *testing.T) {
	s := NewScorer()
	f := &models.FoodItem{
		Calories: 600, Protein: 40, TotalCarbohydrates: 50,
		Preferences: "Halal",
		MealEntries: []models.MealEntry{{DiningHall: "Illinois Street Dining Center (ISR)"}},
	}
	p := Profile{
		Goal:        models.GoalBulk,
		Preferences: tags.ParseWords("halal"),
		Locations:   []string{"ISR"},
	}

	assert.InDelta(t, 0.5*0.9333+0.3+0.2, s.Score(f, p), 0.0001)
}

func TestEligible(t *testing.T) {
	peanut := &models.FoodItem{Allergens: "Peanuts, Soy", Preferences: "Vegan"}
	plain := &models.FoodItem{Allergens: "Milk", Preferences: ""}

	allergic := Profile{Allergies: tags.ParseList("peanuts")}
	assert.False(t, Eligible(peanut, allergic))
	assert.True(t, Eligible(plain, allergic))

	vegan := Profile{Preferences: tags.ParseWords("vegan")}
	assert.True(t, Eligible(peanut, vegan))
	assert.False(t, Eligible(plain, vegan))

	assert.True(t, Eligible(plain, Profile{Allergies: tags.NewSet(), Preferences: tags.NewSet()}))
}

func TestProfileFromUser(t *testing.T) {
	u := &models.User{
		Goal:        models.GoalEatHealthy,
		Allergies:   "Tree Nuts, Milk",
		Preferences: "vegetarian",
		Locations:   "ISR, , PAR",
	}

	p := ProfileFromUser(u)
	assert.Equal(t, models.GoalEatHealthy, p.Goal)
	assert.True(t, p.Allergies.Has(tags.TreeNuts))
	assert.True(t, p.Preferences.Has(tags.Vegetarian))
	assert.Equal(t, []string{"ISR", "PAR"}, p.Locations)
}
