package scoring

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/illineats/backend/internal/models"
	"github.com/illineats/backend/internal/schedule"
	"github.com/illineats/backend/internal/tags"
)

const (
	ike      = "Ikenberry Dining Center (Ike)"
	today    = "Monday, October 7, 2024"
	tomorrow = "Tuesday, October 8, 2024"
)

func newRecommender(t *testing.T) (*Recommender, time.Time) {
	t.Helper()
	s, err := schedule.Default()
	require.NoError(t, err)
	// 11:00, lunch is being served and breakfast is over
	now := time.Date(2024, time.October, 7, 11, 0, 0, 0, s.Location())
	return NewRecommender(s, nil), now
}

func food(name string, protein float64, meal, date string) models.FoodItem {
	return models.FoodItem{
		Name:     name,
		Calories: 400,
		Protein:  protein,
		MealEntries: []models.MealEntry{
			{DiningHall: ike, MealType: meal, DateServed: date},
		},
	}
}

func names(ranked []Ranked) []string {
	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.Food.Name
	}
	return out
}

func TestPoolKeepsOnlyUpcomingServings(t *testing.T) {
	r, now := newRecommender(t)
	foods := []models.FoodItem{
		food("eggs", 10, "Breakfast", today),
		food("pasta", 10, "Lunch", today),
		food("steak", 10, "Dinner", today),
		food("yesterday", 10, "Lunch", "Sunday, October 6, 2024"),
		food("tomorrow", 10, "Lunch", tomorrow),
	}

	pool := r.Pool(foods, Profile{}, now)

	var got []string
	for _, f := range pool {
		got = append(got, f.Name)
	}
	assert.Equal(t, []string{"pasta", "steak", "tomorrow"}, got)
}

func TestPoolSkipsTomorrowWhenTodayIsFull(t *testing.T) {
	r, now := newRecommender(t)
	var foods []models.FoodItem
	for i := 0; i < DefaultLimit; i++ {
		foods = append(foods, food(fmt.Sprintf("lunch-%d", i), 10, "Lunch", today))
	}
	foods = append(foods, food("tomorrow", 100, "Lunch", tomorrow))

	pool := r.Pool(foods, Profile{}, now)
	assert.Len(t, pool, DefaultLimit)
	for _, f := range pool {
		assert.NotEqual(t, "tomorrow", f.Name)
	}
}

func TestRecommendExcludesAllergens(t *testing.T) {
	r, now := newRecommender(t)
	nutty := food("satay", 40, "Lunch", today)
	nutty.Allergens = "Peanuts, Soy"
	foods := []models.FoodItem{nutty, food("rice", 5, "Lunch", today)}

	got := r.Recommend(foods, Profile{Goal: models.GoalBulk, Allergies: tags.ParseList("Peanuts")}, now)

	assert.Equal(t, []string{"rice"}, names(got))
}

func TestRecommendOrdersByScoreThenInput(t *testing.T) {
	r, now := newRecommender(t)
	foods := []models.FoodItem{
		food("a", 10, "Lunch", today),
		food("b", 30, "Dinner", today),
		food("c", 10, "Dinner", today),
		food("d", 20, "Lunch", tomorrow),
	}

	got := r.Recommend(foods, Profile{Goal: models.GoalBulk}, now)

	assert.Equal(t, []string{"b", "d", "a", "c"}, names(got))
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}
}

func TestRecommendCapsResults(t *testing.T) {
	r, now := newRecommender(t)
	var foods []models.FoodItem
	for i := 0; i < 30; i++ {
		foods = append(foods, food(fmt.Sprintf("f%d", i), float64(i), "Lunch", today))
	}

	got := r.Recommend(foods, Profile{Goal: models.GoalBulk}, now)

	require.Len(t, got, DefaultLimit)
	assert.Equal(t, "f29", got[0].Food.Name)
}

func TestRecommendScoresLocationOnCurrentEntriesOnly(t *testing.T) {
	r, now := newRecommender(t)
	const isr = "Illinois Street Dining Center (ISR)"
	f := models.FoodItem{
		Name: "tacos",
		MealEntries: []models.MealEntry{
			{DiningHall: isr, MealType: "Lunch", DateServed: today},
			{DiningHall: ike, MealType: "Lunch", DateServed: "Monday, September 30, 2024"},
		},
	}
	p := Profile{Locations: []string{"Ike"}}

	got := r.Recommend([]models.FoodItem{f}, p, now)

	require.Len(t, got, 1)
	assert.InDelta(t, 0.5*DefaultNutritionScore, got[0].Score, 1e-9)
	assert.InDelta(t, got[0].Score, r.Score(&f, p, now), 1e-9)
	assert.Len(t, got[0].Food.MealEntries, 2, "ranked foods keep every entry")

	p.Locations = []string{"ISR"}
	assert.InDelta(t, 0.5*DefaultNutritionScore+0.2, r.Score(&f, p, now), 1e-9)
}
