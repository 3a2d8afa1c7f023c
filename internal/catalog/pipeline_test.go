package catalog

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/illineats/backend/internal/models"
	"github.com/illineats/backend/internal/schedule"
	"github.com/illineats/backend/internal/tags"
)

const (
	ike      = "Ikenberry Dining Center (Ike)"
	isr      = "Illinois Street Dining Center (ISR)"
	today    = "Monday, October 7, 2024"
	tomorrow = "Tuesday, October 8, 2024"
)

func setup(t *testing.T) (*Pipeline, time.Time) {
	t.Helper()
	s, err := schedule.Default()
	require.NoError(t, err)
	return NewPipeline(s), time.Date(2024, time.October, 7, 11, 0, 0, 0, s.Location())
}

func entry(hall, meal, date string) models.MealEntry {
	return models.MealEntry{DiningHall: hall, MealType: meal, DateServed: date}
}

func names(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Food.Name
	}
	return out
}

func sampleFoods() []models.FoodItem {
	return []models.FoodItem{
		{ID: uuid.New(), Name: "Pad Thai", Calories: 550, Protein: 20, Allergens: "Peanuts, Soy, Eggs", Preferences: "",
			MealEntries: []models.MealEntry{entry(ike, "Lunch", today)}},
		{ID: uuid.New(), Name: "Garden Salad", Calories: 120, Protein: 4, Allergens: "", Preferences: "Vegetarian Vegan",
			MealEntries: []models.MealEntry{entry(isr, "Dinner", today)}},
		{ID: uuid.New(), Name: "Pancakes", Calories: 350, Protein: 8, Allergens: "Milk, Eggs, Wheat", Preferences: "Vegetarian",
			MealEntries: []models.MealEntry{entry(ike, "Breakfast", today)}},
		{ID: uuid.New(), Name: "Bubble Tea", Calories: 300, Protein: 1, Allergens: "Milk", Preferences: "Vegetarian",
			MealEntries: []models.MealEntry{entry("InfiniTEA", "A la Carte--POS Feed", tomorrow)}},
		{ID: uuid.New(), Name: "Peanut-free Cookie", Calories: 200, Protein: 2, Allergens: "Wheat, Tree Nuts", Preferences: "Vegetarian",
			MealEntries: []models.MealEntry{entry(ike, "Lunch", today)}},
	}
}

func TestFilterAllergenExclusionRemovesExactlyTaggedItems(t *testing.T) {
	p, now := setup(t)
	foods := sampleFoods()

	items := p.Filter(foods, nil, Query{ExcludeAllergens: tags.ParseList("Peanuts")}, now)

	assert.Equal(t, []string{"Garden Salad", "Pancakes", "Bubble Tea", "Peanut-free Cookie"}, names(items))
	for _, it := range items {
		assert.False(t, it.Food.AllergenSet().Has(tags.Peanuts))
	}
	for _, f := range foods {
		if !f.AllergenSet().Has(tags.Peanuts) {
			assert.Contains(t, names(items), f.Name)
		}
	}
}

func TestFilterSearchIsCaseInsensitive(t *testing.T) {
	p, now := setup(t)

	items := p.Filter(sampleFoods(), nil, Query{Search: "PAN"}, now)

	assert.Equal(t, []string{"Pancakes"}, names(items))
}

func TestFilterPreferences(t *testing.T) {
	p, now := setup(t)

	items := p.Filter(sampleFoods(), nil, Query{Preferences: tags.ParseWords("vegan")}, now)
	assert.Equal(t, []string{"Garden Salad"}, names(items))

	items = p.Filter(sampleFoods(), nil, Query{Preferences: tags.ParseWords("vegetarian")}, now)
	assert.Len(t, items, 4)
}

func TestFilterHallAndMeal(t *testing.T) {
	p, now := setup(t)

	items := p.Filter(sampleFoods(), nil, Query{DiningHall: ike, MealType: "lunch"}, now)
	assert.Equal(t, []string{"Pad Thai", "Peanut-free Cookie"}, names(items))

	items = p.Filter(sampleFoods(), nil, Query{MealType: AlaCarte}, now)
	assert.Equal(t, []string{"Bubble Tea"}, names(items))

	items = p.Filter(sampleFoods(), nil, Query{DiningHall: isr, MealType: "Lunch"}, now)
	assert.Empty(t, items)
}

func TestFilterServing(t *testing.T) {
	p, now := setup(t)

	items := p.Filter(sampleFoods(), nil, Query{Serving: "now"}, now)
	assert.Equal(t, []string{"Pad Thai", "Peanut-free Cookie"}, names(items))

	items = p.Filter(sampleFoods(), nil, Query{Serving: "LATER"}, now)
	assert.Equal(t, []string{"Garden Salad"}, names(items))

	items = p.Filter(sampleFoods(), nil, Query{Serving: tomorrow}, now)
	assert.Equal(t, []string{"Bubble Tea"}, names(items))
}

func TestFilterLaterExcludesItemsAlsoServedNow(t *testing.T) {
	p, now := setup(t)
	foods := []models.FoodItem{{
		Name:        "Fries",
		MealEntries: []models.MealEntry{entry(ike, "Lunch", today), entry(ike, "Dinner", today)},
	}}

	assert.Empty(t, p.Filter(foods, nil, Query{Serving: ServingLater}, now))
	assert.Len(t, p.Filter(foods, nil, Query{Serving: ServingNow}, now), 1)
}

func TestFilterMinRating(t *testing.T) {
	p, now := setup(t)
	foods := sampleFoods()
	ratings := map[uuid.UUID]RatingSummary{
		foods[0].ID: {Count: 2, Average: 75},
		foods[1].ID: {Count: 1, Average: 50},
	}
	min := 60.0

	items := p.Filter(foods, ratings, Query{MinRating: &min}, now)

	require.Len(t, items, 1)
	assert.Equal(t, "Pad Thai", items[0].Food.Name)
	assert.Equal(t, 75.0, items[0].Rating.Average)
}

func TestSortMultiField(t *testing.T) {
	foods := []models.FoodItem{
		{Name: "a", Calories: 100, Protein: 5},
		{Name: "b", Calories: 200, Protein: 5},
		{Name: "c", Calories: 100, Protein: 9},
		{Name: "d", Calories: 300, Protein: 1},
	}
	items := make([]Item, len(foods))
	for i := range foods {
		items[i] = Item{Food: &foods[i]}
	}

	Sort(items, []SortField{{Field: "protein", Order: "desc"}, {Field: "calories", Order: "asc"}})

	assert.Equal(t, []string{"c", "a", "b", "d"}, names(items))
}

func TestSortIsStable(t *testing.T) {
	foods := []models.FoodItem{{Name: "x", Sodium: 1}, {Name: "y", Sodium: 1}, {Name: "z", Sodium: 0}}
	items := []Item{{Food: &foods[0]}, {Food: &foods[1]}, {Food: &foods[2]}}

	Sort(items, []SortField{{Field: "sodium", Order: OrderDesc}})

	assert.Equal(t, []string{"x", "y", "z"}, names(items))
}

func TestSortRatingPutsUnratedLast(t *testing.T) {
	foods := []models.FoodItem{{Name: "none"}, {Name: "low"}, {Name: "high"}}
	items := []Item{
		{Food: &foods[0]},
		{Food: &foods[1], Rating: &RatingSummary{Count: 3, Average: 20}},
		{Food: &foods[2], Rating: &RatingSummary{Count: 1, Average: 100}},
	}

	Sort(items, []SortField{{Field: RatingField, Order: OrderAsc}})
	assert.Equal(t, []string{"low", "high", "none"}, names(items))

	Sort(items, []SortField{{Field: RatingField, Order: OrderDesc}})
	assert.Equal(t, []string{"high", "low", "none"}, names(items))
}

func TestParseSortFields(t *testing.T) {
	fields := ParseSortFields(`[{"field":"calories","order":"DESC"},{"field":"bogus","order":"asc"},{"field":"protein"}]`)
	assert.Equal(t, []SortField{{Field: "calories", Order: OrderDesc}, {Field: "protein", Order: OrderAsc}}, fields)

	assert.Nil(t, ParseSortFields(`{"field":`))
	assert.Nil(t, ParseSortFields(""))
	assert.Empty(t, ParseSortFields(`[{"field":"bogus"}]`))
}

func TestMalformedSortKeepsInsertionOrder(t *testing.T) {
	p, now := setup(t)

	res := p.Run(sampleFoods(), nil, Query{Sort: ParseSortFields("not json"), PageSize: 50}, now)

	assert.Equal(t, []string{"Pad Thai", "Garden Salad", "Pancakes", "Bubble Tea", "Peanut-free Cookie"}, names(res.Items))
}

func TestPaginationConcatenatesToSortedList(t *testing.T) {
	p, now := setup(t)
	var foods []models.FoodItem
	for i := 0; i < 47; i++ {
		foods = append(foods, models.FoodItem{
			ID:       uuid.New(),
			Name:     fmt.Sprintf("food-%02d", i),
			Calories: float64((i * 37) % 11),
		})
	}
	sortFields := []SortField{{Field: "calories", Order: OrderDesc}}
	full := p.Run(foods, nil, Query{Sort: sortFields, PageSize: MaxPageSize}, now)
	require.Len(t, full.Items, 47)

	for _, size := range []int{1, 3, 10, 46, 47, 100} {
		var all []string
		total := 0
		first := p.Run(foods, nil, Query{Sort: sortFields, Page: 1, PageSize: size}, now)
		for page := 1; page <= first.TotalPages; page++ {
			res := p.Run(foods, nil, Query{Sort: sortFields, Page: page, PageSize: size}, now)
			assert.Equal(t, page, res.CurrentPage)
			assert.Equal(t, 47, res.TotalItems)
			total += len(res.Items)
			all = append(all, names(res.Items)...)
		}
		assert.Equal(t, first.TotalItems, total, "page size %d", size)
		assert.Equal(t, names(full.Items), all, "page size %d", size)
	}
}

func TestPaginateBounds(t *testing.T) {
	foods := make([]models.FoodItem, 25)
	items := make([]Item, len(foods))
	for i := range foods {
		items[i] = Item{Food: &foods[i]}
	}

	page, pages := Paginate(items, 0, 0)
	assert.Len(t, page, DefaultPageSize)
	assert.Equal(t, 3, pages)

	page, _ = Paginate(items, 3, 10)
	assert.Len(t, page, 5)

	page, _ = Paginate(items, 9, 10)
	assert.Empty(t, page)

	_, pages = Paginate(nil, 1, 10)
	assert.Equal(t, 0, pages)
}

func TestAvailableDatesAreChronological(t *testing.T) {
	p, _ := setup(t)
	foods := []models.FoodItem{
		{MealEntries: []models.MealEntry{entry(ike, "Lunch", tomorrow), entry(ike, "Lunch", "someday")}},
		{MealEntries: []models.MealEntry{entry(ike, "Lunch", "Saturday, September 28, 2024"), entry(ike, "Dinner", tomorrow)}},
		{MealEntries: []models.MealEntry{entry(ike, "Lunch", today)}},
	}

	dates := p.AvailableDates(foods)

	assert.Equal(t, []string{"Saturday, September 28, 2024", today, tomorrow, "someday"}, dates)
}
