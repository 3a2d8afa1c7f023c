package catalog

import (
	"sort"
	"strings"

	"github.com/illineats/backend/internal/models"
)

// RatingField sorts by average review score; unreviewed items sort last.
const RatingField = "rating"

type sortKey struct {
	num     float64
	str     string
	missing bool
}

var nutrientFields = map[string]func(f *models.FoodItem) float64{
	"calories":           func(f *models.FoodItem) float64 { return f.Calories },
	"caloriesFat":        func(f *models.FoodItem) float64 { return f.CaloriesFat },
	"totalFat":           func(f *models.FoodItem) float64 { return f.TotalFat },
	"saturatedFat":       func(f *models.FoodItem) float64 { return f.SaturatedFat },
	"transFat":           func(f *models.FoodItem) float64 { return f.TransFat },
	"cholesterol":        func(f *models.FoodItem) float64 { return f.Cholesterol },
	"sodium":             func(f *models.FoodItem) float64 { return f.Sodium },
	"totalCarbohydrates": func(f *models.FoodItem) float64 { return f.TotalCarbohydrates },
	"fiber":              func(f *models.FoodItem) float64 { return f.Fiber },
	"sugars":             func(f *models.FoodItem) float64 { return f.Sugars },
	"protein":            func(f *models.FoodItem) float64 { return f.Protein },
	"calciumDV":          func(f *models.FoodItem) float64 { return f.CalciumDV },
	"ironDV":             func(f *models.FoodItem) float64 { return f.IronDV },
}

// SortableField reports whether name can be used as a sort key.
func SortableField(name string) bool {
	if name == RatingField || name == "name" {
		return true
	}
	_, ok := nutrientFields[name]
	return ok
}

func keyOf(it Item, field string) sortKey {
	switch field {
	case RatingField:
		if it.Rating == nil || it.Rating.Count == 0 {
			return sortKey{missing: true}
		}
		return sortKey{num: it.Rating.Average}
	case "name":
		return sortKey{str: strings.ToLower(it.Food.Name)}
	}
	return sortKey{num: nutrientFields[field](it.Food)}
}

// compare returns <0, 0 or >0. Missing keys come after present ones in either order.
func compare(a, b sortKey, desc bool) int {
	switch {
	case a.missing && b.missing:
		return 0
	case a.missing:
		return 1
	case b.missing:
		return -1
	}
	c := 0
	switch {
	case a.str != b.str:
		c = strings.Compare(a.str, b.str)
	case a.num < b.num:
		c = -1
	case a.num > b.num:
		c = 1
	}
	if desc {
		c = -c
	}
	return c
}

// Sort orders items lexicographically by fields. Equal items keep their order.
func Sort(items []Item, fields []SortField) {
	if len(fields) == 0 {
		return
	}
	sort.SliceStable(items, func(i, j int) bool {
		for _, f := range fields {
			c := compare(keyOf(items[i], f.Field), keyOf(items[j], f.Field), f.Order == OrderDesc)
			if c != 0 {
				return c < 0
			}
		}
		return false
	})
}
