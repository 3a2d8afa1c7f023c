// Package catalog filters, sorts and paginates food items for the browse views.
package catalog

import (
	"strings"

	"github.com/goccy/go-json"

	"github.com/illineats/backend/internal/tags"
)

// Page size bounds.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// AlaCarte is the meal type clients filter by for both a la carte feeds.
const AlaCarte = "A la Carte"

var alaCarteFeeds = []string{"A la Carte--APP DISPLAY", "A la Carte--POS Feed"}

// Serving filter values other than a dateServed string.
const (
	ServingNow   = "now"
	ServingLater = "later"
)

// Sort orders.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// SortField is one key of a multi-field sort.
type SortField struct {
	Field string `json:"field"`
	Order string `json:"order"`
}

// Query holds the browse parameters.
type Query struct {
	Page       int
	PageSize   int
	Sort       []SortField
	DiningHall string
	MealType   string
	DateServed string
	Search     string
	// ExcludeAllergens drops items carrying any of these allergens.
	ExcludeAllergens tags.Set
	// Preferences keeps items carrying every one of these preferences.
	Preferences tags.Set
	// Serving is "now", "later" or a dateServed value.
	Serving   string
	MinRating *float64
}

// ParseSortFields decodes a JSON list of {field, order}. A malformed document
// yields no sort keys; entries naming unknown fields are dropped.
func ParseSortFields(raw string) []SortField {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var fields []SortField
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil
	}
	return NormalizeSortFields(fields)
}

// NormalizeSortFields drops unknown fields and defaults the order to ascending.
func NormalizeSortFields(fields []SortField) []SortField {
	out := make([]SortField, 0, len(fields))
	for _, f := range fields {
		if !SortableField(f.Field) {
			continue
		}
		order := strings.ToLower(strings.TrimSpace(f.Order))
		if order != OrderDesc {
			order = OrderAsc
		}
		out = append(out, SortField{Field: f.Field, Order: order})
	}
	return out
}

// mealTypeMatches compares case-insensitively, expanding the a la carte alias.
func mealTypeMatches(want, got string) bool {
	if strings.EqualFold(want, got) {
		return true
	}
	if strings.EqualFold(strings.TrimSpace(want), AlaCarte) {
		for _, feed := range alaCarteFeeds {
			if strings.EqualFold(feed, got) {
				return true
			}
		}
	}
	return false
}

// ExpandMealType lists the stored meal types a client meal type stands for.
func ExpandMealType(meal string) []string {
	meal = strings.TrimSpace(meal)
	if strings.EqualFold(meal, AlaCarte) {
		return append([]string{AlaCarte}, alaCarteFeeds...)
	}
	return []string{meal}
}
