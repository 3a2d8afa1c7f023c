package catalog

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/illineats/backend/internal/models"
	"github.com/illineats/backend/internal/schedule"
)

// RatingSummary aggregates a food's reviews on the 0-100 scale.
type RatingSummary struct {
	Count   int     `json:"count"`
	Average float64 `json:"averageRating"`
}

// Item is a food passing through the pipeline.
type Item struct {
	Food   *models.FoodItem
	Rating *RatingSummary
}

// Result is one page of filtered, sorted items.
type Result struct {
	Items          []Item
	TotalItems     int
	TotalPages     int
	CurrentPage    int
	AvailableDates []string
}

// Pipeline runs browse queries against an in-memory food list.
type Pipeline struct {
	schedule *schedule.Schedule
}

// NewPipeline creates a pipeline resolving serving status with s.
func NewPipeline(s *schedule.Schedule) *Pipeline {
	return &Pipeline{schedule: s}
}

// Run filters, sorts and paginates foods.
func (p *Pipeline) Run(foods []models.FoodItem, ratings map[uuid.UUID]RatingSummary, q Query, now time.Time) Result {
	items := p.Filter(foods, ratings, q, now)
	Sort(items, q.Sort)
	page, size := normalizePage(q.Page, q.PageSize)
	paged, totalPages := Paginate(items, page, size)
	return Result{
		Items:          paged,
		TotalItems:     len(items),
		TotalPages:     totalPages,
		CurrentPage:    page,
		AvailableDates: p.AvailableDates(foods),
	}
}

// Filter returns the foods matching every criterion of q, in input order.
func (p *Pipeline) Filter(foods []models.FoodItem, ratings map[uuid.UUID]RatingSummary, q Query, now time.Time) []Item {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	items := make([]Item, 0, len(foods))
	for i := range foods {
		f := &foods[i]
		if search != "" && !strings.Contains(strings.ToLower(f.Name), search) {
			continue
		}
		if q.ExcludeAllergens.Len() > 0 && f.AllergenSet().HasAny(q.ExcludeAllergens) {
			continue
		}
		if q.Preferences.Len() > 0 && f.PreferenceSet().Intersect(q.Preferences) != q.Preferences.Len() {
			continue
		}
		entries := matchingEntries(f.MealEntries, q)
		if entries == nil {
			continue
		}
		if !p.servingMatches(entries, q.Serving, now) {
			continue
		}

		var rating *RatingSummary
		if r, ok := ratings[f.ID]; ok {
			rating = &r
		}
		if q.MinRating != nil && (rating == nil || rating.Count == 0 || rating.Average < *q.MinRating) {
			continue
		}
		items = append(items, Item{Food: f, Rating: rating})
	}
	return items
}

// matchingEntries returns the entries satisfying the hall, meal and date
// filters together, or nil when none does. Without those filters every
// entry matches, and a food without entries yields an empty non-nil slice.
func matchingEntries(entries []models.MealEntry, q Query) []models.MealEntry {
	if q.DiningHall == "" && q.MealType == "" && q.DateServed == "" {
		if entries == nil {
			return []models.MealEntry{}
		}
		return entries
	}
	var out []models.MealEntry
	for _, e := range entries {
		if q.DiningHall != "" && !strings.EqualFold(strings.TrimSpace(q.DiningHall), e.DiningHall) {
			continue
		}
		if q.MealType != "" && !mealTypeMatches(q.MealType, e.MealType) {
			continue
		}
		if q.DateServed != "" && strings.TrimSpace(q.DateServed) != e.DateServed {
			continue
		}
		out = append(out, e)
	}
	return out
}

func (p *Pipeline) servingMatches(entries []models.MealEntry, serving string, now time.Time) bool {
	serving = strings.TrimSpace(serving)
	switch strings.ToLower(serving) {
	case "":
		return true
	case ServingNow:
		for _, e := range entries {
			if p.schedule.Resolve(e.DiningHall, e.MealType, e.DateServed, now) == schedule.StatusNow {
				return true
			}
		}
		return false
	case ServingLater:
		later := false
		for _, e := range entries {
			switch p.schedule.Resolve(e.DiningHall, e.MealType, e.DateServed, now) {
			case schedule.StatusNow:
				return false
			case schedule.StatusLater:
				later = true
			}
		}
		return later
	}
	for _, e := range entries {
		if e.DateServed == serving {
			return true
		}
	}
	return false
}

// AvailableDates lists the distinct dateServed values, oldest first.
// Values that do not parse sort after the rest.
func (p *Pipeline) AvailableDates(foods []models.FoodItem) []string {
	seen := make(map[string]bool)
	var dates []string
	for _, f := range foods {
		for _, e := range f.MealEntries {
			if e.DateServed == "" || seen[e.DateServed] {
				continue
			}
			seen[e.DateServed] = true
			dates = append(dates, e.DateServed)
		}
	}
	return p.SortDates(dates)
}

// SortDates orders dateServed values chronologically in place and returns them.
func (p *Pipeline) SortDates(dates []string) []string {
	parsed := make(map[string]time.Time, len(dates))
	for _, d := range dates {
		if t, err := p.schedule.ParseDate(d); err == nil {
			parsed[d] = t
		}
	}
	sort.Slice(dates, func(i, j int) bool {
		ti, iok := parsed[dates[i]]
		tj, jok := parsed[dates[j]]
		switch {
		case iok && jok:
			if !ti.Equal(tj) {
				return ti.Before(tj)
			}
			return dates[i] < dates[j]
		case iok != jok:
			return iok
		}
		return dates[i] < dates[j]
	})
	if dates == nil {
		return []string{}
	}
	return dates
}

func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return page, size
}

// Paginate returns the 1-indexed page of items and the page count.
func Paginate(items []Item, page, size int) ([]Item, int) {
	page, size = normalizePage(page, size)
	totalPages := (len(items) + size - 1) / size
	start := (page - 1) * size
	if start >= len(items) {
		return []Item{}, totalPages
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], totalPages
}
