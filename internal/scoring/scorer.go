// Package scoring ranks food items for a diner by nutritional fit with their
// goal, overlap with their dietary preferences and proximity to their halls.
package scoring

import (
	"math"
	"strings"

	"github.com/illineats/backend/internal/models"
	"github.com/illineats/backend/internal/tags"
)

// Weights combine the three sub-scores into the final score.
type Weights struct {
	Nutrition  float64
	Preference float64
	Location   float64
}

// DefaultWeights are the production weights.
var DefaultWeights = Weights{Nutrition: 0.5, Preference: 0.3, Location: 0.2}

// DefaultNutritionScore is used when the user has no recognised goal.
const DefaultNutritionScore = 0.5

// Goal thresholds.
const (
	bulkCalories      = 500.0
	bulkProtein       = 30.0
	bulkCarbs         = 75.0
	leanCalorieFloor  = 400.0
	leanCalorieCeil   = 800.0
	leanProtein       = 25.0
	fiberTarget       = 8.0
	sugarLimit        = 25.0
	mineralTarget     = 40.0
	saturatedFatLimit = 10.0
)

// Profile is the part of a user that drives ranking.
type Profile struct {
	Goal        string
	Allergies   tags.Set
	Preferences tags.Set
	Locations   []string
}

// ProfileFromUser parses the free-text fields of a user.
func ProfileFromUser(u *models.User) Profile {
	return Profile{
		Goal:        u.Goal,
		Allergies:   u.AllergySet(),
		Preferences: u.PreferenceSet(),
		Locations:   u.LocationList(),
	}
}

// Scorer computes weighted scores.
type Scorer struct {
	Weights Weights
}

// NewScorer creates a scorer with the default weights.
func NewScorer() *Scorer {
	return &Scorer{Weights: DefaultWeights}
}

// Score is the weighted sum of the three sub-scores, in [0,1].
func (s *Scorer) Score(f *models.FoodItem, p Profile) float64 {
	return s.Weights.Nutrition*NutritionScore(p.Goal, f) +
		s.Weights.Preference*PreferenceScore(p.Preferences, f) +
		s.Weights.Location*LocationScore(p.Locations, f)
}

// Eligible applies the hard filters: no allergen the user listed, and at least
// one of the user's preferences when they listed any.
func Eligible(f *models.FoodItem, p Profile) bool {
	if p.Allergies.Len() > 0 && f.AllergenSet().HasAny(p.Allergies) {
		return false
	}
	if p.Preferences.Len() > 0 && !f.PreferenceSet().HasAny(p.Preferences) {
		return false
	}
	return true
}

// NutritionScore rates how well a food's nutrients serve a goal.
func NutritionScore(goal string, f *models.FoodItem) float64 {
	switch goal {
	case models.GoalBulk:
		return 0.4*ratio(f.Calories, bulkCalories) +
			0.4*ratio(f.Protein, bulkProtein) +
			0.2*ratio(f.TotalCarbohydrates, bulkCarbs)
	case models.GoalLoseWeight:
		return 0.4*leanCalorieScore(f.Calories) +
			0.25*ratio(f.Protein, leanProtein) +
			0.2*ratio(f.Fiber, fiberTarget) +
			0.15*penalty(f.Sugars, sugarLimit)
	case models.GoalEatHealthy:
		return 0.25*ratio(f.Protein, leanProtein) +
			0.25*ratio(f.Fiber, fiberTarget) +
			0.2*ratio(f.CalciumDV+f.IronDV, mineralTarget) +
			0.15*penalty(f.Sugars, sugarLimit) +
			0.15*penalty(f.SaturatedFat, saturatedFatLimit)
	}
	return DefaultNutritionScore
}

// PreferenceScore is the fraction of the user's preferences the food carries.
// An empty preference set scores 0 for every food.
func PreferenceScore(prefs tags.Set, f *models.FoodItem) float64 {
	if prefs.Len() == 0 {
		return 0
	}
	return float64(prefs.Intersect(f.PreferenceSet())) / float64(prefs.Len())
}

// LocationScore is 1 when any hall serving the food matches a preferred
// location, compared case-insensitively as substrings in either direction.
// Entries without a hall never match.
func LocationScore(locations []string, f *models.FoodItem) float64 {
	for _, e := range f.MealEntries {
		hall := strings.ToLower(strings.TrimSpace(e.DiningHall))
		if hall == "" {
			continue
		}
		for _, loc := range locations {
			l := strings.ToLower(strings.TrimSpace(loc))
			if l == "" {
				continue
			}
			if strings.Contains(hall, l) || strings.Contains(l, hall) {
				return 1
			}
		}
	}
	return 0
}

// ratio is v/target capped to [0,1].
func ratio(v, target float64) float64 {
	return clamp(v / target)
}

// penalty is 1 at zero falling linearly to 0 at limit.
func penalty(v, limit float64) float64 {
	return clamp(1 - v/limit)
}

func leanCalorieScore(cal float64) float64 {
	if cal <= leanCalorieFloor {
		return 1
	}
	return clamp(1 - (cal-leanCalorieFloor)/(leanCalorieCeil-leanCalorieFloor))
}

func clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}
