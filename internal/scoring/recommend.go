package scoring

import (
	"sort"
	"time"

	"github.com/illineats/backend/internal/models"
	"github.com/illineats/backend/internal/schedule"
)

// DefaultLimit is the number of recommendations returned.
const DefaultLimit = 20

// Ranked is a food with its score.
type Ranked struct {
	Food  *models.FoodItem
	Score float64
}

// Recommender builds the candidate pool from served foods and ranks it.
type Recommender struct {
	schedule *schedule.Schedule
	scorer   *Scorer
	limit    int
}

// NewRecommender creates a recommender over a schedule.
func NewRecommender(s *schedule.Schedule, scorer *Scorer) *Recommender {
	if scorer == nil {
		scorer = NewScorer()
	}
	return &Recommender{schedule: s, scorer: scorer, limit: DefaultLimit}
}

// Limit returns the maximum number of results.
func (r *Recommender) Limit() int { return r.limit }

// Score rates a single food for p. Only entries dated today or tomorrow
// count toward the location sub-score.
func (r *Recommender) Score(f *models.FoodItem, p Profile, now time.Time) float64 {
	days := []string{r.schedule.Today(now), r.schedule.Tomorrow(now)}
	return r.scorer.Score(withEntriesOn(f, days), p)
}

// Pool returns the eligible foods served today that are NOW or LATER at some
// entry. When fewer than the limit qualify, eligible foods served tomorrow are
// appended. Input order is preserved.
func (r *Recommender) Pool(foods []models.FoodItem, p Profile, now time.Time) []*models.FoodItem {
	today := r.schedule.Today(now)
	tomorrow := r.schedule.Tomorrow(now)

	seen := make(map[int]bool)
	var pool []*models.FoodItem
	for i := range foods {
		f := &foods[i]
		if !Eligible(f, p) || !r.upcomingToday(f, today, now) {
			continue
		}
		seen[i] = true
		pool = append(pool, f)
	}
	if len(pool) >= r.limit {
		return pool
	}
	for i := range foods {
		f := &foods[i]
		if seen[i] || !Eligible(f, p) || !servedOn(f, tomorrow) {
			continue
		}
		pool = append(pool, f)
	}
	return pool
}

// Recommend ranks the pool by score, highest first, keeping pool order on ties.
func (r *Recommender) Recommend(foods []models.FoodItem, p Profile, now time.Time) []Ranked {
	pool := r.Pool(foods, p, now)
	ranked := make([]Ranked, len(pool))
	days := []string{r.schedule.Today(now), r.schedule.Tomorrow(now)}
	for i, f := range pool {
		ranked[i] = Ranked{Food: f, Score: r.scorer.Score(withEntriesOn(f, days), p)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if len(ranked) > r.limit {
		ranked = ranked[:r.limit]
	}
	return ranked
}

func (r *Recommender) upcomingToday(f *models.FoodItem, today string, now time.Time) bool {
	for _, e := range f.MealEntries {
		if e.DateServed != today {
			continue
		}
		switch r.schedule.Resolve(e.DiningHall, e.MealType, e.DateServed, now) {
		case schedule.StatusNow, schedule.StatusLater:
			return true
		}
	}
	return false
}

// withEntriesOn returns a shallow copy of f keeping only the entries served on days.
func withEntriesOn(f *models.FoodItem, days []string) *models.FoodItem {
	scoped := *f
	scoped.MealEntries = make([]models.MealEntry, 0, len(f.MealEntries))
	for _, e := range f.MealEntries {
		for _, d := range days {
			if e.DateServed == d {
				scoped.MealEntries = append(scoped.MealEntries, e)
				break
			}
		}
	}
	return &scoped
}

func servedOn(f *models.FoodItem, date string) bool {
	for _, e := range f.MealEntries {
		if e.DateServed == date {
			return true
		}
	}
	return false
}
