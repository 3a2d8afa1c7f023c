// Package schedule holds the dining hall serving windows and resolves whether a
// meal entry is being served now, later today, already closed, or not today.
package schedule

import (
	"sort"
	"strings"
	"time"
)

// DateLayout is the format of a meal entry's dateServed field.
const DateLayout = "Monday, January 2, 2006"

// Status is the serving state of a meal entry at a point in time.
type Status string

const (
	StatusNow       Status = "NOW"
	StatusLater     Status = "LATER"
	StatusClosed    Status = "CLOSED"
	StatusNotServed Status = "NOT_SERVED"
)

// Meal is a named serving window at a hall.
type Meal struct {
	Name   string `json:"mealType"`
	Window Window `json:"window"`
}

// Hall is a dining hall and its meals ordered by start time.
type Hall struct {
	Name  string `json:"diningHall"`
	Meals []Meal `json:"meals"`
}

// Schedule maps (dining hall, meal type) to serving windows in a reference time zone.
type Schedule struct {
	version string
	loc     *time.Location
	buffer  time.Duration
	halls   []Hall
	index   map[string]Window
}

// New builds a schedule. Halls are sorted by name and meals by start time.
func New(version string, loc *time.Location, buffer time.Duration, halls []Hall) *Schedule {
	s := &Schedule{
		version: version,
		loc:     loc,
		buffer:  buffer,
		index:   make(map[string]Window),
	}
	for _, h := range halls {
		meals := append([]Meal(nil), h.Meals...)
		sort.SliceStable(meals, func(i, j int) bool {
			if meals[i].Window.Start != meals[j].Window.Start {
				return meals[i].Window.Start < meals[j].Window.Start
			}
			return meals[i].Name < meals[j].Name
		})
		for _, m := range meals {
			s.index[key(h.Name, m.Name)] = m.Window
		}
		s.halls = append(s.halls, Hall{Name: h.Name, Meals: meals})
	}
	sort.Slice(s.halls, func(i, j int) bool { return s.halls[i].Name < s.halls[j].Name })
	return s
}

func key(hall, meal string) string {
	return strings.ToLower(strings.TrimSpace(hall)) + "\x00" + strings.ToLower(strings.TrimSpace(meal))
}

// Version identifies the schedule data revision.
func (s *Schedule) Version() string { return s.version }

// Location is the reference time zone.
func (s *Schedule) Location() *time.Location { return s.loc }

// Buffer is the tolerance applied to both edges of every window.
func (s *Schedule) Buffer() time.Duration { return s.buffer }

// Halls returns every hall in name order.
func (s *Schedule) Halls() []Hall { return s.halls }

// Hall returns one hall by case-insensitive name.
func (s *Schedule) Hall(name string) (Hall, bool) {
	for _, h := range s.halls {
		if strings.EqualFold(h.Name, strings.TrimSpace(name)) {
			return h, true
		}
	}
	return Hall{}, false
}

// Lookup returns the window for a hall and meal type.
func (s *Schedule) Lookup(hall, meal string) (Window, bool) {
	w, ok := s.index[key(hall, meal)]
	return w, ok
}

// FormatDate renders t's calendar day in the reference zone using DateLayout.
func (s *Schedule) FormatDate(t time.Time) string {
	return t.In(s.loc).Format(DateLayout)
}

// ParseDate parses a dateServed value as midnight in the reference zone.
func (s *Schedule) ParseDate(dateServed string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(dateServed), s.loc)
}

// Today is now's dateServed value.
func (s *Schedule) Today(now time.Time) string {
	return s.FormatDate(now)
}

// Tomorrow is the dateServed value of the day after now.
func (s *Schedule) Tomorrow(now time.Time) string {
	local := now.In(s.loc)
	y, m, d := local.Date()
	return time.Date(y, m, d+1, 12, 0, 0, 0, s.loc).Format(DateLayout)
}

// Resolve reports the serving state of a meal entry at now. Entries dated other
// than today, and halls or meals missing from the schedule, are NOT_SERVED.
func (s *Schedule) Resolve(hall, meal, dateServed string, now time.Time) Status {
	local := now.In(s.loc)
	if strings.TrimSpace(dateServed) != local.Format(DateLayout) {
		return StatusNotServed
	}
	w, ok := s.Lookup(hall, meal)
	if !ok {
		return StatusNotServed
	}
	return w.Classify(local, s.buffer)
}

// MealStatus is a meal with its window and current state.
type MealStatus struct {
	MealType string `json:"mealType"`
	Window   string `json:"window"`
	Status   Status `json:"status"`
}

// HallStatus classifies every meal of a hall against today's windows.
func (s *Schedule) HallStatus(hall string, now time.Time) ([]MealStatus, bool) {
	h, ok := s.Hall(hall)
	if !ok {
		return nil, false
	}
	local := now.In(s.loc)
	out := make([]MealStatus, 0, len(h.Meals))
	for _, m := range h.Meals {
		out = append(out, MealStatus{
			MealType: m.Name,
			Window:   m.Window.String(),
			Status:   m.Window.Classify(local, s.buffer),
		})
	}
	return out, true
}
