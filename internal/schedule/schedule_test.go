package schedule

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ike = "Ikenberry Dining Center (Ike)"

func chicago(t *testing.T, s *Schedule, y int, mo time.Month, d, h, mi int) time.Time {
	t.Helper()
	return time.Date(y, mo, d, h, mi, 0, 0, s.Location())
}

func TestDefaultSchedule(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "America/Chicago", s.Location().String())
	assert.Equal(t, 15*time.Minute, s.Buffer())
	assert.NotEmpty(t, s.Version())
	assert.Len(t, s.Halls(), 9)

	w, ok := s.Lookup(ike, "Lunch")
	require.True(t, ok)
	assert.Equal(t, "10:30AM - 1:30PM", w.String())

	h, ok := s.Hall("infinitea")
	require.True(t, ok)
	assert.Equal(t, "A la Carte--APP DISPLAY", h.Meals[0].Name)
}

func TestHallMealsOrderedByStart(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)

	h, ok := s.Hall(ike)
	require.True(t, ok)
	var names []string
	for _, m := range h.Meals {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"Breakfast", "Lunch", "Light Lunch", "Dinner"}, names)
}

func TestResolve(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)

	now := chicago(t, s, 2024, time.October, 7, 10, 16)
	today := "Monday, October 7, 2024"
	require.Equal(t, today, s.Today(now))

	assert.Equal(t, StatusNow, s.Resolve(ike, "Lunch", today, now))
	assert.Equal(t, StatusLater, s.Resolve(ike, "Lunch", today, now.Add(-2*time.Minute)))
	assert.Equal(t, StatusClosed, s.Resolve(ike, "Breakfast", today, now))
	assert.Equal(t, StatusLater, s.Resolve(ike, "Dinner", today, now))
}

func TestResolveNotServed(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)
	now := chicago(t, s, 2024, time.October, 7, 12, 0)

	assert.Equal(t, StatusNotServed, s.Resolve(ike, "Lunch", "Tuesday, October 8, 2024", now))
	assert.Equal(t, StatusNotServed, s.Resolve("Nowhere Hall", "Lunch", "Monday, October 7, 2024", now))
	assert.Equal(t, StatusNotServed, s.Resolve(ike, "Brunch", "Monday, October 7, 2024", now))
}

func TestResolveUsesReferenceZone(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)

	// 16:20 UTC is 11:20 in Chicago during daylight time
	now := time.Date(2024, time.October, 7, 16, 20, 0, 0, time.UTC)
	assert.Equal(t, StatusNow, s.Resolve(ike, "Lunch", "Monday, October 7, 2024", now))

	// 03:00 UTC on the 8th is still the 7th in Chicago
	late := time.Date(2024, time.October, 8, 3, 0, 0, 0, time.UTC)
	assert.Equal(t, "Monday, October 7, 2024", s.Today(late))
	assert.Equal(t, "Tuesday, October 8, 2024", s.Tomorrow(late))
}

func TestParse(t *testing.T) {
	s, err := Parse([]byte(`
version: test
timezone: UTC
buffer_minutes: 0
halls:
  Late Night:
    Snack: "22:00 - 2:00"
`))
	require.NoError(t, err)

	now := time.Date(2024, time.March, 1, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, StatusNow, s.Resolve("Late Night", "Snack", "Friday, March 1, 2024", now))
}

func TestParseRejectsInvalidDocuments(t *testing.T) {
	_, err := Parse([]byte("timezone: UTC\nhalls:\n  A:\n    B: \"7:00AM - 8:00AM\"\n"))
	assert.Error(t, err, "missing version")

	_, err = Parse([]byte("version: v\ntimezone: Mars/Olympus\nhalls:\n  A:\n    B: \"7:00AM - 8:00AM\"\n"))
	assert.Error(t, err, "bad timezone")

	_, err = Parse([]byte("version: v\ntimezone: UTC\nhalls:\n  A:\n    B: \"whenever\"\n"))
	assert.Error(t, err, "bad window")
}

func TestLoadMergesOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
version: override
halls:
  Ikenberry Dining Center (Ike):
    Lunch: "11:00AM - 2:00PM"
`), 0o644))

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "override", s.Version())
	w, ok := s.Lookup(ike, "Lunch")
	require.True(t, ok)
	assert.Equal(t, "11:00AM - 2:00PM", w.String())
	_, ok = s.Lookup(ike, "Breakfast")
	assert.True(t, ok)
}

func TestHallStatus(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)

	statuses, ok := s.HallStatus(ike, chicago(t, s, 2024, time.October, 7, 15, 10))
	require.True(t, ok)
	require.Len(t, statuses, 4)
	assert.Equal(t, StatusClosed, statuses[0].Status)
	assert.Equal(t, StatusNow, statuses[2].Status)
	assert.Equal(t, StatusLater, statuses[3].Status)

	_, ok = s.HallStatus("Nowhere", time.Now())
	assert.False(t, ok)
}
