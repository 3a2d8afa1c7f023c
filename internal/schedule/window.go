package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Clock is a wall-clock time of day in minutes after midnight.
type Clock int

// Hour returns the hour component.
func (c Clock) Hour() int { return int(c) / 60 }

// Minute returns the minute component.
func (c Clock) Minute() int { return int(c) % 60 }

// String renders the clock the way dining hall signage does, e.g. "7:00AM".
func (c Clock) String() string {
	h, m := c.Hour(), c.Minute()
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	h %= 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d%s", h, m, suffix)
}

// ParseClock accepts 12-hour ("7:00AM", "7 pm", "12:30 PM") and 24-hour ("13:30") forms.
func ParseClock(raw string) (Clock, error) {
	s := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(raw), " ", ""))
	if s == "" {
		return 0, fmt.Errorf("empty clock value")
	}

	meridiem := ""
	if strings.HasSuffix(s, "AM") || strings.HasSuffix(s, "PM") {
		meridiem = s[len(s)-2:]
		s = s[:len(s)-2]
	}

	hourPart, minutePart, hasMinutes := strings.Cut(s, ":")
	hour, err := strconv.Atoi(hourPart)
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q", raw)
	}
	minute := 0
	if hasMinutes {
		if len(minutePart) != 2 {
			return 0, fmt.Errorf("invalid minutes in %q", raw)
		}
		if minute, err = strconv.Atoi(minutePart); err != nil || minute < 0 || minute > 59 {
			return 0, fmt.Errorf("invalid minutes in %q", raw)
		}
	}

	switch meridiem {
	case "":
		if hour < 0 || hour > 23 {
			return 0, fmt.Errorf("hour out of range in %q", raw)
		}
	default:
		if hour < 1 || hour > 12 {
			return 0, fmt.Errorf("hour out of range in %q", raw)
		}
		if hour == 12 {
			hour = 0
		}
		if meridiem == "PM" {
			hour += 12
		}
	}

	return Clock(hour*60 + minute), nil
}

// Window is the serving period of one meal at one dining hall.
type Window struct {
	Start Clock
	End   Clock
}

// ParseWindow parses "7:00AM - 10:00AM" or "10:30 - 13:30".
func ParseWindow(raw string) (Window, error) {
	left, right, ok := strings.Cut(raw, "-")
	if !ok {
		return Window{}, fmt.Errorf("serving window %q has no separator", raw)
	}
	start, err := ParseClock(left)
	if err != nil {
		return Window{}, fmt.Errorf("invalid window start: %w", err)
	}
	end, err := ParseClock(right)
	if err != nil {
		return Window{}, fmt.Errorf("invalid window end: %w", err)
	}
	return Window{Start: start, End: end}, nil
}

// CrossesMidnight reports whether the window ends on the following day.
func (w Window) CrossesMidnight() bool {
	return w.End < w.Start
}

func (w Window) String() string {
	return w.Start.String() + " - " + w.End.String()
}

// MarshalJSON renders the window in its display form.
func (w Window) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(w.String())), nil
}

// bounds anchors the window on the calendar day of day, in day's location.
func (w Window) bounds(day time.Time) (time.Time, time.Time) {
	y, m, d := day.Date()
	loc := day.Location()
	start := time.Date(y, m, d, w.Start.Hour(), w.Start.Minute(), 0, 0, loc)
	endDay := d
	if w.CrossesMidnight() {
		endDay++
	}
	end := time.Date(y, m, endDay, w.End.Hour(), w.End.Minute(), 0, 0, loc)
	return start, end
}

// Classify places now relative to the window anchored on now's calendar day.
// Both edges are widened by buffer and are inclusive.
func (w Window) Classify(now time.Time, buffer time.Duration) Status {
	start, end := w.bounds(now)
	if within(now, start.Add(-buffer), end.Add(buffer)) {
		return StatusNow
	}
	if w.CrossesMidnight() {
		// the tail of the window that opened yesterday evening
		prevStart, prevEnd := w.bounds(now.AddDate(0, 0, -1))
		if within(now, prevStart.Add(-buffer), prevEnd.Add(buffer)) {
			return StatusNow
		}
	}
	if now.Before(end) {
		return StatusLater
	}
	return StatusClosed
}

func within(t, lo, hi time.Time) bool {
	return !t.Before(lo) && !t.After(hi)
}
