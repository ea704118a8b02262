package event

import "time"

// Window is the acceptance window for event start times, captured once at
// run start so the window does not drift during a long crawl.
type Window struct {
	From time.Time
	To   time.Time
}

// NewWindow builds an inclusive [start, start+days] window.
func NewWindow(start time.Time, days int) Window {
	return Window{
		From: start,
		To:   start.AddDate(0, 0, days),
	}
}

// Contains reports whether t falls inside the window, bounds included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && !t.After(w.To)
}

// CityMatches reports whether a venue city equals the target city name.
// The comparison is deliberately exact: case-sensitive, no normalization.
// Alternate spellings and diacritics will not match; see DESIGN.md.
func CityMatches(venueCity, targetCity string) bool {
	return venueCity == targetCity
}
