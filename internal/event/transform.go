package event

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const startFormat = "2006-01-02 15:04"

// ParseStartUTC parses an ISO-8601 UTC start timestamp. A literal "Z" suffix
// is tolerated as the UTC offset. An unparseable timestamp is an error the
// pipeline surfaces rather than swallows.
func ParseStartUTC(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("empty start timestamp")
	}

	t, err := time.Parse(time.RFC3339, value)
	if err == nil {
		return t.UTC(), nil
	}

	// Some responses omit the offset entirely; treat those as UTC.
	t, err = time.Parse("2006-01-02T15:04:05", value)
	if err == nil {
		return t.UTC(), nil
	}

	return time.Time{}, fmt.Errorf("parsing start timestamp %q: %w", value, err)
}

// FormatLocal converts a UTC start time into the zone and renders it as
// "YYYY-MM-DD HH:MM".
func FormatLocal(utc time.Time, zone *time.Location) string {
	return utc.In(zone).Format(startFormat)
}

// CleanDescription strips all markup tags from raw description HTML, decodes
// entities, collapses runs of whitespace (newlines and non-breaking spaces
// included) to single spaces, and trims.
func CleanDescription(raw string) string {
	if raw == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		// Parse failure leaves the raw text; whitespace is still collapsed.
		return strings.Join(strings.Fields(raw), " ")
	}

	return strings.Join(strings.Fields(doc.Text()), " ")
}

// Truncate shortens s to at most limit characters, appending "..." when
// anything was cut.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
