package event

// Record is an output-shaped event: every field is already localized,
// cleaned, and defaulted, ready for export.
type Record struct {
	Title       string `json:"title"`
	Organizer   string `json:"organizer"`
	Start       string `json:"start"` // localized, "2006-01-02 15:04"
	City        string `json:"city"`
	Venue       string `json:"venue"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Fee         string `json:"fee"`
}

// Dedup removes records that duplicate both title and localized start time,
// keeping the first occurrence and preserving the relative order of the rest.
// Applying it twice yields the same result as once.
func Dedup(records []Record) []Record {
	type key struct {
		title string
		start string
	}

	seen := make(map[key]bool, len(records))
	unique := make([]Record, 0, len(records))
	for _, rec := range records {
		k := key{rec.Title, rec.Start}
		if seen[k] {
			continue
		}
		seen[k] = true
		unique = append(unique, rec)
	}
	return unique
}
