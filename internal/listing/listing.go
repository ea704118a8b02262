package listing

import (
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/leapscan/leap-events/internal/config"
)

const (
	UserAgent = "leap-events-cli/1.0 (github.com/leapscan/leap-events)"
	Timeout   = 30 * time.Second
)

// eventLinkPattern matches listing links of the form /e/<slug>-<id> where id
// is 8 to 12 digits followed by a non-slash, non-quote boundary. The trailing
// group keeps runs of 13+ digits and ids glued to further path segments from
// matching.
var eventLinkPattern = regexp.MustCompile(`/e/[^/\s"']+-(\d{8,12})(?:[^0-9/"']|$)`)

// Scraper fetches paginated listing pages for a search target.
type Scraper struct {
	client  *http.Client
	baseURL string
}

// New creates a Scraper against the public listing host.
func New() *Scraper {
	return NewWithBaseURL(config.ListingHost)
}

// NewWithBaseURL creates a Scraper against an arbitrary host. Used by tests.
func NewWithBaseURL(baseURL string) *Scraper {
	return &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		baseURL: baseURL,
	}
}

// PageURL composes the listing URL for a target and page number.
func (s *Scraper) PageURL(target config.SearchTarget, page int) string {
	return fmt.Sprintf("%s/d/ca--%s/%s/?page=%d", s.baseURL, target.CitySlug, target.KeywordSlug, page)
}

// FetchPage retrieves one listing page and returns the event ids found on it,
// in order of first appearance with within-page duplicates collapsed.
// A non-2xx status is returned as an error; callers treat it as terminal for
// the target, not retryable.
func (s *Scraper) FetchPage(target config.SearchTarget, page int) ([]string, error) {
	req, err := http.NewRequest("GET", s.PageURL(target, page), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading page: %w", err)
	}

	return ExtractIDs(string(body)), nil
}

// ExtractIDs pulls event ids out of raw listing markup. Ids are the 8-12
// digit tails of /e/<slug>-<id> links; anything else numeric is ignored.
// Within-page duplicates collapse to the first occurrence.
func ExtractIDs(markup string) []string {
	matches := eventLinkPattern.FindAllStringSubmatch(markup, -1)

	seen := make(map[string]bool, len(matches))
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		id := m[1]
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}
