package eventbrite

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/leapscan/leap-events/internal/config"
)

const (
	// ExpandParam names the sub-resources requested alongside each event.
	ExpandParam = "venue,organizer,ticket_availability"

	Timeout = 10 * time.Second
)

// Client is a client for the events detail API.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
	pause      time.Duration
}

// NewClient creates a detail API client with the default host and pacing.
func NewClient(token string) *Client {
	return &Client{
		token:   token,
		baseURL: config.APIHost,
		httpClient: &http.Client{
			Timeout: Timeout,
		},
		pause: config.DefaultPause,
	}
}

// NewClientWithBaseURL creates a client against an arbitrary host. Used by tests.
func NewClientWithBaseURL(token, baseURL string, pause time.Duration) *Client {
	client := NewClient(token)
	client.baseURL = baseURL
	client.pause = pause
	return client
}

// Text is a field carried in both plain and HTML renderings.
type Text struct {
	Text string `json:"text"`
	HTML string `json:"html"`
}

// Start carries an event's start time in several representations; only the
// UTC form is consumed downstream.
type Start struct {
	Timezone string `json:"timezone"`
	Local    string `json:"local"`
	UTC      string `json:"utc"`
}

// Organizer is the expanded organizer sub-resource.
type Organizer struct {
	Name string `json:"name"`
}

// Address is a venue's postal address.
type Address struct {
	City string `json:"city"`
}

// Venue is the expanded venue sub-resource.
type Venue struct {
	Name    string   `json:"name"`
	Address *Address `json:"address"`
}

// TicketPrice is a display-formatted price.
type TicketPrice struct {
	Display string `json:"display"`
}

// TicketAvailability is the expanded ticket availability sub-resource.
type TicketAvailability struct {
	MinimumTicketPrice *TicketPrice `json:"minimum_ticket_price"`
}

// Event is the raw detail API response for one event id. Expanded
// sub-resources are optional and may be absent entirely.
type Event struct {
	Name               *Text               `json:"name"`
	Description        *Text               `json:"description"`
	Start              *Start              `json:"start"`
	URL                string              `json:"url"`
	Organizer          *Organizer          `json:"organizer"`
	Venue              *Venue              `json:"venue"`
	TicketAvailability *TicketAvailability `json:"ticket_availability"`
}

// GetEvent fetches one event's detail with venue, organizer, and ticket
// availability expanded. A non-2xx status is returned as an error; callers
// skip the id without retrying. The client's pacing pause is applied only
// after a successfully parsed response, matching the crawl's established
// throttling behavior.
func (c *Client) GetEvent(eventID string) (*Event, error) {
	reqURL := fmt.Sprintf("%s/v3/events/%s/?expand=%s", c.baseURL, eventID, ExpandParam)

	req, err := http.NewRequest("GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var evt Event
	if err := json.NewDecoder(resp.Body).Decode(&evt); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	if c.pause > 0 {
		time.Sleep(c.pause)
	}

	return &evt, nil
}

// OrganizerName returns the organizer display name, or "" when the
// sub-resource is absent.
func (e *Event) OrganizerName() string {
	if e.Organizer == nil {
		return ""
	}
	return e.Organizer.Name
}

// VenueName returns the venue display name, or "" when absent.
func (e *Event) VenueName() string {
	if e.Venue == nil {
		return ""
	}
	return e.Venue.Name
}

// VenueCity returns the venue's city, or "" when the venue or its address is
// absent.
func (e *Event) VenueCity() string {
	if e.Venue == nil || e.Venue.Address == nil {
		return ""
	}
	return e.Venue.Address.City
}

// Fee returns the minimum ticket price display string, or "Free" when ticket
// availability data is absent.
func (e *Event) Fee() string {
	if e.TicketAvailability == nil || e.TicketAvailability.MinimumTicketPrice == nil {
		return "Free"
	}
	return e.TicketAvailability.MinimumTicketPrice.Display
}

// Title returns the event's plain-text name, or "" when absent.
func (e *Event) Title() string {
	if e.Name == nil {
		return ""
	}
	return e.Name.Text
}

// DescriptionHTML returns the raw description markup, or "" when absent.
func (e *Event) DescriptionHTML() string {
	if e.Description == nil {
		return ""
	}
	return e.Description.HTML
}

// StartUTC returns the UTC start timestamp string, or "" when absent.
func (e *Event) StartUTC() string {
	if e.Start == nil {
		return ""
	}
	return e.Start.UTC
}
