package collector

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/leapscan/leap-events/internal/config"
	"github.com/leapscan/leap-events/internal/eventbrite"
	"github.com/leapscan/leap-events/internal/listing"
	"github.com/leapscan/leap-events/internal/logger"
)

var testNow = time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	return &config.Config{
		Cities:   []config.City{{Name: "San Diego", Slug: "san-diego"}},
		Keywords: []config.Keyword{{Label: "LEAP", Slug: "leap"}},
	}
}

func quietLogger() *logger.Logger {
	return logger.New(logger.LevelError, io.Discard)
}

// detailJSON renders a minimal detail response.
func detailJSON(title, startUTC, city string) string {
	return fmt.Sprintf(`{
		"name": {"text": %q},
		"description": {"html": "<p>%s</p>"},
		"start": {"utc": %q},
		"url": "https://example.com/e/x",
		"organizer": {"name": "LEAP SoCal"},
		"venue": {"name": "Harbor Hall", "address": {"city": %q}},
		"ticket_availability": {"minimum_ticket_price": {"display": "$15.00"}}
	}`, title, strings.Repeat("long description ", 20), startUTC, city)
}

func newCollector(t *testing.T, listingPages map[int]string, details map[string]func(w http.ResponseWriter)) (*Collector, func()) {
	t.Helper()

	listingSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var page int
		fmt.Sscanf(r.URL.Query().Get("page"), "%d", &page)
		body, ok := listingPages[page]
		if !ok {
			body = ""
		}
		fmt.Fprint(w, body)
	}))

	detailSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		id := parts[len(parts)-1]
		handler, ok := details[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		handler(w)
	}))

	sc := listing.NewWithBaseURL(listingSrv.URL)
	api := eventbrite.NewClientWithBaseURL("test-token", detailSrv.URL, 0)

	col, err := New(testConfig(), sc, api, testNow, 30, quietLogger())
	if err != nil {
		listingSrv.Close()
		detailSrv.Close()
		t.Fatalf("New failed: %v", err)
	}

	return col, func() {
		listingSrv.Close()
		detailSrv.Close()
	}
}

func serveJSON(body string) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		fmt.Fprint(w, body)
	}
}

func TestRunEndToEnd(t *testing.T) {
	// Two distinct links on page 1; page 2 repeats them so pagination stops.
	// Both details share title and start, so dedup keeps one record.
	page := `<a href="/e/leap-mixer-11111111?aff=s">a</a> <a href="/e/leap-mixer-dupe-22222222?aff=s">b</a>`
	listingPages := map[int]string{1: page, 2: page}

	shared := detailJSON("LEAP Spring Mixer", "2025-06-01T17:00:00Z", "San Diego")
	details := map[string]func(w http.ResponseWriter){
		"11111111": serveJSON(shared),
		"22222222": serveJSON(shared),
	}

	col, cleanup := newCollector(t, listingPages, details)
	defer cleanup()

	records, stats, err := col.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(records) != 1 {
		t.Fatalf("expected 1 record after dedup, got %d", len(records))
	}

	rec := records[0]
	if rec.Title != "LEAP Spring Mixer" {
		t.Errorf("Title = %q, want 'LEAP Spring Mixer'", rec.Title)
	}
	if rec.Start != "2025-06-01 10:00" {
		t.Errorf("Start = %q, want '2025-06-01 10:00' (Pacific)", rec.Start)
	}
	if rec.City != "San Diego" {
		t.Errorf("City = %q, want 'San Diego'", rec.City)
	}
	if rec.Fee != "$15.00" {
		t.Errorf("Fee = %q, want '$15.00'", rec.Fee)
	}
	if strings.Contains(rec.Description, "<p>") {
		t.Errorf("description markup not stripped: %q", rec.Description)
	}

	if stats.Pages != 2 {
		t.Errorf("Pages = %d, want 2", stats.Pages)
	}
	if stats.IDsSeen != 2 {
		t.Errorf("IDsSeen = %d, want 2", stats.IDsSeen)
	}
	if stats.DetailsFetched != 2 {
		t.Errorf("DetailsFetched = %d, want 2", stats.DetailsFetched)
	}
	if stats.Accepted != 2 {
		t.Errorf("Accepted = %d, want 2", stats.Accepted)
	}
	if stats.Exported != 1 {
		t.Errorf("Exported = %d, want 1", stats.Exported)
	}
}

func TestRunPaginationStopsOnNoNewIDs(t *testing.T) {
	listingPages := map[int]string{
		1: `<a href="/e/one-11111111?aff=s">a</a>`,
		2: `<a href="/e/one-11111111?aff=s">a</a> <a href="/e/two-22222222?aff=s">b</a>`,
		3: `<a href="/e/two-22222222?aff=s">b</a>`,
	}

	details := map[string]func(w http.ResponseWriter){
		"11111111": serveJSON(detailJSON("One", "2025-06-01T17:00:00Z", "San Diego")),
		"22222222": serveJSON(detailJSON("Two", "2025-06-02T17:00:00Z", "San Diego")),
	}

	col, cleanup := newCollector(t, listingPages, details)
	defer cleanup()

	records, stats, err := col.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// Page 2 contributes one new id; page 3 contributes none and stops the
	// crawl even though it is not empty.
	if stats.Pages != 3 {
		t.Errorf("Pages = %d, want 3", stats.Pages)
	}
	if stats.IDsSeen != 2 {
		t.Errorf("IDsSeen = %d, want 2", stats.IDsSeen)
	}
	if len(records) != 2 {
		t.Errorf("expected 2 records, got %d", len(records))
	}
}

func TestRunListingFailureAbandonsTarget(t *testing.T) {
	listingSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer listingSrv.Close()

	sc := listing.NewWithBaseURL(listingSrv.URL)
	api := eventbrite.NewClientWithBaseURL("test-token", "http://127.0.0.1:0", 0)

	col, err := New(testConfig(), sc, api, testNow, 30, quietLogger())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	records, stats, err := col.Run()
	if err != nil {
		t.Fatalf("Run should not fail on listing errors: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
	if stats.Pages != 0 {
		t.Errorf("Pages = %d, want 0", stats.Pages)
	}
}

func TestRunDetailFailureSkipsID(t *testing.T) {
	listingPages := map[int]string{
		1: `<a href="/e/gone-11111111?aff=s">a</a>`,
		2: `<a href="/e/gone-11111111?aff=s">a</a>`,
	}

	// No detail handler for the id: the API returns 404.
	col, cleanup := newCollector(t, listingPages, map[string]func(w http.ResponseWriter){})
	defer cleanup()

	records, stats, err := col.Run()
	if err != nil {
		t.Fatalf("Run should not fail on detail errors: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
	if stats.DetailsSkipped != 1 {
		t.Errorf("DetailsSkipped = %d, want 1", stats.DetailsSkipped)
	}
	// The failed id stays seen: page 2 offers nothing new, so only one fetch
	// attempt is ever made.
	if stats.DetailsFetched != 0 {
		t.Errorf("DetailsFetched = %d, want 0", stats.DetailsFetched)
	}
}

func TestRunFilters(t *testing.T) {
	listingPages := map[int]string{
		1: `<a href="/e/a-11111111?x">a</a> <a href="/e/b-22222222?x">b</a> <a href="/e/c-33333333?x">c</a>`,
		2: ``,
	}

	details := map[string]func(w http.ResponseWriter){
		// Wrong city.
		"11111111": serveJSON(detailJSON("Elsewhere", "2025-06-01T17:00:00Z", "Los Angeles")),
		// Outside the 30-day window.
		"22222222": serveJSON(detailJSON("Too Late", "2025-08-01T17:00:00Z", "San Diego")),
		// Passes both predicates.
		"33333333": serveJSON(detailJSON("Keeper", "2025-06-01T17:00:00Z", "San Diego")),
	}

	col, cleanup := newCollector(t, listingPages, details)
	defer cleanup()

	records, stats, err := col.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(records) != 1 || records[0].Title != "Keeper" {
		t.Fatalf("expected only 'Keeper', got %+v", records)
	}
	if stats.DetailsFetched != 3 {
		t.Errorf("DetailsFetched = %d, want 3", stats.DetailsFetched)
	}
	if stats.Accepted != 1 {
		t.Errorf("Accepted = %d, want 1", stats.Accepted)
	}
}

func TestRunUnparseableTimestampAborts(t *testing.T) {
	listingPages := map[int]string{
		1: `<a href="/e/bad-11111111?x">a</a>`,
	}

	details := map[string]func(w http.ResponseWriter){
		"11111111": serveJSON(detailJSON("Broken", "sometime soon", "San Diego")),
	}

	col, cleanup := newCollector(t, listingPages, details)
	defer cleanup()

	if _, _, err := col.Run(); err == nil {
		t.Fatal("expected run to abort on unparseable start timestamp")
	}
}
