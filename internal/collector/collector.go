package collector

import (
	"fmt"
	"time"

	"github.com/leapscan/leap-events/internal/config"
	"github.com/leapscan/leap-events/internal/event"
	"github.com/leapscan/leap-events/internal/eventbrite"
	"github.com/leapscan/leap-events/internal/listing"
	"github.com/leapscan/leap-events/internal/logger"
)

// Stats summarizes one crawl for the final report.
type Stats struct {
	Targets        int `json:"targets"`
	Pages          int `json:"pages"`
	IDsSeen        int `json:"ids_seen"`
	DetailsFetched int `json:"details_fetched"`
	DetailsSkipped int `json:"details_skipped"`
	Accepted       int `json:"accepted"`
	Exported       int `json:"exported"`
}

// Collector runs the crawl pipeline: listing pages in, deduplicated accepted
// records out. All crawl state (the seen-id set, the record accumulator) is
// owned by the Collector instance; there are no package-level globals.
type Collector struct {
	cfg     *config.Config
	scraper *listing.Scraper
	api     *eventbrite.Client
	zone    *time.Location
	window  event.Window

	seen    map[string]bool
	records []event.Record
	stats   Stats
	log     *logger.Logger
}

// New creates a Collector. The acceptance window is anchored to now and does
// not drift during the run.
func New(cfg *config.Config, scraper *listing.Scraper, api *eventbrite.Client, now time.Time, days int, log *logger.Logger) (*Collector, error) {
	zone, err := time.LoadLocation(config.LocalTimeZone)
	if err != nil {
		return nil, fmt.Errorf("loading time zone: %w", err)
	}

	return &Collector{
		cfg:     cfg,
		scraper: scraper,
		api:     api,
		zone:    zone,
		window:  event.NewWindow(now.UTC(), days),
		seen:    make(map[string]bool),
		records: make([]event.Record, 0),
		log:     log,
	}, nil
}

// pageOutcome is the explicit result of one pagination step.
type pageOutcome struct {
	newIDs []string
	stop   bool
}

// Run crawls every search target, fetches details for newly discovered ids,
// filters and transforms them, and returns the deduplicated records. Only an
// unparseable start timestamp aborts the run; listing and detail failures are
// local to their target or id.
func (c *Collector) Run() ([]event.Record, Stats, error) {
	targets := c.cfg.Targets()
	c.stats.Targets = len(targets)

	for _, target := range targets {
		c.log.Info("Crawling target", logger.Fields{
			"city":    target.CityName,
			"keyword": target.Keyword,
		})

		if err := c.crawlTarget(target); err != nil {
			return nil, c.stats, err
		}
	}

	unique := event.Dedup(c.records)
	c.stats.Exported = len(unique)

	return unique, c.stats, nil
}

// crawlTarget pages through one (city, keyword) search until a page yields no
// ids that are new to the whole run.
func (c *Collector) crawlTarget(target config.SearchTarget) error {
	for page := 1; ; page++ {
		outcome := c.crawlPage(target, page)
		if outcome.stop {
			return nil
		}

		c.stats.IDsSeen += len(outcome.newIDs)

		for _, id := range outcome.newIDs {
			if err := c.processID(id, target); err != nil {
				return err
			}
		}
	}
}

// crawlPage performs one pagination step. A transport or status failure is
// terminal for the target, as is a page with no unseen ids; both map to stop.
func (c *Collector) crawlPage(target config.SearchTarget, page int) pageOutcome {
	ids, err := c.scraper.FetchPage(target, page)
	if err != nil {
		c.log.Warn("Abandoning target", logger.Fields{
			"city":    target.CityName,
			"keyword": target.Keyword,
			"page":    page,
			"reason":  err.Error(),
		})
		return pageOutcome{stop: true}
	}

	c.stats.Pages++

	newIDs := make([]string, 0, len(ids))
	for _, id := range ids {
		if !c.seen[id] {
			newIDs = append(newIDs, id)
		}
	}

	// A page with no new ids ends pagination for this target, even when the
	// page itself was not empty.
	if len(newIDs) == 0 {
		return pageOutcome{stop: true}
	}

	for _, id := range newIDs {
		c.seen[id] = true
	}

	return pageOutcome{newIDs: newIDs}
}

// processID fetches one event's detail and, if it passes both predicates,
// appends the transformed record. Fetch failures skip the id; the id stays
// marked seen and is never retried.
func (c *Collector) processID(id string, target config.SearchTarget) error {
	detail, err := c.api.GetEvent(id)
	if err != nil {
		c.stats.DetailsSkipped++
		c.log.Debug("Skipping event", logger.Fields{
			"event_id": id,
			"reason":   err.Error(),
		})
		return nil
	}

	c.stats.DetailsFetched++

	rec, ok, err := c.transform(detail, target.CityName)
	if err != nil {
		return fmt.Errorf("event %s: %w", id, err)
	}
	if !ok {
		return nil
	}

	c.stats.Accepted++
	c.records = append(c.records, rec)
	return nil
}

// transform applies the date-window and exact-city predicates and projects an
// accepted detail into a Record. The bool result reports acceptance; the
// error is reserved for the unguarded timestamp parse.
func (c *Collector) transform(detail *eventbrite.Event, targetCity string) (event.Record, bool, error) {
	start, err := event.ParseStartUTC(detail.StartUTC())
	if err != nil {
		return event.Record{}, false, err
	}

	if !c.window.Contains(start) {
		return event.Record{}, false, nil
	}
	if !event.CityMatches(detail.VenueCity(), targetCity) {
		return event.Record{}, false, nil
	}

	rec := event.Record{
		Title:       detail.Title(),
		Organizer:   detail.OrganizerName(),
		Start:       event.FormatLocal(start, c.zone),
		City:        detail.VenueCity(),
		Venue:       detail.VenueName(),
		Description: event.CleanDescription(detail.DescriptionHTML()),
		URL:         detail.URL,
		Fee:         detail.Fee(),
	}
	return rec, true, nil
}
