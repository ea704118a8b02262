// Package listing provides HTTP fetching and event-id extraction for the
// public listing site.
//
// The listing package fetches paginated search pages for a (city, keyword)
// target and extracts candidate event ids from /e/<slug>-<id> links. It does
// no deduplication across pages; that is the collector's job.
package listing
