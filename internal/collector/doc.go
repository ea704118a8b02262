// Package collector wires the listing scraper, detail client, and filter
// rules into one sequential crawl pipeline.
//
// Data flows strictly one way: search targets -> listing pages -> id
// deduplication -> detail fetch -> filter/transform -> deduplicated records.
// The seen-id set and record accumulator are explicit Collector state, owned
// by the single execution goroutine.
package collector
