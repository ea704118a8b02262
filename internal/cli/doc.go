// Package cli implements the command-line interface for leap-events.
//
// The cli package provides the Cobra-based CLI with support for running the
// crawl, formatting output (text/JSON), and overriding the compiled-in
// city/keyword sets from a YAML file. It coordinates the config, listing,
// eventbrite, collector, and export packages.
package cli
