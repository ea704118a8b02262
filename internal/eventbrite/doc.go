// Package eventbrite provides an authenticated client for the events detail
// API.
//
// Each request expands the venue, organizer, and ticket availability
// sub-resources so a single call yields everything the filter and exporter
// need. The client self-throttles with a fixed pause after each successfully
// parsed response. Accessor methods centralize the defaults for optional
// fields: empty strings for names, "Free" for a missing ticket price.
package eventbrite
