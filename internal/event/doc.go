// Package event provides the output-shaped Record type and the filtering and
// transformation rules that produce it.
//
// A Record is only ever created for an event whose UTC start falls inside the
// run's acceptance window and whose venue city exactly matches the search
// target's city name. Start times are localized to Pacific time, descriptions
// are stripped of markup and whitespace-collapsed, and duplicate
// (title, start) pairs are removed before export.
package event
