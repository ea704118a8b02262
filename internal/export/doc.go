// Package export writes the two run artifacts: a CSV table with a fixed
// column order and a Markdown digest with one labeled section per event.
package export
