package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/leapscan/leap-events/internal/collector"
	"github.com/leapscan/leap-events/internal/event"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// OutputResult contains data to be output
type OutputResult struct {
	CollectedAt  time.Time       `json:"collected_at"`
	Records      []event.Record  `json:"records"`
	Stats        collector.Stats `json:"stats"`
	CSVPath      string          `json:"csv_path,omitempty"`
	MarkdownPath string          `json:"markdown_path,omitempty"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult) error {
	fmt.Fprintf(w, "Exported %d events.\n", len(result.Records))

	if result.CSVPath != "" {
		fmt.Fprintf(w, "  CSV:      %s\n", result.CSVPath)
	}
	if result.MarkdownPath != "" {
		fmt.Fprintf(w, "  Markdown: %s\n", result.MarkdownPath)
	}

	s := result.Stats
	fmt.Fprintf(w, "Crawled %d targets, %d pages; %d ids, %d details fetched, %d skipped, %d accepted.\n",
		s.Targets, s.Pages, s.IDsSeen, s.DetailsFetched, s.DetailsSkipped, s.Accepted)

	return nil
}
