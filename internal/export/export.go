package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapscan/leap-events/internal/event"
)

// DescriptionLimit is the maximum description length in the Markdown digest.
const DescriptionLimit = 200

// csvHeader is the fixed column order of the tabular export.
var csvHeader = []string{"Title", "Organizer", "Start (PT)", "City", "Venue", "Description", "URL", "Fee"}

// WriteCSV writes one header row plus one row per record.
func WriteCSV(w io.Writer, records []event.Record) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, rec := range records {
		row := []string{
			rec.Title,
			rec.Organizer,
			rec.Start,
			rec.City,
			rec.Venue,
			rec.Description,
			rec.URL,
			rec.Fee,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteMarkdown writes one labeled section per record, descriptions truncated
// to DescriptionLimit characters with a trailing ellipsis.
func WriteMarkdown(w io.Writer, records []event.Record) error {
	var md strings.Builder

	md.WriteString("# LEAP Events - Southern California\n\n")
	md.WriteString(fmt.Sprintf("%d upcoming events.\n\n", len(records)))

	for _, rec := range records {
		md.WriteString(fmt.Sprintf("## %s\n\n", rec.Title))
		md.WriteString(fmt.Sprintf("- **Organizer:** %s\n", rec.Organizer))
		md.WriteString(fmt.Sprintf("- **Start (PT):** %s\n", rec.Start))
		md.WriteString(fmt.Sprintf("- **City:** %s\n", rec.City))
		md.WriteString(fmt.Sprintf("- **Venue:** %s\n", rec.Venue))
		md.WriteString(fmt.Sprintf("- **Fee:** %s\n", rec.Fee))
		md.WriteString(fmt.Sprintf("- **URL:** %s\n\n", rec.URL))
		md.WriteString(fmt.Sprintf("%s\n\n", event.Truncate(rec.Description, DescriptionLimit)))
	}

	_, err := io.WriteString(w, md.String())
	return err
}

// WriteFiles writes both export artifacts into outDir and returns their
// paths.
func WriteFiles(outDir, csvName, mdName string, records []event.Record) (string, string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", "", fmt.Errorf("creating output directory: %w", err)
	}

	csvPath := filepath.Join(outDir, csvName)
	f, err := os.Create(csvPath)
	if err != nil {
		return "", "", fmt.Errorf("creating csv file: %w", err)
	}
	if err := WriteCSV(f, records); err != nil {
		f.Close()
		return "", "", fmt.Errorf("writing csv: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", "", fmt.Errorf("closing csv file: %w", err)
	}

	mdPath := filepath.Join(outDir, mdName)
	f, err = os.Create(mdPath)
	if err != nil {
		return "", "", fmt.Errorf("creating markdown file: %w", err)
	}
	if err := WriteMarkdown(f, records); err != nil {
		f.Close()
		return "", "", fmt.Errorf("writing markdown: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", "", fmt.Errorf("closing markdown file: %w", err)
	}

	return csvPath, mdPath, nil
}
