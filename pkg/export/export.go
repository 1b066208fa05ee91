// Package export writes search results as JSON, CSV or plain text. Scores
// are presentation-only and never exported; a result list serializes as its
// bare term pairs.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/termdict/termserve/pkg/dictionary"
	"github.com/termdict/termserve/pkg/search"
)

// Format selects an output encoding.
type Format uint8

const (
	// FormatJSON writes an indented array of {"en","tr"} objects.
	FormatJSON Format = iota
	// FormatCSV writes an English,Turkish header plus one row per result.
	FormatCSV
	// FormatText writes "english -> turkish" lines.
	FormatText
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatCSV:
		return "csv"
	case FormatText:
		return "txt"
	}
	return fmt.Sprintf("format(%d)", uint8(f))
}

// Extension returns the file extension for the format, dot included.
func (f Format) Extension() string {
	return "." + f.String()
}

// ParseFormat maps a user-supplied format name onto a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "txt", "text":
		return FormatText, nil
	}
	return 0, fmt.Errorf("unsupported export format %q", s)
}

// DefaultFilename builds the conventional timestamped result filename.
func DefaultFilename(f Format, now time.Time) string {
	return "search_results_" + now.Format("20060102_150405") + f.Extension()
}

// Write encodes results to w in the given format.
func Write(w io.Writer, f Format, results []search.Result) error {
	switch f {
	case FormatJSON:
		return writeJSON(w, results)
	case FormatCSV:
		return writeCSV(w, results)
	case FormatText:
		return writeText(w, results)
	}
	return fmt.Errorf("unsupported export format %q", f)
}

// WriteFile encodes results into a new file at path.
func WriteFile(path string, f Format, results []search.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file %s: %w", path, err)
	}
	if err := Write(file, f, results); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func writeJSON(w io.Writer, results []search.Result) error {
	pairs := make([]dictionary.Term, 0, len(results))
	for _, r := range results {
		pairs = append(pairs, r.Term)
	}
	data, err := json.MarshalIndent(pairs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func writeCSV(w io.Writer, results []search.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"English", "Turkish"}); err != nil {
		return err
	}
	for _, r := range results {
		if err := cw.Write([]string{r.Term.English, r.Term.Turkish}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeText(w io.Writer, results []search.Result) error {
	for _, r := range results {
		if _, err := fmt.Fprintf(w, "%s -> %s\n", r.Term.English, r.Term.Turkish); err != nil {
			return err
		}
	}
	return nil
}
