package dictionary

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/charmbracelet/log"
)

// dictFile is the persisted JSON layout produced by the converter.
type dictFile struct {
	Metadata Metadata `json:"metadata"`
	Terms    []Term   `json:"terms"`
}

// Valid reports whether a record satisfies the ingestion invariants:
// both fields present and each shorter than MaxTermLength runes.
func Valid(t Term) bool {
	if t.English == "" || t.Turkish == "" {
		return false
	}
	return utf8.RuneCountInString(t.English) < MaxTermLength &&
		utf8.RuneCountInString(t.Turkish) < MaxTermLength
}

// Load reads a dictionary JSON file from disk. Records violating the
// ingestion invariants are skipped with a warning rather than failing the
// whole load; a metadata count that disagrees with the actual term count
// is reported and the actual count wins.
func Load(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no dictionary file at %s (run tbdconv first): %w", path, err)
		}
		return nil, fmt.Errorf("failed to read dictionary file %s: %w", path, err)
	}

	var df dictFile
	if err := json.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("failed to parse dictionary file %s: %w", path, err)
	}

	terms := make([]Term, 0, len(df.Terms))
	skipped := 0
	for _, t := range df.Terms {
		if !Valid(t) {
			skipped++
			continue
		}
		terms = append(terms, t)
	}
	if skipped > 0 {
		log.Warnf("Skipped %d invalid records in %s", skipped, path)
	}
	if df.Metadata.TotalTerms != 0 && df.Metadata.TotalTerms != len(terms) {
		log.Warnf("Metadata reports %d terms but %d loaded", df.Metadata.TotalTerms, len(terms))
	}

	log.Debugf("Loaded %d terms from %s (source: %s, version: %s)",
		len(terms), path, df.Metadata.Source, df.Metadata.Version)
	return New(terms, df.Metadata), nil
}

// Save writes the dictionary to path as indented UTF-8 JSON, creating
// parent directories as needed. The stored total_terms always reflects the
// actual record count.
func Save(path string, d *Dictionary) error {
	df := dictFile{Metadata: d.meta, Terms: d.terms}
	df.Metadata.TotalTerms = len(d.terms)

	data, err := json.MarshalIndent(df, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode dictionary: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write dictionary file %s: %w", path, err)
	}

	log.Debugf("Saved %d terms to %s", len(d.terms), path)
	return nil
}
