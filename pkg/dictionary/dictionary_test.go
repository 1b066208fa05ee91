package dictionary

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testTerms() []Term {
	return []Term{
		{English: "cloud", Turkish: "bulut"},
		{English: "database", Turkish: "veritabanı"},
		{English: "network", Turkish: "ağ"},
		{English: "server", Turkish: "sunucu"},
	}
}

func TestValid(t *testing.T) {
	long := strings.Repeat("a", MaxTermLength)
	testCases := []struct {
		term        Term
		want        bool
		description string
	}{
		{Term{English: "cloud", Turkish: "bulut"}, true, "ordinary pair"},
		{Term{English: "", Turkish: "bulut"}, false, "empty english field"},
		{Term{English: "cloud", Turkish: ""}, false, "empty turkish field"},
		{Term{English: long, Turkish: "bulut"}, false, "english at length bound"},
		{Term{English: "cloud", Turkish: long}, false, "turkish at length bound"},
		{Term{English: long[:MaxTermLength-1], Turkish: "bulut"}, true, "english just under bound"},
		{Term{English: "yapay zeka", Turkish: strings.Repeat("ç", MaxTermLength-1)}, true, "multibyte runes counted as runes"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			if got := Valid(tc.term); got != tc.want {
				t.Errorf("Valid(%q/%q) = %v, want %v", tc.term.English, tc.term.Turkish, got, tc.want)
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "dict.json")
	orig := New(testTerms(), Metadata{Source: DefaultSource, Version: "2025-08-04"})

	if err := Save(path, orig); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Len() != orig.Len() {
		t.Fatalf("loaded %d terms, want %d", loaded.Len(), orig.Len())
	}
	for i, term := range loaded.Terms() {
		if term != orig.Terms()[i] {
			t.Errorf("term %d = %+v, want %+v (order must survive the round trip)", i, term, orig.Terms()[i])
		}
	}
	meta := loaded.Meta()
	if meta.Source != DefaultSource || meta.Version != "2025-08-04" {
		t.Errorf("metadata = %+v, want source/version preserved", meta)
	}
	if meta.TotalTerms != orig.Len() {
		t.Errorf("saved total_terms = %d, want actual count %d", meta.TotalTerms, orig.Len())
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Fatal("Load of a missing file must fail")
	}
	if !strings.Contains(err.Error(), "no dictionary file") {
		t.Errorf("error %q should point the operator at the converter", err)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load of malformed JSON must fail")
	}
}

func TestLoadSkipsInvalidRecords(t *testing.T) {
	raw := `{
  "metadata": {"source": "test", "total_terms": 4, "version": "2025-08-04"},
  "terms": [
    {"en": "cloud", "tr": "bulut"},
    {"en": "", "tr": "bulut"},
    {"en": "orphan", "tr": ""},
    {"en": "network", "tr": "ağ"}
  ]
}`
	path := filepath.Join(t.TempDir(), "dict.json")
	if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
		t.Fatal(err)
	}

	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if d.Len() != 2 {
		t.Fatalf("loaded %d terms, want 2 valid ones", d.Len())
	}
	if d.Terms()[0].English != "cloud" || d.Terms()[1].English != "network" {
		t.Errorf("surviving terms out of order: %+v", d.Terms())
	}
}

func TestRandom(t *testing.T) {
	empty := New(nil, Metadata{})
	if _, ok := empty.Random(); ok {
		t.Error("Random on an empty dictionary must report no record")
	}

	d := New(testTerms(), Metadata{})
	known := make(map[Term]bool)
	for _, term := range d.Terms() {
		known[term] = true
	}
	for range 20 {
		term, ok := d.Random()
		if !ok {
			t.Fatal("Random on a populated dictionary must succeed")
		}
		if !known[term] {
			t.Fatalf("Random returned %+v, not a dictionary record", term)
		}
	}
}

func TestSample(t *testing.T) {
	d := New(testTerms(), Metadata{})

	testCases := []struct {
		n           int
		wantLen     int
		description string
	}{
		{0, 0, "zero request"},
		{-1, 0, "negative request"},
		{2, 2, "partial sample"},
		{4, 4, "full sample"},
		{10, 4, "request beyond size is clamped"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			got := d.Sample(tc.n)
			if len(got) != tc.wantLen {
				t.Fatalf("Sample(%d) returned %d records, want %d", tc.n, len(got), tc.wantLen)
			}
			seen := make(map[Term]bool)
			for _, term := range got {
				if seen[term] {
					t.Errorf("Sample(%d) returned %+v twice", tc.n, term)
				}
				seen[term] = true
			}
		})
	}
}
