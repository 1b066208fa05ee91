// Package convert extracts English/Turkish term pairs from the TBD
// dictionary PDF text and assembles them into a dictionary file.
package convert

import (
	"strings"

	"github.com/termdict/termserve/pkg/dictionary"
)

// SourceVersion is the release date of the dictionary PDF this converter
// understands. Recorded in the output metadata.
const SourceVersion = "2025-08-04"

// pairSeparator splits a term line into its English and Turkish halves.
const pairSeparator = " : "

// noiseMarkers flag header and layout lines in the extracted text. Since
// ':' is itself a marker, every line with a colon takes the noise gate:
// it survives only when it still looks like a term pair, meaning it holds
// the pair separator and no more than two colons total.
var noiseMarkers = []string{"English", "Türkçe", "terms", "Symbols", "Numbers", ":", "--"}

// ParseLine extracts one term pair from a raw text line. The second
// return is false for headers, noise and lines without a well-formed pair.
func ParseLine(line string) (dictionary.Term, bool) {
	if isNoise(line) {
		return dictionary.Term{}, false
	}
	if strings.TrimSpace(line) == "" {
		return dictionary.Term{}, false
	}
	if !strings.Contains(line, pairSeparator) {
		return dictionary.Term{}, false
	}
	english, turkish, _ := strings.Cut(line, pairSeparator)
	term := dictionary.Term{
		English: strings.TrimSpace(english),
		Turkish: strings.TrimSpace(turkish),
	}
	if !dictionary.Valid(term) {
		return dictionary.Term{}, false
	}
	return term, true
}

// ParseText extracts every term pair from one page worth of text.
func ParseText(text string) []dictionary.Term {
	var terms []dictionary.Term
	for _, line := range strings.Split(text, "\n") {
		if term, ok := ParseLine(line); ok {
			terms = append(terms, term)
		}
	}
	return terms
}

func isNoise(line string) bool {
	for _, marker := range noiseMarkers {
		if strings.Contains(line, marker) {
			return !strings.Contains(line, pairSeparator) || strings.Count(line, ":") > 2
		}
	}
	return false
}
