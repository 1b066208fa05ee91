// Package dictionary holds the in-memory bilingual term collection and its
// flat-file JSON representation. The collection is built once at startup and
// is read-only afterwards; search code treats it as an ordered sequence of
// English/Turkish pairs and never mutates a record.
package dictionary

import (
	"math/rand"
)

// DefaultSource is the origin name recorded in dictionary metadata.
const DefaultSource = "TBD Bilişim Terimleri Sözlüğü"

// MaxTermLength is the exclusive upper bound on a single field, in runes.
// Longer fields are extraction noise and are dropped at ingestion.
const MaxTermLength = 200

// Term is one English/Turkish dictionary pair.
type Term struct {
	English string `json:"en"`
	Turkish string `json:"tr"`
}

// Metadata describes a dictionary file's origin. The search engine never
// interprets it; it is carried for stats and exports.
type Metadata struct {
	Source     string `json:"source"`
	TotalTerms int    `json:"total_terms"`
	Version    string `json:"version"`
}

// Dictionary is an ordered, immutable term collection. Order is insertion
// order from the source file; it carries no meaning for matching but gives
// searches a stable tie-break and sampling a uniform base.
type Dictionary struct {
	terms []Term
	meta  Metadata
}

// New builds a dictionary from an already-validated term sequence.
func New(terms []Term, meta Metadata) *Dictionary {
	return &Dictionary{terms: terms, meta: meta}
}

// Len returns the number of term records.
func (d *Dictionary) Len() int {
	return len(d.terms)
}

// Terms returns the ordered record sequence. Callers must not modify it.
func (d *Dictionary) Terms() []Term {
	return d.terms
}

// Meta returns the dictionary metadata.
func (d *Dictionary) Meta() Metadata {
	return d.meta
}

// Random returns one uniformly chosen record, or false when the
// dictionary is empty.
func (d *Dictionary) Random() (Term, bool) {
	if len(d.terms) == 0 {
		return Term{}, false
	}
	return d.terms[rand.Intn(len(d.terms))], true
}

// Sample returns up to n distinct records chosen uniformly, in random
// order. It returns fewer than n when the dictionary is smaller.
func (d *Dictionary) Sample(n int) []Term {
	if n <= 0 || len(d.terms) == 0 {
		return nil
	}
	if n > len(d.terms) {
		n = len(d.terms)
	}
	picked := make([]Term, 0, n)
	for _, idx := range rand.Perm(len(d.terms))[:n] {
		picked = append(picked, d.terms[idx])
	}
	return picked
}
