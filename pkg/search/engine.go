package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/termdict/termserve/pkg/dictionary"
)

// exactMatchScore is the fixed confidence of a full equality match.
const exactMatchScore = 100.0

// Params bundles the tunable inputs of one search call.
type Params struct {
	Mode  Mode
	Scope Scope
	// Limit caps the result count. Non-positive caps yield no results.
	Limit int
	// MinScore excludes fuzzy candidates scoring strictly below it.
	// Ignored by the other modes.
	MinScore float64
}

func (p Params) validate() error {
	switch p.Mode {
	case ModeExact, ModePartial, ModeFuzzy:
	default:
		return fmt.Errorf("unsupported search mode %d", p.Mode)
	}
	switch p.Scope {
	case ScopeEnglish, ScopeTurkish, ScopeBoth:
	default:
		return fmt.Errorf("unsupported language scope %d", p.Scope)
	}
	return nil
}

// Result pairs a matched record with its ranking score. Score is nil in
// partial mode, exactMatchScore in exact mode and the scorer value in
// fuzzy mode.
type Result struct {
	Term  dictionary.Term
	Score *float64
}

// candidate carries a record together with its lower-cased fields so
// searches never re-fold the collection.
type candidate struct {
	term    dictionary.Term
	english string
	turkish string
}

// Engine matches queries against an immutable term collection. It holds no
// mutable state after construction, so any number of Search calls may run
// concurrently without locking.
type Engine struct {
	candidates []candidate
	scorer     Scorer
}

// New builds an engine over d with the default WeightedRatio scorer.
func New(d *dictionary.Dictionary) *Engine {
	return NewWithScorer(d, WeightedRatio{})
}

// NewWithScorer builds an engine with a caller-supplied similarity metric.
func NewWithScorer(d *dictionary.Dictionary, scorer Scorer) *Engine {
	terms := d.Terms()
	candidates := make([]candidate, len(terms))
	for i, t := range terms {
		candidates[i] = candidate{
			term:    t,
			english: strings.ToLower(t.English),
			turkish: strings.ToLower(t.Turkish),
		}
	}
	return &Engine{candidates: candidates, scorer: scorer}
}

// Len reports how many records are searchable.
func (e *Engine) Len() int {
	return len(e.candidates)
}

// Search runs one query and returns an ordered, deduplicated result list
// of at most p.Limit entries. An empty query yields an empty list, not an
// error; an invalid mode or scope is rejected outright. Searching an empty
// collection yields an empty list.
func (e *Engine) Search(query string, p Params) ([]Result, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	if query == "" || p.Limit <= 0 {
		return nil, nil
	}

	folded := strings.ToLower(query)
	switch p.Mode {
	case ModeExact:
		return e.scanOrdered(folded, p, true), nil
	case ModePartial:
		return e.scanOrdered(folded, p, false), nil
	default:
		return e.searchFuzzy(folded, p), nil
	}
}

// scanOrdered walks records in stored order and collects matches until the
// cap is hit. This is a first-N policy: scanning stops at the cap and never
// trades an early match for a better one further down. Within one record
// the English field is tested first; a record is emitted at most once per
// scan.
func (e *Engine) scanOrdered(query string, p Params, exact bool) []Result {
	var results []Result
	for i := range e.candidates {
		c := &e.candidates[i]
		switch {
		case p.Scope != ScopeTurkish && fieldMatches(c.english, query, exact):
			results = append(results, Result{Term: c.term, Score: matchScore(exact)})
		case p.Scope != ScopeEnglish && fieldMatches(c.turkish, query, exact):
			results = append(results, Result{Term: c.term, Score: matchScore(exact)})
		}
		if len(results) >= p.Limit {
			break
		}
	}
	return results
}

func fieldMatches(field, query string, exact bool) bool {
	if exact {
		return field == query
	}
	return strings.Contains(field, query)
}

// matchScore returns a fresh score pointer for exact matches and nil for
// partial ones, which carry no ranking signal.
func matchScore(exact bool) *float64 {
	if !exact {
		return nil
	}
	s := exactMatchScore
	return &s
}

type scored struct {
	term  dictionary.Term
	score float64
}

// searchFuzzy ranks each language pool independently, merges them and
// emits unique records best-first.
//
// The per-language budget is p.Limit when that language is the sole scope
// and p.Limit/2 under ScopeBoth. The integer division is deliberate: an
// odd limit leaves the two halves summing to one less than the cap, and a
// limit of 1 under ScopeBoth yields nothing.
func (e *Engine) searchFuzzy(query string, p Params) []Result {
	var merged []scored
	if p.Scope != ScopeTurkish {
		merged = append(merged, e.rankPool(query, p, func(c *candidate) string { return c.english })...)
	}
	if p.Scope != ScopeEnglish {
		merged = append(merged, e.rankPool(query, p, func(c *candidate) string { return c.turkish })...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].score > merged[j].score
	})

	// A record reachable through both fields must appear once. Identity is
	// the full original pair; the first occurrence after sorting wins.
	seen := make(map[dictionary.Term]bool, len(merged))
	var results []Result
	for _, m := range merged {
		if seen[m.term] {
			continue
		}
		seen[m.term] = true
		s := m.score
		results = append(results, Result{Term: m.term, Score: &s})
		if len(results) >= p.Limit {
			break
		}
	}
	return results
}

// rankPool scores every record's field for one language, drops candidates
// below the threshold and keeps the top of the ranking up to the
// per-language budget. The sort is stable, so equal scores keep collection
// order.
func (e *Engine) rankPool(query string, p Params, field func(*candidate) string) []scored {
	budget := p.Limit
	if p.Scope == ScopeBoth {
		budget = p.Limit / 2
	}
	if budget <= 0 {
		return nil
	}

	var pool []scored
	for i := range e.candidates {
		c := &e.candidates[i]
		if s := e.scorer.Score(query, field(c)); s >= p.MinScore {
			pool = append(pool, scored{term: c.term, score: s})
		}
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].score > pool[j].score
	})
	if len(pool) > budget {
		pool = pool[:budget]
	}
	return pool
}
