package search

import (
	"fmt"
	"strings"
)

// Mode selects the matching strategy of a search call.
type Mode uint8

const (
	// ModeExact matches on case-insensitive full equality.
	ModeExact Mode = iota
	// ModePartial matches on case-insensitive substring containment.
	ModePartial
	// ModeFuzzy matches on weighted similarity scored in [0,100].
	ModeFuzzy
)

func (m Mode) String() string {
	switch m {
	case ModeExact:
		return "exact"
	case ModePartial:
		return "partial"
	case ModeFuzzy:
		return "fuzzy"
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

// Scope restricts which field of a record is compared against the query.
type Scope uint8

const (
	// ScopeEnglish compares the English field only.
	ScopeEnglish Scope = iota
	// ScopeTurkish compares the Turkish field only.
	ScopeTurkish
	// ScopeBoth compares both fields.
	ScopeBoth
)

func (s Scope) String() string {
	switch s {
	case ScopeEnglish:
		return "en"
	case ScopeTurkish:
		return "tr"
	case ScopeBoth:
		return "both"
	}
	return fmt.Sprintf("scope(%d)", uint8(s))
}

// ParseMode maps a configuration or wire value onto a Mode. Unknown values
// are an error so misconfiguration surfaces at the boundary instead of
// silently defaulting.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "exact":
		return ModeExact, nil
	case "partial":
		return ModePartial, nil
	case "fuzzy":
		return ModeFuzzy, nil
	}
	return 0, fmt.Errorf("unsupported search mode %q", s)
}

// ParseScope maps a configuration or wire value onto a Scope, accepting
// both the short and the long spelling.
func ParseScope(s string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "en", "english":
		return ScopeEnglish, nil
	case "tr", "turkish":
		return ScopeTurkish, nil
	case "both":
		return ScopeBoth, nil
	}
	return 0, fmt.Errorf("unsupported language scope %q", s)
}
