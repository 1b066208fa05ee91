package search

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
)

// Scorer computes a similarity score in [0,100] between a query and one
// candidate field. Both inputs arrive already lower-cased; implementations
// must be stateless or otherwise safe for concurrent use.
type Scorer interface {
	Score(query, candidate string) float64
}

// Scale factors of the weighted-ratio heuristic. Token-reordered variants
// are damped slightly against the plain ratio; window matches against a
// much longer string are damped harder.
const (
	tokenScale       = 0.95
	windowScale      = 0.9
	longWindowScale  = 0.6
	longWindowCutoff = 8.0
	comparableCutoff = 1.5
)

// WeightedRatio is the default Scorer. Strings of comparable length are
// compared whole, also under token sorting and token set reduction to stay
// insensitive to word order. When one side is much longer, the shorter
// string is instead matched against every window of its length in the
// longer one and the best window similarity is scaled down. The result is
// the best applicable sub-score.
type WeightedRatio struct{}

func (WeightedRatio) Score(query, candidate string) float64 {
	if query == "" || candidate == "" {
		return 0
	}

	base := ratio(query, candidate)

	qLen := utf8.RuneCountInString(query)
	cLen := utf8.RuneCountInString(candidate)
	longer, shorter := qLen, cLen
	if longer < shorter {
		longer, shorter = shorter, longer
	}
	lenRatio := float64(longer) / float64(shorter)

	if lenRatio < comparableCutoff {
		return max(base,
			tokenScale*tokenSortRatio(query, candidate),
			tokenScale*tokenSetRatio(query, candidate))
	}

	scale := windowScale
	if lenRatio > longWindowCutoff {
		scale = longWindowScale
	}
	return max(base,
		scale*partialRatio(query, candidate),
		tokenScale*scale*partialRatio(sortTokens(query), sortTokens(candidate)))
}

// ratio is the normalized Levenshtein similarity scaled to [0,100].
func ratio(a, b string) float64 {
	if a == b {
		return 100
	}
	sim, err := edlib.StringsSimilarity(a, b, edlib.Levenshtein)
	if err != nil {
		return 0
	}
	return float64(sim) * 100
}

// partialRatio slides the shorter string across the longer one and keeps
// the best window similarity.
func partialRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}
	if len(ra) == 0 {
		return 0
	}
	if len(ra) == len(rb) {
		return ratio(string(ra), string(rb))
	}

	short := string(ra)
	best := 0.0
	for i := 0; i+len(ra) <= len(rb); i++ {
		window := string(rb[i : i+len(ra)])
		if s := ratio(short, window); s > best {
			best = s
			if best >= 100 {
				break
			}
		}
	}
	return best
}

func sortTokens(s string) string {
	fields := strings.Fields(s)
	sort.Strings(fields)
	return strings.Join(fields, " ")
}

// tokenSortRatio compares both strings with their words in sorted order,
// so "zeka yapay" still lines up with "yapay zeka".
func tokenSortRatio(a, b string) float64 {
	return ratio(sortTokens(a), sortTokens(b))
}

// tokenSetRatio reduces both strings to their shared-word core plus each
// side's remainder and takes the best pairwise ratio. A string whose words
// all appear in the other scores 100 regardless of the extra words.
func tokenSetRatio(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)

	var common, onlyA, onlyB []string
	for tok := range setA {
		if setB[tok] {
			common = append(common, tok)
		} else {
			onlyA = append(onlyA, tok)
		}
	}
	for tok := range setB {
		if !setA[tok] {
			onlyB = append(onlyB, tok)
		}
	}
	sort.Strings(common)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	core := strings.Join(common, " ")
	joinedA := strings.TrimSpace(core + " " + strings.Join(onlyA, " "))
	joinedB := strings.TrimSpace(core + " " + strings.Join(onlyB, " "))

	if core == "" {
		return ratio(joinedA, joinedB)
	}
	return max(ratio(core, joinedA), ratio(core, joinedB), ratio(joinedA, joinedB))
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(s) {
		set[tok] = true
	}
	return set
}
