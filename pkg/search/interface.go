// Package search is the lookup core: exact, partial and fuzzy matching over
// an immutable bilingual term collection, with ranking, deduplication and
// result caps.
package search

// ISearcher defines the lookup contract presentation layers depend on.
type ISearcher interface {
	// Search runs one query with explicit parameters
	Search(query string, p Params) ([]Result, error)

	// Len reports how many records are searchable
	Len() int
}
