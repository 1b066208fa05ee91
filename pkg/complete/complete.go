// Package complete offers prefix lookup over dictionary headwords. The
// interactive CLI uses it to suggest entries when a query comes back empty.
package complete

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/termdict/termserve/pkg/dictionary"
)

// Completer indexes folded headwords in a patricia trie. It is built once
// from a dictionary and read-only afterwards.
type Completer struct {
	trie  *patricia.Trie
	count int
}

// New indexes every English and Turkish headword of d. English fields are
// inserted first; the first headword claiming a folded key wins.
func New(d *dictionary.Dictionary) *Completer {
	c := &Completer{trie: patricia.NewTrie()}
	for _, t := range d.Terms() {
		c.add(t.English)
	}
	for _, t := range d.Terms() {
		c.add(t.Turkish)
	}
	return c
}

func (c *Completer) add(headword string) {
	folded := strings.ToLower(headword)
	if folded == "" {
		return
	}
	if c.trie.Insert(patricia.Prefix(folded), headword) {
		c.count++
	}
}

// Len reports how many distinct folded headwords are indexed.
func (c *Completer) Len() int {
	return c.count
}

// Complete returns up to limit headwords extending prefix, in trie order
// with their original casing. The prefix itself is never suggested back.
func (c *Completer) Complete(prefix string, limit int) []string {
	folded := strings.ToLower(strings.TrimSpace(prefix))
	if folded == "" || limit <= 0 {
		return nil
	}

	var words []string
	err := c.trie.VisitSubtree(patricia.Prefix(folded), func(p patricia.Prefix, item patricia.Item) error {
		if string(p) == folded {
			return nil
		}
		word, ok := item.(string)
		if !ok {
			log.Errorf("Unknown item type: %T for prefix %s", item, p)
			return nil
		}
		words = append(words, word)
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting trie subtree: %v", err)
		return nil
	}

	if len(words) > limit {
		words = words[:limit]
	}
	return words
}
