package search

import (
	"sort"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize lower-cases text the same way for indexed words and queries.
func Normalize(text string) string {
	// A Caser keeps state between calls, so each call gets its own.
	return cases.Lower(language.Und).String(text)
}

// Search returns the mods whose words start with query, best rank first,
// with at most one result per mod. It never fails: an index that is not
// ready yields no results.
func (idx *Index) Search(query string) []Result {
	results := []Result{}
	if query == "" {
		return results
	}

	snap := idx.current()
	if len(snap.words) == 0 {
		return results
	}

	prefix := Normalize(query)

	var hits []int
	err := snap.trie.VisitSubtree(patricia.Prefix(prefix), func(_ patricia.Prefix, item patricia.Item) error {
		hits = append(hits, item.([]int)...)
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting trie subtree: %v", err)
		return results
	}

	// Trie order is lexicographic; ties on rank must fall back to dataset order.
	sort.Ints(hits)
	sort.SliceStable(hits, func(i, j int) bool {
		return snap.words[hits[i]].Rank < snap.words[hits[j]].Rank
	})

	seen := make(map[int]struct{}, len(hits))
	for _, pos := range hits {
		w := snap.words[pos]
		if _, dup := seen[w.ModIndex]; dup {
			continue
		}
		seen[w.ModIndex] = struct{}{}
		results = append(results, Result{Mod: snap.mods[w.ModIndex], Word: w})
	}

	log.Debugf("Search %q: %d words, %d mods", prefix, len(hits), len(results))
	return results
}
