// Package search is the core: the shared word index and the prefix query over it.
package search

// Searcher is what the front-ends need from an index.
type Searcher interface {
	// Search returns ranked, per-mod deduplicated matches for a query prefix.
	Search(query string) []Result

	// State reports whether the index is loaded.
	State() State

	// Err returns why loading failed, if it did.
	Err() error

	// Stats returns counters about the loaded data.
	Stats() map[string]int
}

var _ Searcher = (*Index)(nil)
