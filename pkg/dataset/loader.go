// Package dataset loads the search data into an index and builds it from a mod catalog.
package dataset

import (
	"fmt"
	"time"

	"github.com/bastiangx/modsearch/pkg/search"
	"github.com/charmbracelet/log"
)

// Loader fills an index from a source, once, in the background.
type Loader struct {
	src Source
	idx *search.Index
}

// NewLoader creates a loader for the given source and index.
func NewLoader(src Source, idx *search.Index) *Loader {
	return &Loader{src: src, idx: idx}
}

// Load starts the fetch and returns immediately. Only the first call on an
// uninitialized index does anything; a failed load is not retried.
// Completion is observable through the index state and Done channel.
func (l *Loader) Load() {
	if !l.idx.Begin() {
		log.Debugf("Load skipped, index is %s", l.idx.State())
		return
	}
	log.Debugf("Loading search data from %s", l.src)
	go l.run()
}

func (l *Loader) run() {
	start := time.Now()
	d, err := l.fetch()
	if err == nil {
		err = l.idx.Install(d)
	}
	if err != nil {
		log.Errorf("Failed to load search data from %s: %v", l.src, err)
		l.idx.Fail(err)
		return
	}
	log.Debugf("Search data loaded in %v: %d mods, %d words", time.Since(start), len(d.Mods), len(d.Words))
}

func (l *Loader) fetch() (*search.Dataset, error) {
	body, format, err := l.src.Fetch()
	if err != nil {
		return nil, err
	}
	defer body.Close()

	d, err := Decode(body, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.src, err)
	}
	return d, nil
}
