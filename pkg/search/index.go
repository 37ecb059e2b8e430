package search

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// State is the lifecycle of an Index.
type State int32

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// snapshot is never mutated after it is built.
type snapshot struct {
	mods  []Mod
	words []Word
	trie  *patricia.Trie
	keys  int
}

var emptySnapshot = &snapshot{trie: patricia.NewTrie()}

// Index holds the loaded mods and words shared by every query.
// It starts uninitialized and is filled once by a loader.
type Index struct {
	mu       sync.RWMutex
	state    State
	snap     *snapshot
	err      error
	done     chan struct{}
	doneOnce sync.Once
}

// NewIndex creates an empty, uninitialized index.
func NewIndex() *Index {
	return &Index{
		state: StateUninitialized,
		snap:  emptySnapshot,
		done:  make(chan struct{}),
	}
}

// Begin moves the index from uninitialized to loading.
// It reports false when a load was already started, finished or failed.
func (idx *Index) Begin() bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.state != StateUninitialized {
		return false
	}
	idx.state = StateLoading
	return true
}

// Install validates the dataset, builds the prefix trie and marks the index ready.
// An invalid dataset leaves the index untouched.
func (idx *Index) Install(d *Dataset) error {
	if err := d.Validate(); err != nil {
		return err
	}
	snap := buildSnapshot(d)

	idx.mu.Lock()
	idx.snap = snap
	idx.state = StateReady
	idx.err = nil
	idx.mu.Unlock()

	idx.settle()
	log.Debugf("Index ready: %d mods, %d words, %d keys", len(snap.mods), len(snap.words), snap.keys)
	return nil
}

// Fail marks the index as permanently failed for this session.
func (idx *Index) Fail(err error) {
	idx.mu.Lock()
	idx.state = StateFailed
	idx.err = err
	idx.mu.Unlock()

	idx.settle()
}

func (idx *Index) settle() {
	idx.doneOnce.Do(func() { close(idx.done) })
}

// State returns the current lifecycle state.
func (idx *Index) State() State {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.state
}

// Err returns the load error, if the index failed.
func (idx *Index) Err() error {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.err
}

// Done is closed once the index becomes ready or failed.
func (idx *Index) Done() <-chan struct{} {
	return idx.done
}

// Stats returns counters about the loaded data.
func (idx *Index) Stats() map[string]int {
	snap := idx.current()
	return map[string]int{
		"mods":  len(snap.mods),
		"words": len(snap.words),
		"keys":  snap.keys,
		"state": int(idx.State()),
	}
}

func (idx *Index) current() *snapshot {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.snap
}

// buildSnapshot keys the trie by word text. Each item is the list of word
// positions sharing that text, in dataset order.
func buildSnapshot(d *Dataset) *snapshot {
	positions := make(map[string][]int, len(d.Words))
	order := make([]string, 0, len(d.Words))
	for i, w := range d.Words {
		// Empty text can never match a non-empty query.
		if w.Text == "" {
			continue
		}
		if _, seen := positions[w.Text]; !seen {
			order = append(order, w.Text)
		}
		positions[w.Text] = append(positions[w.Text], i)
	}

	trie := patricia.NewTrie()
	for _, text := range order {
		trie.Insert(patricia.Prefix(text), positions[text])
	}

	return &snapshot{
		mods:  d.Mods,
		words: d.Words,
		trie:  trie,
		keys:  len(order),
	}
}
