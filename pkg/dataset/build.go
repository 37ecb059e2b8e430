package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bastiangx/modsearch/pkg/search"
	"github.com/charmbracelet/log"
	"github.com/gofrs/flock"
)

// ErrBuildLocked is returned when another build holds the output lock.
var ErrBuildLocked = errors.New("another build is writing the search data")

// CatalogMod is one mod as described by its maintainers.
type CatalogMod struct {
	Name        string   `toml:"name"`
	Creators    []string `toml:"creators"`
	Description string   `toml:"description"`
}

// Catalog is the TOML input of the builder.
//
//	[[mod]]
//	name = "Ancient Cave"
//	creators = ["Eli2"]
//	description = "A dark cave"
type Catalog struct {
	Mods []CatalogMod `toml:"mod"`
}

// Ranks are the word ranks given to each field. Lower ranks sort first.
type Ranks struct {
	Name        int
	Creator     int
	Description int
}

// DefaultRanks favours names, then creators, then descriptions.
func DefaultRanks() Ranks {
	return Ranks{Name: 1, Creator: 2, Description: 3}
}

// LoadCatalog parses a TOML catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	var c Catalog
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	return &c, nil
}

// Build turns catalog mods into the searchable dataset. Every field is
// lower-cased and split on whitespace; each token becomes a word pointing
// back at its mod with the rank of the field it came from.
func Build(mods []CatalogMod, ranks Ranks) *search.Dataset {
	d := &search.Dataset{
		Mods:  make([]search.Mod, 0, len(mods)),
		Words: []search.Word{},
	}

	for i, m := range mods {
		d.Mods = append(d.Mods, search.Mod{
			Name:        m.Name,
			Creator:     strings.Join(m.Creators, ", "),
			Description: m.Description,
		})
		d.Words = appendWords(d.Words, m.Name, ranks.Name, i)
		for _, creator := range m.Creators {
			d.Words = appendWords(d.Words, creator, ranks.Creator, i)
		}
		d.Words = appendWords(d.Words, m.Description, ranks.Description, i)
	}

	log.Debugf("Built search data: %d mods, %d words", len(d.Mods), len(d.Words))
	return d
}

func appendWords(words []search.Word, text string, rank, modIndex int) []search.Word {
	for _, token := range strings.Fields(search.Normalize(text)) {
		words = append(words, search.Word{Text: token, Rank: rank, ModIndex: modIndex})
	}
	return words
}

// WriteFile encodes the dataset next to path and renames it into place.
// The encoding follows the extension of path.
func WriteFile(path string, d *search.Dataset) error {
	format, err := DetectFormat(path)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("cannot acquire build lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("%s: %w", path, ErrBuildLocked)
	}
	defer func() { _ = lock.Unlock() }()

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, d, format); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode search data: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move search data into %s: %w", path, err)
	}
	return nil
}
