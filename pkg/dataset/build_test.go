package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bastiangx/modsearch/pkg/search"
	"github.com/gofrs/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `
[[mod]]
name = "Ancient Cave"
creators = ["Eli2", "Some One"]
description = "A  dark cave"

[[mod]]
name = "Blue Sky"
creators = []
description = "Clouds"
`

func TestBuild(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mods.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0644))

	catalog, err := LoadCatalog(path)
	require.NoError(t, err)
	require.Len(t, catalog.Mods, 2)

	d := Build(catalog.Mods, DefaultRanks())

	assert.Equal(t, []search.Mod{
		{Name: "Ancient Cave", Creator: "Eli2, Some One", Description: "A  dark cave"},
		{Name: "Blue Sky", Creator: "", Description: "Clouds"},
	}, d.Mods)
	assert.Equal(t, []search.Word{
		{Text: "ancient", Rank: 1, ModIndex: 0},
		{Text: "cave", Rank: 1, ModIndex: 0},
		{Text: "eli2", Rank: 2, ModIndex: 0},
		{Text: "some", Rank: 2, ModIndex: 0},
		{Text: "one", Rank: 2, ModIndex: 0},
		{Text: "a", Rank: 3, ModIndex: 0},
		{Text: "dark", Rank: 3, ModIndex: 0},
		{Text: "cave", Rank: 3, ModIndex: 0},
		{Text: "blue", Rank: 1, ModIndex: 1},
		{Text: "sky", Rank: 1, ModIndex: 1},
		{Text: "clouds", Rank: 3, ModIndex: 1},
	}, d.Words)
	assert.NoError(t, d.Validate())
}

func TestBuildThenSearch(t *testing.T) {
	d := Build([]CatalogMod{
		{Name: "Cave Story", Creators: []string{"Dark"}, Description: "cave"},
		{Name: "Darkness", Creators: []string{"Eli2"}, Description: "a dark mod"},
	}, DefaultRanks())

	idx := search.NewIndex()
	require.NoError(t, idx.Install(d))

	results := idx.Search("dark")
	require.Len(t, results, 2)
	// "darkness" is a name (rank 1) and beats the creator "dark" (rank 2).
	assert.Equal(t, "Darkness", results[0].Mod.Name)
	assert.Equal(t, "Cave Story", results[1].Mod.Name)
	assert.Equal(t, 2, results[1].Word.Rank)
}

func TestLoadCatalogInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mods.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[mod]\nname ="), 0644))

	_, err := LoadCatalog(path)
	assert.Error(t, err)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	d := Build([]CatalogMod{{Name: "Alpha"}}, DefaultRanks())

	for _, name := range []string{"search-data.json", "out/search-data.msgpack"} {
		path := filepath.Join(dir, name)
		require.NoError(t, WriteFile(path, d))

		src := &FileSource{Path: path}
		body, format, err := src.Fetch()
		require.NoError(t, err)
		got, err := Decode(body, format)
		body.Close()
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}

	assert.ErrorIs(t, WriteFile(filepath.Join(dir, "search.txt"), d), ErrUnknownFormat)
}

func TestWriteFileLocked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "search-data.json")
	held := flock.New(path + ".lock")
	locked, err := held.TryLock()
	require.NoError(t, err)
	require.True(t, locked)
	defer held.Unlock()

	err = WriteFile(path, &search.Dataset{})
	assert.ErrorIs(t, err, ErrBuildLocked)
}
