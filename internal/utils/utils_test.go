package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.FatalLevel)
}

func TestIsURL(t *testing.T) {
	testCases := []struct {
		location string
		want     bool
	}{
		{"https://example.com/search-data.json", true},
		{"HTTP://example.com/data", true},
		{"public/search-data.json", false},
		{"/srv/search-data.json", false},
		{"ftp://example.com/data", false},
		{"", false},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, IsURL(tc.location), tc.location)
	}
}

func TestResolveDataLocation(t *testing.T) {
	execDir := t.TempDir()
	configDir := t.TempDir()
	pr := &PathResolver{executableDir: execDir, configDir: configDir}

	assert.Equal(t, "https://example.com/d.json", pr.ResolveDataLocation("https://example.com/d.json"))
	assert.Equal(t, filepath.Join(execDir, "x.json"), pr.ResolveDataLocation(filepath.Join(execDir, "x.json")))

	require.NoError(t, os.WriteFile(filepath.Join(configDir, "only-in-config.json"), []byte("{}"), 0644))
	assert.Equal(t, filepath.Join(configDir, "only-in-config.json"), pr.ResolveDataLocation("only-in-config.json"))

	require.NoError(t, os.WriteFile(filepath.Join(execDir, "only-in-config.json"), []byte("{}"), 0644))
	assert.Equal(t, filepath.Join(execDir, "only-in-config.json"), pr.ResolveDataLocation("only-in-config.json"),
		"executable dir wins over config dir")

	cwd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cwd, "missing-everywhere.json"), pr.ResolveDataLocation("missing-everywhere.json"))
}

func TestGetConfigPath(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "modsearch")
	pr := &PathResolver{configDir: configDir, homeDir: t.TempDir(), executableDir: t.TempDir()}

	assert.Equal(t, filepath.Join(configDir, "config.toml"), pr.GetConfigPath("config.toml"))
	assert.DirExists(t, configDir)
}

func TestParseTOMLWithRecovery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
max_limit = 12
name = "local"
`), 0644))

	data, err := ParseTOMLWithRecovery(path)
	require.NoError(t, err)

	server, ok := ExtractSection(data, "server")
	require.True(t, ok)

	limit, ok := ExtractInt64(server, "max_limit")
	assert.True(t, ok)
	assert.Equal(t, 12, limit)

	name, ok := ExtractString(server, "name")
	assert.True(t, ok)
	assert.Equal(t, "local", name)

	_, ok = ExtractInt64(server, "name")
	assert.False(t, ok)
	_, ok = ExtractSection(data, "missing")
	assert.False(t, ok)
}

func TestSaveAndLoadTOMLFile(t *testing.T) {
	type section struct {
		Addr string `toml:"addr"`
		Port int    `toml:"port"`
	}
	path := filepath.Join(t.TempDir(), "nested", "out.toml")

	require.NoError(t, SaveTOMLFile(section{Addr: "localhost", Port: 8000}, path))
	assert.True(t, FileExists(path))

	got := section{Port: 1}
	require.NoError(t, LoadTOMLFile(path, &got))
	assert.Equal(t, section{Addr: "localhost", Port: 8000}, got)
}

func TestCheckDirStatus(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	result := CheckDirStatus(dir)
	assert.NoError(t, result.Error)
	assert.True(t, result.Exists)
	assert.True(t, result.Writable)
	assert.NoFileExists(t, filepath.Join(dir, ".write_test"))
}
