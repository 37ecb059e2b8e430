package config

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

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[data]
location = "https://mods.example.org/search-data.json"

[server]
max_limit = 10

[build]
name_rank = 5
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://mods.example.org/search-data.json", cfg.Data.Location)
	assert.Equal(t, 10, cfg.Server.MaxLimit)
	assert.Equal(t, 60, cfg.Server.MaxQuery, "unset keys keep defaults")
	assert.Equal(t, 5, cfg.Build.NameRank)
	assert.Equal(t, 2, cfg.Build.CreatorRank)
	assert.Equal(t, ":8000", cfg.Web.Addr)
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	path := writeConfig(t, `
[data]
location = "mods.json"

[server]
max_limit = "lots"
max_query = 12

[web]
addr = ":9090"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "mods.json", cfg.Data.Location)
	assert.Equal(t, 64, cfg.Server.MaxLimit, "mistyped value falls back to default")
	assert.Equal(t, 12, cfg.Server.MaxQuery)
	assert.Equal(t, ":9090", cfg.Web.Addr)
}

func TestLoadConfigGarbage(t *testing.T) {
	path := writeConfig(t, "this is [not toml")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestInitConfigCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.FileExists(t, path)

	reloaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, reloaded)
}

func TestLoadConfigWithPriorityCustomPath(t *testing.T) {
	path := writeConfig(t, "[cli]\ndefault_limit = 3\n")

	cfg, used, err := LoadConfigWithPriority(path)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, 3, cfg.CLI.DefaultLimit)
}

func TestUpdate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := DefaultConfig()
	limit := 7

	require.NoError(t, cfg.Update(path, &limit, nil, nil))
	assert.Equal(t, 7, cfg.Server.MaxLimit)

	reloaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 7, reloaded.Server.MaxLimit)
	assert.Equal(t, 1, reloaded.Server.MinQuery)

	require.NoError(t, cfg.Update("", nil, &limit, nil), "empty path only updates memory")
	assert.Equal(t, 7, cfg.Server.MinQuery)
}
