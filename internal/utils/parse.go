package utils

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// LoadTOMLFile decodes a TOML file into v. Keys missing from the file keep
// whatever value v already had.
func LoadTOMLFile(path string, v any) error {
	meta, err := toml.DecodeFile(path, v)
	if err != nil {
		log.Warnf("TOML parsing error in %s: %v. Attempting partial recovery...", path, err)
		return err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		log.Warnf("Ignoring unknown keys in %s: %v", path, undecoded)
	}
	return nil
}

// ParseTOMLWithRecovery decodes a TOML file into a generic map so that
// well-formed sections survive a type error elsewhere in the file.
func ParseTOMLWithRecovery(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	raw := make(map[string]any)
	if _, err := toml.Decode(string(data), &raw); err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v", path, err)
		return nil, err
	}
	return raw, nil
}

// ExtractSection returns a TOML table by name.
func ExtractSection(data map[string]any, name string) (map[string]any, bool) {
	section, ok := data[name].(map[string]any)
	return section, ok
}

// ExtractInt64 reads an integer; TOML integers decode as int64.
func ExtractInt64(data map[string]any, key string) (int, bool) {
	if val, ok := data[key].(int64); ok {
		return int(val), true
	}
	return 0, false
}

// ExtractString reads a string value.
func ExtractString(data map[string]any, key string) (string, bool) {
	if val, ok := data[key].(string); ok {
		return val, true
	}
	return "", false
}
