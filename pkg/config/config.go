/*
Package config manages TOML config for modsearch services.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/modsearch/internal/utils"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Data   DataConfig   `toml:"data"`
	Server ServerConfig `toml:"server"`
	CLI    CliConfig    `toml:"cli"`
	Web    WebConfig    `toml:"web"`
	Build  BuildConfig  `toml:"build"`
}

// DataConfig tells the loader where search data lives.
// Location is either an http(s) URL or a local file path.
type DataConfig struct {
	Location string `toml:"location"`
}

// ServerConfig has IPC server options.
type ServerConfig struct {
	MaxLimit int `toml:"max_limit"`
	MinQuery int `toml:"min_query"`
	MaxQuery int `toml:"max_query"`
}

// CliConfig holds terminal widget options.
type CliConfig struct {
	DefaultLimit int `toml:"default_limit"`
}

// WebConfig holds the dev web server options.
type WebConfig struct {
	Addr      string `toml:"addr"`
	PublicDir string `toml:"public_dir"`
}

// BuildConfig holds the word ranks used by the dataset builder.
type BuildConfig struct {
	Catalog         string `toml:"catalog"`
	Output          string `toml:"output"`
	NameRank        int    `toml:"name_rank"`
	CreatorRank     int    `toml:"creator_rank"`
	DescriptionRank int    `toml:"description_rank"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/
// 2. ~/Library/Application Support/ (macOS)
// 3. Current executable dir
// 4. builtin defaults
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		execDir, execErr := utils.GetExecutableDir()
		if execErr != nil {
			return "", execErr
		}
		return execDir, nil
	}
	primaryPath := filepath.Join(homeDir, ".config", "modsearch")
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "modsearch")
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/modsearch/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Location: "public/search-data.json",
		},
		Server: ServerConfig{
			MaxLimit: 64,
			MinQuery: 1,
			MaxQuery: 60,
		},
		CLI: CliConfig{
			DefaultLimit: 24,
		},
		Web: WebConfig{
			Addr:      ":8000",
			PublicDir: "public",
		},
		Build: BuildConfig{
			Catalog:         "mods.toml",
			Output:          "public/search-data.json",
			NameRank:        1,
			CreatorRank:     2,
			DescriptionRank: 3,
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse keeps every well-typed value it can find and defaults the rest.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "data"); ok {
		if val, ok := utils.ExtractString(section, "location"); ok {
			config.Data.Location = val
		}
	}
	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		if val, ok := utils.ExtractInt64(section, "default_limit"); ok {
			config.CLI.DefaultLimit = val
		}
	}
	if section, ok := utils.ExtractSection(tempConfig, "web"); ok {
		if val, ok := utils.ExtractString(section, "addr"); ok {
			config.Web.Addr = val
		}
		if val, ok := utils.ExtractString(section, "public_dir"); ok {
			config.Web.PublicDir = val
		}
	}
	if section, ok := utils.ExtractSection(tempConfig, "build"); ok {
		extractBuildConfig(section, &config.Build)
	}
	return config, nil
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_limit"); ok {
		server.MaxLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "min_query"); ok {
		server.MinQuery = val
	}
	if val, ok := utils.ExtractInt64(data, "max_query"); ok {
		server.MaxQuery = val
	}
}

func extractBuildConfig(data map[string]any, build *BuildConfig) {
	if val, ok := utils.ExtractString(data, "catalog"); ok {
		build.Catalog = val
	}
	if val, ok := utils.ExtractString(data, "output"); ok {
		build.Output = val
	}
	if val, ok := utils.ExtractInt64(data, "name_rank"); ok {
		build.NameRank = val
	}
	if val, ok := utils.ExtractInt64(data, "creator_rank"); ok {
		build.CreatorRank = val
	}
	if val, ok := utils.ExtractInt64(data, "description_rank"); ok {
		build.DescriptionRank = val
	}
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// Update changes the server limits and saves to file
func (c *Config) Update(configPath string, maxLimit, minQuery, maxQuery *int) error {
	server := &c.Server
	if maxLimit != nil {
		server.MaxLimit = *maxLimit
	}
	if minQuery != nil {
		server.MinQuery = *minQuery
	}
	if maxQuery != nil {
		server.MaxQuery = *maxQuery
	}
	if configPath == "" {
		return nil
	}
	return SaveConfig(c, configPath)
}
