package utils

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
)

// PathResolver resolves data and config locations for the modsearch binaries.
type PathResolver struct {
	executableDir string
	homeDir       string
	configDir     string
}

// NewPathResolver creates a new path resolver that determines the executable location
func NewPathResolver() (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	pr := &PathResolver{
		executableDir: filepath.Dir(execPath),
		homeDir:       homeDir,
		configDir:     getConfigDir(homeDir),
	}
	log.Debugf("PathResolver initialized: execDir=%s, configDir=%s", pr.executableDir, pr.configDir)
	return pr, nil
}

func getConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, "modsearch")
		}
		return filepath.Join(homeDir, ".config", "modsearch")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "modsearch")
		}
		return filepath.Join(homeDir, "AppData", "Roaming", "modsearch")
	default:
		return filepath.Join(homeDir, ".config", "modsearch")
	}
}

// IsURL reports whether a data location should be fetched over HTTP.
func IsURL(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// ResolveDataLocation turns a configured data location into something the
// loader can open. URLs and absolute paths are returned as is; relative
// paths are looked up in this order:
// 1. current working directory
// 2. executable directory
// 3. config directory
// The cwd-relative path is returned when none of them exists.
func (pr *PathResolver) ResolveDataLocation(location string) string {
	if IsURL(location) || filepath.IsAbs(location) {
		return location
	}

	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, location))
	}
	candidates = append(candidates,
		filepath.Join(pr.executableDir, location),
		filepath.Join(pr.configDir, location),
	)

	for _, path := range candidates {
		if FileExists(path) {
			log.Debugf("Found search data at: %s", path)
			return path
		}
		log.Debugf("Search data candidate not found: %s", path)
	}
	if len(candidates) > 0 {
		return candidates[0]
	}
	return location
}

// GetConfigPath returns the full path for a config file, falling back to
// other writable directories when the config dir is read-only.
func (pr *PathResolver) GetConfigPath(filename string) string {
	dirs := []string{
		pr.configDir,
		filepath.Join(pr.homeDir, ".modsearch"),
		filepath.Join(os.TempDir(), "modsearch"),
		pr.executableDir,
	}
	for i, dir := range dirs {
		if CheckDirStatus(dir).Writable {
			path := filepath.Join(dir, filename)
			if i > 0 {
				log.Warnf("Using fallback config location: %s", path)
			}
			return path
		}
	}

	tempPath := filepath.Join(os.TempDir(), filename)
	log.Warnf("Using temporary config file: %s", tempPath)
	return tempPath
}
