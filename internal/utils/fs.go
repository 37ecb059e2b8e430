package utils

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// DirCheckResult represents the result of dir checks
type DirCheckResult struct {
	Exists   bool
	Writable bool
	Error    error
}

// FileExists simply checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// EnsureDir creates directory if it doesn't exist
func EnsureDir(dirPath string) error {
	return os.MkdirAll(dirPath, 0755)
}

// SaveTOMLFile writes v as TOML, replacing the file.
func SaveTOMLFile(v any, path string) error {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		log.Errorf("Failed to create directory: %v", err)
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		log.Errorf("Failed to create file: %v", err)
		return err
	}
	if err := toml.NewEncoder(file).Encode(v); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// GetAbsolutePath returns the absolute path of a file, or "unknown" for an empty path.
func GetAbsolutePath(path string) string {
	if path == "" {
		return "unknown"
	}
	if !filepath.IsAbs(path) {
		if absPath, err := filepath.Abs(path); err == nil {
			return absPath
		}
	}
	return path
}

func testWriteAccess(dirPath string) bool {
	testFile := filepath.Join(dirPath, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		log.Warnf("Cannot write to directory %s: %v", dirPath, err)
		return false
	}
	file.Close()
	os.Remove(testFile)
	return true
}

// GetExecutableDir returns the directory of the current executable.
// When this fails too, config init falls back to builtin defaults.
func GetExecutableDir() (string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(execPath), nil
}

// CheckDirStatus reports whether a directory exists (creating it if needed)
// and whether it is writable.
func CheckDirStatus(dirPath string) DirCheckResult {
	result := DirCheckResult{}
	if _, err := os.Stat(dirPath); err != nil {
		if err := os.MkdirAll(dirPath, 0755); err != nil {
			result.Error = err
			log.Warnf("Cannot create directory %s: %v", dirPath, err)
			return result
		}
	}
	result.Exists = true
	result.Writable = testWriteAccess(dirPath)
	return result
}
