package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// StorageFile is the default store file name in the home directory.
	StorageFile = ".clip_storage.json"

	EnvStoragePath = "CLIP_STORAGE_PATH"
	EnvLogLevel    = "CLIP_LOG_LEVEL"
)

// ErrNoHome is returned when no store path is configured and the home
// directory cannot be determined.
var ErrNoHome = errors.New("cannot determine home directory")

// Settings are the resolved runtime settings for one invocation.
type Settings struct {
	StoragePath string
	LogLevel    string
}

// DefaultStoragePath returns ~/.clip_storage.json.
func DefaultStoragePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", ErrNoHome
	}
	return filepath.Join(home, StorageFile), nil
}

// Resolve loads .env overrides and the global config, then applies
// precedence: environment > config file > defaults.
func Resolve() (*Settings, error) {
	if err := LoadEnv(); err != nil {
		return nil, err
	}

	cfg, err := LoadGlobalConfig()
	if err != nil {
		return nil, err
	}

	s := &Settings{
		StoragePath: cfg.StoragePath,
		LogLevel:    cfg.LogLevel,
	}
	if v := os.Getenv(EnvStoragePath); v != "" {
		s.StoragePath = ExpandPath(v)
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		s.LogLevel = v
	}

	if s.StoragePath == "" {
		path, err := DefaultStoragePath()
		if err != nil {
			return nil, fmt.Errorf("resolving store path: %w", err)
		}
		s.StoragePath = path
	}

	return s, nil
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
