// Package config handles global configuration and store path resolution.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// GlobalConfig represents configuration stored in ~/.config/clip/config.yml.
type GlobalConfig struct {
	StoragePath string `yaml:"storage_path,omitempty"`
	LogLevel    string `yaml:"log_level,omitempty"`
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "clip"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
	// EnvFile holds environment overrides next to the config file.
	EnvFile = ".env"
)

// globalConfigCache caches the loaded global config.
var globalConfigCache *GlobalConfig

// GlobalConfigDirPath returns the clip config directory.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/clip.
func GlobalConfigDirPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir)
}

// GlobalConfigPath returns the path to the global config file.
func GlobalConfigPath() string {
	dir := GlobalConfigDirPath()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, GlobalConfigFile)
}

// EnvFilePath returns the path to the .env override file.
func EnvFilePath() string {
	dir := GlobalConfigDirPath()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, EnvFile)
}

// LoadEnv loads the .env file into the process environment if it exists.
// Variables already set in the environment win.
func LoadEnv() error {
	path := EnvFilePath()
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// LoadGlobalConfig loads the global configuration file.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadGlobalConfig() (*GlobalConfig, error) {
	if globalConfigCache != nil {
		return globalConfigCache, nil
	}

	path := GlobalConfigPath()
	if path == "" {
		return &GlobalConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GlobalConfig{}, nil
		}
		return nil, fmt.Errorf("reading global config: %w", err)
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing global config: %w", err)
	}

	if cfg.StoragePath != "" {
		cfg.StoragePath = ExpandPath(cfg.StoragePath)
	}

	globalConfigCache = &cfg
	return &cfg, nil
}

// ResetGlobalConfigCache clears the cached global config.
// Useful for testing.
func ResetGlobalConfigCache() {
	globalConfigCache = nil
}
