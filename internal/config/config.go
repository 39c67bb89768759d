// Package config provides configuration loading for the vault CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all vault configuration.
type Config struct {
	// DataDir is the directory holding the vault database.
	DataDir string `yaml:"data_dir"`

	// BackupDir is the default directory for export files.
	BackupDir string `yaml:"backup_dir"`

	// Environment selects the logging profile (development or
	// production).
	Environment string `yaml:"environment"`

	// LogLevel overrides the profile's default level.
	LogLevel string `yaml:"log_level"`
}

// Load loads configuration using a hierarchy of sources.
// The loading order (from lowest to highest priority):
//  1. Built-in defaults
//  2. Config file (VAULT_CONFIG, or config.yaml under the user config dir)
//  3. .env file in the working directory
//  4. Environment variables
func Load() (*Config, error) {
	cfg := defaultConfig()

	path := configFilePath()
	if err := loadFile(path, cfg); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
	}

	// A missing .env file is fine
	_ = godotenv.Load()

	cfg.DataDir = getEnv("VAULT_DATA_DIR", cfg.DataDir)
	cfg.BackupDir = getEnv("VAULT_BACKUP_DIR", cfg.BackupDir)
	cfg.Environment = getEnv("VAULT_ENV", cfg.Environment)
	cfg.LogLevel = getEnv("VAULT_LOG_LEVEL", cfg.LogLevel)

	return cfg, nil
}

// defaultConfig returns the built-in defaults. The CLI stays quiet
// unless something goes wrong.
func defaultConfig() *Config {
	return &Config{
		DataDir:     filepath.Join(homeDir(), ".local", "share", "ideavault"),
		BackupDir:   ".",
		Environment: "production",
		LogLevel:    "warn",
	}
}

// configFilePath returns the config file location. VAULT_CONFIG wins;
// otherwise the platform user config dir is used.
func configFilePath() string {
	if path := os.Getenv("VAULT_CONFIG"); path != "" {
		return path
	}
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, "ideavault", "config.yaml")
}

// loadFile overlays values from a YAML file onto cfg. Fields absent
// from the file keep their current values.
func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("invalid YAML: %w", err)
	}
	return nil
}

// getEnv retrieves an environment variable with a fallback.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
