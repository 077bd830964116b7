package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// LoggingConfig configures application logging.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

// ScanConfig holds traversal defaults applied when the corresponding flag
// is not given on the command line.
type ScanConfig struct {
	IncludeHidden  bool     `mapstructure:"include_hidden"`
	FollowSymlinks bool     `mapstructure:"follow_symlinks"`
	MaxDepth       int      `mapstructure:"max_depth"`
	Hashes         bool     `mapstructure:"hashes"`
	Exclude        []string `mapstructure:"exclude"`
	Workers        int      `mapstructure:"workers"`
}

// Config represents the application configuration.
type Config struct {
	DefaultPath string        `mapstructure:"default_path"`
	Scan        ScanConfig    `mapstructure:"scan"`
	Logging     LoggingConfig `mapstructure:"logging"`
}

// Load loads configuration from file and environment variables.
// Config file locations (in order of precedence):
//   - $XDG_CONFIG_HOME/splendir/config.yaml
//   - $HOME/.config/splendir/config.yaml
//
// Environment variables are prefixed with SPLENDIR_
// (e.g., SPLENDIR_SCAN_WORKERS).
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		v.AddConfigPath(filepath.Join(xdgConfigHome, "splendir"))
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	v.AddConfigPath(filepath.Join(homeDir, ".config", "splendir"))

	v.SetEnvPrefix("SPLENDIR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("default_path", DefaultPath)
	v.SetDefault("scan.include_hidden", false)
	v.SetDefault("scan.follow_symlinks", false)
	v.SetDefault("scan.max_depth", 0)
	v.SetDefault("scan.hashes", true)
	v.SetDefault("scan.exclude", DefaultExclusions)
	v.SetDefault("scan.workers", DefaultWorkers())

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.path", "") // Empty means use the XDG state path

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// ConfigDir returns the configuration directory path.
func ConfigDir() (string, error) {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, "splendir"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", "splendir"), nil
}

// EnsureConfigDir creates the config directory if it doesn't exist.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return nil
}

// WriteDefault writes a default config file if none exists.
// Returns nil if a config file already exists.
func WriteDefault() error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}

	configDir, err := ConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.yaml")

	if _, err := os.Stat(configPath); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to check config file: %w", err)
	}

	defaultConfig := fmt.Sprintf(`# Splendir Directory Scanner Configuration

# Default path to scan when none is specified
default_path: %s

# Traversal defaults (overridden by command-line flags)
scan:
  include_hidden: false
  follow_symlinks: false
  # Maximum traversal depth; 0 means unlimited
  max_depth: 0
  # Compute SHA-256 and MD5 digests for regular files
  hashes: true
  exclude:
    - /proc
    - /sys
    - /dev
  workers: %d

# Logging configuration
logging:
  # Log level: debug, info, warn, error
  level: info
  # Log file path (empty means use default: $XDG_STATE_HOME/splendir/splendir.log)
  path: ""
`, DefaultPath, DefaultWorkers())

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("failed to write default config: %w", err)
	}

	return nil
}

// ExpandPath expands ~ in a path to the user's home directory.
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, path[1:]), nil
}

// StateDir returns $XDG_STATE_HOME/splendir/ for log files.
func StateDir() string {
	return filepath.Join(xdg.StateHome, "splendir")
}

// EnsureStateDir creates the state directory if it doesn't exist.
func EnsureStateDir() error {
	if err := os.MkdirAll(StateDir(), 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	return nil
}
