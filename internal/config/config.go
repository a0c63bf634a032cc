// Package config handles the configuration directory, its files, and the
// optional config.yaml settings.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application directory name.
	AppName = "todo"

	// SettingsFile is the optional settings filename.
	SettingsFile = "config.yaml"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	// DefaultDatabase is the task database filename.
	DefaultDatabase = "todo.db"

	// DefaultStorageKey is the key the task list is stored under.
	DefaultStorageKey = "todos"

	// DefaultExportList is the Google Tasks list export writes to.
	DefaultExportList = "To-Do List"
)

// Settings are the values read from config.yaml.
type Settings struct {
	// StorageKey is the key the whole task list is stored under.
	StorageKey string `yaml:"storage_key"`

	// Database is the database file, relative to the config directory
	// unless absolute.
	Database string `yaml:"database"`

	// ExportList is the Google Tasks list title used by export.
	ExportList string `yaml:"export_list"`
}

// DefaultSettings returns the settings used when config.yaml is absent.
func DefaultSettings() Settings {
	return Settings{
		StorageKey: DefaultStorageKey,
		Database:   DefaultDatabase,
		ExportList: DefaultExportList,
	}
}

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	Settings

	// Log receives diagnostics. Nil discards them.
	Log *slog.Logger
}

// New creates a Config for the default or specified config directory and
// reads config.yaml from it if present.
// If configDir is empty, uses XDG_CONFIG_HOME/todo or $HOME/.config/todo.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir, Settings: DefaultSettings()}
	if err := cfg.loadSettings(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadSettings() error {
	path := c.SettingsPath()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &c.Settings); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	// Keys present but blank fall back to defaults.
	def := DefaultSettings()
	if c.StorageKey == "" {
		c.StorageKey = def.StorageKey
	}
	if c.Database == "" {
		c.Database = def.Database
	}
	if c.ExportList == "" {
		c.ExportList = def.ExportList
	}
	return nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// Logger returns the configured logger, or one that discards everything.
func (c *Config) Logger() *slog.Logger {
	if c.Log == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c.Log
}

// SettingsPath returns the path to config.yaml.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, SettingsFile)
}

// DatabasePath returns the path to the task database.
func (c *Config) DatabasePath() string {
	db := c.Database
	if db == "" {
		db = DefaultDatabase
	}
	if filepath.IsAbs(db) {
		return db
	}
	return filepath.Join(c.Dir, db)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
