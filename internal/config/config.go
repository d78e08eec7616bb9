// Package config loads and validates QuranKit configuration.
//
// Configuration is layered, in order of increasing precedence:
//  1. Hardcoded defaults
//  2. User config (~/.config/qurankit/config.yaml)
//  3. Data-directory config (qurankit.yaml next to the databases)
//  4. Environment variables (QURANKIT_*)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete QuranKit configuration.
type Config struct {
	Version int           `yaml:"version" json:"version"`
	Data    DataConfig    `yaml:"data" json:"data"`
	Search  SearchConfig  `yaml:"search" json:"search"`
	Recents RecentsConfig `yaml:"recents" json:"recents"`
	Watch   WatchConfig   `yaml:"watch" json:"watch"`
	Server  ServerConfig  `yaml:"server" json:"server"`
}

// DataConfig locates the databases on disk.
type DataConfig struct {
	// Dir is the data directory holding quran.db and the translations
	// subdirectory. Defaults to ~/.qurankit.
	Dir string `yaml:"dir" json:"dir"`
	// QuranDB overrides the Arabic scripture database path. Empty means
	// <dir>/quran.db.
	QuranDB string `yaml:"quran_db" json:"quran_db"`
	// TranslationsDir overrides the translations directory. Empty means
	// <dir>/translations.
	TranslationsDir string `yaml:"translations_dir" json:"translations_dir"`
}

// SearchConfig tunes the search core.
type SearchConfig struct {
	// Language selects localized division and sura names: "ar" or "en".
	Language string `yaml:"language" json:"language"`
	// MaxResults caps verses returned per corpus by the coarse filter.
	MaxResults int `yaml:"max_results" json:"max_results"`
	// AutocompleteLimit caps candidate lines fed to suggestion synthesis.
	AutocompleteLimit int `yaml:"autocomplete_limit" json:"autocomplete_limit"`
	// CacheSize is the per-store verse text LRU capacity.
	CacheSize int `yaml:"cache_size" json:"cache_size"`
}

// RecentsConfig configures the recent-queries list.
type RecentsConfig struct {
	// Path overrides the recents file location. Empty means
	// <data.dir>/recents.json.
	Path string `yaml:"path" json:"path"`
	// MaxEntries caps the list length. Defaults to 50.
	MaxEntries int `yaml:"max_entries" json:"max_entries"`
}

// WatchConfig configures the translations-directory watcher.
type WatchConfig struct {
	// Enabled starts the watcher in long-running modes (serve, TUI).
	Enabled bool `yaml:"enabled" json:"enabled"`
	// Debounce coalesces bursts of file events, e.g. "500ms".
	Debounce string `yaml:"debounce" json:"debounce"`
}

// ServerConfig configures the MCP server.
type ServerConfig struct {
	Transport string `yaml:"transport" json:"transport"`
	LogLevel  string `yaml:"log_level" json:"log_level"`
}

// NewConfig creates a new Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Version: 1,
		Data: DataConfig{
			Dir: defaultDataDir(),
		},
		Search: SearchConfig{
			Language:          "en",
			MaxResults:        500,
			AutocompleteLimit: 100,
			CacheSize:         512,
		},
		Recents: RecentsConfig{
			MaxEntries: 50,
		},
		Watch: WatchConfig{
			Enabled:  true,
			Debounce: "500ms",
		},
		Server: ServerConfig{
			Transport: "stdio",
			LogLevel:  "info",
		},
	}
}

// QuranDBPath resolves the scripture database path.
func (c *Config) QuranDBPath() string {
	if c.Data.QuranDB != "" {
		return c.Data.QuranDB
	}
	return filepath.Join(c.Data.Dir, "quran.db")
}

// TranslationsPath resolves the translations directory.
func (c *Config) TranslationsPath() string {
	if c.Data.TranslationsDir != "" {
		return c.Data.TranslationsDir
	}
	return filepath.Join(c.Data.Dir, "translations")
}

// RecentsPath resolves the recents file location.
func (c *Config) RecentsPath() string {
	if c.Recents.Path != "" {
		return c.Recents.Path
	}
	return filepath.Join(c.Data.Dir, "recents.json")
}

// WatchDebounce parses the debounce interval, falling back to the default
// when unset.
func (c *Config) WatchDebounce() time.Duration {
	if c.Watch.Debounce == "" {
		return 500 * time.Millisecond
	}
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return 500 * time.Millisecond
	}
	return d
}

// defaultDataDir returns the default data directory.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".qurankit")
	}
	return filepath.Join(home, ".qurankit")
}

// GetUserConfigPath returns the path to the user configuration file.
// It follows the XDG Base Directory specification:
//   - $XDG_CONFIG_HOME/qurankit/config.yaml (if XDG_CONFIG_HOME is set)
//   - ~/.config/qurankit/config.yaml (default)
func GetUserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "qurankit", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", "qurankit", "config.yaml")
	}
	return filepath.Join(home, ".config", "qurankit", "config.yaml")
}

// GetUserConfigDir returns the directory containing the user configuration.
func GetUserConfigDir() string {
	return filepath.Dir(GetUserConfigPath())
}

// UserConfigExists returns true if the user configuration file exists.
func UserConfigExists() bool {
	return fileExists(GetUserConfigPath())
}

// loadUserConfig loads the user configuration file if it exists.
// Returns nil config and nil error if the file doesn't exist.
func loadUserConfig() (*Config, error) {
	configPath := GetUserConfigPath()
	if !fileExists(configPath) {
		return nil, nil
	}

	cfg := NewConfig()
	if err := cfg.loadYAML(configPath); err != nil {
		return nil, fmt.Errorf("failed to load user config from %s: %w", configPath, err)
	}
	return cfg, nil
}

// Load loads configuration layered over the given data directory.
// Pass "" to use the default data directory.
func Load(dir string) (*Config, error) {
	cfg := NewConfig()
	if dir != "" {
		cfg.Data.Dir = dir
	}

	if userCfg, err := loadUserConfig(); err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	} else if userCfg != nil {
		cfg.mergeWith(userCfg)
		if dir != "" {
			cfg.Data.Dir = dir // explicit dir wins over user config
		}
	}

	if err := cfg.loadFromDir(cfg.Data.Dir); err != nil {
		return nil, err
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadFromDir attempts to load qurankit.yaml or qurankit.yml from dir.
func (c *Config) loadFromDir(dir string) error {
	yamlPath := filepath.Join(dir, "qurankit.yaml")
	if _, err := os.Stat(yamlPath); err == nil {
		return c.loadYAML(yamlPath)
	}

	ymlPath := filepath.Join(dir, "qurankit.yml")
	if _, err := os.Stat(ymlPath); err == nil {
		return c.loadYAML(ymlPath)
	}

	// No config file is fine - use defaults
	return nil
}

// loadYAML loads and merges configuration from a YAML file.
func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	c.mergeWith(&parsed)
	return nil
}

// mergeWith merges non-zero values from other into c.
func (c *Config) mergeWith(other *Config) {
	if other.Version != 0 {
		c.Version = other.Version
	}

	if other.Data.Dir != "" {
		c.Data.Dir = other.Data.Dir
	}
	if other.Data.QuranDB != "" {
		c.Data.QuranDB = other.Data.QuranDB
	}
	if other.Data.TranslationsDir != "" {
		c.Data.TranslationsDir = other.Data.TranslationsDir
	}

	if other.Search.Language != "" {
		c.Search.Language = other.Search.Language
	}
	if other.Search.MaxResults != 0 {
		c.Search.MaxResults = other.Search.MaxResults
	}
	if other.Search.AutocompleteLimit != 0 {
		c.Search.AutocompleteLimit = other.Search.AutocompleteLimit
	}
	if other.Search.CacheSize != 0 {
		c.Search.CacheSize = other.Search.CacheSize
	}

	if other.Recents.Path != "" {
		c.Recents.Path = other.Recents.Path
	}
	if other.Recents.MaxEntries != 0 {
		c.Recents.MaxEntries = other.Recents.MaxEntries
	}

	// Enabled is boolean, so treat any watch config as an explicit choice.
	if other.Watch.Debounce != "" || other.Watch.Enabled {
		c.Watch.Enabled = other.Watch.Enabled
	}
	if other.Watch.Debounce != "" {
		c.Watch.Debounce = other.Watch.Debounce
	}

	if other.Server.Transport != "" {
		c.Server.Transport = other.Server.Transport
	}
	if other.Server.LogLevel != "" {
		c.Server.LogLevel = other.Server.LogLevel
	}
}

// applyEnvOverrides applies QURANKIT_* environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("QURANKIT_DATA_DIR"); v != "" {
		c.Data.Dir = v
	}
	if v := os.Getenv("QURANKIT_QURAN_DB"); v != "" {
		c.Data.QuranDB = v
	}
	if v := os.Getenv("QURANKIT_TRANSLATIONS_DIR"); v != "" {
		c.Data.TranslationsDir = v
	}
	if v := os.Getenv("QURANKIT_LANGUAGE"); v != "" {
		c.Search.Language = v
	}
	if v := os.Getenv("QURANKIT_MAX_RESULTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Search.MaxResults = n
		}
	}
	if v := os.Getenv("QURANKIT_WATCH_DEBOUNCE"); v != "" {
		c.Watch.Debounce = v
	}
	if v := os.Getenv("QURANKIT_LOG_LEVEL"); v != "" {
		c.Server.LogLevel = v
	}
	if v := os.Getenv("QURANKIT_TRANSPORT"); v != "" {
		c.Server.Transport = v
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	validLanguages := map[string]bool{"ar": true, "en": true}
	if !validLanguages[strings.ToLower(c.Search.Language)] {
		return fmt.Errorf("search.language must be 'ar' or 'en', got %s", c.Search.Language)
	}

	if c.Search.MaxResults < 0 {
		return fmt.Errorf("search.max_results must be non-negative, got %d", c.Search.MaxResults)
	}
	if c.Search.AutocompleteLimit < 0 {
		return fmt.Errorf("search.autocomplete_limit must be non-negative, got %d", c.Search.AutocompleteLimit)
	}
	if c.Search.CacheSize < 0 {
		return fmt.Errorf("search.cache_size must be non-negative, got %d", c.Search.CacheSize)
	}
	if c.Recents.MaxEntries < 0 {
		return fmt.Errorf("recents.max_entries must be non-negative, got %d", c.Recents.MaxEntries)
	}

	if c.Watch.Debounce != "" {
		if _, err := time.ParseDuration(c.Watch.Debounce); err != nil {
			return fmt.Errorf("watch.debounce must be a duration like '500ms', got %s", c.Watch.Debounce)
		}
	}

	validTransports := map[string]bool{"stdio": true}
	if !validTransports[strings.ToLower(c.Server.Transport)] {
		return fmt.Errorf("server.transport must be 'stdio', got %s", c.Server.Transport)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Server.LogLevel)] {
		return fmt.Errorf("server.log_level must be 'debug', 'info', 'warn', or 'error', got %s", c.Server.LogLevel)
	}

	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// LoadUserConfig loads the user configuration file.
// Returns nil config and nil error if the file doesn't exist.
func LoadUserConfig() (*Config, error) {
	return loadUserConfig()
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
