// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for
// the storefront TUI.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.storefront/config.toml
//   - ~/.storefront/config.json
//   - Built-in defaults
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/storefront-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete storefront client configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// API server configuration
	API APIConfig `toml:"api" json:"api"`

	// Session persistence configuration
	Session SessionConfig `toml:"session" json:"session"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`
}

// APIConfig describes how to reach the storefront API server.
type APIConfig struct {
	// BaseURL is the root of the API, e.g. "https://shop.example.com/api".
	BaseURL string `toml:"base_url" json:"base_url"`
	// TimeoutSecs is the per-request timeout in seconds.
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
	// UserAgent overrides the default User-Agent header when non-empty.
	UserAgent string `toml:"user_agent" json:"user_agent"`
}

// SessionConfig controls token persistence between runs.
type SessionConfig struct {
	// Persist keeps tokens on disk so the next run can resume the session.
	Persist bool `toml:"persist" json:"persist"`
	// TokenPath overrides the directory holding the token file
	// (empty = default ~/.storefront/).
	TokenPath string `toml:"token_path" json:"token_path"`
}

// UIConfig contains terminal UI preferences.
type UIConfig struct {
	// Theme is "auto", "dark", or "light".
	Theme string `toml:"theme" json:"theme"`
	// PageSize is the default table rows-per-page. Must be one of
	// 5, 10, 20, 50, 100; other values fall back to 10.
	PageSize int `toml:"page_size" json:"page_size"`
	// CompactMode reduces padding for small terminals.
	CompactMode bool `toml:"compact_mode" json:"compact_mode"`
	// VimMode enables hjkl navigation in tables and menus.
	VimMode bool `toml:"vim_mode" json:"vim_mode"`
}

// pageSizeOptions mirrors the table widget's fixed choice set.
var pageSizeOptions = []int{5, 10, 20, 50, 100}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		API: APIConfig{
			BaseURL:     "",
			TimeoutSecs: 30,
			UserAgent:   "",
		},

		Session: SessionConfig{
			Persist:   true,
			TokenPath: "",
		},

		UI: UIConfig{
			Theme:       "auto",
			PageSize:    10,
			CompactMode: false,
			VimMode:     false,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the storefront configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".storefront"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// ensureSecurePermissions checks and fixes permissions on config files.
// SECURITY: Config files should be 0600 (owner read/write only).
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}
	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()
	var loadErr error

	tomlPath, err := ConfigPathTOML()
	if err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			if err := LoadTOML(cfg, tomlPath); err != nil {
				loadErr = fmt.Errorf("failed to load TOML config: %w", err)
			} else {
				return finishLoad(cfg)
			}
		}
	}

	jsonPath, err := ConfigPathJSON()
	if err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			if err := LoadJSON(cfg, jsonPath); err != nil {
				loadErr = fmt.Errorf("failed to load JSON config: %w", err)
			} else {
				return finishLoad(cfg)
			}
		}
	}

	cfg, err = finishLoad(cfg)
	if err != nil {
		return nil, err
	}
	return cfg, loadErr
}

// finishLoad applies env overrides, normalization, and validation.
func finishLoad(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file.
// SECURITY: Checks and fixes file permissions on load.
func LoadTOML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		// Permissions might not be fixable on all systems.
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON loads configuration from a JSON file.
// SECURITY: Checks and fixes file permissions on load.
func LoadJSON(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// LoadFromPath loads configuration from an explicit path, inferring the
// format from the extension.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := LoadTOML(cfg, path); err != nil {
			return nil, err
		}
	case ".json":
		if err := LoadJSON(cfg, path); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", path)
	}
	return finishLoad(cfg)
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file.
// SECURITY: Creates config files with 0600 permissions (owner read/write only).
func SaveTOML(cfg *Config, path string) error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	if err := os.Chmod(path, 0600); err != nil {
		return fmt.Errorf("failed to set config file permissions: %w", err)
	}

	fmt.Fprintln(file, "# storefront configuration file")
	fmt.Fprintln(file, "# Generated by storefront - edit with care")
	fmt.Fprintln(file, "")

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// SaveJSON saves the configuration to a JSON file.
// RELIABILITY: Atomic write with fsync prevents data loss on crash.
func SaveJSON(cfg *Config, path string) error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION AND NORMALIZATION
// =============================================================================

// SetDefaults fills zero values with defaults and normalizes fields.
func (c *Config) SetDefaults() {
	if c.API.TimeoutSecs <= 0 {
		c.API.TimeoutSecs = 30
	}
	if c.UI.Theme == "" {
		c.UI.Theme = "auto"
	}
	c.UI.PageSize = clampPageSize(c.UI.PageSize)
	c.API.BaseURL = strings.TrimRight(c.API.BaseURL, "/")
}

// clampPageSize snaps the page size to the allowed choice set.
func clampPageSize(size int) int {
	for _, opt := range pageSizeOptions {
		if size == opt {
			return size
		}
	}
	return 10
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.API.BaseURL != "" {
		u, err := url.Parse(c.API.BaseURL)
		if err != nil {
			return fmt.Errorf("api.base_url: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("api.base_url: scheme must be http or https, got %q", u.Scheme)
		}
		if u.Host == "" {
			return fmt.Errorf("api.base_url: missing host")
		}
	}
	switch c.UI.Theme {
	case "auto", "dark", "light":
	default:
		return fmt.Errorf("ui.theme: must be auto, dark, or light, got %q", c.UI.Theme)
	}
	if c.API.TimeoutSecs < 1 || c.API.TimeoutSecs > 300 {
		return fmt.Errorf("api.timeout_secs: must be 1-300, got %d", c.API.TimeoutSecs)
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - STOREFRONT_API_URL: overrides api.base_url
//   - STOREFRONT_TIMEOUT: overrides api.timeout_secs
//   - STOREFRONT_PAGE_SIZE: overrides ui.page_size
//   - STOREFRONT_THEME: overrides ui.theme
//   - STOREFRONT_TOKEN_PATH: overrides session.token_path
//   - STOREFRONT_NO_PERSIST: set to "1" or "true" to disable token persistence
func (c *Config) ApplyEnvOverrides() {
	if u := os.Getenv("STOREFRONT_API_URL"); u != "" {
		c.API.BaseURL = u
	}
	if timeout := os.Getenv("STOREFRONT_TIMEOUT"); timeout != "" {
		if secs, err := strconv.Atoi(timeout); err == nil && secs > 0 {
			c.API.TimeoutSecs = secs
		}
	}
	if size := os.Getenv("STOREFRONT_PAGE_SIZE"); size != "" {
		if n, err := strconv.Atoi(size); err == nil {
			c.UI.PageSize = n
		}
	}
	if theme := os.Getenv("STOREFRONT_THEME"); theme != "" {
		c.UI.Theme = theme
	}
	if path := os.Getenv("STOREFRONT_TOKEN_PATH"); path != "" {
		c.Session.TokenPath = path
	}
	if noPersist := os.Getenv("STOREFRONT_NO_PERSIST"); noPersist != "" {
		c.Session.Persist = !(noPersist == "1" || strings.EqualFold(noPersist, "true"))
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation
// (e.g. "api.base_url").
func (c *Config) Get(key string) (string, error) {
	switch strings.ToLower(key) {
	case "version":
		return c.Version, nil
	case "api.base_url":
		return c.API.BaseURL, nil
	case "api.timeout_secs":
		return strconv.Itoa(c.API.TimeoutSecs), nil
	case "api.user_agent":
		return c.API.UserAgent, nil
	case "session.persist":
		return strconv.FormatBool(c.Session.Persist), nil
	case "session.token_path":
		return c.Session.TokenPath, nil
	case "ui.theme":
		return c.UI.Theme, nil
	case "ui.page_size":
		return strconv.Itoa(c.UI.PageSize), nil
	case "ui.compact_mode":
		return strconv.FormatBool(c.UI.CompactMode), nil
	case "ui.vim_mode":
		return strconv.FormatBool(c.UI.VimMode), nil
	}
	return "", fmt.Errorf("unknown config key: %s", key)
}

// Set updates a configuration value using dot notation. The change is not
// persisted; call Save afterwards.
func (c *Config) Set(key, value string) error {
	switch strings.ToLower(key) {
	case "api.base_url":
		c.API.BaseURL = strings.TrimRight(value, "/")
	case "api.timeout_secs":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("api.timeout_secs: %w", err)
		}
		c.API.TimeoutSecs = n
	case "api.user_agent":
		c.API.UserAgent = value
	case "session.persist":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("session.persist: %w", err)
		}
		c.Session.Persist = b
	case "session.token_path":
		c.Session.TokenPath = value
	case "ui.theme":
		c.UI.Theme = value
	case "ui.page_size":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("ui.page_size: %w", err)
		}
		c.UI.PageSize = clampPageSize(n)
	case "ui.compact_mode":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("ui.compact_mode: %w", err)
		}
		c.UI.CompactMode = b
	case "ui.vim_mode":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("ui.vim_mode: %w", err)
		}
		c.UI.VimMode = b
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return c.Validate()
}

// Keys returns every settable configuration key.
func Keys() []string {
	return []string{
		"api.base_url",
		"api.timeout_secs",
		"api.user_agent",
		"session.persist",
		"session.token_path",
		"ui.theme",
		"ui.page_size",
		"ui.compact_mode",
		"ui.vim_mode",
	}
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
		}
		globalConfig = cfg
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// ReloadGlobal reloads the global configuration from disk. Thread-safe.
func ReloadGlobal() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
	return nil
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	// Consume the once so a later Global() does not clobber this value.
	globalConfigOnce.Do(func() {})
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
