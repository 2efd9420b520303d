// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for link2clash.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.link2clash/config.toml
//   - ~/.link2clash/config.json
//   - Built-in defaults
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/jeranaias/link2clash-tui/internal/compose"
	"github.com/jeranaias/link2clash-tui/internal/convert"
	"github.com/jeranaias/link2clash-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete link2clash configuration.
type Config struct {
	// Conversion engine connection
	Engine EngineConfig `toml:"engine" json:"engine"`

	// Document scaffolding
	Compose ComposeConfig `toml:"compose" json:"compose"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`

	// Clipboard behaviour
	Clipboard ClipboardConfig `toml:"clipboard" json:"clipboard"`
}

// EngineConfig locates the conversion engine.
type EngineConfig struct {
	// URL is the engine base URL
	URL string `toml:"url" json:"url"`
	// Endpoint is the conversion path
	Endpoint string `toml:"endpoint" json:"endpoint"`
	// TimeoutSecs bounds one conversion request
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
}

// ComposeConfig customises the composed document.
type ComposeConfig struct {
	// GroupName is the name of the generated proxy group
	GroupName string `toml:"group_name" json:"group_name"`
	// GroupType is the Clash group type: select, url-test, fallback, load-balance
	GroupType string `toml:"group_type" json:"group_type"`
	// Fallbacks are literal members appended to the group
	Fallbacks []string `toml:"fallbacks" json:"fallbacks"`
	// Rules precede the final MATCH rule
	Rules []string `toml:"rules" json:"rules"`
	// PlaceholderFile replaces the built-in placeholder document when set
	PlaceholderFile string `toml:"placeholder_file" json:"placeholder_file"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme" json:"theme"`
	// StatusDelayMs is how long a status line stays visible
	StatusDelayMs int `toml:"status_delay_ms" json:"status_delay_ms"`
	// Highlight enables YAML syntax highlighting of the document
	Highlight bool `toml:"highlight" json:"highlight"`
	// HighlightStyle is the chroma style name
	HighlightStyle string `toml:"highlight_style" json:"highlight_style"`
}

// ClipboardConfig controls the copy fallback.
type ClipboardConfig struct {
	// OSC52Fallback writes an OSC 52 sequence to the terminal when the
	// system clipboard is unavailable
	OSC52Fallback bool `toml:"osc52_fallback" json:"osc52_fallback"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	client := convert.DefaultConfig()
	tmpl := compose.DefaultTemplate()

	return &Config{
		Engine: EngineConfig{
			URL:         client.BaseURL,
			Endpoint:    client.Endpoint,
			TimeoutSecs: int(client.Timeout / time.Second),
		},
		Compose: ComposeConfig{
			GroupName: tmpl.GroupName,
			GroupType: tmpl.GroupType,
			Fallbacks: tmpl.Fallbacks,
			Rules:     tmpl.Rules,
		},
		UI: UIConfig{
			Theme:          "auto",
			StatusDelayMs:  2200,
			Highlight:      true,
			HighlightStyle: "monokai",
		},
		Clipboard: ClipboardConfig{
			OSC52Fallback: true,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the link2clash configuration directory path.
// LINK2CLASH_HOME overrides the default of ~/.link2clash.
func ConfigDir() (string, error) {
	if dir := os.Getenv("LINK2CLASH_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".link2clash"), nil
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

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// LoadDotEnv loads KEY=VALUE pairs from path into the environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	if path, err := ConfigPathTOML(); err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return LoadFromPath(path)
		}
	}

	if path, err := ConfigPathJSON(); err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return LoadFromPath(path)
		}
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file path with full validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg. Keys missing from the file keep
// their current values.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		log.Printf("CONFIG_UNKNOWN_KEYS | path=%s keys=%s", path, strings.Join(keys, ","))
	}
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// fillDefaults fills in any missing values with defaults.
func (c *Config) fillDefaults() {
	defaults := Default()

	if c.Engine.URL == "" {
		c.Engine.URL = defaults.Engine.URL
	}
	if c.Engine.Endpoint == "" {
		c.Engine.Endpoint = defaults.Engine.Endpoint
	}
	if c.Engine.TimeoutSecs == 0 {
		c.Engine.TimeoutSecs = defaults.Engine.TimeoutSecs
	}

	if c.Compose.GroupName == "" {
		c.Compose.GroupName = defaults.Compose.GroupName
	}
	if c.Compose.GroupType == "" {
		c.Compose.GroupType = defaults.Compose.GroupType
	}

	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	if c.UI.StatusDelayMs == 0 {
		c.UI.StatusDelayMs = defaults.UI.StatusDelayMs
	}
	if c.UI.HighlightStyle == "" {
		c.UI.HighlightStyle = defaults.UI.HighlightStyle
	}
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
func SaveTOML(cfg *Config, path string) error {
	data, err := cfg.TOML()
	if err != nil {
		return err
	}
	if err := util.AtomicWriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON saves the configuration to a JSON file.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// TOML renders the configuration as a commented TOML document.
func (c *Config) TOML() ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# link2clash configuration file")
	fmt.Fprintln(&buf, "# Generated by link2clash - edit with care")
	fmt.Fprintln(&buf, "")

	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

var (
	validGroupTypes = map[string]bool{
		"select": true, "url-test": true, "fallback": true, "load-balance": true, "relay": true,
	}
	validThemes = map[string]bool{"auto": true, "dark": true, "light": true}
)

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	// Engine
	if u, err := url.Parse(c.Engine.URL); err != nil {
		errs = append(errs, ValidationError{
			Field:   "engine.url",
			Message: fmt.Sprintf("invalid URL: %v", err),
		})
	} else if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "engine.url",
			Message: fmt.Sprintf("'%s' must be an absolute http or https URL", c.Engine.URL),
		})
	}
	if !strings.HasPrefix(c.Engine.Endpoint, "/") {
		errs = append(errs, ValidationError{
			Field:   "engine.endpoint",
			Message: fmt.Sprintf("'%s' must start with '/'", c.Engine.Endpoint),
		})
	}
	if c.Engine.TimeoutSecs < 1 || c.Engine.TimeoutSecs > 600 {
		errs = append(errs, ValidationError{
			Field:   "engine.timeout_secs",
			Message: fmt.Sprintf("%d out of range, must be between 1 and 600", c.Engine.TimeoutSecs),
		})
	}

	// Compose
	if strings.ContainsAny(c.Compose.GroupName, "\r\n") {
		errs = append(errs, ValidationError{
			Field:   "compose.group_name",
			Message: "must be a single line",
		})
	}
	if !validGroupTypes[c.Compose.GroupType] {
		errs = append(errs, ValidationError{
			Field:   "compose.group_type",
			Message: fmt.Sprintf("invalid type '%s', must be one of: select, url-test, fallback, load-balance, relay", c.Compose.GroupType),
		})
	}
	for i, rule := range c.Compose.Rules {
		if strings.TrimSpace(rule) == "" || strings.ContainsAny(rule, "\r\n") {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("compose.rules[%d]", i),
				Message: "must be a non-empty single line",
			})
		}
	}
	for i, member := range c.Compose.Fallbacks {
		if strings.TrimSpace(member) == "" || strings.ContainsAny(member, "\r\n") {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("compose.fallbacks[%d]", i),
				Message: "must be a non-empty single line",
			})
		}
	}

	// UI
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: auto, dark, light", c.UI.Theme),
		})
	}
	if c.UI.StatusDelayMs < 100 || c.UI.StatusDelayMs > 60000 {
		errs = append(errs, ValidationError{
			Field:   "ui.status_delay_ms",
			Message: fmt.Sprintf("%d out of range, must be between 100 and 60000", c.UI.StatusDelayMs),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides:
//   - LINK2CLASH_ENGINE_URL: overrides engine.url
//   - LINK2CLASH_ENDPOINT: overrides engine.endpoint
//   - LINK2CLASH_TIMEOUT: overrides engine.timeout_secs
//   - LINK2CLASH_STATUS_DELAY_MS: overrides ui.status_delay_ms
//   - LINK2CLASH_GROUP: overrides compose.group_name
//   - LINK2CLASH_THEME: overrides ui.theme
//   - LINK2CLASH_NO_OSC52: disables clipboard.osc52_fallback
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("LINK2CLASH_ENGINE_URL"); v != "" {
		c.Engine.URL = v
	}
	if v := os.Getenv("LINK2CLASH_ENDPOINT"); v != "" {
		c.Engine.Endpoint = v
	}
	if v := os.Getenv("LINK2CLASH_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Engine.TimeoutSecs = n
		} else {
			log.Printf("CONFIG_ENV_IGNORED | var=LINK2CLASH_TIMEOUT value=%q", v)
		}
	}
	if v := os.Getenv("LINK2CLASH_STATUS_DELAY_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.UI.StatusDelayMs = n
		} else {
			log.Printf("CONFIG_ENV_IGNORED | var=LINK2CLASH_STATUS_DELAY_MS value=%q", v)
		}
	}
	if v := os.Getenv("LINK2CLASH_GROUP"); v != "" {
		c.Compose.GroupName = v
	}
	if v := os.Getenv("LINK2CLASH_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("LINK2CLASH_NO_OSC52"); v == "1" || strings.EqualFold(v, "true") {
		c.Clipboard.OSC52Fallback = false
	}
}

// =============================================================================
// DERIVED SETTINGS
// =============================================================================

// ClientConfig returns the conversion client settings.
func (c *Config) ClientConfig() *convert.ClientConfig {
	return &convert.ClientConfig{
		BaseURL:  c.Engine.URL,
		Endpoint: c.Engine.Endpoint,
		Timeout:  time.Duration(c.Engine.TimeoutSecs) * time.Second,
	}
}

// Template returns the compose scaffolding.
func (c *Config) Template() compose.Template {
	return compose.Template{
		GroupName: c.Compose.GroupName,
		GroupType: c.Compose.GroupType,
		Fallbacks: append([]string(nil), c.Compose.Fallbacks...),
		Rules:     append([]string(nil), c.Compose.Rules...),
	}
}

// Composer builds a Composer from the compose settings, reading the
// placeholder file when one is configured.
func (c *Config) Composer() (*compose.Composer, error) {
	placeholder := ""
	if c.Compose.PlaceholderFile != "" {
		data, err := os.ReadFile(c.Compose.PlaceholderFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read placeholder file: %w", err)
		}
		placeholder = string(data)
	}
	return compose.New(c.Template(), placeholder), nil
}

// StatusDelay returns how long a status line stays visible.
func (c *Config) StatusDelay() time.Duration {
	return time.Duration(c.UI.StatusDelayMs) * time.Millisecond
}

// =============================================================================
// GET (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value by its file key (e.g. "engine.url").
func (c *Config) Get(key string) (interface{}, error) {
	if key == "" {
		return nil, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		field, ok := fieldByTag(v, part)
		if !ok {
			return nil, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			return field.Interface(), nil
		}
		if field.Kind() != reflect.Struct {
			return nil, fmt.Errorf("field '%s' is not a section", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return nil, fmt.Errorf("invalid key: %s", key)
}

// fieldByTag finds the struct field whose toml tag is name.
func fieldByTag(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if tag := t.Field(i).Tag.Get("toml"); tag == name {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// String returns the configuration as indented JSON for debugging.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}
