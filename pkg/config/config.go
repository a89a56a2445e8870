// Package config handles loading and saving folio configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/folio/config.yaml
//   - Data:    ~/.local/share/folio/ (content.yaml)
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

const appName = "folio"

// UIConfig holds reader preferences.
type UIConfig struct {
	HeaderOffset    int    `yaml:"header_offset,omitempty"`     // rows probed below the viewport top
	SmoothScroll    *bool  `yaml:"smooth_scroll,omitempty"`     // animate directed navigation
	ScrollStep      int    `yaml:"scroll_step,omitempty"`       // rows per wheel notch
	FrameIntervalMs int    `yaml:"frame_interval_ms,omitempty"` // scroll-spy frame tick
	SettleWindowMs  int    `yaml:"settle_window_ms,omitempty"`  // navigation settle window
	StartSection    string `yaml:"start_section,omitempty"`     // section to open at
	Theme           string `yaml:"theme,omitempty"`             // auto, dark, light
}

// ContentConfig controls where content comes from.
type ContentConfig struct {
	Path      string `yaml:"path,omitempty"`
	Watch     bool   `yaml:"watch,omitempty"`
	ForcePoll bool   `yaml:"force_poll,omitempty"`
}

// Config is the top-level configuration for folio.
type Config struct {
	UI      UIConfig      `yaml:"ui,omitempty"`
	Content ContentConfig `yaml:"content,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	smooth := true
	return Config{
		UI: UIConfig{
			HeaderOffset:    3,
			SmoothScroll:    &smooth,
			ScrollStep:      3,
			FrameIntervalMs: 16,
			SettleWindowMs:  600,
			Theme:           "auto",
		},
	}
}

// SmoothScrollEnabled reports whether navigation animates. Unset means on.
func (u UIConfig) SmoothScrollEnabled() bool {
	return u.SmoothScroll == nil || *u.SmoothScroll
}

// FrameInterval returns the frame tick as a duration.
func (u UIConfig) FrameInterval() time.Duration {
	if u.FrameIntervalMs <= 0 {
		return 16 * time.Millisecond
	}
	return time.Duration(u.FrameIntervalMs) * time.Millisecond
}

// SettleWindow returns the navigation settle window as a duration.
func (u UIConfig) SettleWindow() time.Duration {
	if u.SettleWindowMs <= 0 {
		return 600 * time.Millisecond
	}
	return time.Duration(u.SettleWindowMs) * time.Millisecond
}

// ConfigDir returns the XDG config directory for folio.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// DataDir returns the XDG data directory for folio.
func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", appName)
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config: %w", err)
	}

	cfg.Content.Path = expandHome(cfg.Content.Path)
	cfg.clamp()
	return cfg, nil
}

// clamp pulls out-of-range values back to something usable.
func (c *Config) clamp() {
	def := DefaultConfig().UI
	if c.UI.HeaderOffset < 0 {
		c.UI.HeaderOffset = def.HeaderOffset
	}
	if c.UI.ScrollStep <= 0 {
		c.UI.ScrollStep = def.ScrollStep
	}
	switch strings.ToLower(c.UI.Theme) {
	case "auto", "dark", "light":
		c.UI.Theme = strings.ToLower(c.UI.Theme)
	default:
		c.UI.Theme = def.Theme
	}
}

// ApplyEnv overlays FOLIO_* environment variables onto cfg.
// Malformed values are ignored.
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv("FOLIO_HEADER_OFFSET")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.UI.HeaderOffset = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("FOLIO_SMOOTH_SCROLL")); v != "" {
		if b, ok := parseBool(v); ok {
			c.UI.SmoothScroll = &b
		}
	}
	if v := strings.TrimSpace(os.Getenv("FOLIO_CONTENT")); v != "" {
		c.Content.Path = expandHome(v)
	}
	if v := strings.TrimSpace(os.Getenv("FOLIO_THEME")); v != "" {
		c.UI.Theme = v
		c.clamp()
	}
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func parseBool(v string) (bool, bool) {
	switch strings.ToLower(v) {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	}
	return false, false
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
