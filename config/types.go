package config

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Presenter variants.
const (
	VariantGrid   = "grid"
	VariantSingle = "single"
)

// Duration is a time.Duration written as a Go duration string ("10s", "30m") in
// YAML, TOML and JSON.
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// String implements fmt.Stringer.
func (d Duration) String() string { return time.Duration(d).String() }

// UnmarshalText implements encoding.TextUnmarshaler, which go-toml uses.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalYAML accepts duration strings.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	return d.UnmarshalText([]byte(node.Value))
}

// MarshalYAML writes the duration string.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// MarshalJSON writes the duration string so schema validation sees what the user wrote.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// JSONSchema describes Duration as a Go duration string.
func (Duration) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Pattern:     `^([0-9]+(\.[0-9]+)?(ns|us|µs|ms|s|m|h))+$`,
		Description: "Go duration string, e.g. 10s or 30m",
	}
}

// ServerConfig configures the HTTP listener used by `praise serve`.
type ServerConfig struct {
	Addr            string   `yaml:"addr,omitempty" toml:"addr,omitempty" json:"addr,omitempty" jsonschema:"description=Listen address (host:port)"`
	ReadTimeout     Duration `yaml:"read_timeout,omitempty" toml:"read_timeout,omitempty" json:"read_timeout,omitempty" jsonschema:"description=Maximum duration for reading a request"`
	WriteTimeout    Duration `yaml:"write_timeout,omitempty" toml:"write_timeout,omitempty" json:"write_timeout,omitempty" jsonschema:"description=Maximum duration for writing a response (websocket connections are exempt)"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout,omitempty" toml:"shutdown_timeout,omitempty" json:"shutdown_timeout,omitempty" jsonschema:"description=Grace period for in-flight requests on shutdown"`
}

// AssetsConfig configures where worker images come from.
type AssetsConfig struct {
	Dir              string   `yaml:"dir,omitempty" toml:"dir,omitempty" json:"dir,omitempty" jsonschema:"description=Directory scanned for worker images"`
	Extensions       []string `yaml:"extensions,omitempty" toml:"extensions,omitempty" json:"extensions,omitempty" jsonschema:"description=Recognized image extensions (case-insensitive)"`
	Exclude          []string `yaml:"exclude,omitempty" toml:"exclude,omitempty" json:"exclude,omitempty" jsonschema:"description=dockerignore-style patterns for files to skip"`
	Placeholders     *bool    `yaml:"placeholders,omitempty" toml:"placeholders,omitempty" json:"placeholders,omitempty" jsonschema:"description=Substitute synthetic workers when no image is found (default: true)"`
	PlaceholderCount int      `yaml:"placeholder_count,omitempty" toml:"placeholder_count,omitempty" json:"placeholder_count,omitempty" jsonschema:"description=Number of synthetic workers,minimum=1"`
	Watch            *bool    `yaml:"watch,omitempty" toml:"watch,omitempty" json:"watch,omitempty" jsonschema:"description=Notify open pages when the directory changes (default: true)"`
	Inline           bool     `yaml:"inline,omitempty" toml:"inline,omitempty" json:"inline,omitempty" jsonschema:"description=Embed images in the page as data URLs instead of serving them from /workers"`
}

// PresenterConfig configures the praise page behaviour.
type PresenterConfig struct {
	Variant        string `yaml:"variant,omitempty" toml:"variant,omitempty" json:"variant,omitempty" jsonschema:"description=grid (clickable workers) or single (one rotating worker),enum=grid,enum=single"`
	Hints          *bool  `yaml:"hints,omitempty" toml:"hints,omitempty" json:"hints,omitempty" jsonschema:"description=Append a work hint to each praise (default: true)"`
	HistoryDisplay int    `yaml:"history_display,omitempty" toml:"history_display,omitempty" json:"history_display,omitempty" jsonschema:"description=How many history entries are shown,minimum=1"`
}

// SessionConfig configures browser sessions.
type SessionConfig struct {
	CookieName string   `yaml:"cookie_name,omitempty" toml:"cookie_name,omitempty" json:"cookie_name,omitempty" jsonschema:"description=Name of the session cookie"`
	IdleTTL    Duration `yaml:"idle_ttl,omitempty" toml:"idle_ttl,omitempty" json:"idle_ttl,omitempty" jsonschema:"description=Sessions idle longer than this are discarded"`
}

// Config is the praise.yml / praise.toml file.
type Config struct {
	Title     string          `yaml:"title,omitempty" toml:"title,omitempty" json:"title,omitempty" jsonschema:"description=Page title"`
	Server    ServerConfig    `yaml:"server,omitempty" toml:"server,omitempty" json:"server,omitempty" jsonschema:"description=HTTP server settings"`
	Assets    AssetsConfig    `yaml:"assets,omitempty" toml:"assets,omitempty" json:"assets,omitempty" jsonschema:"description=Worker image settings"`
	Presenter PresenterConfig `yaml:"presenter,omitempty" toml:"presenter,omitempty" json:"presenter,omitempty" jsonschema:"description=Praise page settings"`
	Session   SessionConfig   `yaml:"session,omitempty" toml:"session,omitempty" json:"session,omitempty" jsonschema:"description=Browser session settings"`

	// Extensions captures all other top-level keys (e.g. logging).
	Extensions map[string]interface{} `yaml:",inline" toml:"-" json:"-" jsonschema:"-"`
}

// coreKeys are the top-level keys owned by Config itself.
var coreKeys = map[string]bool{
	"title":     true,
	"server":    true,
	"assets":    true,
	"presenter": true,
	"session":   true,
}

// SetDefaults fills every unset field.
func (c *Config) SetDefaults() {
	if c.Title == "" {
		c.Title = "ほっこり褒めアプリ"
	}

	if c.Server.Addr == "" {
		c.Server.Addr = ":8501"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = Duration(10 * time.Second)
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = Duration(10 * time.Second)
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = Duration(5 * time.Second)
	}

	if c.Assets.Dir == "" {
		c.Assets.Dir = "assets/workers"
	}
	if len(c.Assets.Extensions) == 0 {
		c.Assets.Extensions = []string{".png", ".jpg", ".jpeg", ".webp"}
	}
	if c.Assets.Placeholders == nil {
		c.Assets.Placeholders = boolPtr(true)
	}
	if c.Assets.PlaceholderCount == 0 {
		c.Assets.PlaceholderCount = 4
	}
	if c.Assets.Watch == nil {
		c.Assets.Watch = boolPtr(true)
	}

	if c.Presenter.Variant == "" {
		c.Presenter.Variant = VariantGrid
	}
	if c.Presenter.Hints == nil {
		c.Presenter.Hints = boolPtr(true)
	}
	if c.Presenter.HistoryDisplay == 0 {
		c.Presenter.HistoryDisplay = 10
	}

	if c.Session.CookieName == "" {
		c.Session.CookieName = "praise_session"
	}
	if c.Session.IdleTTL == 0 {
		c.Session.IdleTTL = Duration(30 * time.Minute)
	}
}

// PlaceholdersEnabled reports the effective placeholder policy.
func (c *Config) PlaceholdersEnabled() bool {
	return c.Assets.Placeholders == nil || *c.Assets.Placeholders
}

// WatchEnabled reports whether the asset watcher should run.
func (c *Config) WatchEnabled() bool {
	return c.Assets.Watch == nil || *c.Assets.Watch
}

// HintsEnabled reports whether praise messages carry a work hint.
func (c *Config) HintsEnabled() bool {
	return c.Presenter.Hints == nil || *c.Presenter.Hints
}

// UnmarshalExtension decodes a specific extension's configuration from the
// loaded praise.yml into the provided target struct. The target must be a pointer.
//
// Example:
//
//	var logCfg logging.Config
//	err := cfg.UnmarshalExtension("logging", &logCfg)
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		// Missing sections leave the target zero-valued.
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "yaml",
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}

func boolPtr(v bool) *bool { return &v }
