// Package config provides configuration types and defaults for formdeck.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/formdeck/formdeck/internal/log"
)

// Config holds all configuration options for formdeck.
type Config struct {
	UI         UIConfig         `mapstructure:"ui"`
	Theme      ThemeConfig      `mapstructure:"theme"`
	Playground PlaygroundConfig `mapstructure:"playground"`
	Tracing    TracingConfig    `mapstructure:"tracing"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowStatusBar bool   `mapstructure:"show_status_bar"`
	ShowSeq       bool   `mapstructure:"show_seq"`       // Show sequence numbers in the event pane
	MarkdownStyle string `mapstructure:"markdown_style"` // "dark" (default) or "light"
}

// ThemeConfig holds theme customization options.
type ThemeConfig struct {
	// Mode forces light or dark mode. If empty, uses terminal detection.
	// Valid values: "light", "dark", ""
	Mode string `mapstructure:"mode"`

	// Color overrides, hex strings like "#7D56F4". Empty keeps the
	// built-in color.
	Highlight string `mapstructure:"highlight"`
	Subtle    string `mapstructure:"subtle"`
	Error     string `mapstructure:"error"`
	Success   string `mapstructure:"success"`
}

// PlaygroundConfig holds playground mode configuration.
type PlaygroundConfig struct {
	// AutoMount lists fragment names mounted at startup.
	AutoMount []string `mapstructure:"auto_mount"`

	// EventBuffer is the event pane scrollback size.
	EventBuffer int `mapstructure:"event_buffer"`
}

// TracingConfig holds local tracing configuration. Traces never leave
// the machine: the only exporters are a JSONL file and stdout.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for the "file" exporter.
	// Default: ~/.config/formdeck/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/formdeck/traces/traces.jsonl or empty string if
// home dir unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "formdeck", "traces", "traces.jsonl")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		UI: UIConfig{
			ShowStatusBar: true,
			ShowSeq:       true,
			MarkdownStyle: "dark",
		},
		Theme: ThemeConfig{
			Mode: "",
		},
		Playground: PlaygroundConfig{
			AutoMount:   []string{"account", "profile"},
			EventBuffer: 500,
		},
		Tracing: TracingConfig{
			Enabled:    false,
			Exporter:   "file",
			FilePath:   "", // Derived from config dir at runtime
			SampleRate: 1.0,
		},
	}
}

// Validate checks the whole configuration for errors.
func (c Config) Validate() error {
	if err := ValidateUI(c.UI); err != nil {
		return err
	}
	if err := ValidateTheme(c.Theme); err != nil {
		return err
	}
	if err := ValidatePlayground(c.Playground); err != nil {
		return err
	}
	return ValidateTracing(c.Tracing)
}

// ValidateUI checks UI configuration for errors.
func ValidateUI(ui UIConfig) error {
	switch ui.MarkdownStyle {
	case "", "dark", "light":
		return nil
	default:
		return fmt.Errorf("ui.markdown_style must be \"dark\" or \"light\", got %q", ui.MarkdownStyle)
	}
}

// ValidateTheme checks theme configuration for errors.
func ValidateTheme(theme ThemeConfig) error {
	switch theme.Mode {
	case "", "light", "dark":
	default:
		return fmt.Errorf("theme.mode must be \"light\" or \"dark\", got %q", theme.Mode)
	}

	for name, value := range map[string]string{
		"theme.highlight": theme.Highlight,
		"theme.subtle":    theme.Subtle,
		"theme.error":     theme.Error,
		"theme.success":   theme.Success,
	} {
		if err := validateHexColor(name, value); err != nil {
			return err
		}
	}
	return nil
}

func validateHexColor(name, value string) error {
	if value == "" {
		return nil
	}
	if !strings.HasPrefix(value, "#") || (len(value) != 4 && len(value) != 7) {
		return fmt.Errorf("%s must be a hex color like \"#7D56F4\", got %q", name, value)
	}
	for _, r := range value[1:] {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') && (r < 'A' || r > 'F') {
			return fmt.Errorf("%s must be a hex color like \"#7D56F4\", got %q", name, value)
		}
	}
	return nil
}

// ValidatePlayground checks playground configuration for errors.
// Unknown auto_mount names are not an error here; the playground warns
// about them at startup, since it owns the fragment catalog.
func ValidatePlayground(pg PlaygroundConfig) error {
	if pg.EventBuffer < 0 {
		return fmt.Errorf("playground.event_buffer must be >= 0, got %d", pg.EventBuffer)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout":
			// Valid
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", or \"stdout\", got %q", tracing.Exporter)
		}
	}

	if tracing.Enabled && tracing.Exporter == "file" && tracing.FilePath == "" {
		return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
	}

	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# formdeck Configuration

# UI settings
ui:
  show_status_bar: true   # Show status bar at bottom
  show_seq: true          # Show sequence numbers in the event pane
  # markdown_style: dark  # Help rendering style: "dark" (default) or "light"

# Theme configuration
theme:
  # Force light or dark mode. If unset, the terminal background decides.
  # mode: dark
  #
  # Override individual colors (hex):
  # highlight: "#7D56F4"
  # subtle: "#6C6C6C"
  # error: "#FF5555"
  # success: "#73F59F"

# Playground settings
playground:
  # Fragments mounted at startup. Run 'formdeck export --list' to see
  # the available fragment names.
  auto_mount:
    - account
    - profile

  # Event pane scrollback size
  event_buffer: 500

# Local tracing of registry activity (never leaves this machine)
# tracing:
#   enabled: false     # Enable/disable tracing (default: false)
#   exporter: file     # Export backend: none, file, stdout (default: file)
#   file_path: ~/.config/formdeck/traces/traces.jsonl
#   sample_rate: 1.0   # Trace sampling rate 0.0-1.0 (default: 1.0)
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
