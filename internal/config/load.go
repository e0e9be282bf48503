package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Load reads and validates the config file at path. Keys missing from
// the file keep their defaults. The file must exist; first-run creation
// is the caller's job. Load builds a private viper instance so repeated
// reloads never leak state into the package-level viper used by the CLI.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	defaults := Defaults()
	v.SetDefault("ui.show_status_bar", defaults.UI.ShowStatusBar)
	v.SetDefault("ui.show_seq", defaults.UI.ShowSeq)
	v.SetDefault("ui.markdown_style", defaults.UI.MarkdownStyle)
	v.SetDefault("playground.auto_mount", defaults.Playground.AutoMount)
	v.SetDefault("playground.event_buffer", defaults.Playground.EventBuffer)
	v.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	v.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	v.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Tracing.FilePath == "" {
		cfg.Tracing.FilePath = DefaultTracesFilePath()
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
