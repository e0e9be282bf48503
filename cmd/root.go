package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/formdeck/formdeck/internal/app"
	"github.com/formdeck/formdeck/internal/cachemanager"
	"github.com/formdeck/formdeck/internal/config"
	"github.com/formdeck/formdeck/internal/log"
	"github.com/formdeck/formdeck/internal/tracing"
	"github.com/formdeck/formdeck/internal/ui/styles"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version = "dev"
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:     "formdeck",
	Short:   "A shared form-state registry playground",
	Long:    `An interactive playground where independently-mounted form fragments assemble one logical form through a shared registry, with a live tree, event history, and field editor.`,
	Version: version,
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/formdeck/config.yaml)")
	rootCmd.Flags().Bool("debug", false,
		"enable debug logging and the log overlay (Ctrl+L)")
	rootCmd.Flags().Bool("no-status-bar", false,
		"hide the status bar")
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("ui.show_status_bar", defaults.UI.ShowStatusBar)
	viper.SetDefault("ui.show_seq", defaults.UI.ShowSeq)
	viper.SetDefault("ui.markdown_style", defaults.UI.MarkdownStyle)
	viper.SetDefault("playground.auto_mount", defaults.Playground.AutoMount)
	viper.SetDefault("playground.event_buffer", defaults.Playground.EventBuffer)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .formdeck/config.yaml (current directory)
		// 2. ~/.config/formdeck/config.yaml (user config)
		if _, err := os.Stat(".formdeck/config.yaml"); err == nil {
			viper.SetConfigFile(".formdeck/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "formdeck"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at .formdeck/config.yaml
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := ".formdeck/config.yaml"
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)

	if cfg.Tracing.FilePath == "" {
		cfg.Tracing.FilePath = config.DefaultTracesFilePath()
	}
}

func runApp(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	debugMode, _ := cmd.Flags().GetBool("debug")
	if os.Getenv("FORMDECK_DEBUG") != "" {
		debugMode = true
	}
	if debugMode {
		cleanup, err := log.InitWithTeaLog(".formdeck/debug.log", "formdeck")
		if err != nil {
			return fmt.Errorf("initializing debug log: %w", err)
		}
		defer cleanup()
		log.Info(log.CatConfig, "debug logging enabled", "version", version)
	}

	if noStatusBar, _ := cmd.Flags().GetBool("no-status-bar"); noStatusBar {
		cfg.UI.ShowStatusBar = false
	}

	styles.ApplyTheme(cfg.Theme.Highlight, cfg.Theme.Subtle, cfg.Theme.Error, cfg.Theme.Success)
	styles.ApplyMode(cfg.Theme.Mode)

	tracer, err := tracing.NewProvider(tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		Exporter:    cfg.Tracing.Exporter,
		FilePath:    cfg.Tracing.FilePath,
		SampleRate:  cfg.Tracing.SampleRate,
		ServiceName: "formdeck",
	})
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = tracer.Shutdown(ctx)
	}()

	// Help markdown renders are cached across overlay reopenings.
	renderCache := cachemanager.NewInMemoryCacheManager[string, string](
		"help-render", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval)

	// Store the config file path for hot reload and auto_mount saves
	configFilePath := viper.ConfigFileUsed()
	if configFilePath == "" {
		// No config file was loaded, default to .formdeck/config.yaml
		configFilePath = ".formdeck/config.yaml"
	}

	model := app.NewWithConfig(cfg, renderCache, configFilePath, tracer, debugMode)
	p := tea.NewProgram(
		&model,
		tea.WithAltScreen(),
	)

	_, err = p.Run()

	// Clean up session, recorder, and watcher resources
	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
