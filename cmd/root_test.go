package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/formdeck/formdeck/internal/config"
)

// TestInitConfig_ReadsExplicitConfigFile verifies that --config points
// viper at the given file and its values land in cfg.
func TestInitConfig_ReadsExplicitConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	content := []byte("ui:\n  show_status_bar: false\nplayground:\n  auto_mount:\n    - shipping\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	prev := cfgFile
	cfgFile = path
	t.Cleanup(func() { cfgFile = prev })

	initConfig()

	require.False(t, cfg.UI.ShowStatusBar)
	require.Equal(t, []string{"shipping"}, cfg.Playground.AutoMount)
	// Keys absent from the file keep their defaults
	require.Equal(t, config.Defaults().Playground.EventBuffer, cfg.Playground.EventBuffer)
}

// TestInitConfig_TemplateParsesToDefaults verifies the commented default
// template round-trips through the same loading path the CLI uses.
func TestInitConfig_TemplateParsesToDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, config.WriteDefaultConfig(path))

	prev := cfgFile
	cfgFile = path
	t.Cleanup(func() { cfgFile = prev })

	initConfig()

	defaults := config.Defaults()
	require.Equal(t, defaults.UI.ShowStatusBar, cfg.UI.ShowStatusBar)
	require.Equal(t, defaults.UI.ShowSeq, cfg.UI.ShowSeq)
	require.Equal(t, defaults.Playground.AutoMount, cfg.Playground.AutoMount)
	require.NoError(t, cfg.Validate())
}

// TestInitConfig_DerivesTracesFilePath verifies the tracing file path
// falls back to the config-dir default when unset.
func TestInitConfig_DerivesTracesFilePath(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tracing:\n  enabled: false\n"), 0o600))

	prev := cfgFile
	cfgFile = path
	t.Cleanup(func() { cfgFile = prev })

	initConfig()

	require.Equal(t, config.DefaultTracesFilePath(), cfg.Tracing.FilePath)
}

func TestSetVersion(t *testing.T) {
	prev := version
	t.Cleanup(func() { SetVersion(prev) })

	SetVersion("1.2.3 (commit: abc, built: today)")
	require.Equal(t, "1.2.3 (commit: abc, built: today)", rootCmd.Version)
}
