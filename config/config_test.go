package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"actfilter/config"
)

func TestNormalizeDefaults(t *testing.T) {
	c := &config.Config{}
	c.Normalize()

	require.Equal(t, "rules.conf", c.Rules.File)
	require.Equal(t, 1, c.Defaults.Window)
	require.Equal(t, 1, c.Defaults.Channel)
	require.Equal(t, 1, c.Defaults.Query)
	require.Equal(t, "info", c.Logging.Level)
	require.Equal(t, "console", c.Logging.Format)
}

func TestManagerLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
rules:
  file: my-rules.conf
  watch: true
defaults:
  channel: 3
debug: true
logging:
  level: debug
`), 0o644))

	mgr := config.NewManager(path)
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	require.Equal(t, "my-rules.conf", cfg.Rules.File)
	require.True(t, cfg.Rules.Watch)
	require.Equal(t, 3, cfg.Defaults.Channel)
	require.Equal(t, 1, cfg.Defaults.Window) // normalized
	require.True(t, cfg.Debug)
	require.Equal(t, "debug", cfg.Logging.Level)
}

func TestManagerLoadMissingFile(t *testing.T) {
	mgr := config.NewManager(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, mgr.Load())

	// defaults stay usable after a failed load
	require.Equal(t, "rules.conf", mgr.Get().Rules.File)
}

func TestManagerUpdate(t *testing.T) {
	mgr := config.NewManager("unused")
	before := mgr.Get()

	mgr.Update(func(c *config.Config) {
		c.Defaults.Query = 4
	})

	require.Equal(t, 4, mgr.Get().Defaults.Query)
	// copy-on-write: the old snapshot is untouched
	require.Equal(t, 1, before.Defaults.Query)
}
