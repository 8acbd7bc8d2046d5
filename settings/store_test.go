package settings_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"actfilter/config"
	"actfilter/settings"
)

func openStore(t *testing.T) *settings.Store {
	t.Helper()
	store, err := settings.Open(filepath.Join(t.TempDir(), "settings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStoreRoundTrip(t *testing.T) {
	store := openStore(t)

	_, ok, err := store.Get("debug")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Set("debug", "true"))
	value, ok, err := store.Get("debug")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "true", value)

	// Set replaces
	require.NoError(t, store.Set("debug", "false"))
	value, _, err = store.Get("debug")
	require.NoError(t, err)
	require.Equal(t, "false", value)
}

func TestStoreAll(t *testing.T) {
	store := openStore(t)

	require.NoError(t, store.Set("rules_file", "custom.conf"))
	require.NoError(t, store.Set("channel_level", "hilights"))

	values, err := store.All()
	require.NoError(t, err)
	require.Equal(t, map[string]string{
		"rules_file":    "custom.conf",
		"channel_level": "hilights",
	}, values)
}

func TestApplyOverlaysConfig(t *testing.T) {
	store := openStore(t)
	require.NoError(t, store.Set(settings.KeyDebug, "on"))
	require.NoError(t, store.Set(settings.KeyChannelLevel, "hilights"))
	require.NoError(t, store.Set(settings.KeyWindowLevel, "2"))
	require.NoError(t, store.Set(settings.KeyRulesFile, "override.conf"))
	require.NoError(t, store.Set("unrelated", "ignored"))

	mgr := config.NewManager("unused")
	require.NoError(t, settings.Apply(store, mgr))

	cfg := mgr.Get()
	require.True(t, cfg.Debug)
	require.Equal(t, 3, cfg.Defaults.Channel)
	require.Equal(t, 2, cfg.Defaults.Window)
	require.Equal(t, 1, cfg.Defaults.Query) // untouched, normalized default
	require.Equal(t, "override.conf", cfg.Rules.File)
}

func TestIsKnown(t *testing.T) {
	require.True(t, settings.IsKnown(settings.KeyDebug))
	require.True(t, settings.IsKnown(settings.KeyQueryLevel))
	require.False(t, settings.IsKnown("nope"))
}
