package storage

import (
	"os"
	"testing"
	"time"

	"stagetimer/internal/core/settings"
	"stagetimer/internal/core/theme"
	"stagetimer/internal/ui/preferences"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurableStoreDefaultsWhenMissing(t *testing.T) {
	store := NewDurableStore(t.TempDir())

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, preferences.DefaultSettings(), loaded)

	logo, err := store.LoadLogo()
	require.NoError(t, err)
	assert.Empty(t, logo)
}

func TestDurableStoreRoundTripKeepsLogo(t *testing.T) {
	store := NewDurableStore(t.TempDir())
	require.NoError(t, store.SaveLogo("data:image/png;base64,AAAA"))

	prefs := preferences.DefaultSettings()
	prefs.TimerName = "Main hall"
	prefs.Muted = true
	prefs.AlertThreshold = 2 * time.Minute
	prefs.RestoreDelay = 1500 * time.Millisecond
	require.NoError(t, store.Save(prefs))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, prefs, loaded)

	logo, err := store.LoadLogo()
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,AAAA", logo)
}

func TestDurableStoreRejectsBrokenYaml(t *testing.T) {
	store := NewDurableStore(t.TempDir())
	require.NoError(t, os.WriteFile(store.Path(), []byte("timer_name: [unterminated"), 0o644))

	loaded, err := store.Load()
	assert.Error(t, err)
	assert.Equal(t, preferences.DefaultSettings(), loaded)
}

func TestDurableStoreReplacesBrokenYamlOnWrite(t *testing.T) {
	store := NewDurableStore(t.TempDir())
	require.NoError(t, os.WriteFile(store.Path(), []byte("timer_name: [unterminated"), 0o644))

	require.NoError(t, store.SaveLogo("data:image/png;base64,AAAA"))
	logo, err := store.LoadLogo()
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,AAAA", logo)

	prefs := preferences.DefaultSettings()
	prefs.TimerName = "Keynote"
	prefs.Muted = true
	require.NoError(t, store.Save(prefs))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, prefs, loaded)

	logo, err = store.LoadLogo()
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,AAAA", logo)
}

func TestSessionStoreRoundTrip(t *testing.T) {
	store := NewSessionStore(t.TempDir())

	var missing theme.Settings
	ok, err := store.Load(ThemeKey, &missing)
	require.NoError(t, err)
	assert.False(t, ok)

	wie, _ := theme.PresetByName("WIE")
	require.NoError(t, store.Save(ThemeKey, wie))
	require.NoError(t, store.Save("other", 42))

	var loaded theme.Settings
	ok, err = store.Load(ThemeKey, &loaded)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, wie, loaded)

	require.NoError(t, store.Delete(ThemeKey))
	ok, err = store.Load(ThemeKey, &loaded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionStoreRecoversFromCorruptFile(t *testing.T) {
	store := NewSessionStore(t.TempDir())
	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0o600))

	var loaded theme.Settings
	_, err := store.Load(ThemeKey, &loaded)
	assert.Error(t, err)

	require.NoError(t, store.Save(ThemeKey, theme.Default()))
	ok, err := store.Load(ThemeKey, &loaded)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestThemePersisterFeedsSettingsStore(t *testing.T) {
	sessionDir, configDir := t.TempDir(), t.TempDir()
	persister := NewThemePersister(NewSessionStore(sessionDir), NewDurableStore(configDir))

	store := settings.NewStore(settings.Load(persister), persister)
	assert.Equal(t, theme.Default(), store.Current())

	store.Update(theme.Patch{Inner: theme.String("#010203"), Logo: theme.String("data:logo")})

	// A new session loses the theme but keeps the logo.
	nextSession := NewThemePersister(NewSessionStore(t.TempDir()), NewDurableStore(configDir))
	restored := settings.Load(nextSession)
	assert.Equal(t, theme.Default().Inner, restored.Inner)
	assert.Equal(t, "data:logo", restored.Logo)

	// The same session keeps both.
	sameSession := NewThemePersister(NewSessionStore(sessionDir), NewDurableStore(configDir))
	restored = settings.Load(sameSession)
	assert.Equal(t, "#010203", restored.Inner)
	assert.Equal(t, "data:logo", restored.Logo)
}

func TestThemePersisterWithoutStores(t *testing.T) {
	persister := NewThemePersister(nil, nil)
	assert.NoError(t, persister.SaveTheme(theme.Default()))
	assert.NoError(t, persister.SaveLogo("x"))
	_, ok, err := persister.LoadTheme()
	assert.NoError(t, err)
	assert.False(t, ok)
}
