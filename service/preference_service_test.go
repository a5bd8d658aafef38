package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"catalogo-productos/models"
)

func TestPreferenceDefaults(t *testing.T) {
	t.Parallel()

	s := NewPreferenceService()
	require.Equal(t, models.DefaultPreferences(), s.Load(NewMemoryPreferenceStore()))

	store := NewMemoryPreferenceStore()
	_ = store.Set(PrefKeyDarkTheme, "quizas")
	_ = store.Set(PrefKeyLocale, "fr")
	require.Equal(t, models.DefaultPreferences(), s.Load(store))
}

func TestToggleThemePersistsAcrossReload(t *testing.T) {
	t.Parallel()

	s := NewPreferenceService()
	store := NewMemoryPreferenceStore()

	prefs := s.ToggleTheme(store)
	require.Equal(t, models.ThemeDark, prefs.Theme)

	raw, ok := store.Get(PrefKeyDarkTheme)
	require.True(t, ok)
	require.Equal(t, "true", raw)

	// Simulated reload: a fresh service reads the same storage.
	require.Equal(t, models.ThemeDark, NewPreferenceService().Load(store).Theme)

	prefs = s.ToggleTheme(store)
	require.Equal(t, models.ThemeLight, prefs.Theme)
	require.Equal(t, models.ThemeLight, NewPreferenceService().Load(store).Theme)
}

func TestSetLocalePersists(t *testing.T) {
	t.Parallel()

	s := NewPreferenceService()
	store := NewMemoryPreferenceStore()

	prefs := s.SetLocale(store, models.LocaleEN)
	require.Equal(t, models.LocaleEN, prefs.Locale)
	require.Equal(t, models.ThemeLight, prefs.Theme)
	require.Equal(t, models.LocaleEN, s.Load(store).Locale)
}

type failingStore struct{ *MemoryPreferenceStore }

func (f *failingStore) Set(string, string) error { return errors.New("storage unavailable") }

func TestPreferenceWriteFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	s := NewPreferenceService()
	store := &failingStore{MemoryPreferenceStore: NewMemoryPreferenceStore()}

	prefs := s.ToggleTheme(store)
	require.Equal(t, models.ThemeDark, prefs.Theme)
	require.Equal(t, models.ThemeLight, s.Load(store).Theme, "reverts to default on next load")
}
