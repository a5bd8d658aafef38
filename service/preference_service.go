package service

import (
	"strconv"
	"sync"

	"catalogo-productos/logger"
	"catalogo-productos/models"
)

// Storage keys of the preference flags
const (
	PrefKeyDarkTheme = "temaOscuro"
	PrefKeyLocale    = "idioma"
)

// PreferenceService reads, toggles and persists the theme and locale flags
type PreferenceService struct{}

// NewPreferenceService creates a new PreferenceService
func NewPreferenceService() *PreferenceService {
	return &PreferenceService{}
}

// Load reads both flags, defaulting to light/es when absent or invalid
func (s *PreferenceService) Load(store PreferenceStoreInterface) models.Preferences {
	prefs := models.DefaultPreferences()

	if raw, ok := store.Get(PrefKeyDarkTheme); ok {
		if dark, err := strconv.ParseBool(raw); err == nil && dark {
			prefs.Theme = models.ThemeDark
		}
	}
	if raw, ok := store.Get(PrefKeyLocale); ok {
		if locale, ok := models.ParseLocale(raw); ok {
			prefs.Locale = locale
		}
	}
	return prefs
}

// ToggleTheme flips the theme and writes it back.
// A failed write is logged; the flag then reverts to its default on the next load.
func (s *PreferenceService) ToggleTheme(store PreferenceStoreInterface) models.Preferences {
	prefs := s.Load(store)
	dark := prefs.Theme != models.ThemeDark
	if dark {
		prefs.Theme = models.ThemeDark
	} else {
		prefs.Theme = models.ThemeLight
	}
	if err := store.Set(PrefKeyDarkTheme, strconv.FormatBool(dark)); err != nil {
		logger.Log.Warnf("⚠️  Could not persist theme: %v", err)
	}
	return prefs
}

// SetLocale selects a locale and writes it back
func (s *PreferenceService) SetLocale(store PreferenceStoreInterface, locale models.Locale) models.Preferences {
	prefs := s.Load(store)
	prefs.Locale = locale
	if err := store.Set(PrefKeyLocale, string(locale)); err != nil {
		logger.Log.Warnf("⚠️  Could not persist locale: %v", err)
	}
	return prefs
}

// MemoryPreferenceStore is an in-memory PreferenceStoreInterface
type MemoryPreferenceStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryPreferenceStore creates an empty MemoryPreferenceStore
func NewMemoryPreferenceStore() *MemoryPreferenceStore {
	return &MemoryPreferenceStore{values: map[string]string{}}
}

// Ensure MemoryPreferenceStore implements PreferenceStoreInterface
var _ PreferenceStoreInterface = (*MemoryPreferenceStore)(nil)

func (m *MemoryPreferenceStore) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MemoryPreferenceStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
