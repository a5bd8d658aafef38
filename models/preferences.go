package models

import "strings"

// Theme is the visual theme flag
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Locale is one of the two supported UI languages
type Locale string

const (
	LocaleES Locale = "es"
	LocaleEN Locale = "en"
)

// ParseLocale returns the locale for raw, or ok=false when it is not supported
func ParseLocale(raw string) (Locale, bool) {
	switch Locale(strings.ToLower(strings.TrimSpace(raw))) {
	case LocaleES:
		return LocaleES, true
	case LocaleEN:
		return LocaleEN, true
	}
	return "", false
}

// Preferences represents the persisted user flags
type Preferences struct {
	Theme  Theme  `json:"theme"`
	Locale Locale `json:"locale"`
}

// DefaultPreferences are applied when nothing was stored
func DefaultPreferences() Preferences {
	return Preferences{Theme: ThemeLight, Locale: LocaleES}
}
