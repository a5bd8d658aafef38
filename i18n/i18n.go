// Package i18n provides the UI strings of the two supported locales.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"

	"catalogo-productos/models"
)

//go:embed locales/*.json
var localeFS embed.FS

// Bundle holds translations per locale with Spanish as fallback
type Bundle struct {
	dict     map[models.Locale]map[string]string
	fallback models.Locale
}

// Load reads the embedded es/en dictionaries
func Load() (*Bundle, error) {
	b := &Bundle{
		dict:     map[models.Locale]map[string]string{},
		fallback: models.LocaleES,
	}
	for _, l := range []models.Locale{models.LocaleES, models.LocaleEN} {
		raw, err := localeFS.ReadFile(path.Join("locales", string(l)+".json"))
		if err != nil {
			return nil, fmt.Errorf("load locale %s: %w", l, err)
		}
		var m map[string]string
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", l, err)
		}
		b.dict[l] = m
	}
	return b, nil
}

// MustLoad is Load for the embedded files, which are known to parse
func MustLoad() *Bundle {
	b, err := Load()
	if err != nil {
		panic(err)
	}
	return b
}

// T returns translation for key in lang, falling back to Spanish and finally the key
func (b *Bundle) T(lang models.Locale, key string) string {
	if m, ok := b.dict[lang]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	if v, ok := b.dict[b.fallback][key]; ok {
		return v
	}
	return key
}

// Translator binds the bundle to one locale, for use from templates
func (b *Bundle) Translator(lang models.Locale) func(string) string {
	return func(key string) string { return b.T(lang, key) }
}
