package utils

import (
	"math"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"catalogo-productos/models"
)

var (
	tagSpanishAR = language.MustParse("es-AR")
	tagEnglishUS = language.AmericanEnglish
)

// Local symbols for the Spanish locale; other currencies show their code.
var spanishSymbols = map[string]string{
	"ARS": "$",
	"USD": "US$",
	"EUR": "€",
}

// FormatPrice formats a price with zero fraction digits for the given locale:
// es uses es-AR grouping and the local symbol ("$ 12.500"),
// en uses en-US grouping and the ISO code ("ARS 12,500").
func FormatPrice(amount float64, locale models.Locale, currencyCode string) string {
	code := strings.ToUpper(strings.TrimSpace(currencyCode))
	if code == "" {
		code = "ARS"
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}

	neg := amount < 0
	if neg {
		amount = -amount
	}

	tag := tagSpanishAR
	prefix := code + " "
	if locale == models.LocaleEN {
		tag = tagEnglishUS
	} else if sym, ok := spanishSymbols[code]; ok {
		prefix = sym + " "
	}

	p := message.NewPrinter(tag)
	digits := p.Sprint(number.Decimal(amount, number.MaxFractionDigits(0)))
	if neg {
		return "-" + prefix + digits
	}
	return prefix + digits
}

// ValidCurrency reports whether code is a known ISO 4217 currency
func ValidCurrency(code string) bool {
	_, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	return err == nil
}
