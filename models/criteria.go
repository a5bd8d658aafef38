package models

import (
	"math"
	"strings"
)

// SortKey selects the ordering of the visible list
type SortKey string

const (
	SortNone      SortKey = ""
	SortNameAsc   SortKey = "nombre-asc"
	SortNameDesc  SortKey = "nombre-desc"
	SortPriceAsc  SortKey = "precio-asc"
	SortPriceDesc SortKey = "precio-desc"
)

// AllFacetValues is the select sentinel meaning "no restriction".
const AllFacetValues = "todas"

// ParseSortKey maps a raw select value to a SortKey. Unknown values mean no sorting.
func ParseSortKey(raw string) SortKey {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(raw))); k {
	case SortNameAsc, SortNameDesc, SortPriceAsc, SortPriceDesc:
		return k
	}
	return SortNone
}

// Criteria holds every active filter of the catalog
type Criteria struct {
	Query    string            `json:"q"`
	Facets   map[string]string `json:"facets"` // Facet name -> exact value; "" or "todas" disables it
	MinPrice float64           `json:"min"`
	MaxPrice float64           `json:"max"`
	Sort     SortKey           `json:"orden"`
	Locale   Locale            `json:"-"` // Collation language for name sorting
}

// DefaultCriteria returns criteria that keep every product in load order
func DefaultCriteria() Criteria {
	return Criteria{
		Facets:   map[string]string{},
		MinPrice: 0,
		MaxPrice: math.Inf(1),
		Sort:     SortNone,
		Locale:   LocaleES,
	}
}

// FacetActive reports whether value restricts the list
func FacetActive(value string) bool {
	return value != "" && value != AllFacetValues
}
