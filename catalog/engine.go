// Package catalog holds the in-memory product catalog: the store of loaded
// products, the filter/sort engine that derives the visible list and the
// detail view state machine.
package catalog

import (
	"math"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"catalogo-productos/models"
)

// Visible derives the visible list from the full product list.
// It never mutates all and never reads anything but its arguments, so
// SortNone always yields load order no matter which sort ran before.
func Visible(all []models.Product, c models.Criteria) []models.Product {
	query := strings.ToLower(strings.TrimSpace(c.Query))
	minPrice, maxPrice := priceBounds(c)

	visible := make([]models.Product, 0, len(all))
	for i := range all {
		p := &all[i]
		if !matchesQuery(p, query) {
			continue
		}
		if !matchesFacets(p, c.Facets) {
			continue
		}
		if p.Price < minPrice || p.Price > maxPrice {
			continue
		}
		visible = append(visible, *p)
	}

	sortProducts(visible, c.Sort, c.Locale)
	return visible
}

// priceBounds applies the defaults of the price inputs: an unset or
// non-positive maximum means no upper bound.
func priceBounds(c models.Criteria) (float64, float64) {
	minPrice := c.MinPrice
	if math.IsNaN(minPrice) || minPrice < 0 {
		minPrice = 0
	}
	maxPrice := c.MaxPrice
	if math.IsNaN(maxPrice) || maxPrice <= 0 {
		maxPrice = math.Inf(1)
	}
	return minPrice, maxPrice
}

func matchesQuery(p *models.Product, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Description), query)
}

func matchesFacets(p *models.Product, facets map[string]string) bool {
	for name, value := range facets {
		if !models.FacetActive(value) {
			continue
		}
		if p.Facet(name) != value {
			return false
		}
	}
	return true
}

func sortProducts(products []models.Product, key models.SortKey, locale models.Locale) {
	switch key {
	case models.SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price < products[j].Price })
	case models.SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price > products[j].Price })
	case models.SortNameAsc, models.SortNameDesc:
		// Collator keeps internal buffers, one per call.
		col := collate.New(collationTag(locale))
		desc := key == models.SortNameDesc
		sort.SliceStable(products, func(i, j int) bool {
			cmp := col.CompareString(products[i].Name, products[j].Name)
			if desc {
				return cmp > 0
			}
			return cmp < 0
		})
	}
}

func collationTag(locale models.Locale) language.Tag {
	if locale == models.LocaleEN {
		return language.AmericanEnglish
	}
	return language.MustParse("es-AR")
}

// FacetOptions returns the distinct non-empty values of a facet in first-seen order.
func FacetOptions(all []models.Product, facet string) []string {
	seen := make(map[string]struct{})
	var options []string
	for i := range all {
		v := all[i].Facet(facet)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		options = append(options, v)
	}
	return options
}
