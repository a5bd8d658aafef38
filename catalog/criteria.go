package catalog

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"catalogo-productos/models"
)

// Query string parameters of the catalog controls.
const (
	ParamQuery = "q"
	ParamMin   = "min"
	ParamMax   = "max"
	ParamSort  = "orden"
)

// ParseCriteria builds criteria from the catalog query string.
// Only the configured facets are read; unparsable prices fall back to their defaults.
func ParseCriteria(values url.Values, facets []string, locale models.Locale) models.Criteria {
	c := models.DefaultCriteria()
	c.Locale = locale
	c.Query = values.Get(ParamQuery)
	for _, facet := range facets {
		if v := strings.TrimSpace(values.Get(facet)); v != "" {
			c.Facets[facet] = v
		}
	}
	if v, ok := parsePrice(values.Get(ParamMin)); ok && v > 0 {
		c.MinPrice = v
	}
	if v, ok := parsePrice(values.Get(ParamMax)); ok && v > 0 {
		c.MaxPrice = v
	}
	c.Sort = models.ParseSortKey(values.Get(ParamSort))
	return c
}

// EncodeCriteria is the inverse of ParseCriteria, omitting defaults.
func EncodeCriteria(c models.Criteria, facets []string) url.Values {
	values := url.Values{}
	if c.Query != "" {
		values.Set(ParamQuery, c.Query)
	}
	for _, facet := range facets {
		if v := c.Facets[facet]; models.FacetActive(v) {
			values.Set(facet, v)
		}
	}
	if c.MinPrice > 0 {
		values.Set(ParamMin, strconv.FormatFloat(c.MinPrice, 'f', -1, 64))
	}
	if c.MaxPrice > 0 && !math.IsInf(c.MaxPrice, 1) {
		values.Set(ParamMax, strconv.FormatFloat(c.MaxPrice, 'f', -1, 64))
	}
	if c.Sort != models.SortNone {
		values.Set(ParamSort, string(c.Sort))
	}
	return values
}

func parsePrice(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// WithQuery appends the encoded query to path, omitting an empty "?"
func WithQuery(path string, query url.Values) string {
	if encoded := query.Encode(); encoded != "" {
		return path + "?" + encoded
	}
	return path
}

// CloneValues returns a deep copy of v, so callers can add parameters without
// touching a shared criteria query
func CloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
