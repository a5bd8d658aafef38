package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"catalogo-productos/logger"
	"catalogo-productos/models"
)

// jsonProduct is the shape of one entry of the static JSON document.
// Single-image variants use "imagen" instead of "imagenes".
type jsonProduct struct {
	Name        string          `json:"nombre"`
	Description string          `json:"descripcion"`
	Price       json.RawMessage `json:"precio"`
	Category    string          `json:"categoria"`
	Type        string          `json:"tipo"`
	Status      string          `json:"estado"`
	Image       string          `json:"imagen"`
	Images      []string        `json:"imagenes"`
}

// JSONLoader loads the catalog from a static JSON array of products
type JSONLoader struct {
	source string
	client *http.Client
}

// NewJSONLoader creates a new JSONLoader for a URL or local path
func NewJSONLoader(source string, client *http.Client) *JSONLoader {
	if client == nil {
		client = http.DefaultClient
	}
	return &JSONLoader{source: source, client: client}
}

// Ensure JSONLoader implements ProductLoaderInterface
var _ ProductLoaderInterface = (*JSONLoader)(nil)

// Source returns the configured source identifier
func (l *JSONLoader) Source() string { return l.source }

// Load fetches and decodes the document
func (l *JSONLoader) Load(ctx context.Context) ([]models.Product, error) {
	logger.Log.Infof("📥 JSONLoader: fetching %s", l.source)

	data, err := fetchSource(ctx, l.client, l.source)
	if err != nil {
		return nil, &LoadError{Source: l.source, Err: err}
	}

	products, skipped, err := ParseJSON(data)
	if err != nil {
		return nil, &LoadError{Source: l.source, Err: err}
	}
	for _, e := range skipped {
		logger.Log.Warnf("⚠️  Skipping entry from %s: %v", l.source, e)
	}
	logger.Log.Infof("✓ Parsed %d products from %s (%d entries skipped)", len(products), l.source, len(skipped))
	return products, nil
}

// ParseJSON decodes an array of products and normalises optional fields.
// Entries without a name or with an unusable price are skipped and reported.
func ParseJSON(data []byte) ([]models.Product, []error, error) {
	var entries []jsonProduct
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&entries); err != nil {
		return nil, nil, fmt.Errorf("failed to decode products: %w", err)
	}

	products := make([]models.Product, 0, len(entries))
	var skipped []error
	for i, e := range entries {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			skipped = append(skipped, fmt.Errorf("entry %d: missing nombre", i))
			continue
		}
		price, err := decodePrice(e.Price)
		if err != nil {
			skipped = append(skipped, fmt.Errorf("entry %d (%s): %w", i, name, err))
			continue
		}

		images := make([]string, 0, len(e.Images)+1)
		if ref := strings.TrimSpace(e.Image); ref != "" {
			images = append(images, ref)
		}
		for _, ref := range e.Images {
			if ref = strings.TrimSpace(ref); ref != "" {
				images = append(images, ref)
			}
		}

		products = append(products, models.Product{
			Name:        name,
			Description: strings.TrimSpace(e.Description),
			Price:       price,
			Category:    strings.TrimSpace(e.Category),
			Type:        strings.TrimSpace(e.Type),
			Status:      strings.TrimSpace(e.Status),
			Images:      images,
		})
	}
	return products, skipped, nil
}

// decodePrice accepts a JSON number or a numeric string
func decodePrice(raw json.RawMessage) (float64, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, fmt.Errorf("missing precio")
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("negative precio %v", n)
		}
		return n, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, fmt.Errorf("invalid precio %s", string(raw))
	}
	return parsePrice(s)
}
