package service

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"catalogo-productos/logger"
	"catalogo-productos/models"
	"catalogo-productos/utils"
)

// Column names of the delimited-text export (header row, matched lower-cased)
const (
	columnName        = "nombre"
	columnDescription = "descripcion"
	columnPrice       = "precio"
	columnImages      = "imagenes"
	columnImage       = "imagen"
)

const fieldDelimiter = ","

// CSVLoader loads the catalog from a delimited-text export such as a published
// spreadsheet. Fields are split on commas without quoting support.
type CSVLoader struct {
	source string
	client *http.Client
}

// NewCSVLoader creates a new CSVLoader for a URL or local path
func NewCSVLoader(source string, client *http.Client) *CSVLoader {
	if client == nil {
		client = http.DefaultClient
	}
	return &CSVLoader{source: source, client: client}
}

// Ensure CSVLoader implements ProductLoaderInterface
var _ ProductLoaderInterface = (*CSVLoader)(nil)

// Source returns the configured source identifier
func (l *CSVLoader) Source() string { return l.source }

// Load fetches and parses the document. Malformed rows are skipped with a warning.
func (l *CSVLoader) Load(ctx context.Context) ([]models.Product, error) {
	logger.Log.Infof("📥 CSVLoader: fetching %s", l.source)

	data, err := fetchSource(ctx, l.client, l.source)
	if err != nil {
		return nil, &LoadError{Source: l.source, Err: err}
	}
	return parseAndReport(l.source, data)
}

func parseAndReport(source string, data []byte) ([]models.Product, error) {
	products, rowErrs, err := ParseCSV(data)
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	for _, rowErr := range rowErrs {
		logger.Log.Warnf("⚠️  Skipping row from %s: %v", source, rowErr)
	}
	logger.Log.Infof("✓ Parsed %d products from %s (%d rows skipped)", len(products), source, len(rowErrs))
	return products, nil
}

// ParseCSV maps a header row plus data rows to products.
// Rows whose field count differs from the header, or whose name or price is
// unusable, are returned as row errors and left out of the result.
func ParseCSV(data []byte) ([]models.Product, []*MalformedRowError, error) {
	lines := strings.Split(string(data), "\n")

	headerAt := -1
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			headerAt = i
			break
		}
	}
	if headerAt < 0 {
		return nil, nil, fmt.Errorf("empty document: no header row")
	}

	headerLine := strings.TrimPrefix(strings.TrimRight(lines[headerAt], "\r"), "\ufeff")
	headers := strings.Split(headerLine, fieldDelimiter)
	for i := range headers {
		headers[i] = strings.ToLower(strings.TrimSpace(headers[i]))
	}
	if err := requireColumns(headers, columnName, columnPrice); err != nil {
		return nil, nil, err
	}

	products := make([]models.Product, 0, len(lines)-headerAt-1)
	var rowErrs []*MalformedRowError
	for i := headerAt + 1; i < len(lines); i++ {
		line := strings.TrimRight(lines[i], "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lineNo := i + 1

		fields := strings.Split(line, fieldDelimiter)
		if len(fields) != len(headers) {
			rowErrs = append(rowErrs, &MalformedRowError{Line: lineNo, Want: len(headers), Got: len(fields)})
			continue
		}

		p, rowErr := productFromFields(headers, fields, lineNo)
		if rowErr != nil {
			rowErrs = append(rowErrs, rowErr)
			continue
		}
		products = append(products, p)
	}

	return products, rowErrs, nil
}

func requireColumns(headers []string, required ...string) error {
	for _, col := range required {
		found := false
		for _, h := range headers {
			if h == col {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("missing required column %q in header", col)
		}
	}
	return nil
}

func productFromFields(headers, fields []string, lineNo int) (models.Product, *MalformedRowError) {
	p := models.Product{Images: []string{}}
	for i, h := range headers {
		raw := fields[i]
		switch h {
		case columnPrice:
			price, err := parsePrice(raw)
			if err != nil {
				return models.Product{}, &MalformedRowError{Line: lineNo, Reason: err.Error()}
			}
			p.Price = price
		case columnImages, columnImage:
			p.Images = append(p.Images, utils.SplitImages(raw)...)
		case columnName:
			p.Name = strings.TrimSpace(raw)
		case columnDescription:
			p.Description = strings.TrimSpace(raw)
		case models.FacetCategory:
			p.Category = strings.TrimSpace(raw)
		case models.FacetType:
			p.Type = strings.TrimSpace(raw)
		case models.FacetStatus:
			p.Status = strings.TrimSpace(raw)
		case "":
			// unnamed trailing column
		default:
			v := strings.TrimSpace(raw)
			if v == "" {
				continue
			}
			if p.Attributes == nil {
				p.Attributes = map[string]string{}
			}
			p.Attributes[h] = v
		}
	}
	if p.Name == "" {
		return models.Product{}, &MalformedRowError{Line: lineNo, Reason: "missing nombre"}
	}
	return p, nil
}

func parsePrice(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid precio %q", strings.TrimSpace(raw))
	}
	if v < 0 {
		return 0, fmt.Errorf("negative precio %q", strings.TrimSpace(raw))
	}
	return v, nil
}
