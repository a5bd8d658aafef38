package service

import (
	"context"

	"catalogo-productos/logger"
	"catalogo-productos/models"
	"catalogo-productos/repository"
)

// PostgresLoader loads the catalog from the productos table
type PostgresLoader struct {
	repository repository.ProductRepositoryInterface
}

// NewPostgresLoader creates a new PostgresLoader
func NewPostgresLoader(repo repository.ProductRepositoryInterface) *PostgresLoader {
	return &PostgresLoader{repository: repo}
}

// Ensure PostgresLoader implements ProductLoaderInterface
var _ ProductLoaderInterface = (*PostgresLoader)(nil)

// Source identifies the database source
func (l *PostgresLoader) Source() string { return "postgres:productos" }

// Load reads every active product; rows with negative prices are skipped
func (l *PostgresLoader) Load(ctx context.Context) ([]models.Product, error) {
	rows, err := l.repository.ListProducts(ctx)
	if err != nil {
		return nil, &LoadError{Source: l.Source(), Err: err}
	}

	products := make([]models.Product, 0, len(rows))
	for _, p := range rows {
		if p.Name == "" || p.Price < 0 {
			logger.Log.Warnf("⚠️  Skipping product row %q: missing name or negative price", p.Name)
			continue
		}
		products = append(products, p)
	}
	return products, nil
}
