package service

import (
	"context"

	"catalogo-productos/models"
)

// ProductLoaderInterface defines the contract for loading the catalog from its source.
// Failures are returned as *LoadError.
type ProductLoaderInterface interface {
	Load(ctx context.Context) ([]models.Product, error)
	Source() string
}
