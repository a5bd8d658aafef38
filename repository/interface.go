package repository

import (
	"context"

	"catalogo-productos/models"
)

// ProductRepositoryInterface defines the contract for reading the catalog from the database
type ProductRepositoryInterface interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
}
