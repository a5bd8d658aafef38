package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"catalogo-productos/logger"
	"catalogo-productos/models"
	"catalogo-productos/utils"
)

// ProductRepository reads products from the productos table
type ProductRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new ProductRepository
func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Ensure ProductRepository implements ProductRepositoryInterface
var _ ProductRepositoryInterface = (*ProductRepository)(nil)

const listProductsQuery = `
	SELECT
		nombre,
		COALESCE(descripcion, '') as descripcion,
		precio,
		COALESCE(categoria, '') as categoria,
		COALESCE(tipo, '') as tipo,
		COALESCE(estado, '') as estado,
		COALESCE(imagenes, '') as imagenes
	FROM productos
	WHERE activo = true
	ORDER BY orden ASC, id ASC
`

// ListProducts returns the active products in catalog order.
// imagenes is a "|"-separated text column like the spreadsheet export.
func (r *ProductRepository) ListProducts(ctx context.Context) ([]models.Product, error) {
	logger.Log.Infof("🔍 ListProducts: fetching active products")

	rows, err := r.db.QueryContext(ctx, listProductsQuery)
	if err != nil {
		logger.Log.Errorf("❌ Error querying products: %v", err)
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		var images string
		if err := rows.Scan(&p.Name, &p.Description, &p.Price, &p.Category, &p.Type, &p.Status, &images); err != nil {
			logger.Log.Errorf("❌ Error scanning product: %v", err)
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		p.Name = strings.TrimSpace(p.Name)
		p.Images = utils.SplitImages(images)
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		logger.Log.Errorf("❌ Error iterating products: %v", err)
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	logger.Log.Infof("✓ Successfully fetched %d products", len(products))
	return products, nil
}
