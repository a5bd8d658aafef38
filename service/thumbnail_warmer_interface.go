package service

import (
	"context"

	"catalogo-productos/models"
)

// ThumbnailWarmerInterface defines the interface for pre-generating catalog thumbnails
type ThumbnailWarmerInterface interface {
	Warm(ctx context.Context, products []models.Product) WarmResult
}
