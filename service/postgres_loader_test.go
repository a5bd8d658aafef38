package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"catalogo-productos/models"
)

type fakeProductRepository struct {
	products []models.Product
	err      error
}

func (f *fakeProductRepository) ListProducts(context.Context) ([]models.Product, error) {
	return f.products, f.err
}

func TestPostgresLoaderSkipsInvalidRows(t *testing.T) {
	t.Parallel()

	repo := &fakeProductRepository{products: []models.Product{
		{Name: "Buso", Price: 100, Images: []string{"a.jpg"}},
		{Name: "", Price: 10},
		{Name: "Raro", Price: -5},
	}}

	products, err := NewPostgresLoader(repo).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, "Buso", products[0].Name)
}

func TestPostgresLoaderWrapsErrors(t *testing.T) {
	t.Parallel()

	queryErr := errors.New("connection refused")
	_, err := NewPostgresLoader(&fakeProductRepository{err: queryErr}).Load(context.Background())

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	require.ErrorIs(t, err, queryErr)
}
