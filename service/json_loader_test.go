package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

const productsJSON = `[
  {"nombre": "Buso", "descripcion": "Abrigado", "precio": 25000, "categoria": "busos", "imagenes": ["a.jpg", " b.jpg "], "tipo": "abrigo", "estado": "nuevo"},
  {"nombre": "Gorro", "precio": "9000", "categoria": "accesorios", "imagen": "gorro.jpg"},
  {"nombre": "Collar", "precio": 4000},
  {"nombre": "", "precio": 1},
  {"nombre": "Roto", "precio": "gratis"}
]`

func TestParseJSONNormalises(t *testing.T) {
	t.Parallel()

	products, skipped, err := ParseJSON([]byte(productsJSON))
	require.NoError(t, err)
	require.Len(t, products, 3)
	require.Len(t, skipped, 2)

	require.Equal(t, []string{"a.jpg", "b.jpg"}, products[0].Images)
	require.Equal(t, "abrigo", products[0].Type)
	require.Equal(t, "nuevo", products[0].Status)

	require.Equal(t, 9000.0, products[1].Price)
	require.Equal(t, []string{"gorro.jpg"}, products[1].Images)
	require.Equal(t, "", products[1].Description)

	require.NotNil(t, products[2].Images)
	require.Empty(t, products[2].Images)
}

func TestJSONLoaderInvalidDocument(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not": "an array"}`))
	}))
	t.Cleanup(srv.Close)

	_, err := NewJSONLoader(srv.URL, srv.Client()).Load(context.Background())
	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	require.ErrorContains(t, err, "failed to decode products")
}

func TestJSONLoaderOverHTTP(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(productsJSON))
	}))
	t.Cleanup(srv.Close)

	loader := NewJSONLoader(srv.URL+"/productos.json", srv.Client())
	products, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 3)
	require.Equal(t, srv.URL+"/productos.json", loader.Source())
}
