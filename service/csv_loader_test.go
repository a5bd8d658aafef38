package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sheetCSV = "Nombre, Descripcion ,Precio,Categoria,Imagenes,Talla\r\n" +
	"Buso Rojo,Abrigo de algodón,25000,busos,https://img/r1.jpg| https://img/r2.jpg ,M\r\n" +
	"Camiseta,Liviana,12000.5,camisetas,https://img/c1.jpg,\r\n" +
	"\r\n" +
	"Roto,sin columnas\r\n" +
	"Gratis,Muestra,abc,muestras,https://img/g.jpg,S\r\n" +
	",Sin nombre,100,otros,https://img/x.jpg,S\r\n" +
	"Pañoleta,,8000,accesorios,,L\n"

func TestParseCSV(t *testing.T) {
	t.Parallel()

	products, rowErrs, err := ParseCSV([]byte(sheetCSV))
	require.NoError(t, err)
	require.Len(t, products, 3)

	buso := products[0]
	require.Equal(t, "Buso Rojo", buso.Name)
	require.Equal(t, "Abrigo de algodón", buso.Description)
	require.Equal(t, 25000.0, buso.Price)
	require.Equal(t, "busos", buso.Category)
	require.Equal(t, []string{"https://img/r1.jpg", "https://img/r2.jpg"}, buso.Images)
	require.Equal(t, map[string]string{"talla": "M"}, buso.Attributes)

	require.Equal(t, 12000.5, products[1].Price)
	require.Nil(t, products[1].Attributes)

	panoleta := products[2]
	require.Equal(t, "Pañoleta", panoleta.Name)
	require.NotNil(t, panoleta.Images)
	require.Empty(t, panoleta.Images)

	require.Len(t, rowErrs, 3)
	require.Equal(t, &MalformedRowError{Line: 5, Want: 6, Got: 2}, rowErrs[0])
	require.Equal(t, 6, rowErrs[1].Line)
	require.Contains(t, rowErrs[1].Error(), "invalid precio")
	require.Equal(t, 7, rowErrs[2].Line)
	require.Contains(t, rowErrs[2].Error(), "missing nombre")
}

func TestParseCSVRejectsBadHeader(t *testing.T) {
	t.Parallel()

	_, _, err := ParseCSV([]byte("\n\n"))
	require.Error(t, err)

	_, _, err = ParseCSV([]byte("nombre,descripcion\nA,b\n"))
	require.ErrorContains(t, err, "precio")
}

func TestParseCSVNegativePrice(t *testing.T) {
	t.Parallel()

	products, rowErrs, err := ParseCSV([]byte("nombre,precio\nA,-1\nB,2\n"))
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Len(t, rowErrs, 1)
	require.Contains(t, rowErrs[0].Error(), "negative")
}

func TestCSVLoaderFetchesOverHTTP(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(sheetCSV))
	}))
	t.Cleanup(srv.Close)

	loader := NewCSVLoader(srv.URL+"/pub?output=csv", srv.Client())
	products, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 3)
}

func TestCSVLoaderReadsLocalFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "productos.csv")
	require.NoError(t, os.WriteFile(path, []byte(sheetCSV), 0o644))

	products, err := NewCSVLoader(path, nil).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 3)
}

func TestCSVLoaderFailuresAreLoadErrors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	for _, source := range []string{srv.URL, filepath.Join(t.TempDir(), "missing.csv")} {
		_, err := NewCSVLoader(source, srv.Client()).Load(context.Background())
		var loadErr *LoadError
		require.True(t, errors.As(err, &loadErr), "source %s", source)
		require.Equal(t, source, loadErr.Source)
	}
}
