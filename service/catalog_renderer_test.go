package service

import (
	"bytes"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"catalogo-productos/catalog"
	"catalogo-productos/i18n"
	"catalogo-productos/models"
	"catalogo-productos/testutil"
)

func newTestRenderer(t *testing.T, thumbnails bool) *CatalogRenderer {
	t.Helper()
	r, err := NewCatalogRenderer(i18n.MustLoad(), NewDescriptionRenderer(), "ARS", []string{models.FacetCategory}, thumbnails)
	require.NoError(t, err)
	return r
}

func readyStore(products ...models.Product) *catalog.Store {
	s := catalog.NewStore([]string{models.FacetCategory})
	s.Replace(products)
	return s
}

func TestRendererPageControls(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t, false)
	store := readyStore(
		models.Product{Name: "A", Price: 100, Category: "x", Images: []string{"a.jpg"}},
		models.Product{Name: "B", Price: 50, Category: "y", Images: []string{"b.jpg"}},
	)
	c := models.DefaultCriteria()
	c.Facets[models.FacetCategory] = "y"
	c.Sort = models.SortPriceAsc
	visible := catalog.Visible(store.Snapshot().Products, c)

	var buf bytes.Buffer
	require.NoError(t, r.RenderPage(&buf, r.Page(store, c, visible, models.DefaultPreferences(), nil)))
	doc := testutil.ParseHTML(t, buf.Bytes())

	options := doc.Find("#filtro-categoria option")
	require.Equal(t, []string{"Todas", "x", "y"}, testutil.Texts(options))
	require.Equal(t, "todas", options.First().AttrOr("value", ""))
	require.Equal(t, "y", doc.Find("#filtro-categoria option[selected]").AttrOr("value", ""))
	require.Equal(t, "precio-asc", doc.Find("#orden option[selected]").AttrOr("value", ""))

	require.Equal(t, []string{"B"}, testutil.Texts(doc.Find(".card h3")))
	require.Equal(t, "$ 50", strings.TrimSpace(doc.Find(".card .precio").Text()))
	require.Equal(t, "/catalogo/exportar.pdf?categoria=y&orden=precio-asc", doc.Find("#exportar").AttrOr("href", ""))
	require.Equal(t, "", doc.Find("body").AttrOr("class", "missing"))
	require.Equal(t, 0, doc.Find("#modal").Length())
}

func TestRendererPageEnglishDark(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t, false)
	store := readyStore(models.Product{Name: "A", Price: 12500, Category: "x"})
	prefs := models.Preferences{Theme: models.ThemeDark, Locale: models.LocaleEN}
	c := models.DefaultCriteria()

	var buf bytes.Buffer
	require.NoError(t, r.RenderPage(&buf, r.Page(store, c, store.Snapshot().Products, prefs, nil)))
	doc := testutil.ParseHTML(t, buf.Bytes())

	require.Equal(t, "dark", doc.Find("body").AttrOr("class", ""))
	require.Equal(t, "en", doc.Find("html").AttrOr("lang", ""))
	require.Equal(t, "All", strings.TrimSpace(doc.Find("#filtro-categoria option").First().Text()))
	require.Equal(t, "ARS 12,500", strings.TrimSpace(doc.Find(".card .precio").Text()))
	require.Equal(t, 1, doc.Find(".card .sin-imagen").Length(), "missing image renders the placeholder")
}

func TestRendererGridStates(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t, false)
	prefs := models.DefaultPreferences()

	render := func(view models.GridView) string {
		var buf bytes.Buffer
		require.NoError(t, r.RenderGrid(&buf, view))
		return buf.String()
	}

	loading := catalog.NewStore(nil)
	require.Contains(t, render(r.Grid(loading.Snapshot(), nil, prefs, nil)), "Cargando productos")

	failed := catalog.NewStore(nil)
	failed.Fail(&LoadError{Source: "x", Err: errors.New("timeout")})
	require.Contains(t, render(r.Grid(failed.Snapshot(), nil, prefs, nil)), "No pudimos cargar")

	ready := readyStore()
	doc := testutil.ParseHTML(t, []byte(render(r.Grid(ready.Snapshot(), nil, prefs, nil))))
	require.Equal(t, "No hay productos", strings.TrimSpace(doc.Find(".empty").Text()))
}

func TestRendererCardLinksCarryCriteria(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t, true)
	store := readyStore(models.Product{Name: "Buso Rojo", Price: 1, Images: []string{"https://img.test/1.jpg"}})
	q := url.Values{"q": {"buso"}}

	var buf bytes.Buffer
	require.NoError(t, r.RenderGrid(&buf, r.Grid(store.Snapshot(), store.Snapshot().Products, models.DefaultPreferences(), q)))
	doc := testutil.ParseHTML(t, buf.Bytes())

	card := doc.Find(".card")
	require.Equal(t, "/productos/buso-rojo?q=buso", card.AttrOr("href", ""))
	require.Equal(t, "buso-rojo", card.AttrOr("data-slug", ""))
	require.Equal(t, "/imagenes/miniatura?size=thumb&src=https%3A%2F%2Fimg.test%2F1.jpg", card.Find("img").AttrOr("src", ""))
}

func TestRendererDetail(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t, false)
	p := models.Product{Slug: "a", Name: "A", Price: 100, Description: "**suave**", Images: []string{"a1.jpg", "a2.jpg"}}
	view := catalog.OpenAt(p, 1)

	panel := r.Detail(view, models.DefaultPreferences(), url.Values{"orden": {"precio-asc"}})
	require.NotNil(t, panel)

	var buf bytes.Buffer
	require.NoError(t, r.RenderDetail(&buf, panel))
	doc := testutil.ParseHTML(t, buf.Bytes())

	require.Equal(t, "A", strings.TrimSpace(doc.Find("#modal-nombre").Text()))
	require.Equal(t, "suave", strings.TrimSpace(doc.Find("#modal-descripcion strong").Text()))
	require.Equal(t, "$ 100", strings.TrimSpace(doc.Find("#modal-precio").Text()))
	require.Equal(t, "a2.jpg", doc.Find("#modal-img").AttrOr("src", ""))
	require.Equal(t, "2 / 2", strings.TrimSpace(doc.Find(".contador").Text()))
	require.Equal(t, "/productos/a/imagen?dir=next&img=1&orden=precio-asc", doc.Find("#next-img").AttrOr("href", ""))
	require.Equal(t, "/productos/a/cerrar?orden=precio-asc", doc.Find("#cerrar-modal").AttrOr("href", ""))

	closed := catalog.DetailView{}
	require.Nil(t, r.Detail(closed, models.DefaultPreferences(), nil))
}

func TestRendererDetailWithoutImages(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t, false)
	panel := r.Detail(catalog.OpenAt(models.Product{Slug: "c", Name: "C"}, 0), models.DefaultPreferences(), nil)

	var buf bytes.Buffer
	require.NoError(t, r.RenderDetailImage(&buf, panel))
	doc := testutil.ParseHTML(t, buf.Bytes())

	require.Equal(t, 0, doc.Find("#modal-img").Length())
	require.Equal(t, "Sin imagen", strings.TrimSpace(doc.Find(".sin-imagen").Text()))
	require.Equal(t, 0, doc.Find("#next-img").Length())
}

func TestRendererPrint(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t, false)
	visible := []models.Product{{Slug: "b", Name: "B", Price: 50}, {Slug: "a", Name: "A", Price: 100}}

	var buf bytes.Buffer
	require.NoError(t, r.RenderPrint(&buf, r.Print(visible, models.DefaultPreferences())))
	doc := testutil.ParseHTML(t, buf.Bytes())
	require.Equal(t, []string{"B", "A"}, testutil.Texts(doc.Find(".card h3")))

	buf.Reset()
	require.NoError(t, r.RenderPrint(&buf, r.Print(nil, models.DefaultPreferences())))
	require.Contains(t, buf.String(), "No hay productos")
}

func TestRendererGridOutOfBandToolbar(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t, false)
	store := readyStore(models.Product{Name: "A", Price: 1, Category: "x"})
	q := url.Values{"categoria": {"x"}}

	view := r.Grid(store.Snapshot(), store.Snapshot().Products, models.DefaultPreferences(), q)
	require.Equal(t, "/?categoria=x", view.ReturnPath)
	require.Equal(t, "/catalogo/exportar.pdf?categoria=x", view.ExportURL)

	var buf bytes.Buffer
	require.NoError(t, r.RenderGrid(&buf, view))
	require.Equal(t, 0, testutil.ParseHTML(t, buf.Bytes()).Find("[hx-swap-oob]").Length(), "embedded grid carries no swaps")

	view.OOB = true
	buf.Reset()
	require.NoError(t, r.RenderGrid(&buf, view))
	doc := testutil.ParseHTML(t, buf.Bytes())
	require.Equal(t, 3, doc.Find("[hx-swap-oob]").Length())
	require.Equal(t, "/catalogo/exportar.pdf?categoria=x", doc.Find("#exportar").AttrOr("href", ""))
}
