package controller

import (
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"catalogo-productos/catalog"
	"catalogo-productos/logger"
	"catalogo-productos/models"
	"catalogo-productos/service"
)

// DetailController drives the product detail modal. The modal state travels in
// the URL: the product slug and the current image index.
type DetailController struct {
	catalogService    *service.CatalogService
	renderer          *service.CatalogRenderer
	preferenceService *service.PreferenceService
}

// NewDetailController creates a new DetailController
func NewDetailController(
	catalogService *service.CatalogService,
	renderer *service.CatalogRenderer,
	preferenceService *service.PreferenceService,
) *DetailController {
	return &DetailController{
		catalogService:    catalogService,
		renderer:          renderer,
		preferenceService: preferenceService,
	}
}

// open rebuilds the view for the slug in the route at the img index of the query
func (c *DetailController) open(r *http.Request) (catalog.DetailView, bool) {
	productSlug := chi.URLParam(r, "slug")
	p, err := c.catalogService.Product(productSlug)
	if err != nil {
		logger.Log.Warnf("⚠️  Detail: %v", err)
		return catalog.DetailView{}, false
	}
	index, _ := strconv.Atoi(r.URL.Query().Get("img"))
	return catalog.OpenAt(p, index), true
}

func (c *DetailController) listQuery(r *http.Request, prefs models.Preferences) url.Values {
	criteria := catalog.ParseCriteria(r.URL.Query(), c.catalogService.Store().Facets(), prefs.Locale)
	return catalog.EncodeCriteria(criteria, c.catalogService.Store().Facets())
}

// Show handles GET /productos/{slug}: the modal fragment for htmx, otherwise the
// full page with the modal open over the current list.
func (c *DetailController) Show(w http.ResponseWriter, r *http.Request) {
	view, ok := c.open(r)
	if !ok {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	prefs := c.preferenceService.Load(newCookieStore(w, r))
	criteria := catalog.ParseCriteria(r.URL.Query(), c.catalogService.Store().Facets(), prefs.Locale)
	query := catalog.EncodeCriteria(criteria, c.catalogService.Store().Facets())
	panel := c.renderer.Detail(view, prefs, query)

	if isHTMX(r) {
		writeHTML(w, http.StatusOK, func(out io.Writer) error {
			return c.renderer.RenderDetail(out, panel)
		})
		return
	}

	_, visible := c.catalogService.Visible(criteria)
	page := c.renderer.Page(c.catalogService.Store(), criteria, visible, prefs, panel)
	writeHTML(w, http.StatusOK, func(out io.Writer) error {
		return c.renderer.RenderPage(out, page)
	})
}

// Image handles GET /productos/{slug}/imagen?img=i&dir=next|prev
func (c *DetailController) Image(w http.ResponseWriter, r *http.Request) {
	view, ok := c.open(r)
	if !ok {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	switch r.URL.Query().Get("dir") {
	case "next":
		view.Next()
	case "prev":
		view.Prev()
	default:
		http.Error(w, "dir must be next or prev", http.StatusBadRequest)
		return
	}

	prefs := c.preferenceService.Load(newCookieStore(w, r))
	query := c.listQuery(r, prefs)
	if !isHTMX(r) {
		q := catalog.CloneValues(query)
		q.Set("img", strconv.Itoa(view.Index()))
		http.Redirect(w, r, catalog.WithQuery("/productos/"+url.PathEscape(chi.URLParam(r, "slug")), q), http.StatusSeeOther)
		return
	}

	panel := c.renderer.Detail(view, prefs, query)
	writeHTML(w, http.StatusOK, func(out io.Writer) error {
		return c.renderer.RenderDetailImage(out, panel)
	})
}

// Close handles GET /productos/{slug}/cerrar
func (c *DetailController) Close(w http.ResponseWriter, r *http.Request) {
	if isHTMX(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		return
	}
	prefs := c.preferenceService.Load(newCookieStore(w, r))
	http.Redirect(w, r, catalog.WithQuery("/", c.listQuery(r, prefs)), http.StatusSeeOther)
}
