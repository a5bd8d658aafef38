package controller

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"catalogo-productos/catalog"
	"catalogo-productos/logger"
	"catalogo-productos/models"
	"catalogo-productos/service"
)

// CatalogController handles the catalog page, its fragments and exports
type CatalogController struct {
	catalogService    *service.CatalogService
	renderer          *service.CatalogRenderer
	preferenceService *service.PreferenceService
	exportService     *service.ExportService
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(
	catalogService *service.CatalogService,
	renderer *service.CatalogRenderer,
	preferenceService *service.PreferenceService,
	exportService *service.ExportService,
) *CatalogController {
	return &CatalogController{
		catalogService:    catalogService,
		renderer:          renderer,
		preferenceService: preferenceService,
		exportService:     exportService,
	}
}

type productsResponse struct {
	Estado    string              `json:"estado"`
	Error     string              `json:"error,omitempty"`
	Total     int                 `json:"total"`
	Productos []models.Product    `json:"productos"`
	Facetas   map[string][]string `json:"facetas"`
}

// request reads preferences and criteria shared by every catalog handler
func (c *CatalogController) request(w http.ResponseWriter, r *http.Request) (models.Preferences, models.Criteria) {
	prefs := c.preferenceService.Load(newCookieStore(w, r))
	criteria := catalog.ParseCriteria(r.URL.Query(), c.catalogService.Store().Facets(), prefs.Locale)
	return prefs, criteria
}

// Index handles GET /
func (c *CatalogController) Index(w http.ResponseWriter, r *http.Request) {
	prefs, criteria := c.request(w, r)
	_, visible := c.catalogService.Visible(criteria)
	view := c.renderer.Page(c.catalogService.Store(), criteria, visible, prefs, nil)
	writeHTML(w, http.StatusOK, func(out io.Writer) error {
		return c.renderer.RenderPage(out, view)
	})
}

// Grid handles GET /catalogo, the grid fragment refreshed on every control change
func (c *CatalogController) Grid(w http.ResponseWriter, r *http.Request) {
	prefs, criteria := c.request(w, r)
	query := catalog.EncodeCriteria(criteria, c.catalogService.Store().Facets())
	if !isHTMX(r) {
		http.Redirect(w, r, catalog.WithQuery("/", query), http.StatusSeeOther)
		return
	}
	snap, visible := c.catalogService.Visible(criteria)
	view := c.renderer.Grid(snap, visible, prefs, query)
	view.OOB = true
	// Keeps the address bar on the page URL so a reload shows the same list
	w.Header().Set("HX-Push-Url", view.ReturnPath)
	writeHTML(w, http.StatusOK, func(out io.Writer) error {
		return c.renderer.RenderGrid(out, view)
	})
}

// Products handles GET /api/productos
func (c *CatalogController) Products(w http.ResponseWriter, r *http.Request) {
	_, criteria := c.request(w, r)
	snap, visible := c.catalogService.Visible(criteria)

	resp := productsResponse{
		Estado:    snap.State.String(),
		Total:     len(visible),
		Productos: visible,
		Facetas:   map[string][]string{},
	}
	if resp.Productos == nil {
		resp.Productos = []models.Product{}
	}
	for _, facet := range c.catalogService.Store().Facets() {
		opts := c.catalogService.Store().FacetOptions(facet)
		if opts == nil {
			opts = []string{}
		}
		resp.Facetas[facet] = opts
	}

	status := http.StatusOK
	switch snap.State {
	case catalog.StateLoading:
		status = http.StatusServiceUnavailable
	case catalog.StateFailed:
		status = http.StatusServiceUnavailable
		if snap.Err != nil {
			resp.Error = snap.Err.Error()
		}
	}
	writeJSON(w, status, resp)
}

// Print handles GET /catalogo/imprimir, the layout printed to PDF
func (c *CatalogController) Print(w http.ResponseWriter, r *http.Request) {
	prefs, criteria := c.request(w, r)
	if locale, ok := models.ParseLocale(r.URL.Query().Get("idioma")); ok {
		prefs.Locale = locale
		criteria.Locale = locale
	}
	_, visible := c.catalogService.Visible(criteria)
	view := c.renderer.Print(visible, prefs)
	writeHTML(w, http.StatusOK, func(out io.Writer) error {
		return c.renderer.RenderPrint(out, view)
	})
}

// ExportPDF handles GET /catalogo/exportar.pdf
func (c *CatalogController) ExportPDF(w http.ResponseWriter, r *http.Request) {
	prefs, criteria := c.request(w, r)
	if snap := c.catalogService.Store().Snapshot(); snap.State != catalog.StateReady {
		http.Error(w, "catalog is not loaded yet", http.StatusServiceUnavailable)
		return
	}

	query := catalog.EncodeCriteria(criteria, c.catalogService.Store().Facets())
	query.Set("idioma", string(prefs.Locale))

	pdfData, err := c.exportService.GeneratePDF(r.Context(), query)
	if err != nil {
		logger.Log.Errorf("❌ ExportPDF: Error generating PDF: %v", err)
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("catalogo_%s.pdf", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdfData); err != nil {
		logger.Log.Errorf("❌ ExportPDF: Error writing PDF response: %v", err)
	}
}

// Reload handles POST /admin/catalogo/recargar
func (c *CatalogController) Reload(w http.ResponseWriter, r *http.Request) {
	if err := c.catalogService.Reload(r.Context()); err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"status": "error",
			"error":  err.Error(),
		})
		return
	}
	snap := c.catalogService.Store().Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"productos": len(snap.Products),
		"cargado":   snap.LoadedAt.Format(time.RFC3339),
	})
}
