package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"catalogo-productos/app/controller"
	"catalogo-productos/app/middleware"
	"catalogo-productos/templates"
)

type Controllers struct {
	Catalog    *controller.CatalogController
	Detail     *controller.DetailController
	Preference *controller.PreferenceController
	Image      *controller.ImageController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// SetupRoutes registers every route on r. exportLimiter guards the PDF export.
func SetupRoutes(r chi.Router, controllers *Controllers, exportLimiter *middleware.RateLimiter) {
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLogger)

	r.Get("/ping", pingHandler)

	static, err := fs.Sub(templates.Static, "static")
	if err != nil {
		panic(err)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	// Catalog
	r.Get("/", controllers.Catalog.Index)
	r.Get("/catalogo", controllers.Catalog.Grid)
	r.Get("/catalogo/imprimir", controllers.Catalog.Print)
	r.With(exportLimiter.Handler).Get("/catalogo/exportar.pdf", controllers.Catalog.ExportPDF)
	r.Get("/api/productos", controllers.Catalog.Products)
	r.Post("/admin/catalogo/recargar", controllers.Catalog.Reload)

	// Product detail
	r.Route("/productos/{slug}", func(r chi.Router) {
		r.Get("/", controllers.Detail.Show)
		r.Get("/imagen", controllers.Detail.Image)
		r.Get("/cerrar", controllers.Detail.Close)
	})

	// Preferences
	r.Post("/preferencias/tema", controllers.Preference.ToggleTheme)
	r.Post("/preferencias/idioma", controllers.Preference.SetLocale)

	// Images
	r.Get("/imagenes/miniatura", controllers.Image.Thumbnail)
}
