package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"catalogo-productos/app/controller"
	"catalogo-productos/app/middleware"
	"catalogo-productos/app/router"
	"catalogo-productos/catalog"
	"catalogo-productos/config"
	"catalogo-productos/db"
	"catalogo-productos/i18n"
	"catalogo-productos/logger"
	"catalogo-productos/models"
	"catalogo-productos/repository"
	"catalogo-productos/service"
)

const (
	imageFetchTimeout  = 30 * time.Second
	limiterSweepPeriod = time.Minute
)

// App holds the wired application
type App struct {
	Config         config.Config
	Handler        http.Handler
	CatalogService *service.CatalogService

	exportLimiter *middleware.RateLimiter
	warmer        service.ThumbnailWarmerInterface
	db            *sql.DB
}

// newClients returns the client for catalog sources and the one for images.
// Loads are bounded by the catalog load timeout alone, so the source client
// carries no deadline of its own.
func newClients() (loaderClient, imageClient *http.Client) {
	return &http.Client{}, &http.Client{Timeout: imageFetchTimeout}
}

// Initialize wires services, controllers and routes for cfg. It does not load
// the catalog; call Start for that.
func Initialize(ctx context.Context, cfg config.Config) (*App, error) {
	loaderClient, imageClient := newClients()

	var driveService service.DriveServiceInterface
	if cfg.CredentialsPath != "" {
		ds, err := service.NewDriveService(ctx, cfg.CredentialsPath)
		if err != nil {
			return nil, err
		}
		driveService = ds
	}

	loader, conn, err := newLoader(ctx, cfg, loaderClient, driveService)
	if err != nil {
		return nil, err
	}

	a, err := build(cfg, loader, imageClient, driveService)
	if err != nil {
		if conn != nil {
			conn.Close()
		}
		return nil, err
	}
	a.db = conn
	return a, nil
}

// newLoader picks the product source configured for the deployment. The
// database handle is non-nil only for the postgres source.
func newLoader(ctx context.Context, cfg config.Config, client *http.Client, driveService service.DriveServiceInterface) (service.ProductLoaderInterface, *sql.DB, error) {
	switch cfg.Source {
	case config.SourceCSV:
		return service.NewCSVLoader(cfg.SourceURL, client), nil, nil
	case config.SourceJSON:
		return service.NewJSONLoader(cfg.SourceURL, client), nil, nil
	case config.SourceDrive:
		if driveService == nil {
			return nil, nil, fmt.Errorf("GOOGLE_APPLICATION_CREDENTIALS is required for the drive source")
		}
		return service.NewDriveSheetLoader(driveService, cfg.DriveSheetID), nil, nil
	case config.SourcePostgres:
		conn, err := db.Open(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return service.NewPostgresLoader(repository.NewProductRepository(conn)), conn, nil
	}
	return nil, nil, fmt.Errorf("unknown catalog source %q", cfg.Source)
}

// build wires everything above the loader
func build(cfg config.Config, loader service.ProductLoaderInterface, client *http.Client, driveService service.DriveServiceInterface) (*App, error) {
	bundle, err := i18n.Load()
	if err != nil {
		return nil, err
	}

	store := catalog.NewStore(cfg.Facets)
	catalogService := service.NewCatalogService(store, loader, cfg.LoadTimeout)
	preferenceService := service.NewPreferenceService()
	exportService := service.NewExportService(cfg.BaseURL, cfg.ChromePath)
	imageService := service.NewImageService(client, driveService, cfg.CacheDir)
	if cfg.ThumbnailsEnabled {
		if err := imageService.EnsureCacheDir(); err != nil {
			return nil, err
		}
	}

	renderer, err := service.NewCatalogRenderer(bundle, service.NewDescriptionRenderer(), cfg.Currency, cfg.Facets, cfg.ThumbnailsEnabled)
	if err != nil {
		return nil, err
	}

	controllers := &router.Controllers{
		Catalog:    controller.NewCatalogController(catalogService, renderer, preferenceService, exportService),
		Detail:     controller.NewDetailController(catalogService, renderer, preferenceService),
		Preference: controller.NewPreferenceController(preferenceService),
		Image:      controller.NewImageController(store, imageService),
	}

	exportLimiter := middleware.NewRateLimiter(cfg.ExportPerMinute, 2)
	r := chi.NewRouter()
	router.SetupRoutes(r, controllers, exportLimiter)

	a := &App{
		Config:         cfg,
		Handler:        r,
		CatalogService: catalogService,
		exportLimiter:  exportLimiter,
	}
	if cfg.ThumbnailsEnabled {
		a.warmer = service.NewThumbnailWarmer(imageService)
	}
	return a, nil
}

// Start launches the initial catalog load and background housekeeping. Both
// stop when ctx is cancelled.
func (a *App) Start(ctx context.Context) {
	if a.warmer != nil {
		a.CatalogService.OnLoaded(func(products []models.Product) {
			go a.warmer.Warm(ctx, products)
		})
	}
	go func() {
		// Failures are already recorded in the store and logged
		_ = a.CatalogService.Reload(ctx)
	}()
	go a.exportLimiter.SweepEvery(ctx, limiterSweepPeriod)
}

// Close releases the resources opened by Initialize
func (a *App) Close() {
	if a.db == nil {
		return
	}
	if err := a.db.Close(); err != nil {
		logger.Log.Warnf("⚠️  Error closing database: %v", err)
	}
}
