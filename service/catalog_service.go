package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"catalogo-productos/catalog"
	"catalogo-productos/logger"
	"catalogo-productos/models"
)

// CatalogService owns the product store and the loader that fills it
type CatalogService struct {
	store       *catalog.Store
	loader      ProductLoaderInterface
	loadTimeout time.Duration
	onLoaded    []func(products []models.Product)

	// reloadMu keeps loads in sequence so an older, slower load cannot
	// install its result over a newer one
	reloadMu sync.Mutex
}

// NewCatalogService creates a new CatalogService. loadTimeout 0 means the load
// waits as long as ctx allows.
func NewCatalogService(store *catalog.Store, loader ProductLoaderInterface, loadTimeout time.Duration) *CatalogService {
	return &CatalogService{
		store:       store,
		loader:      loader,
		loadTimeout: loadTimeout,
	}
}

// Store returns the product store
func (s *CatalogService) Store() *catalog.Store {
	return s.store
}

// OnLoaded registers fn to run after every successful load. Hooks run
// synchronously on the loading goroutine and must not be registered concurrently
// with Reload.
func (s *CatalogService) OnLoaded(fn func(products []models.Product)) {
	s.onLoaded = append(s.onLoaded, fn)
}

// Reload runs the loader once and installs the result. Failures are recorded in
// the store and returned; there is no automatic retry. Concurrent calls run one
// after another and the load timeout starts once a call gets its turn.
func (s *CatalogService) Reload(ctx context.Context) error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	if s.loadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.loadTimeout)
		defer cancel()
	}

	start := time.Now()
	logger.Log.Infof("🔄 Loading catalog from %s", s.loader.Source())

	products, err := s.loader.Load(ctx)
	if err != nil {
		logger.Log.Errorf("❌ Error loading catalog: %v", err)
		s.store.Fail(err)
		return err
	}
	if len(products) == 0 {
		logger.Log.Warnf("⚠️  Catalog source %s returned no products", s.loader.Source())
	}

	s.store.Replace(products)
	logger.Log.Infof("🎉 Catalog loaded: %d products in %s", len(products), time.Since(start).Round(time.Millisecond))

	for _, fn := range s.onLoaded {
		fn(s.store.Snapshot().Products)
	}
	return nil
}

// Visible returns the store snapshot and the list visible under c.
// Nothing is visible until the store is ready.
func (s *CatalogService) Visible(c models.Criteria) (catalog.Snapshot, []models.Product) {
	snap := s.store.Snapshot()
	if snap.State != catalog.StateReady {
		return snap, nil
	}
	return snap, catalog.Visible(snap.Products, c)
}

// Product returns the product bound to a card
func (s *CatalogService) Product(slug string) (models.Product, error) {
	p, ok := s.store.BySlug(slug)
	if !ok {
		return models.Product{}, fmt.Errorf("product %q does not exist", slug)
	}
	return p, nil
}
