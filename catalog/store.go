package catalog

import (
	"fmt"
	"sync"
	"time"

	"github.com/gosimple/slug"

	"catalogo-productos/models"
)

// State is the load state of the store
type State int

const (
	StateLoading State = iota
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	}
	return "loading"
}

// Snapshot is a consistent view of the store. Products must be treated as read-only.
type Snapshot struct {
	State    State
	Products []models.Product
	Err      error // Last load error; set with StateFailed, or after a failed reload of a ready store
	LoadedAt time.Time
}

// Store holds the full product list and the facet options derived from it.
type Store struct {
	mu       sync.RWMutex
	facets   []string
	state    State
	products []models.Product
	bySlug   map[string]int
	options  map[string][]string
	images   map[string]struct{}
	err      error
	loadedAt time.Time
}

// NewStore creates an empty store in the loading state for the given facets
func NewStore(facets []string) *Store {
	return &Store{
		facets:  append([]string(nil), facets...),
		state:   StateLoading,
		bySlug:  map[string]int{},
		options: map[string][]string{},
		images:  map[string]struct{}{},
	}
}

// Facets returns the configured facet names
func (s *Store) Facets() []string {
	return s.facets
}

// Replace installs a freshly loaded list. The input slice is copied and every
// product gets a unique slug; facet options are recomputed.
func (s *Store) Replace(products []models.Product) {
	list := make([]models.Product, len(products))
	copy(list, products)

	bySlug := make(map[string]int, len(list))
	images := make(map[string]struct{})
	for i := range list {
		list[i].Slug = uniqueSlug(list[i].Name, bySlug)
		bySlug[list[i].Slug] = i
		if list[i].Images == nil {
			list[i].Images = []string{}
		}
		for _, img := range list[i].Images {
			images[img] = struct{}{}
		}
	}

	options := make(map[string][]string, len(s.facets))
	for _, facet := range s.facets {
		options[facet] = FacetOptions(list, facet)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = list
	s.bySlug = bySlug
	s.images = images
	s.options = options
	s.state = StateReady
	s.err = nil
	s.loadedAt = time.Now()
}

// Fail records a load failure. A store that already holds a list keeps serving it.
func (s *Store) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	if s.state != StateReady {
		s.state = StateFailed
	}
}

// Snapshot returns the current state, list and error
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		State:    s.state,
		Products: s.products,
		Err:      s.err,
		LoadedAt: s.loadedAt,
	}
}

// BySlug returns the product a card was bound to
func (s *Store) BySlug(productSlug string) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.bySlug[productSlug]
	if !ok {
		return models.Product{}, false
	}
	return s.products[i], true
}

// FacetOptions returns the distinct values of a configured facet
func (s *Store) FacetOptions(facet string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.options[facet]
}

// HasImage reports whether ref is an image of some loaded product
func (s *Store) HasImage(ref string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.images[ref]
	return ok
}

func uniqueSlug(name string, taken map[string]int) string {
	base := slug.Make(name)
	if base == "" {
		base = "producto"
	}
	candidate := base
	for n := 2; ; n++ {
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
}
