package service

import (
	"fmt"
	"html/template"
	"io"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"catalogo-productos/catalog"
	"catalogo-productos/i18n"
	"catalogo-productos/models"
	"catalogo-productos/templates"
	"catalogo-productos/utils"
)

const exportPath = "/catalogo/exportar.pdf"

var sortOrder = []models.SortKey{
	models.SortNone,
	models.SortNameAsc,
	models.SortNameDesc,
	models.SortPriceAsc,
	models.SortPriceDesc,
}

// CatalogRenderer builds view models and executes the embedded templates
type CatalogRenderer struct {
	tmpl         *template.Template
	bundle       *i18n.Bundle
	descriptions *DescriptionRenderer
	currency     string
	facets       []string
	thumbnails   bool
}

// NewCatalogRenderer parses the embedded templates
func NewCatalogRenderer(bundle *i18n.Bundle, descriptions *DescriptionRenderer, currency string, facets []string, thumbnails bool) (*CatalogRenderer, error) {
	tmpl, err := template.ParseFS(templates.FS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &CatalogRenderer{
		tmpl:         tmpl,
		bundle:       bundle,
		descriptions: descriptions,
		currency:     currency,
		facets:       facets,
		thumbnails:   thumbnails,
	}, nil
}

// Grid builds the grid for a snapshot and the list visible in it
func (r *CatalogRenderer) Grid(snap catalog.Snapshot, visible []models.Product, prefs models.Preferences, query url.Values) models.GridView {
	view := models.GridView{
		State:      snap.State.String(),
		T:          r.translator(prefs),
		ReturnPath: catalog.WithQuery("/", query),
		ExportURL:  catalog.WithQuery(exportPath, query),
	}
	if snap.State != catalog.StateReady {
		return view
	}
	view.Cards = r.cards(visible, prefs, query)
	return view
}

// Page builds the full page: controls reflecting c, the grid and an optional open detail
func (r *CatalogRenderer) Page(store *catalog.Store, c models.Criteria, visible []models.Product, prefs models.Preferences, detail *models.DetailPanel) models.PageView {
	t := r.translator(prefs)
	query := catalog.EncodeCriteria(c, r.facets)

	view := models.PageView{
		Prefs:      prefs,
		DarkTheme:  prefs.Theme == models.ThemeDark,
		T:          t,
		Query:      c.Query,
		Min:        formatBound(c.MinPrice),
		Max:        formatBound(c.MaxPrice),
		Grid:       r.Grid(store.Snapshot(), visible, prefs, query),
		Detail:     detail,
		ReturnPath: catalog.WithQuery("/", query),
		ExportURL:  catalog.WithQuery(exportPath, query),
	}

	for _, facet := range r.facets {
		control := models.FacetControl{Name: facet, Label: t("facet." + facet)}
		selected := c.Facets[facet]
		for _, opt := range store.FacetOptions(facet) {
			control.Options = append(control.Options, models.FacetOption{Value: opt, Selected: opt == selected})
		}
		view.Facets = append(view.Facets, control)
	}

	for _, key := range sortOrder {
		label := "sort.none"
		if key != models.SortNone {
			label = "sort." + string(key)
		}
		view.Sorts = append(view.Sorts, models.SortOption{
			Value:    string(key),
			Label:    t(label),
			Selected: key == c.Sort,
		})
	}
	return view
}

// Detail builds the modal for an open view; nil when the view is closed
func (r *CatalogRenderer) Detail(v catalog.DetailView, prefs models.Preferences, query url.Values) *models.DetailPanel {
	p, ok := v.Product()
	if !ok {
		return nil
	}
	panel := &models.DetailPanel{
		Slug:        p.Slug,
		Name:        p.Name,
		Price:       utils.FormatPrice(p.Price, prefs.Locale, r.currency),
		Description: r.descriptions.Render(p.Description),
		Index:       v.Index(),
		Count:       v.ImageCount(),
		CloseURL:    catalog.WithQuery("/productos/"+url.PathEscape(p.Slug)+"/cerrar", query),
		T:           r.translator(prefs),
	}
	if img, ok := v.CurrentImage(); ok {
		panel.Image = r.imageURL(img, SizeMedium)
		panel.Position = v.Index() + 1
	}
	if panel.Count > 0 {
		panel.PrevURL = imageNavURL(p.Slug, v.Index(), "prev", query)
		panel.NextURL = imageNavURL(p.Slug, v.Index(), "next", query)
	}
	return panel
}

// Print builds the print layout of the visible list
func (r *CatalogRenderer) Print(visible []models.Product, prefs models.Preferences) models.PrintView {
	return models.PrintView{
		Prefs: prefs,
		T:     r.translator(prefs),
		Cards: r.cards(visible, prefs, nil),
		Date:  time.Now().Format("02/01/2006"),
	}
}

// RenderPage writes the full page
func (r *CatalogRenderer) RenderPage(w io.Writer, view models.PageView) error {
	return r.execute(w, "page", view)
}

// RenderGrid writes the grid fragment
func (r *CatalogRenderer) RenderGrid(w io.Writer, view models.GridView) error {
	return r.execute(w, "grid", view)
}

// RenderDetail writes the modal fragment
func (r *CatalogRenderer) RenderDetail(w io.Writer, panel *models.DetailPanel) error {
	return r.execute(w, "detail", panel)
}

// RenderDetailImage writes the carousel fragment of the modal
func (r *CatalogRenderer) RenderDetailImage(w io.Writer, panel *models.DetailPanel) error {
	return r.execute(w, "detail-image", panel)
}

// RenderPrint writes the print layout
func (r *CatalogRenderer) RenderPrint(w io.Writer, view models.PrintView) error {
	return r.execute(w, "print", view)
}

func (r *CatalogRenderer) execute(w io.Writer, name string, data any) error {
	if err := r.tmpl.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return nil
}

func (r *CatalogRenderer) translator(prefs models.Preferences) models.Translate {
	return r.bundle.Translator(prefs.Locale)
}

func (r *CatalogRenderer) cards(visible []models.Product, prefs models.Preferences, query url.Values) []models.CardView {
	cards := make([]models.CardView, 0, len(visible))
	for i := range visible {
		p := &visible[i]
		cards = append(cards, models.CardView{
			Slug:      p.Slug,
			Name:      p.Name,
			Price:     utils.FormatPrice(p.Price, prefs.Locale, r.currency),
			Image:     r.imageURL(p.FirstImage(), SizeThumb),
			DetailURL: catalog.WithQuery("/productos/"+url.PathEscape(p.Slug), query),
		})
	}
	return cards
}

// imageURL points remote images at the thumbnail endpoint when thumbnails are
// enabled. Drive references always go through it since browsers cannot load them.
func (r *CatalogRenderer) imageURL(src, size string) string {
	switch {
	case src == "":
		return ""
	case strings.HasPrefix(src, driveImagePrefix):
	case r.thumbnails && isThumbnailSource(src):
	default:
		return src
	}
	q := url.Values{}
	q.Set("src", src)
	q.Set("size", size)
	return "/imagenes/miniatura?" + q.Encode()
}

func imageNavURL(productSlug string, index int, dir string, query url.Values) string {
	q := catalog.CloneValues(query)
	q.Set("img", strconv.Itoa(index))
	q.Set("dir", dir)
	return catalog.WithQuery("/productos/"+url.PathEscape(productSlug)+"/imagen", q)
}

// formatBound renders a price bound for an input; defaults render empty
func formatBound(v float64) string {
	if v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
