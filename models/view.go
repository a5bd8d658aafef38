package models

import "html/template"

// Translate returns the UI string for a key in the active locale
type Translate func(key string) string

// CardView is one product card of the grid
type CardView struct {
	Slug      string
	Name      string
	Price     string
	Image     string // "" renders the placeholder
	DetailURL string
}

// FacetOption is one value of a facet select
type FacetOption struct {
	Value    string
	Selected bool
}

// FacetControl is a facet select with its "todas" option first
type FacetControl struct {
	Name    string
	Label   string
	Options []FacetOption
}

// SortOption is one entry of the sort select
type SortOption struct {
	Value    string
	Label    string
	Selected bool
}

// GridView is the product grid in one of its load states
type GridView struct {
	State string // "loading", "ready" or "failed"
	Cards []CardView
	T     Translate

	// Links of the toolbar that depend on the criteria. With OOB set they are
	// rendered as out-of-band swaps next to the grid.
	ReturnPath string
	ExportURL  string
	OOB        bool
}

// DetailPanel is the open product detail modal
type DetailPanel struct {
	Slug        string
	Name        string
	Price       string
	Description template.HTML
	Image       string
	Index       int
	Position    int // 1-based, for the image counter
	Count       int
	PrevURL     string
	NextURL     string
	CloseURL    string
	T           Translate
}

// PageView is the full catalog page
type PageView struct {
	Prefs      Preferences
	DarkTheme  bool
	T          Translate
	Query      string
	Min        string
	Max        string
	Facets     []FacetControl
	Sorts      []SortOption
	Grid       GridView
	Detail     *DetailPanel
	ReturnPath string
	ExportURL  string
}

// PrintView is the print layout used for PDF export
type PrintView struct {
	Prefs Preferences
	T     Translate
	Cards []CardView
	Date  string
}
