package models

// Facet names recognised as first-class product fields.
const (
	FacetCategory = "categoria"
	FacetType     = "tipo"
	FacetStatus   = "estado"
)

// Product represents a single catalog entry
type Product struct {
	Slug        string            `json:"slug"`
	Name        string            `json:"nombre"`
	Description string            `json:"descripcion"`
	Price       float64           `json:"precio"`
	Category    string            `json:"categoria,omitempty"`
	Type        string            `json:"tipo,omitempty"`
	Status      string            `json:"estado,omitempty"`
	Images      []string          `json:"imagenes"`
	Attributes  map[string]string `json:"atributos,omitempty"` // Extra text columns of the source
}

// Facet returns the product's value for the named facet.
// Unknown facet names are looked up in Attributes.
func (p *Product) Facet(name string) string {
	switch name {
	case FacetCategory:
		return p.Category
	case FacetType:
		return p.Type
	case FacetStatus:
		return p.Status
	}
	return p.Attributes[name]
}

// FirstImage returns the first image reference, or "" when the product has none.
func (p *Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
