package catalog

import "catalogo-productos/models"

// DetailView is the product detail modal: Closed, or Open on a product at an image index.
// The zero value is Closed.
type DetailView struct {
	product *models.Product
	index   int
}

// OpenAt returns a view already open on p at index, normalised into the image range.
// It reconstructs the modal state carried in a request.
func OpenAt(p models.Product, index int) DetailView {
	v := DetailView{}
	v.Select(p)
	if n := len(p.Images); n > 0 {
		v.index = ((index % n) + n) % n
	}
	return v
}

// Select opens the view on p at its first image
func (v *DetailView) Select(p models.Product) {
	v.product = &p
	v.index = 0
}

// Next advances to the following image, wrapping to the first
func (v *DetailView) Next() {
	n := v.imageCount()
	if n == 0 {
		return
	}
	v.index = (v.index + 1) % n
}

// Prev moves to the previous image, wrapping to the last
func (v *DetailView) Prev() {
	n := v.imageCount()
	if n == 0 {
		return
	}
	v.index = (v.index - 1 + n) % n
}

// Close returns the view to Closed
func (v *DetailView) Close() {
	v.product = nil
	v.index = 0
}

// IsOpen reports whether a product is shown
func (v *DetailView) IsOpen() bool {
	return v.product != nil
}

// Product returns the shown product
func (v *DetailView) Product() (models.Product, bool) {
	if v.product == nil {
		return models.Product{}, false
	}
	return *v.product, true
}

// Index returns the current image index; 0 when closed
func (v *DetailView) Index() int {
	return v.index
}

// ImageCount returns the number of images of the shown product
func (v *DetailView) ImageCount() int {
	return v.imageCount()
}

// CurrentImage returns the image at the current index, ok=false when there is none
func (v *DetailView) CurrentImage() (string, bool) {
	if v.imageCount() == 0 {
		return "", false
	}
	return v.product.Images[v.index], true
}

func (v *DetailView) imageCount() int {
	if v.product == nil {
		return 0
	}
	return len(v.product.Images)
}
