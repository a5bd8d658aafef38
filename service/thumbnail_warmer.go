package service

import (
	"context"
	"fmt"
	"os"

	"catalogo-productos/logger"
	"catalogo-productos/models"
)

// WarmResult summarises one warm-up pass
type WarmResult struct {
	Total     int
	Generated int
	Skipped   int
	Errors    []string
}

// ThumbnailWarmer fills the thumbnail cache after a load so first page views
// do not pay for resizing
type ThumbnailWarmer struct {
	images *ImageService
}

// NewThumbnailWarmer creates a new ThumbnailWarmer
func NewThumbnailWarmer(images *ImageService) *ThumbnailWarmer {
	return &ThumbnailWarmer{images: images}
}

// Ensure ThumbnailWarmer implements ThumbnailWarmerInterface
var _ ThumbnailWarmerInterface = (*ThumbnailWarmer)(nil)

type warmJob struct {
	src  string
	size string
}

// warmJobs lists the card thumbnail of every product and the modal size of
// every remote image, without duplicates
func warmJobs(products []models.Product) []warmJob {
	seen := map[warmJob]bool{}
	var jobs []warmJob
	add := func(src, size string) {
		j := warmJob{src: src, size: size}
		if src == "" || seen[j] {
			return
		}
		seen[j] = true
		jobs = append(jobs, j)
	}
	for i := range products {
		p := &products[i]
		if src := p.FirstImage(); isThumbnailSource(src) {
			add(src, SizeThumb)
		}
		for _, src := range p.Images {
			if isThumbnailSource(src) {
				add(src, SizeMedium)
			}
		}
	}
	return jobs
}

// Warm generates every missing thumbnail. Failures are collected and do not
// stop the pass; a cancelled ctx does.
func (w *ThumbnailWarmer) Warm(ctx context.Context, products []models.Product) WarmResult {
	jobs := warmJobs(products)
	result := WarmResult{Total: len(jobs)}
	logger.Log.Infof("🖼️  Warming %d thumbnails", len(jobs))

	for _, j := range jobs {
		if ctx.Err() != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("warm-up cancelled: %v", ctx.Err()))
			break
		}

		if _, err := os.Stat(w.images.CachePath(j.src, j.size)); err == nil {
			result.Skipped++
			continue
		}

		if _, err := w.images.Thumbnail(ctx, j.src, j.size); err != nil {
			errorMsg := fmt.Sprintf("Failed to warm %s (%s): %v", j.src, j.size, err)
			logger.Log.Warnf("⚠️  %s", errorMsg)
			result.Errors = append(result.Errors, errorMsg)
			continue
		}
		result.Generated++
	}

	logger.Log.Infof("✅ Thumbnails warmed: %d generated, %d skipped, %d errors",
		result.Generated, result.Skipped, len(result.Errors))
	return result
}
