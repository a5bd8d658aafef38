package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"catalogo-productos/logger"
)

const (
	// Quality settings
	qualityThumb  = 60
	qualityMedium = 75
	// Size settings (max dimension)
	maxSizeThumb  = 300
	maxSizeMedium = 800

	// Image references of the form drive:<fileID> are downloaded through Drive
	driveImagePrefix = "drive:"
)

// Thumbnail sizes
const (
	SizeThumb  = "thumb"
	SizeMedium = "medium"
)

// ImageService serves resized catalog images from a disk cache
type ImageService struct {
	client       *http.Client
	driveService DriveServiceInterface // Optional; required for drive: references
	cacheDir     string
}

// NewImageService creates a new ImageService
func NewImageService(client *http.Client, driveService DriveServiceInterface, cacheDir string) *ImageService {
	if client == nil {
		client = http.DefaultClient
	}
	return &ImageService{client: client, driveService: driveService, cacheDir: cacheDir}
}

// EnsureCacheDir ensures the cache directory exists, creates it if it doesn't
func (s *ImageService) EnsureCacheDir() error {
	if err := os.MkdirAll(s.cacheDir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	return nil
}

// isThumbnailSource reports whether src can be fetched by the image service
func isThumbnailSource(src string) bool {
	return strings.HasPrefix(src, driveImagePrefix) || isRemote(src)
}

// CachePath returns the cache file path for an image reference and size
func (s *ImageService) CachePath(src, size string) string {
	sum := sha256.Sum256([]byte(src))
	return filepath.Join(s.cacheDir, fmt.Sprintf("%s_%s.jpg", hex.EncodeToString(sum[:12]), size))
}

// Thumbnail returns the optimized JPEG for src, computing and caching it on first use
func (s *ImageService) Thumbnail(ctx context.Context, src, size string) ([]byte, error) {
	size = normalizeThumbSize(size)
	cachePath := s.CachePath(src, size)

	if data, err := os.ReadFile(cachePath); err == nil {
		return data, nil
	}

	raw, err := s.fetch(ctx, src)
	if err != nil {
		return nil, err
	}

	optimized, err := OptimizeImage(raw, size)
	if err != nil {
		return nil, err
	}

	if err := saveToCache(cachePath, optimized); err != nil {
		// Serving still works without the cache.
		logger.Log.Warnf("⚠️  Could not cache image %s: %v", src, err)
	}
	return optimized, nil
}

func (s *ImageService) fetch(ctx context.Context, src string) ([]byte, error) {
	if fileID, ok := strings.CutPrefix(src, driveImagePrefix); ok {
		if s.driveService == nil {
			return nil, fmt.Errorf("drive image %s requested but Drive is not configured", fileID)
		}
		return s.driveService.DownloadImage(ctx, fileID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build image request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image endpoint returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	return data, nil
}

func saveToCache(cachePath string, imageData []byte) error {
	if err := os.MkdirAll(filepath.Dir(cachePath), 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(cachePath, imageData, 0o644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	logger.Log.Debugf("✓ Image cached: %s", cachePath)
	return nil
}

func normalizeThumbSize(size string) string {
	if size == SizeThumb {
		return SizeThumb
	}
	return SizeMedium
}

// OptimizeImage converts an image to JPEG, scaling it down to fit the size's max dimension.
// size is "thumb" or "medium"; anything else is treated as medium.
func OptimizeImage(imageData []byte, size string) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(imageData), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	maxDim, quality := maxSizeMedium, qualityMedium
	if normalizeThumbSize(size) == SizeThumb {
		maxDim, quality = maxSizeThumb, qualityThumb
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxDim || bounds.Dy() > maxDim {
		img = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}
	return buf.Bytes(), nil
}
