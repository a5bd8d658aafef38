package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func pngFixture(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 255), G: 120, B: uint8(y % 255), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestOptimizeImageResizesKeepingAspect(t *testing.T) {
	t.Parallel()

	out, err := OptimizeImage(pngFixture(t, 1000, 500), SizeThumb)
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	require.Equal(t, 300, img.Bounds().Dx())
	require.Equal(t, 150, img.Bounds().Dy())
}

func TestOptimizeImageKeepsSmallImages(t *testing.T) {
	t.Parallel()

	out, err := OptimizeImage(pngFixture(t, 200, 100), SizeMedium)
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	require.Equal(t, 200, img.Bounds().Dx())
}

func TestOptimizeImageRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := OptimizeImage([]byte("not an image"), SizeThumb)
	require.Error(t, err)
}

func TestThumbnailUsesCache(t *testing.T) {
	t.Parallel()

	fixture := pngFixture(t, 900, 900)
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(fixture)
	}))
	t.Cleanup(srv.Close)

	svc := NewImageService(srv.Client(), nil, t.TempDir())
	require.NoError(t, svc.EnsureCacheDir())

	src := srv.URL + "/buso.png"
	first, err := svc.Thumbnail(context.Background(), src, SizeThumb)
	require.NoError(t, err)
	second, err := svc.Thumbnail(context.Background(), src, SizeThumb)
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, int32(1), hits.Load())

	_, err = os.Stat(svc.CachePath(src, SizeThumb))
	require.NoError(t, err)
}

func TestThumbnailDriveReference(t *testing.T) {
	t.Parallel()

	svc := NewImageService(nil, nil, t.TempDir())
	_, err := svc.Thumbnail(context.Background(), "drive:abc", SizeThumb)
	require.ErrorContains(t, err, "Drive is not configured")
}
