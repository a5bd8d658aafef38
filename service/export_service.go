package service

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"catalogo-productos/logger"
)

const (
	printPath     = "/catalogo/imprimir"
	exportTimeout = 45 * time.Second
)

var chromeCandidates = []string{
	"/usr/bin/chromium",
	"/usr/bin/chromium-browser",
	"/usr/bin/google-chrome",
	"/usr/bin/google-chrome-stable",
	"/snap/bin/chromium",
}

// ExportService prints the catalog print layout to PDF with headless Chrome
type ExportService struct {
	baseURL    string
	chromePath string
}

// NewExportService creates a new ExportService. chromePath may be empty, in
// which case the usual install locations are probed.
func NewExportService(baseURL, chromePath string) *ExportService {
	return &ExportService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		chromePath: chromePath,
	}
}

// detectChromePath returns configured if it exists, otherwise the first
// candidate found on disk, otherwise "" to let chromedp look it up.
func detectChromePath(configured string, candidates []string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
		logger.Log.Warnf("⚠️  Chrome not found at %s, probing defaults", configured)
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// PrintURL is the page Chrome navigates to for the given criteria query
func (s *ExportService) PrintURL(query url.Values) string {
	u := s.baseURL + printPath
	if encoded := query.Encode(); encoded != "" {
		u += "?" + encoded
	}
	return u
}

// GeneratePDF renders the print layout for query and returns the PDF bytes
func (s *ExportService) GeneratePDF(ctx context.Context, query url.Values) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, exportTimeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.Flag("enable-print-preview", true),
	)
	if chromePath := detectChromePath(s.chromePath, chromeCandidates); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	renderURL := s.PrintURL(query)
	logger.Log.Infof("📄 Exporting catalog PDF from %s", renderURL)

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(794, 1123),
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		chromedp.Evaluate(`
			(function() {
				return Promise.all(Array.from(document.querySelectorAll('img')).map(img => {
					return new Promise((resolve) => {
						if (img.complete) { resolve(); return; }
						const timeout = setTimeout(() => resolve(), 5000);
						img.onload = () => { clearTimeout(timeout); resolve(); };
						img.onerror = () => { clearTimeout(timeout); resolve(); };
					});
				}));
			})();
		`, nil, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4 portrait
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0.4).
				WithMarginBottom(0.4).
				WithMarginLeft(0.4).
				WithMarginRight(0.4).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	logger.Log.Infof("✅ Catalog PDF generated (%d bytes)", len(pdfBuf))
	return pdfBuf, nil
}
