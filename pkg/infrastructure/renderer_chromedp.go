package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"

	"cv-builder/pkg/document"
)

// ErrSurfaceNotFound is returned when the page has no element with the
// requested id.
var ErrSurfaceNotFound = errors.New("render target not found")

// CaptureScale is the oversampling factor used for print quality.
const CaptureScale = 2.0

// ViewportWidth matches the preview's fixed CSS width.
const ViewportWidth = 794

type ChromedpOptions struct {
	ExecPath         string
	AllowCrossOrigin bool
	Timeout          time.Duration
}

type ChromedpRenderer struct {
	opts ChromedpOptions
}

func NewChromedpRenderer(opts ChromedpOptions) *ChromedpRenderer {
	if opts.ExecPath == "" {
		opts.ExecPath = os.Getenv("CHROME_PATH")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	return &ChromedpRenderer{opts: opts}
}

// Capture loads html in headless Chrome and screenshots the element with id
// surfaceID at CaptureScale.
func (r *ChromedpRenderer) Capture(ctx context.Context, html string, surfaceID string) (document.Raster, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("hide-scrollbars", true),
	)
	if r.opts.AllowCrossOrigin {
		allocOpts = append(allocOpts, chromedp.Flag("disable-web-security", true))
	}
	if r.opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(r.opts.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancel()

	cctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	ctx2, cancel2 := context.WithTimeout(cctx, r.opts.Timeout)
	defer cancel2()

	// write HTML to a temporary directory so relative assets resolve
	tmpDir, err := os.MkdirTemp("", "cv-preview-")
	if err != nil {
		return document.Raster{}, err
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return document.Raster{}, err
	}

	var nodes []*cdp.Node
	sel := "#" + surfaceID
	err = chromedp.Run(ctx2,
		chromedp.EmulateViewport(ViewportWidth, 1123),
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Nodes(sel, &nodes, chromedp.ByQuery, chromedp.AtLeast(0)),
	)
	if err != nil {
		return document.Raster{}, fmt.Errorf("load preview: %w", err)
	}
	if len(nodes) == 0 {
		return document.Raster{}, fmt.Errorf("%w: #%s", ErrSurfaceNotFound, surfaceID)
	}

	var buf []byte
	if err := chromedp.Run(ctx2, chromedp.ScreenshotScale(sel, CaptureScale, &buf, chromedp.ByQuery)); err != nil {
		return document.Raster{}, fmt.Errorf("screenshot #%s: %w", surfaceID, err)
	}
	return document.NewRaster(buf)
}
