package printing

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/lawai/backend/internal/infrastructure/config"
	"github.com/lawai/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

const defaultChromeTimeout = 30 * time.Second

// ChromedpRenderer renders HTML to PDF using the Chrome DevTools Protocol
type ChromedpRenderer struct {
	timeout     time.Duration
	pageWait    time.Duration
	logger      *zap.Logger
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// NewChromedpRenderer creates a renderer. With cfg.RemoteURL set it attaches
// to a running Chrome; otherwise a headless Chrome is launched on first use.
func NewChromedpRenderer(cfg config.PrintingConfig, logger *zap.Logger) (*ChromedpRenderer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &ChromedpRenderer{
		timeout:  cfg.Timeout,
		pageWait: time.Duration(cfg.PageLoadWaitMS) * time.Millisecond,
		logger:   logger,
	}
	if r.timeout <= 0 {
		r.timeout = defaultChromeTimeout
	}

	if cfg.RemoteURL != "" {
		r.allocCtx, r.allocCancel = chromedp.NewRemoteAllocator(context.Background(), cfg.RemoteURL)
		return r, nil
	}

	r.allocCtx, r.allocCancel = chromedp.NewExecAllocator(context.Background(), allocatorOptions(cfg)...)
	return r, nil
}

func allocatorOptions(cfg config.PrintingConfig) []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", cfg.DisableGPU),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	if cfg.NoSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}
	if cfg.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ChromePath))
	}
	return opts
}

// Render converts HTML content to PDF
func (r *ChromedpRenderer) Render(ctx context.Context, req *RenderRequest) (*RenderResult, error) {
	if req == nil || strings.TrimSpace(req.HTML) == "" {
		return nil, NewRenderError(ErrCodeInvalidHTML, "HTML content is empty", nil)
	}

	ctx, span := telemetry.StartSpan(ctx, "chromedp.print_to_pdf",
		telemetry.WithAttribute("pdf.title", req.Title))
	defer span.End()

	start := time.Now()
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = r.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	browserCtx, browserCancel := chromedp.NewContext(r.allocCtx,
		chromedp.WithLogf(func(format string, args ...any) {
			r.logger.Debug(fmt.Sprintf(format, args...))
		}),
	)
	defer browserCancel()
	// Tie the tab's lifetime to the request deadline.
	stop := context.AfterFunc(ctx, browserCancel)
	defer stop()

	document := buildCompleteHTML(req)
	params := buildPrintParams(req)

	var pdfData []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, document).Do(ctx)
		}),
		chromedp.Sleep(r.pageWait),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := params.Do(ctx)
			pdfData = data
			return err
		}),
	)
	if err != nil {
		telemetry.RecordError(span, err)
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, NewRenderError(ErrCodeRenderTimeout, fmt.Sprintf("PDF rendering timed out after %v", timeout), err)
		}
		r.logger.Error("chromedp rendering failed", zap.Error(err))
		return nil, NewRenderError(ErrCodeRenderFailed, "chromedp execution failed", err)
	}
	if len(pdfData) == 0 {
		return nil, NewRenderError(ErrCodeRenderFailed, "generated PDF is empty", nil)
	}

	result := &RenderResult{
		PDFData:        pdfData,
		PageCount:      estimatePageCount(pdfData),
		RenderDuration: time.Since(start),
	}
	telemetry.SetOK(span)
	r.logger.Debug("PDF rendered",
		zap.Int("bytes", len(pdfData)),
		zap.Int("pages", result.PageCount),
		zap.Duration("duration", result.RenderDuration))
	return result, nil
}

// buildPrintParams maps the request onto an A4 PrintToPDF call
func buildPrintParams(req *RenderRequest) *page.PrintToPDFParams {
	width, height := mmToInches(a4WidthMM), mmToInches(a4HeightMM)
	m := req.Margins
	if m == (Margins{}) {
		m = DefaultMargins()
	}

	params := page.PrintToPDF().
		WithPrintBackground(true).
		WithPreferCSSPageSize(false).
		WithPaperWidth(width).
		WithPaperHeight(height).
		WithLandscape(req.Landscape).
		WithMarginTop(mmToInches(m.Top)).
		WithMarginRight(mmToInches(m.Right)).
		WithMarginBottom(mmToInches(m.Bottom)).
		WithMarginLeft(mmToInches(m.Left))

	if req.FooterHTML != "" {
		params = params.
			WithDisplayHeaderFooter(true).
			WithHeaderTemplate("<span></span>").
			WithFooterTemplate(req.FooterHTML)
		if m.Bottom < 15 {
			params = params.WithMarginBottom(mmToInches(15))
		}
	}
	return params
}

// buildCompleteHTML wraps a fragment in a complete UTF-8 document
func buildCompleteHTML(req *RenderRequest) string {
	lower := strings.ToLower(req.HTML)
	if strings.Contains(lower, "<!doctype") || strings.Contains(lower, "<html") {
		return req.HTML
	}

	var buf bytes.Buffer
	buf.WriteString(`<!DOCTYPE html><html lang="pt-BR"><head><meta charset="UTF-8">`)
	if req.Title != "" {
		buf.WriteString("<title>")
		buf.WriteString(html.EscapeString(req.Title))
		buf.WriteString("</title>")
	}
	buf.WriteString("</head><body>")
	buf.WriteString(req.HTML)
	buf.WriteString("</body></html>")
	return buf.String()
}

// Close releases the browser allocator
func (r *ChromedpRenderer) Close() error {
	if r.allocCancel != nil {
		r.allocCancel()
	}
	return nil
}

func mmToInches(mm float64) float64 {
	return mm / 25.4
}

// estimatePageCount counts page objects in the PDF; never less than one
func estimatePageCount(pdfData []byte) int {
	count := bytes.Count(pdfData, []byte("/Type /Page")) - bytes.Count(pdfData, []byte("/Type /Pages"))
	return max(count, 1)
}

var _ PDFRenderer = (*ChromedpRenderer)(nil)
