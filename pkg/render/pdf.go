package render

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/artem13815/cvpolish/pkg/cvparse"
)

// ErrRendererUnavailable is returned when no Chrome endpoint is configured.
var ErrRendererUnavailable = errors.New("pdf renderer is not configured")

// A4 in inches.
const (
	paperWidth  = 8.27
	paperHeight = 11.69
	margin      = 0.4
)

// Renderer prints records to PDF through a remote headless Chrome.
type Renderer struct {
	wsURL   string
	timeout time.Duration
}

func NewRenderer(wsURL string, timeout time.Duration) *Renderer {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Renderer{wsURL: wsURL, timeout: timeout}
}

// Available reports whether a Chrome endpoint is configured.
func (r *Renderer) Available() bool { return r != nil && r.wsURL != "" }

func (r *Renderer) PDF(ctx context.Context, rec cvparse.Record) ([]byte, error) {
	if !r.Available() {
		return nil, ErrRendererUnavailable
	}
	html, err := HTML(rec)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	allocCtx, allocCancel := chromedp.NewRemoteAllocator(ctx, r.wsURL)
	defer allocCancel()
	taskCtx, taskCancel := chromedp.NewContext(allocCtx)
	defer taskCancel()

	params := page.PrintToPDF().
		WithPrintBackground(true).
		WithPreferCSSPageSize(true).
		WithPaperWidth(paperWidth).
		WithPaperHeight(paperHeight).
		WithMarginTop(margin).
		WithMarginBottom(margin).
		WithMarginLeft(margin).
		WithMarginRight(margin)

	var out []byte
	err = chromedp.Run(taskCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, string(html)).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			out, _, err = params.Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("print pdf: %w", err)
	}
	return out, nil
}
