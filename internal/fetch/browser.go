package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/jonathan/resume-ats-checker/internal/logger"
)

// MinContentLength is the extracted text length below which a page is
// treated as a client-rendered app.
const MinContentLength = 200

// Renderer returns the HTML of a page after scripts have run.
type Renderer func(ctx context.Context, url string) (string, error)

// ShouldUseBrowser reports whether extracted text is too short to be a real posting.
func ShouldUseBrowser(extracted string, minChars int) bool {
	if minChars <= 0 {
		minChars = MinContentLength
	}
	return utf8.RuneCountInString(strings.TrimSpace(extracted)) < minChars
}

// NewBrowserRenderer returns a Renderer backed by headless Chrome.
// Chrome or Chromium must be installed.
func NewBrowserRenderer(timeout time.Duration, log *zap.Logger) Renderer {
	log = logger.OrNop(log)
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return func(ctx context.Context, url string) (string, error) {
		return WithBrowser(ctx, url, timeout, log)
	}
}

// WithBrowser renders url in headless Chrome and returns the final HTML.
func WithBrowser(ctx context.Context, url string, timeout time.Duration, log *zap.Logger) (string, error) {
	log = logger.OrNop(log)
	log.Debug("starting headless browser", zap.String("url", url))

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(DefaultUserAgent),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(2*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("browser rendering failed: %w", err)
	}

	log.Debug("browser rendered page", zap.String("url", url), zap.Int("bytes", len(html)))
	return html, nil
}
