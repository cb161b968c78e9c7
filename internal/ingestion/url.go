package ingestion

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/resume-ats-checker/internal/fetch"
	"github.com/jonathan/resume-ats-checker/internal/logger"
)

var (
	// ErrHTTPRequestFailed is returned when the posting cannot be downloaded.
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	// ErrContentExtractionFailed is returned when no text can be extracted.
	ErrContentExtractionFailed = errors.New("content extraction failed")
)

// URLOptions configures IngestFromURL.
type URLOptions struct {
	Fetch        *fetch.Options
	UseBrowser   bool
	MinTextChars int
	Render       fetch.Renderer  // defaults to headless Chrome when UseBrowser is set
	Cache        fetch.PageCache // optional
	Logger       *zap.Logger
}

// IngestFromURL downloads a job posting, extracts its main text with the
// selectors of the detected job board and cleans it. When UseBrowser is set
// and the extracted text is too short, the page is rendered in a headless
// browser and extracted again.
func IngestFromURL(ctx context.Context, rawURL string, opts URLOptions) (string, *Metadata, error) {
	log := logger.OrNop(opts.Logger)
	platform := fetch.DetectPlatform(rawURL)

	if opts.Cache != nil {
		if text, ok := opts.Cache.Get(ctx, rawURL); ok {
			log.Debug("job posting served from cache", zap.String("url", rawURL))
			meta := NewMetadata(text, rawURL)
			meta.Platform = string(platform)
			meta.Cached = true
			return text, meta, nil
		}
	}

	result, err := fetch.URL(ctx, rawURL, opts.Fetch)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}
	log.Debug("fetched job posting",
		zap.String("url", rawURL),
		zap.String("platform", string(platform)),
		zap.Int("bytes", len(result.HTML)))

	content := fetch.PlatformContentSelectors(platform)
	noise := fetch.PlatformNoiseSelectors(platform)

	text, err := fetch.ExtractMainText(result.HTML, content, noise...)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}

	rendered := false
	if opts.UseBrowser && fetch.ShouldUseBrowser(text, opts.MinTextChars) {
		render := opts.Render
		if render == nil {
			timeout := fetch.DefaultTimeout
			if opts.Fetch != nil && opts.Fetch.Timeout > 0 {
				timeout = opts.Fetch.Timeout
			}
			render = fetch.NewBrowserRenderer(timeout, log)
		}

		log.Info("extracted text too short, rendering in browser",
			zap.String("url", rawURL),
			zap.Int("chars", len(text)))
		if html, err := render(ctx, rawURL); err != nil {
			log.Warn("browser rendering failed, using HTTP content", zap.Error(err))
		} else if browserText, err := fetch.ExtractMainText(html, content, noise...); err != nil {
			log.Warn("browser content extraction failed", zap.Error(err))
		} else {
			text = browserText
			rendered = true
		}
	}

	cleaned := CleanText(text)
	if cleaned == "" {
		return "", nil, fmt.Errorf("%w: no text found at %s", ErrContentExtractionFailed, rawURL)
	}

	if opts.Cache != nil {
		opts.Cache.Put(ctx, rawURL, cleaned)
	}

	meta := NewMetadata(cleaned, rawURL)
	meta.Platform = string(platform)
	meta.Rendered = rendered
	return cleaned, meta, nil
}
