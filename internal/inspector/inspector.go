package inspector

import (
	"context"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/sells-group/proposal-cli/internal/config"
	"github.com/sells-group/proposal-cli/internal/model"
)

// Inspector wraps a Browser with a politeness rate limiter and a bounded
// concurrent batch mode for competitor URLs.
type Inspector struct {
	browser Browser
	limiter *rate.Limiter
	cfg     config.InspectConfig
}

// New creates an Inspector over the given browser.
func New(browser Browser, cfg config.InspectConfig) *Inspector {
	perSec := cfg.RatePerSecond
	if perSec <= 0 {
		perSec = 1.0
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 1
	}
	return &Inspector{
		browser: browser,
		limiter: rate.NewLimiter(rate.Limit(perSec), burst),
		cfg:     cfg,
	}
}

// Inspect captures a single page, retrying transient capture failures with
// backoff. Errors propagate to the caller; the pipeline treats a client-page
// failure as fatal for the run.
func (i *Inspector) Inspect(ctx context.Context, url string) (*model.CapturedPage, error) {
	if url == "" {
		return nil, eris.New("inspector: empty url")
	}

	attempts := i.cfg.CaptureRetries + 1
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if err := i.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "inspector: rate limit wait")
		}

		page, err := i.browser.CapturePage(ctx, url)
		if err == nil {
			return page, nil
		}
		lastErr = err

		if ctx.Err() != nil || attempt >= attempts-1 {
			break
		}

		zap.L().Warn("inspector: retrying capture",
			zap.String("url", url),
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)

		timer := time.NewTimer(captureBackoff(attempt, i.cfg))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, lastErr
		case <-timer.C:
		}
	}
	return nil, lastErr
}

// InspectAll captures multiple pages concurrently, bounded by the configured
// concurrency limit. Failed URLs are logged and excluded from the result;
// one bad competitor site never aborts the batch. Result order is not
// guaranteed.
func (i *Inspector) InspectAll(ctx context.Context, urls []string) []*model.CapturedPage {
	if i.cfg.MaxCompetitors > 0 && len(urls) > i.cfg.MaxCompetitors {
		zap.L().Warn("inspector: truncating competitor list",
			zap.Int("requested", len(urls)),
			zap.Int("max", i.cfg.MaxCompetitors),
		)
		urls = urls[:i.cfg.MaxCompetitors]
	}

	maxConcurrent := i.cfg.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}

	var (
		mu    sync.Mutex
		pages []*model.CapturedPage
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)

	for _, u := range urls {
		if u == "" {
			continue
		}
		g.Go(func() error {
			page, err := i.Inspect(gCtx, u)
			if err != nil {
				zap.L().Warn("inspector: skipping failed url",
					zap.String("url", u),
					zap.Error(err),
				)
				return nil
			}
			mu.Lock()
			pages = append(pages, page)
			mu.Unlock()
			return nil
		})
	}

	// Workers never return errors; Wait only orders completion.
	_ = g.Wait()
	return pages
}
