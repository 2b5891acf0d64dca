package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/amishk599/jobscrapper/internal/model"
)

var (
	_ model.PageFetcher = (*RetryFetcher)(nil)
	_ model.Opener      = (*RetryOpener)(nil)
)

// RetryFetcher is a decorator that retries transient page fetch failures with
// exponential backoff and jitter before giving up.
type RetryFetcher struct {
	inner      model.PageFetcher
	maxRetries int
	baseDelay  time.Duration
	logger     *slog.Logger
}

// NewRetryFetcher wraps a PageFetcher with retry logic.
// maxRetries is the number of additional attempts after the first failure;
// zero disables retrying. baseDelay is the delay before the first retry,
// doubled on each subsequent retry.
func NewRetryFetcher(inner model.PageFetcher, maxRetries int, baseDelay time.Duration, logger *slog.Logger) *RetryFetcher {
	return &RetryFetcher{
		inner:      inner,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		logger:     logger,
	}
}

// Fetch attempts to fetch url, retrying on transient errors.
func (f *RetryFetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	doc, err := f.inner.Fetch(ctx, url)
	if err == nil {
		return doc, nil
	}

	if !isRetryable(err) {
		return nil, err
	}

	var lastErr error = err
	for attempt := 1; attempt <= f.maxRetries; attempt++ {
		delay := f.backoffDelay(attempt, lastErr)

		f.logger.Warn("retrying after transient error",
			"url", url,
			"attempt", attempt,
			"max_retries", f.maxRetries,
			"delay", delay,
			"error", lastErr,
		)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("retry cancelled: %w", ctx.Err())
		case <-time.After(delay):
		}

		doc, err = f.inner.Fetch(ctx, url)
		if err == nil {
			return doc, nil
		}

		if !isRetryable(err) {
			return nil, err
		}
		lastErr = err
	}

	return nil, lastErr
}

// backoffDelay computes the delay for a given attempt with ±30% jitter.
// If the error includes a Retry-After duration (HTTP 429), that takes precedence.
func (f *RetryFetcher) backoffDelay(attempt int, err error) time.Duration {
	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) && httpErr.RetryAfter > 0 {
		return httpErr.RetryAfter
	}

	// Exponential: baseDelay * 2^(attempt-1)
	delay := f.baseDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
	}

	jitter := float64(delay) * 0.3
	return time.Duration(float64(delay) + (rand.Float64()*2-1)*jitter)
}

// isRetryable returns true if the error represents a transient failure worth retrying.
// Only transport errors qualify; anything else came from parsing and would fail again.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	if !model.IsTransport(err) {
		return false
	}

	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.StatusCode == 429 {
			return true
		}
		return httpErr.StatusCode >= 500
	}

	// Network, DNS and render timeouts.
	return true
}

// RetryOpener wraps every PageFetcher handed out by an Opener in a RetryFetcher.
type RetryOpener struct {
	inner      model.Opener
	maxRetries int
	baseDelay  time.Duration
	logger     *slog.Logger
}

// NewRetryOpener decorates inner. See NewRetryFetcher for the parameters.
func NewRetryOpener(inner model.Opener, maxRetries int, baseDelay time.Duration, logger *slog.Logger) *RetryOpener {
	return &RetryOpener{
		inner:      inner,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		logger:     logger,
	}
}

// Open opens the inner fetcher and wraps it.
func (o *RetryOpener) Open(ctx context.Context) (model.PageFetcher, func(), error) {
	pf, release, err := o.inner.Open(ctx)
	if err != nil {
		return nil, nil, err
	}
	return NewRetryFetcher(pf, o.maxRetries, o.baseDelay, o.logger), release, nil
}
