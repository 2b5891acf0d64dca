package adapter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"

	"github.com/amishk599/jobscrapper/internal/model"
)

// DefaultBrowserWait bounds how long a session waits for the ready selector.
const DefaultBrowserWait = 10 * time.Second

var _ model.Opener = (*BrowserOpener)(nil)

// BrowserOpener launches a headless Chrome session per crawl. Pages fetched
// through the session are considered loaded once readySelector is present.
type BrowserOpener struct {
	readySelector   string
	wait            time.Duration
	navigateTimeout time.Duration
	userAgent       string
	execPath        string
}

// NewBrowserOpener creates an opener. wait bounds the ready-selector wait,
// navigateTimeout bounds the navigation itself. execPath may be empty to let
// chromedp locate Chrome.
func NewBrowserOpener(readySelector string, wait, navigateTimeout time.Duration, userAgent, execPath string) *BrowserOpener {
	if wait <= 0 {
		wait = DefaultBrowserWait
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &BrowserOpener{
		readySelector:   readySelector,
		wait:            wait,
		navigateTimeout: navigateTimeout,
		userAgent:       userAgent,
		execPath:        execPath,
	}
}

// Open starts the browser. The returned release func shuts it down and must
// be called even when every fetch failed.
func (o *BrowserOpener) Open(ctx context.Context) (model.PageFetcher, func(), error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(o.userAgent),
	)
	if o.execPath != "" {
		opts = append(opts, chromedp.ExecPath(o.execPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	release := func() {
		cancelBrowser()
		cancelAlloc()
	}

	// An empty Run launches the browser so launch failures surface here.
	if err := chromedp.Run(browserCtx); err != nil {
		release()
		return nil, nil, fmt.Errorf("launching browser: %w", err)
	}

	return &browserSession{
		ctx:             browserCtx,
		readySelector:   o.readySelector,
		wait:            o.wait,
		navigateTimeout: o.navigateTimeout,
	}, release, nil
}

// browserSession fetches pages in one already-running browser tab.
type browserSession struct {
	ctx             context.Context
	readySelector   string
	wait            time.Duration
	navigateTimeout time.Duration
}

// Fetch navigates to url, waits for the ready selector and parses the
// rendered DOM. The ctx argument is ignored in favour of the session context,
// which already derives from the crawl context passed to Open.
func (s *browserSession) Fetch(_ context.Context, url string) (*goquery.Document, error) {
	navCtx := s.ctx
	if s.navigateTimeout > 0 {
		var cancel context.CancelFunc
		navCtx, cancel = context.WithTimeout(s.ctx, s.navigateTimeout)
		defer cancel()
	}
	if err := chromedp.Run(navCtx, chromedp.Navigate(url)); err != nil {
		return nil, &model.TransportError{URL: url, Err: fmt.Errorf("navigating: %w", err)}
	}

	waitCtx, cancel := context.WithTimeout(s.ctx, s.wait)
	defer cancel()

	var html string
	err := chromedp.Run(waitCtx,
		chromedp.WaitReady(s.readySelector, chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && s.ctx.Err() == nil {
			err = fmt.Errorf("waiting for %s: %w", s.readySelector, model.ErrRenderTimeout)
		}
		return nil, &model.TransportError{URL: url, Err: err}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing rendered page %s: %w", url, err)
	}
	return doc, nil
}
