package crawler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/amishk599/jobscrapper/internal/model"
)

var _ model.Searcher = (*Crawler)(nil)

// Crawler owns the full crawl pipeline for a single source:
// open → fetch → extract → paginate → release.
type Crawler struct {
	source   model.Source
	opener   model.Opener
	maxPages int // 0 means no limit
	logger   *slog.Logger
}

// NewCrawler creates a crawler wired with all its dependencies.
func NewCrawler(source model.Source, opener model.Opener, maxPages int, logger *slog.Logger) *Crawler {
	return &Crawler{
		source:   source,
		opener:   opener,
		maxPages: maxPages,
		logger:   logger,
	}
}

// Name returns the key of the crawled source.
func (c *Crawler) Name() string { return c.source.Name() }

// Search collects every record the source yields for keyword.
//
// A transport failure ends pagination and the records gathered so far are
// returned without an error. Failing to open the fetcher, or any other fetch
// error, is returned together with the partial result. The fetcher is always
// released before Search returns.
func (c *Crawler) Search(ctx context.Context, keyword string) ([]model.Job, error) {
	name := c.source.Name()

	fetcher, release, err := c.opener.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("crawling %s: %w", name, err)
	}
	defer release()

	var jobs []model.Job
	pages := 0
	url := c.source.StartURL(keyword)

	for {
		if err := ctx.Err(); err != nil {
			return jobs, fmt.Errorf("crawling %s: %w", name, err)
		}

		c.logger.Debug("fetching page", "source", name, "url", url)
		doc, err := fetcher.Fetch(ctx, url)
		if err != nil {
			if ctx.Err() != nil {
				return jobs, fmt.Errorf("crawling %s: %w", name, ctx.Err())
			}
			if model.IsTransport(err) {
				c.logger.Warn("fetch failed, stopping pagination",
					"source", name,
					"url", url,
					"error", err,
				)
				break
			}
			return jobs, fmt.Errorf("crawling %s: %w", name, err)
		}
		pages++

		page := c.source.Extract(doc)
		if len(page) == 0 {
			c.logger.Info("no records on page", "source", name, "url", url)
		}
		jobs = append(jobs, page...)

		if c.maxPages > 0 && pages >= c.maxPages {
			c.logger.Warn("page limit reached", "source", name, "max_pages", c.maxPages)
			break
		}

		next, ok := c.source.Next(doc, url, page)
		if !ok {
			break
		}
		url = next
	}

	c.logger.Info("crawled source",
		"source", name,
		"keyword", keyword,
		"pages", pages,
		"jobs", len(jobs),
	)

	return jobs, nil
}
