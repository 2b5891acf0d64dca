package search

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/amishk599/jobscrapper/internal/model"
)

// Orchestrator merges the results of several sources for a keyword and
// caches the merged result.
type Orchestrator struct {
	sources []model.Searcher
	cache   model.SearchCache
	group   singleflight.Group
	logger  *slog.Logger
}

// NewOrchestrator creates an orchestrator that queries sources in the given
// order and concatenates their results in that order.
func NewOrchestrator(sources []model.Searcher, cache model.SearchCache, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		sources: sources,
		cache:   cache,
		logger:  logger,
	}
}

// Sources returns the names of the configured sources in query order.
func (o *Orchestrator) Sources() []string {
	names := make([]string, len(o.sources))
	for i, s := range o.sources {
		names[i] = s.Name()
	}
	return names
}

// Search returns the merged records for keyword. A cached result is returned
// unchanged without touching any source. Otherwise every source is queried
// sequentially; concurrent callers for the same keyword share one run.
//
// A failing source is logged and contributes whatever it returned before
// failing. Results from a run with a failing source are not cached. The
// only error returned is a cancelled or expired ctx.
func (o *Orchestrator) Search(ctx context.Context, keyword string) ([]model.Job, error) {
	if jobs, ok := o.cache.Get(keyword); ok {
		o.logger.Debug("cache hit", "keyword", keyword, "jobs", len(jobs))
		return jobs, nil
	}

	v, err, shared := o.group.Do(keyword, func() (any, error) {
		// Another caller may have filled the cache while we waited.
		if jobs, ok := o.cache.Get(keyword); ok {
			return jobs, nil
		}
		return o.run(ctx, keyword)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		o.logger.Debug("joined in-flight search", "keyword", keyword)
	}
	return v.([]model.Job), nil
}

func (o *Orchestrator) run(ctx context.Context, keyword string) ([]model.Job, error) {
	var all []model.Job
	failed := 0

	for _, s := range o.sources {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("searching %q: %w", keyword, err)
		}

		jobs, err := s.Search(ctx, keyword)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("searching %q: %w", keyword, ctx.Err())
			}
			failed++
			o.logger.Error("source failed",
				"source", s.Name(),
				"keyword", keyword,
				"kept", len(jobs),
				"error", err,
			)
		}
		all = append(all, jobs...)
	}

	if failed == 0 {
		o.cache.Put(keyword, all)
	}

	o.logger.Info("search complete",
		"keyword", keyword,
		"sources", len(o.sources),
		"failed", failed,
		"jobs", len(all),
		"cached", failed == 0,
	)

	return all, nil
}
