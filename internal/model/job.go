package model

import (
	"context"

	"github.com/PuerkitoBio/goquery"
)

// Job is the flat record every source produces.
type Job struct {
	Position    string // never empty once emitted
	Company     string
	Condition   string // free-form: "N/A" or comma-joined tags/locations
	Link        string // absolute URL, empty when the listing had none
	Source      string // source key that produced the record
	Description string // optional teaser text (berlinstartupjobs only)
}

// PageFetcher retrieves and parses one page.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

// Opener hands out a PageFetcher for the duration of one crawl. The returned
// release func must be called exactly once, on every exit path.
type Opener interface {
	Open(ctx context.Context) (PageFetcher, func(), error)
}

// Source knows one site's URL scheme, markup and pagination rule.
type Source interface {
	Name() string
	StartURL(keyword string) string
	Extract(doc *goquery.Document) []Job
	// Next returns the URL of the page after current, or false when the
	// crawl should stop. page holds the records Extract produced for doc.
	Next(doc *goquery.Document, current string, page []Job) (string, bool)
}

// Searcher collects all records for a keyword.
type Searcher interface {
	Name() string
	Search(ctx context.Context, keyword string) ([]Job, error)
}

// SearchCache maps a keyword to the merged result of its first search.
type SearchCache interface {
	Get(keyword string) ([]Job, bool)
	Put(keyword string, jobs []Job)
}

// Notifier reports the result of a one-shot search.
type Notifier interface {
	Notify(keyword string, jobs []Job) error
}
