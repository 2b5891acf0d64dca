package search

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/amishk599/jobscrapper/internal/model"
	"github.com/amishk599/jobscrapper/internal/store"
)

// --- Fakes ---

// countingSource returns canned jobs and counts calls.
type countingSource struct {
	name  string
	jobs  []model.Job
	err   error
	calls atomic.Int32
	gate  chan struct{} // when non-nil, Search blocks until closed
}

func (s *countingSource) Name() string { return s.name }

func (s *countingSource) Search(ctx context.Context, _ string) ([]model.Job, error) {
	s.calls.Add(1)
	if s.gate != nil {
		select {
		case <-s.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.jobs, s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func job(position, source string) model.Job {
	return model.Job{Position: position, Company: "c", Condition: "N/A", Link: "https://x/" + position, Source: source}
}

// --- Tests ---

func TestSearch_ConcatenatesInSourceOrder(t *testing.T) {
	wwr := &countingSource{name: "weworkremotely", jobs: []model.Job{job("a", "weworkremotely")}}
	web3 := &countingSource{name: "web3career", jobs: []model.Job{job("b", "web3career"), job("c", "web3career")}}
	bsj := &countingSource{name: "berlinstartupjobs", jobs: []model.Job{job("d", "berlinstartupjobs")}}

	o := NewOrchestrator([]model.Searcher{wwr, web3, bsj}, store.NewMemoryCache(), discardLogger())

	jobs, err := o.Search(context.Background(), "python")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got []string
	for _, j := range jobs {
		got = append(got, j.Position)
	}
	if !reflect.DeepEqual(got, []string{"a", "b", "c", "d"}) {
		t.Errorf("order = %v", got)
	}
	if !reflect.DeepEqual(o.Sources(), []string{"weworkremotely", "web3career", "berlinstartupjobs"}) {
		t.Errorf("Sources = %v", o.Sources())
	}
}

func TestSearch_RepeatLookupIsCached(t *testing.T) {
	src := &countingSource{name: "s", jobs: []model.Job{job("a", "s"), job("b", "s")}}
	o := NewOrchestrator([]model.Searcher{src}, store.NewMemoryCache(), discardLogger())

	first, err := o.Search(context.Background(), "go")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := o.Search(context.Background(), "go")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeat lookup differs: %v vs %v", first, second)
	}
	if n := src.calls.Load(); n != 1 {
		t.Errorf("source called %d times, want 1", n)
	}
}

func TestSearch_DistinctKeywordsFetchSeparately(t *testing.T) {
	src := &countingSource{name: "s", jobs: []model.Job{job("a", "s")}}
	o := NewOrchestrator([]model.Searcher{src}, store.NewMemoryCache(), discardLogger())

	o.Search(context.Background(), "go")
	o.Search(context.Background(), "rust")

	if n := src.calls.Load(); n != 2 {
		t.Errorf("source called %d times, want 2", n)
	}
}

func TestSearch_FailingSourceIsIsolated(t *testing.T) {
	ok := &countingSource{name: "ok", jobs: []model.Job{job("a", "ok")}}
	bad := &countingSource{name: "bad", jobs: []model.Job{job("partial", "bad")}, err: errors.New("browser crashed")}
	last := &countingSource{name: "last", jobs: []model.Job{job("z", "last")}}
	cache := store.NewMemoryCache()
	o := NewOrchestrator([]model.Searcher{ok, bad, last}, cache, discardLogger())

	jobs, err := o.Search(context.Background(), "go")
	if err != nil {
		t.Fatalf("a failing source must not fail the search: %v", err)
	}
	if len(jobs) != 3 {
		t.Errorf("jobs = %d, want 3 (including partial)", len(jobs))
	}
	if _, hit := cache.Get("go"); hit {
		t.Error("results of a degraded search must not be cached")
	}

	// The next search retries every source.
	o.Search(context.Background(), "go")
	if n := ok.calls.Load(); n != 2 {
		t.Errorf("ok source called %d times, want 2", n)
	}
}

func TestSearch_EmptyResultIsCached(t *testing.T) {
	src := &countingSource{name: "s"}
	o := NewOrchestrator([]model.Searcher{src}, store.NewMemoryCache(), discardLogger())

	o.Search(context.Background(), "cobol")
	o.Search(context.Background(), "cobol")

	if n := src.calls.Load(); n != 1 {
		t.Errorf("source called %d times, want 1", n)
	}
}

func TestSearch_ConcurrentFirstLookupsShareOneRun(t *testing.T) {
	src := &countingSource{name: "s", jobs: []model.Job{job("a", "s")}, gate: make(chan struct{})}
	o := NewOrchestrator([]model.Searcher{src}, store.NewMemoryCache(), discardLogger())

	var wg sync.WaitGroup
	results := make([][]model.Job, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			jobs, err := o.Search(context.Background(), "go")
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			results[i] = jobs
		}(i)
	}

	// Give every goroutine a chance to join the in-flight call.
	time.Sleep(50 * time.Millisecond)
	close(src.gate)
	wg.Wait()

	if n := src.calls.Load(); n != 1 {
		t.Errorf("source called %d times, want 1", n)
	}
	for i, r := range results {
		if len(r) != 1 {
			t.Errorf("result %d = %v", i, r)
		}
	}
}

func TestSearch_CancelledContext(t *testing.T) {
	src := &countingSource{name: "s", jobs: []model.Job{job("a", "s")}}
	cache := store.NewMemoryCache()
	o := NewOrchestrator([]model.Searcher{src}, cache, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := o.Search(ctx, "go"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if src.calls.Load() != 0 {
		t.Error("no source should run after cancellation")
	}
	if cache.Len() != 0 {
		t.Error("nothing should be cached after cancellation")
	}
}
