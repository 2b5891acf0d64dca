package web

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/amishk599/jobscrapper/internal/model"
)

// fakeSearcher records keywords and returns canned results.
type fakeSearcher struct {
	jobs     []model.Job
	err      error
	keywords []string
}

func (f *fakeSearcher) Search(_ context.Context, keyword string) ([]model.Job, error) {
	f.keywords = append(f.keywords, keyword)
	return f.jobs, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T, s Searcher) http.Handler {
	t.Helper()
	srv, err := NewServer(s, []string{"weworkremotely", "web3career"}, discardLogger())
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return srv.Routes()
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHome_RendersForm(t *testing.T) {
	rec := get(newTestServer(t, &fakeSearcher{}), "/")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `name="keyword"`) {
		t.Error("landing page has no keyword input")
	}
	if !strings.Contains(body, "weworkremotely, web3career") {
		t.Error("landing page does not list sources")
	}
}

func TestSearch_MissingKeywordRedirectsHome(t *testing.T) {
	f := &fakeSearcher{}
	h := newTestServer(t, f)

	for _, target := range []string{"/search", "/search?keyword=", "/search?keyword=%20%20"} {
		rec := get(h, target)
		if rec.Code != http.StatusFound {
			t.Errorf("%s: status = %d, want 302", target, rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != "/" {
			t.Errorf("%s: Location = %q", target, loc)
		}
	}
	if len(f.keywords) != 0 {
		t.Errorf("searcher must not run without a keyword, ran for %v", f.keywords)
	}
}

func TestSearch_RendersResults(t *testing.T) {
	f := &fakeSearcher{jobs: []model.Job{
		{Position: "Go <Engineer>", Company: "Acme", Condition: "Remote", Link: "https://acme.example/1", Source: "web3career"},
		{Position: "Python Dev", Company: "Beta", Condition: "N/A", Source: "berlinstartupjobs"},
	}}
	rec := get(newTestServer(t, f), "/search?keyword=golang")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(f.keywords) != 1 || f.keywords[0] != "golang" {
		t.Errorf("keywords = %v", f.keywords)
	}
	body := rec.Body.String()
	for _, want := range []string{"Results for golang", "2 jobs found", "Go &lt;Engineer&gt;", "https://acme.example/1", "Python Dev"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestSearch_SearcherError(t *testing.T) {
	rec := get(newTestServer(t, &fakeSearcher{err: errors.New("cancelled")}), "/search?keyword=go")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestExport_StreamsCSV(t *testing.T) {
	f := &fakeSearcher{jobs: []model.Job{{Position: "A", Company: "B", Condition: "C", Link: "D"}}}
	rec := get(newTestServer(t, f), "/export?keyword=kw")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename="kw.csv"` {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if body := rec.Body.String(); body != "Position, Company, Condition, URL\nA,B,C,D\n" {
		t.Errorf("body = %q", body)
	}
}

func TestUnknownRoute(t *testing.T) {
	rec := get(newTestServer(t, &fakeSearcher{}), "/nope")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
