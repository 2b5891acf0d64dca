package web

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/amishk599/jobscrapper/internal/export"
	"github.com/amishk599/jobscrapper/internal/model"
)

type homeView struct {
	Sources []string
}

type searchView struct {
	Keyword string
	Jobs    []model.Job
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, "home.html", homeView{Sources: s.sources})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	keyword, ok := keywordParam(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	jobs, err := s.searcher.Search(r.Context(), keyword)
	if err != nil {
		s.logger.Error("search failed", "keyword", keyword, "error", err)
		http.Error(w, "search failed", http.StatusServiceUnavailable)
		return
	}

	s.render(w, "search.html", searchView{Keyword: keyword, Jobs: jobs})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	keyword, ok := keywordParam(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	jobs, err := s.searcher.Search(r.Context(), keyword)
	if err != nil {
		s.logger.Error("export failed", "keyword", keyword, "error", err)
		http.Error(w, "search failed", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(keyword)))
	if err := export.Write(w, jobs); err != nil {
		s.logger.Error("writing export", "keyword", keyword, "error", err)
	}
}

// keywordParam returns the keyword query parameter, or false when it is
// absent or blank.
func keywordParam(r *http.Request) (string, bool) {
	values, ok := r.URL.Query()["keyword"]
	if !ok || len(values) == 0 {
		return "", false
	}
	keyword := strings.TrimSpace(values[0])
	return keyword, keyword != ""
}

// render executes the named template into a buffer first so a template error
// never produces a half-written page.
func (s *Server) render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := s.views.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error("rendering template", "template", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}
