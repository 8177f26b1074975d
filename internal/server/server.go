// Package server is the view layer: it routes to one of three pages, wires
// filtering, statistics, and chart selection together per request, and owns
// no state beyond the two immutable tables.
package server

import (
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/KaramelBytes/carloom/internal/config"
	"github.com/KaramelBytes/carloom/internal/dataset"
)

type Server struct {
	cfg   *config.Global
	raw   *dataset.Table
	clean *dataset.Table
	log   *zap.Logger
}

// New builds a Server over two already loaded tables. Tables are read-only;
// handlers may run concurrently without locking.
func New(cfg *config.Global, raw, clean *dataset.Table, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{cfg: cfg, raw: raw, clean: clean, log: log}
}

// Router wires all routes with request logging.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logging)
	r.HandleFunc("/", s.handleIntro).Methods(http.MethodGet)
	r.HandleFunc("/analysis", s.handleAnalysis).Methods(http.MethodGet)
	r.HandleFunc("/conclusions", s.handleConclusions).Methods(http.MethodGet)
	r.HandleFunc("/chart.png", s.handleChart).Methods(http.MethodGet)
	r.HandleFunc("/api/summary", s.handleAPISummary).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	return r
}

type wrappedWriter struct {
	http.ResponseWriter
	status int
}

func (w *wrappedWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
		w.ResponseWriter.WriteHeader(code)
	}
}

func (s *Server) logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &wrappedWriter{ResponseWriter: w}
		reqID := uuid.NewString()
		next.ServeHTTP(ww, r)
		status := ww.status
		if status == 0 {
			status = http.StatusOK
		}
		s.log.Info("request",
			zap.String("request_id", reqID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Duration("took", time.Since(start)),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("ok"))
}

func errField(err error) zap.Field { return zap.Error(err) }

// filterState is the per-request decode of the sidebar controls. Everything
// here is recomputed from the query string on every request; nothing is
// stored between interactions.
type filterState struct {
	Companies []string // all known company values
	Selected  map[string]bool
	YearMin   int
	YearMax   int
}

// filters decodes the company multiselect and year range from the query,
// defaulting to "everything" when the form has not been submitted yet. When
// the form was submitted (applied=1) an empty company selection means
// exactly that: zero companies.
func (s *Server) filters(q url.Values) filterState {
	st := filterState{Selected: map[string]bool{}}
	companies, err := s.clean.Distinct(s.cfg.CompanyColumn)
	if err == nil {
		st.Companies = companies
	}
	lo, hi := s.yearBounds()
	st.YearMin, st.YearMax = lo, hi

	applied := q.Get("applied") == "1"
	chosen := q["company"]
	if !applied && len(chosen) == 0 {
		chosen = st.Companies
	}
	for _, c := range chosen {
		st.Selected[c] = true
	}
	if v, err := strconv.Atoi(q.Get("year_min")); err == nil {
		st.YearMin = v
	}
	if v, err := strconv.Atoi(q.Get("year_max")); err == nil {
		st.YearMax = v
	}
	return st
}

// yearBounds returns the observed min and max of the year column, or a
// permissive range when the column is unusable.
func (s *Server) yearBounds() (int, int) {
	vals, err := s.clean.Floats(s.cfg.YearColumn)
	if err != nil {
		return 0, 9999
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if math.IsInf(lo, 1) {
		return 0, 9999
	}
	return int(lo), int(hi)
}

// subset applies the current filter state to the cleaned table. A filter
// column missing from the dataset degrades to the unfiltered table plus a
// warning for the page.
func (s *Server) subset(st filterState) (*dataset.Table, []string) {
	var warnings []string
	sel := dataset.Selection{Min: float64(st.YearMin), Max: float64(st.YearMax)}
	for c := range st.Selected {
		sel.Values = append(sel.Values, c)
	}
	sub, err := dataset.Filter(s.clean, s.cfg.CompanyColumn, s.cfg.YearColumn, sel)
	if err != nil {
		warnings = append(warnings, err.Error()+"; showing unfiltered data")
		return s.clean, warnings
	}
	return sub, warnings
}

// chartQuery reproduces the filter portion of the current query so chart
// image URLs re-derive the same subset.
func (s *Server) chartQuery(st filterState) url.Values {
	v := url.Values{}
	v.Set("applied", "1")
	for c := range st.Selected {
		v.Add("company", c)
	}
	v.Set("year_min", strconv.Itoa(st.YearMin))
	v.Set("year_max", strconv.Itoa(st.YearMax))
	return v
}
