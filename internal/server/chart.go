package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/KaramelBytes/carloom/internal/chart"
	"github.com/KaramelBytes/carloom/internal/dataset"
)

// handleChart re-derives the filtered subset and chart descriptor from the
// query string and streams the rendered PNG. Every image request is a full
// top-to-bottom re-evaluation; nothing is cached between interactions.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	st := s.filters(q)
	sub, _ := s.subset(st)

	var (
		desc chart.Descriptor
		err  error
	)
	switch q.Get("mode") {
	case "uni":
		desc, err = chart.SelectUnivariate(sub, q.Get("col"), chart.Subtype(q.Get("uview")))
	case "bi":
		desc, err = chart.SelectBivariate(sub, q.Get("x"), q.Get("y"))
	case "multi":
		desc, err = chart.SelectMultivariate(sub, chart.Method(q.Get("method")),
			s.cfg.FuelColumn, s.cfg.PriceColumn, s.cfg.TransmissionColumn)
	default:
		http.Error(w, "unknown chart mode", http.StatusBadRequest)
		return
	}
	if err != nil {
		s.chartError(w, err)
		return
	}

	opt := chart.Options{Width: s.cfg.ChartWidth, Height: s.cfg.ChartHeight}
	if v, err := strconv.Atoi(q.Get("w")); err == nil && v > 0 && v <= 2000 {
		opt.Width = v
	}
	if v, err := strconv.Atoi(q.Get("h")); err == nil && v > 0 && v <= 2000 {
		opt.Height = v
	}

	png, err := chart.Render(sub, desc, opt)
	if err != nil {
		s.chartError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// chartError maps selector/renderer failures to client-visible statuses:
// everything here is a degraded-chart condition, never a server fault.
func (s *Server) chartError(w http.ResponseWriter, err error) {
	var colErr *dataset.ColumnNotFoundError
	var missErr *chart.MissingColumnsError
	switch {
	case errors.As(err, &colErr), errors.As(err, &missErr):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, chart.ErrNoData), errors.Is(err, chart.ErrComposite):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		s.log.Error("render chart", errField(err))
		http.Error(w, "chart rendering failed", http.StatusInternalServerError)
	}
}
