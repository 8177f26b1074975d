package server

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/KaramelBytes/carloom/internal/chart"
	"github.com/KaramelBytes/carloom/internal/dataset"
	"github.com/KaramelBytes/carloom/internal/stats"
)

type analysisData struct {
	Active string

	// Sidebar state
	Companies []string
	Selected  map[string]bool
	YearMin   int
	YearMax   int
	Columns   []string
	UniCol    string
	UniView   string
	BiX       string
	BiY       string
	Method    string

	Metrics  []metric
	Warnings []string

	UniChart string
	UniNote  string

	BiChart     string
	BiNote      string
	BiCorr      string
	BiCorrShown bool

	Heatmap    *stats.Matrix
	PairCharts []string
	MultiChart string
	MultiNote  string
}

// pairMatrixMax caps the pairplot grid; beyond a handful of numeric columns
// the panels become unreadable thumbnails.
const pairMatrixMax = 4

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	st := s.filters(q)
	sub, warnings := s.subset(st)

	data := analysisData{
		Active:    "analysis",
		Companies: st.Companies,
		Selected:  st.Selected,
		YearMin:   st.YearMin,
		YearMax:   st.YearMax,
		Columns:   s.clean.Columns(),
		Warnings:  warnings,
	}

	data.Metrics = append(data.Metrics, metric{Label: "Selected Cars", Value: fmt.Sprintf("%d", stats.RowCount(sub))})
	data.Metrics = append(data.Metrics, s.subsetMeanMetric(sub, "Average Price", s.cfg.PriceColumn, &data.Warnings))
	data.Metrics = append(data.Metrics, s.subsetMeanMetric(sub, "Average Power", s.cfg.PowerColumn, &data.Warnings))

	base := s.chartQuery(st)

	// Univariate
	data.UniCol = q.Get("ucol")
	if data.UniCol == "" && len(data.Columns) > 0 {
		data.UniCol = data.Columns[0]
	}
	data.UniView = q.Get("uview")
	if data.UniView == "" {
		data.UniView = string(chart.SubtypeHistogram)
	}
	if _, err := chart.SelectUnivariate(sub, data.UniCol, chart.Subtype(data.UniView)); err != nil {
		data.Warnings = append(data.Warnings, err.Error())
		data.UniNote = "column unavailable"
	} else if sub.NumRows() == 0 {
		data.UniNote = "no rows in the current selection"
	} else {
		data.UniChart = chartURL(base, map[string]string{"mode": "uni", "col": data.UniCol, "uview": data.UniView})
	}

	// Bivariate
	data.BiX = q.Get("x")
	data.BiY = q.Get("y")
	if data.BiX == "" && len(data.Columns) > 0 {
		data.BiX = data.Columns[0]
	}
	if data.BiY == "" {
		if len(data.Columns) > 1 {
			data.BiY = data.Columns[1]
		} else {
			data.BiY = data.BiX
		}
	}
	if desc, err := chart.SelectBivariate(sub, data.BiX, data.BiY); err != nil {
		data.Warnings = append(data.Warnings, err.Error())
		data.BiNote = "columns unavailable"
	} else {
		if desc.ShowCorrelation {
			data.BiCorrShown = true
			if r, defined, err := stats.Correlation(sub, data.BiX, data.BiY); err != nil || !defined {
				data.BiCorr = "undefined"
			} else {
				data.BiCorr = fmt.Sprintf("%.3f", r)
			}
		}
		if sub.NumRows() == 0 {
			data.BiNote = "no rows in the current selection"
		} else {
			data.BiChart = chartURL(base, map[string]string{"mode": "bi", "x": data.BiX, "y": data.BiY})
		}
	}

	// Multivariate
	data.Method = q.Get("method")
	if data.Method == "" {
		data.Method = string(chart.MethodHeatmap)
	}
	s.multivariate(sub, base, &data)

	s.render(w, tmplAnalysis, data)
}

func (s *Server) multivariate(sub *dataset.Table, base url.Values, data *analysisData) {
	switch chart.Method(data.Method) {
	case chart.MethodHeatmap:
		m := stats.CorrelationMatrix(sub)
		if len(m.Columns) < 2 {
			data.MultiNote = "need at least two numeric columns for a heatmap"
			return
		}
		data.Heatmap = m
	case chart.MethodPairs:
		numeric, _ := sub.Classify()
		if len(numeric) < 2 {
			data.MultiNote = "need at least two numeric columns for a pairplot"
			return
		}
		if sub.NumRows() == 0 {
			data.MultiNote = "no rows in the current selection"
			return
		}
		if len(numeric) > pairMatrixMax {
			numeric = numeric[:pairMatrixMax]
		}
		for _, yc := range numeric {
			for _, xc := range numeric {
				if xc == yc {
					continue
				}
				data.PairCharts = append(data.PairCharts, chartURL(base, map[string]string{
					"mode": "bi", "x": xc, "y": yc, "w": "220", "h": "180",
				}))
			}
		}
	case chart.MethodGroupedBar:
		_, err := chart.SelectMultivariate(sub, chart.MethodGroupedBar,
			s.cfg.FuelColumn, s.cfg.PriceColumn, s.cfg.TransmissionColumn)
		if err != nil {
			data.Warnings = append(data.Warnings, err.Error())
			data.MultiNote = "required columns missing"
			return
		}
		if sub.NumRows() == 0 {
			data.MultiNote = "no rows in the current selection"
			return
		}
		data.MultiChart = chartURL(base, map[string]string{"mode": "multi", "method": "grouped_bar"})
	default:
		data.MultiNote = "unknown method"
	}
}

func (s *Server) subsetMeanMetric(t *dataset.Table, label, col string, warnings *[]string) metric {
	v, defined, err := stats.Mean(t, col)
	if err != nil {
		*warnings = append(*warnings, err.Error())
		return metric{Label: label, Value: "—"}
	}
	if !defined {
		return metric{Label: label, Value: "undefined"}
	}
	return metric{Label: label, Value: fmt.Sprintf("%.2f", v)}
}

func chartURL(base url.Values, extra map[string]string) string {
	v := url.Values{}
	for k, vals := range base {
		for _, val := range vals {
			v.Add(k, val)
		}
	}
	for k, val := range extra {
		v.Set(k, val)
	}
	return "/chart.png?" + v.Encode()
}
