package server

import (
	"fmt"
	"net/http"

	"github.com/KaramelBytes/carloom/internal/stats"
)

type metric struct {
	Label string
	Value string
}

type introData struct {
	Active      string
	Metrics     []metric
	Warnings    []string
	CoordsNote  string
	PreviewRows int
	RawHead     [][]string
	CleanHead   [][]string
}

func (s *Server) handleIntro(w http.ResponseWriter, _ *http.Request) {
	data := introData{Active: "intro", PreviewRows: s.cfg.PreviewRows}

	data.Metrics = append(data.Metrics, metric{Label: "Total Cars", Value: fmt.Sprintf("%d", stats.RowCount(s.clean))})
	data.Metrics = append(data.Metrics, s.meanMetric("Average Price", s.cfg.PriceColumn, &data.Warnings))
	data.Metrics = append(data.Metrics, s.meanMetric("Average KM", s.cfg.KilometersColumn, &data.Warnings))
	if n, err := stats.DistinctCount(s.clean, s.cfg.CompanyColumn); err != nil {
		data.Warnings = append(data.Warnings, err.Error())
		data.Metrics = append(data.Metrics, metric{Label: "Total Companies", Value: "—"})
	} else {
		data.Metrics = append(data.Metrics, metric{Label: "Total Companies", Value: fmt.Sprintf("%d", n)})
	}

	if !s.clean.HasColumn(s.cfg.LatitudeColumn) || !s.clean.HasColumn(s.cfg.LongitudeColumn) {
		data.CoordsNote = "Latitude and Longitude not available; location map skipped"
	}

	data.RawHead = s.raw.Head(s.cfg.PreviewRows)
	data.CleanHead = s.clean.Head(s.cfg.PreviewRows)

	s.render(w, tmplIntro, data)
}

// meanMetric formats the mean of a column as a metric card, collecting a
// warning when the column is absent and an em dash when the statistic is
// undefined.
func (s *Server) meanMetric(label, col string, warnings *[]string) metric {
	v, defined, err := stats.Mean(s.clean, col)
	if err != nil {
		*warnings = append(*warnings, err.Error())
		return metric{Label: label, Value: "—"}
	}
	if !defined {
		return metric{Label: label, Value: "undefined"}
	}
	return metric{Label: label, Value: fmt.Sprintf("%.2f", v)}
}
