package server

import (
	"fmt"
	"net/http"

	"github.com/KaramelBytes/carloom/internal/stats"
)

type conclusionsData struct {
	Active   string
	Metrics  []metric
	Warnings []string
}

func (s *Server) handleConclusions(w http.ResponseWriter, _ *http.Request) {
	data := conclusionsData{Active: "conclusions"}

	data.Metrics = append(data.Metrics, metric{Label: "Total Records", Value: fmt.Sprintf("%d", stats.RowCount(s.clean))})

	row, defined, err := stats.MaxRow(s.clean, s.cfg.PriceColumn)
	switch {
	case err != nil:
		data.Warnings = append(data.Warnings, err.Error())
		data.Metrics = append(data.Metrics, metric{Label: "Highest Price Car", Value: "—"})
	case !defined:
		data.Metrics = append(data.Metrics, metric{Label: "Highest Price Car", Value: "undefined"})
	default:
		company := row[s.cfg.CompanyColumn]
		if company == "" {
			company = "unknown"
		}
		data.Metrics = append(data.Metrics, metric{Label: "Highest Price Car", Value: company})
	}

	fuel, defined, err := stats.Mode(s.clean, s.cfg.FuelColumn)
	switch {
	case err != nil:
		data.Warnings = append(data.Warnings, err.Error())
		data.Metrics = append(data.Metrics, metric{Label: "Most Common Fuel", Value: "—"})
	case !defined:
		data.Metrics = append(data.Metrics, metric{Label: "Most Common Fuel", Value: "undefined"})
	default:
		data.Metrics = append(data.Metrics, metric{Label: "Most Common Fuel", Value: fuel})
	}

	m := stats.CorrelationMatrix(s.clean)
	if col, _, ok := m.StrongestWith(s.cfg.PriceColumn); ok {
		data.Metrics = append(data.Metrics, metric{Label: "Strongest Correlation with Price", Value: col})
	} else {
		data.Metrics = append(data.Metrics, metric{Label: "Strongest Correlation with Price", Value: "undefined"})
	}

	s.render(w, tmplConclusions, data)
}
