package server

import (
	"net/http"

	"github.com/KaramelBytes/carloom/internal/stats"
	"github.com/KaramelBytes/carloom/internal/utils"
)

// summaryPayload is the /api/summary response: a scripting-friendly snapshot
// of the cleaned table.
type summaryPayload struct {
	Rows        int                `json:"rows"`
	Numeric     []string           `json:"numeric_columns"`
	Categorical []string           `json:"categorical_columns"`
	Means       map[string]float64 `json:"means"`
	Undefined   []string           `json:"undefined_means,omitempty"`
}

func (s *Server) handleAPISummary(w http.ResponseWriter, _ *http.Request) {
	numeric, categorical := s.clean.Classify()
	payload := summaryPayload{
		Rows:        stats.RowCount(s.clean),
		Numeric:     numeric,
		Categorical: categorical,
		Means:       map[string]float64{},
	}
	for _, col := range numeric {
		v, defined, err := stats.Mean(s.clean, col)
		if err != nil || !defined {
			payload.Undefined = append(payload.Undefined, col)
			continue
		}
		payload.Means[col] = v
	}
	b, err := utils.PrettyJSON(payload)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(b)
}
