package stats

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/KaramelBytes/carloom/internal/dataset"
)

// Report is a markdown-friendly summary of a table, used by the summary
// command for terminal inspection of a dataset before serving it.
type Report struct {
	Name string
	Rows int
	Cols []ColumnSummary
}

// ColumnSummary captures per-column type class and statistics.
type ColumnSummary struct {
	Name    string
	Kind    string // numeric|categorical
	Missing int
	Unique  int
	// Numeric stats
	Min  float64
	Max  float64
	Mean float64
	Std  float64
	// Categorical top values
	TopValues []CategoryCount
}

type CategoryCount struct {
	Value string
	Count int
}

// Summarize builds a Report over every column of the table.
func Summarize(t *dataset.Table) *Report {
	rep := &Report{Name: t.Name, Rows: t.NumRows()}
	numeric, _ := t.Classify()
	numSet := make(map[string]bool, len(numeric))
	for _, n := range numeric {
		numSet[n] = true
	}
	for _, name := range t.Columns() {
		s, err := t.Col(name)
		if err != nil {
			continue
		}
		cs := ColumnSummary{Name: name}
		if numSet[name] {
			cs.Kind = "numeric"
			var n int
			var mean, m2 float64
			cs.Min = math.Inf(1)
			cs.Max = math.Inf(-1)
			for _, v := range s.Float() {
				if math.IsNaN(v) {
					cs.Missing++
					continue
				}
				n++
				if v < cs.Min {
					cs.Min = v
				}
				if v > cs.Max {
					cs.Max = v
				}
				delta := v - mean
				mean += delta / float64(n)
				m2 += delta * (v - mean)
			}
			if n == 0 {
				cs.Min, cs.Max = 0, 0
			}
			cs.Mean = mean
			if n > 1 {
				cs.Std = math.Sqrt(m2 / float64(n-1))
			}
		} else {
			cs.Kind = "categorical"
			counts := map[string]int{}
			for i := 0; i < s.Len(); i++ {
				e := s.Elem(i)
				if e.IsNA() {
					cs.Missing++
					continue
				}
				counts[e.String()]++
			}
			cs.Unique = len(counts)
			tops := make([]CategoryCount, 0, len(counts))
			for v, c := range counts {
				tops = append(tops, CategoryCount{Value: v, Count: c})
			}
			sort.Slice(tops, func(i, j int) bool {
				if tops[i].Count == tops[j].Count {
					return tops[i].Value < tops[j].Value
				}
				return tops[i].Count > tops[j].Count
			})
			if len(tops) > 8 {
				tops = tops[:8]
			}
			cs.TopValues = tops
		}
		rep.Cols = append(rep.Cols, cs)
	}
	return rep
}

// Markdown renders the report as compact markdown.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\nColumns: %d\n\n", r.Rows, len(r.Cols)))
	b.WriteString("[SCHEMA]\n")
	for _, c := range r.Cols {
		b.WriteString(fmt.Sprintf("- %s: %s (missing %d)", c.Name, c.Kind, c.Missing))
		switch c.Kind {
		case "numeric":
			b.WriteString(fmt.Sprintf(" — min %.4g, max %.4g, mean %.4g, std %.4g", c.Min, c.Max, c.Mean, c.Std))
		case "categorical":
			if len(c.TopValues) > 0 {
				b.WriteString(" — top: ")
				for i, kv := range c.TopValues {
					if i > 0 {
						b.WriteString(", ")
					}
					b.WriteString(fmt.Sprintf("%s(%d)", kv.Value, kv.Count))
				}
				if c.Unique > len(c.TopValues) {
					b.WriteString(fmt.Sprintf("; unique=%d", c.Unique))
				}
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
