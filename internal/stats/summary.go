// Package stats computes descriptive statistics over loaded tables. Every
// function is a pure query: tables are never mutated and results carry an
// explicit defined flag instead of letting NaN leak into output.
package stats

import (
	"math"

	"github.com/KaramelBytes/carloom/internal/dataset"
)

// RowCount returns the number of data rows in the table.
func RowCount(t *dataset.Table) int { return t.NumRows() }

// Mean returns the arithmetic mean of a numeric column. defined is false for
// an empty or non-numeric column; a missing column is an error.
func Mean(t *dataset.Table, col string) (mean float64, defined bool, err error) {
	vals, err := t.Floats(col)
	if err != nil {
		return 0, false, err
	}
	if !t.IsNumeric(col) {
		return 0, false, nil
	}
	var sum float64
	var n int
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0, false, nil
	}
	return sum / float64(n), true, nil
}

// DistinctCount returns the number of distinct non-missing values in a column.
func DistinctCount(t *dataset.Table, col string) (int, error) {
	vals, err := t.Distinct(col)
	if err != nil {
		return 0, err
	}
	return len(vals), nil
}

// MaxRow returns the row holding the maximum of a numeric column. Ties keep
// the first occurrence in table order. defined is false when the column has
// no usable values.
func MaxRow(t *dataset.Table, col string) (row map[string]string, defined bool, err error) {
	vals, err := t.Floats(col)
	if err != nil {
		return nil, false, err
	}
	best := -1
	bestV := math.Inf(-1)
	for i, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		if best == -1 || v > bestV {
			best = i
			bestV = v
		}
	}
	if best == -1 {
		return nil, false, nil
	}
	return t.Row(best), true, nil
}

// Mode returns the most frequent value in a column. Ties are broken by first
// occurrence among the tied values. defined is false for an empty column.
func Mode(t *dataset.Table, col string) (value string, defined bool, err error) {
	s, err := t.Col(col)
	if err != nil {
		return "", false, err
	}
	counts := map[string]int{}
	first := map[string]int{}
	for i := 0; i < s.Len(); i++ {
		e := s.Elem(i)
		if e.IsNA() {
			continue
		}
		v := e.String()
		if _, ok := first[v]; !ok {
			first[v] = i
		}
		counts[v]++
	}
	if len(counts) == 0 {
		return "", false, nil
	}
	best := ""
	bestN := 0
	for v, n := range counts {
		if n > bestN || (n == bestN && first[v] < first[best]) {
			best = v
			bestN = n
		}
	}
	return best, true, nil
}
