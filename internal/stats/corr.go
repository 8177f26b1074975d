package stats

import (
	"math"

	"github.com/KaramelBytes/carloom/internal/dataset"
)

// pairAcc accumulates the running sums needed for an exact Pearson r over
// rows where both sides are present.
type pairAcc struct {
	n     float64
	sumX  float64
	sumY  float64
	sumXX float64
	sumYY float64
	sumXY float64
}

func (p *pairAcc) add(x, y float64) {
	p.n++
	p.sumX += x
	p.sumY += y
	p.sumXX += x * x
	p.sumYY += y * y
	p.sumXY += x * y
}

// r resolves the accumulator to a correlation coefficient. ok is false when
// fewer than two paired observations exist or either side has zero variance.
func (p *pairAcc) r() (float64, bool) {
	if p.n < 2 {
		return 0, false
	}
	denom := math.Sqrt((p.n*p.sumXX - p.sumX*p.sumX) * (p.n*p.sumYY - p.sumY*p.sumY))
	if denom == 0 {
		return 0, false
	}
	r := (p.n*p.sumXY - p.sumX*p.sumY) / denom
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, false
	}
	return r, true
}

// Correlation returns the Pearson correlation coefficient between two numeric
// columns, skipping rows where either value is missing. defined is false for
// zero-variance inputs rather than an error.
func Correlation(t *dataset.Table, x, y string) (r float64, defined bool, err error) {
	xs, err := t.Floats(x)
	if err != nil {
		return 0, false, err
	}
	ys, err := t.Floats(y)
	if err != nil {
		return 0, false, err
	}
	var acc pairAcc
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	for i := 0; i < n; i++ {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		acc.add(xs[i], ys[i])
	}
	r, defined = acc.r()
	return r, defined, nil
}

// Matrix is a symmetric Pearson correlation matrix across the table's
// numeric columns, with per-cell defined flags for degenerate pairs.
type Matrix struct {
	Columns []string
	Values  [][]float64
	Defined [][]bool
}

// CorrelationMatrix computes the full matrix over all numeric columns, in
// column order. The diagonal is 1 and defined whenever the column has at
// least one value.
func CorrelationMatrix(t *dataset.Table) *Matrix {
	numeric, _ := t.Classify()
	n := len(numeric)
	m := &Matrix{
		Columns: numeric,
		Values:  make([][]float64, n),
		Defined: make([][]bool, n),
	}
	for i := range m.Values {
		m.Values[i] = make([]float64, n)
		m.Defined[i] = make([]bool, n)
	}
	for i := 0; i < n; i++ {
		m.Values[i][i] = 1
		m.Defined[i][i] = t.NumRows() > 0
		for j := i + 1; j < n; j++ {
			r, ok, err := Correlation(t, numeric[i], numeric[j])
			if err != nil || !ok {
				continue
			}
			m.Values[i][j] = r
			m.Values[j][i] = r
			m.Defined[i][j] = true
			m.Defined[j][i] = true
		}
	}
	return m
}

// StrongestWith returns the column most positively correlated with ref,
// excluding ref itself. Ties are broken by column order. defined is false
// when ref is not in the matrix or no defined pairing exists.
func (m *Matrix) StrongestWith(ref string) (col string, r float64, defined bool) {
	refIdx := -1
	for i, c := range m.Columns {
		if c == ref {
			refIdx = i
			break
		}
	}
	if refIdx == -1 {
		return "", 0, false
	}
	best := -1
	bestR := math.Inf(-1)
	for j := range m.Columns {
		if j == refIdx || !m.Defined[refIdx][j] {
			continue
		}
		if m.Values[refIdx][j] > bestR {
			best = j
			bestR = m.Values[refIdx][j]
		}
	}
	if best == -1 {
		return "", 0, false
	}
	return m.Columns[best], bestR, true
}
