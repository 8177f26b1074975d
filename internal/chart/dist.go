package chart

import (
	"math"
	"sort"
)

// bin is one histogram bucket with its density (count normalized by n and
// bin width), so histogram bars and KDE curves share a scale.
type bin struct {
	Lo, Hi  float64
	Count   int
	Density float64
}

// histogram buckets vals into Sturges-rule bins over [min,max].
func histogram(vals []float64) []bin {
	vals = dropNaN(vals)
	n := len(vals)
	if n == 0 {
		return nil
	}
	lo, hi := vals[0], vals[0]
	for _, v := range vals {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	k := int(math.Ceil(math.Log2(float64(n)))) + 1
	if k < 1 {
		k = 1
	}
	if hi == lo {
		return []bin{{Lo: lo, Hi: hi, Count: n, Density: 1}}
	}
	width := (hi - lo) / float64(k)
	bins := make([]bin, k)
	for i := range bins {
		bins[i].Lo = lo + float64(i)*width
		bins[i].Hi = bins[i].Lo + width
	}
	for _, v := range vals {
		i := int((v - lo) / width)
		if i >= k {
			i = k - 1
		}
		bins[i].Count++
	}
	for i := range bins {
		bins[i].Density = float64(bins[i].Count) / (float64(n) * width)
	}
	return bins
}

// kde evaluates a gaussian kernel density estimate on an evenly spaced grid,
// using Silverman's rule of thumb for the bandwidth.
func kde(vals []float64, points int) (xs, ys []float64) {
	vals = dropNaN(vals)
	n := len(vals)
	if n < 2 || points < 2 {
		return nil, nil
	}
	var mean, m2 float64
	for i, v := range vals {
		delta := v - mean
		mean += delta / float64(i+1)
		m2 += delta * (v - mean)
	}
	std := math.Sqrt(m2 / float64(n-1))
	if std == 0 {
		return nil, nil
	}
	h := 1.06 * std * math.Pow(float64(n), -0.2)
	lo, hi := vals[0], vals[0]
	for _, v := range vals {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	lo -= 3 * h
	hi += 3 * h
	step := (hi - lo) / float64(points-1)
	xs = make([]float64, points)
	ys = make([]float64, points)
	norm := 1 / (float64(n) * h * math.Sqrt(2*math.Pi))
	for i := 0; i < points; i++ {
		x := lo + float64(i)*step
		var sum float64
		for _, v := range vals {
			z := (x - v) / h
			sum += math.Exp(-0.5 * z * z)
		}
		xs[i] = x
		ys[i] = sum * norm
	}
	return xs, ys
}

// fiveNum is the box-plot summary of a numeric sample.
type fiveNum struct {
	Min, Q1, Median, Q3, Max float64
	N                        int
}

func summarize(vals []float64) (fiveNum, bool) {
	vals = dropNaN(vals)
	if len(vals) == 0 {
		return fiveNum{}, false
	}
	cp := make([]float64, len(vals))
	copy(cp, vals)
	sort.Float64s(cp)
	return fiveNum{
		Min:    cp[0],
		Q1:     quantile(cp, 0.25),
		Median: quantile(cp, 0.5),
		Q3:     quantile(cp, 0.75),
		Max:    cp[len(cp)-1],
		N:      len(cp),
	}, true
}

func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

func dropNaN(vals []float64) []float64 {
	out := vals[:0:0]
	for _, v := range vals {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
