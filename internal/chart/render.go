package chart

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/KaramelBytes/carloom/internal/dataset"
)

// ErrNoData indicates the current subset has nothing drawable. Pages show a
// note in place of the image.
var ErrNoData = errors.New("not enough data to draw chart")

// ErrComposite marks descriptors (heatmap, pair matrix) that the page layer
// composes itself instead of the PNG renderer.
var ErrComposite = errors.New("composite chart kind is rendered by the page layer")

// Options controls output geometry.
type Options struct {
	Width  int
	Height int
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 700
	}
	if o.Height <= 0 {
		o.Height = 400
	}
	return o
}

// maxBars caps category axes so a high-cardinality column cannot produce an
// unreadable chart; the most frequent categories win.
const maxBars = 30

// Render draws the descriptor over the table as a PNG.
func Render(t *dataset.Table, d Descriptor, opt Options) ([]byte, error) {
	opt = opt.withDefaults()
	switch d.Kind {
	case KindFrequency:
		return renderFrequency(t, d, opt)
	case KindHistogram:
		return renderHistogram(t, d, opt)
	case KindDensity:
		return renderDensity(t, d, opt)
	case KindBox:
		return renderBox(t, d, opt)
	case KindScatter:
		return renderScatter(t, d, opt)
	case KindGroupedFrequency:
		return renderGroupedFrequency(t, d, opt)
	case KindGroupedBar:
		return renderGroupedBar(t, d, opt)
	case KindHeatmap, KindPairMatrix:
		return nil, ErrComposite
	default:
		return nil, fmt.Errorf("unknown chart kind: %q", d.Kind)
	}
}

func renderFrequency(t *dataset.Table, d Descriptor, opt Options) ([]byte, error) {
	vals, err := t.Strings(d.X)
	if err != nil {
		return nil, err
	}
	s, err := t.Col(d.X)
	if err != nil {
		return nil, err
	}
	counts := map[string]int{}
	var order []string
	for i, v := range vals {
		if s.Elem(i).IsNA() {
			continue
		}
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}
	if len(order) == 0 {
		return nil, ErrNoData
	}
	if len(order) > maxBars {
		order = topCategories(counts, order, maxBars)
	}
	bars := make([]chart.Value, 0, len(order))
	for _, v := range order {
		bars = append(bars, chart.Value{Value: float64(counts[v]), Label: v})
	}
	return renderBars(d.Title, bars, opt)
}

func renderHistogram(t *dataset.Table, d Descriptor, opt Options) ([]byte, error) {
	vals, err := t.Floats(d.X)
	if err != nil {
		return nil, err
	}
	bins := histogram(vals)
	if len(bins) == 0 {
		return nil, ErrNoData
	}
	var hx, hy []float64
	for _, b := range bins {
		hx = append(hx, b.Lo, b.Lo, b.Hi, b.Hi)
		hy = append(hy, 0, b.Density, b.Density, 0)
	}
	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    "density",
			XValues: hx,
			YValues: hy,
			Style: chart.Style{
				StrokeWidth: 1,
				StrokeColor: chart.ColorBlue,
				FillColor:   chart.ColorBlue.WithAlpha(80),
			},
		},
	}
	if kx, ky := kde(vals, 120); len(kx) > 0 {
		series = append(series, chart.ContinuousSeries{
			Name:    "kde",
			XValues: kx,
			YValues: ky,
			Style:   chart.Style{StrokeWidth: 2, StrokeColor: chart.ColorAlternateGray},
		})
	}
	graph := chart.Chart{
		Title:  d.Title,
		Width:  opt.Width,
		Height: opt.Height,
		XAxis:  chart.XAxis{Name: d.X, Range: padRange(hx)},
		Series: series,
	}
	return renderPNG(&graph)
}

func renderDensity(t *dataset.Table, d Descriptor, opt Options) ([]byte, error) {
	vals, err := t.Floats(d.X)
	if err != nil {
		return nil, err
	}
	kx, ky := kde(vals, 120)
	if len(kx) == 0 {
		return nil, ErrNoData
	}
	graph := chart.Chart{
		Title:  d.Title,
		Width:  opt.Width,
		Height: opt.Height,
		XAxis:  chart.XAxis{Name: d.X},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: kx,
				YValues: ky,
				Style: chart.Style{
					StrokeWidth: 2,
					StrokeColor: chart.ColorBlue,
					FillColor:   chart.ColorBlue.WithAlpha(64),
				},
			},
		},
	}
	return renderPNG(&graph)
}

func renderBox(t *dataset.Table, d Descriptor, opt Options) ([]byte, error) {
	if d.Y == "" {
		return renderSingleBox(t, d, opt)
	}
	return renderGroupedBox(t, d, opt)
}

// renderSingleBox draws one horizontal box for a numeric column.
func renderSingleBox(t *dataset.Table, d Descriptor, opt Options) ([]byte, error) {
	vals, err := t.Floats(d.X)
	if err != nil {
		return nil, err
	}
	f, ok := summarize(vals)
	if !ok {
		return nil, ErrNoData
	}
	var series []chart.Series
	boxSegmentsH(&series, f, 0, 0.4, chart.ColorBlue)
	graph := chart.Chart{
		Title:  d.Title,
		Width:  opt.Width,
		Height: opt.Height,
		XAxis:  chart.XAxis{Name: d.X, Range: padRange([]float64{f.Min, f.Max})},
		YAxis:  chart.YAxis{Style: chart.Hidden(), Range: &chart.ContinuousRange{Min: -1, Max: 1}},
		Series: series,
	}
	return renderPNG(&graph)
}

// renderGroupedBox draws one vertical box per category of d.X over the
// numeric column d.Y.
func renderGroupedBox(t *dataset.Table, d Descriptor, opt Options) ([]byte, error) {
	cats, err := t.Strings(d.X)
	if err != nil {
		return nil, err
	}
	catSeries, err := t.Col(d.X)
	if err != nil {
		return nil, err
	}
	vals, err := t.Floats(d.Y)
	if err != nil {
		return nil, err
	}
	byCat := map[string][]float64{}
	var order []string
	for i, c := range cats {
		if catSeries.Elem(i).IsNA() || i >= len(vals) || math.IsNaN(vals[i]) {
			continue
		}
		if _, ok := byCat[c]; !ok {
			order = append(order, c)
		}
		byCat[c] = append(byCat[c], vals[i])
	}
	if len(order) == 0 {
		return nil, ErrNoData
	}
	if len(order) > maxBars {
		order = order[:maxBars]
	}
	var series []chart.Series
	ticks := make([]chart.Tick, 0, len(order)+2)
	ticks = append(ticks, chart.Tick{Value: -0.5, Label: ""})
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, c := range order {
		f, ok := summarize(byCat[c])
		if !ok {
			continue
		}
		boxSegmentsV(&series, f, float64(i), 0.3, chart.GetDefaultColor(i))
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: c})
		if f.Min < lo {
			lo = f.Min
		}
		if f.Max > hi {
			hi = f.Max
		}
	}
	ticks = append(ticks, chart.Tick{Value: float64(len(order)) - 0.5, Label: ""})
	if len(series) == 0 {
		return nil, ErrNoData
	}
	graph := chart.Chart{
		Title:  d.Title,
		Width:  opt.Width,
		Height: opt.Height,
		XAxis: chart.XAxis{
			Name:  d.X,
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: -0.5, Max: float64(len(order)) - 0.5},
		},
		YAxis:  chart.YAxis{Name: d.Y, Range: padRange([]float64{lo, hi})},
		Series: series,
	}
	return renderPNG(&graph)
}

func renderScatter(t *dataset.Table, d Descriptor, opt Options) ([]byte, error) {
	xs, err := t.Floats(d.X)
	if err != nil {
		return nil, err
	}
	ys, err := t.Floats(d.Y)
	if err != nil {
		return nil, err
	}
	var px, py []float64
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	for i := 0; i < n; i++ {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		px = append(px, xs[i])
		py = append(py, ys[i])
	}
	if len(px) < 2 {
		return nil, ErrNoData
	}
	graph := chart.Chart{
		Title:  d.Title,
		Width:  opt.Width,
		Height: opt.Height,
		XAxis:  chart.XAxis{Name: d.X, Range: padRange(px)},
		YAxis:  chart.YAxis{Name: d.Y, Range: padRange(py)},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: px,
				YValues: py,
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    4,
					DotColor:    chart.ColorBlue,
				},
			},
		},
	}
	return renderPNG(&graph)
}

func renderGroupedFrequency(t *dataset.Table, d Descriptor, opt Options) ([]byte, error) {
	xs, err := t.Strings(d.X)
	if err != nil {
		return nil, err
	}
	hues, err := t.Strings(d.Hue)
	if err != nil {
		return nil, err
	}
	xSeries, err := t.Col(d.X)
	if err != nil {
		return nil, err
	}
	hueSeries, err := t.Col(d.Hue)
	if err != nil {
		return nil, err
	}
	counts := map[string]int{}
	var order []string
	n := len(xs)
	if len(hues) < n {
		n = len(hues)
	}
	for i := 0; i < n; i++ {
		if xSeries.Elem(i).IsNA() || hueSeries.Elem(i).IsNA() {
			continue
		}
		key := xs[i] + " / " + hues[i]
		if counts[key] == 0 {
			order = append(order, key)
		}
		counts[key]++
	}
	if len(order) == 0 {
		return nil, ErrNoData
	}
	if len(order) > maxBars {
		order = topCategories(counts, order, maxBars)
	}
	bars := make([]chart.Value, 0, len(order))
	for _, key := range order {
		bars = append(bars, chart.Value{Value: float64(counts[key]), Label: key})
	}
	return renderBars(d.Title, bars, opt)
}

// renderGroupedBar draws the mean of d.Y per d.X category, split further by
// d.Hue when set.
func renderGroupedBar(t *dataset.Table, d Descriptor, opt Options) ([]byte, error) {
	xs, err := t.Strings(d.X)
	if err != nil {
		return nil, err
	}
	vals, err := t.Floats(d.Y)
	if err != nil {
		return nil, err
	}
	xSeries, err := t.Col(d.X)
	if err != nil {
		return nil, err
	}
	var hues []string
	if d.Hue != "" {
		if hues, err = t.Strings(d.Hue); err != nil {
			return nil, err
		}
	}
	sum := map[string]float64{}
	cnt := map[string]int{}
	var order []string
	for i := range xs {
		if xSeries.Elem(i).IsNA() || i >= len(vals) || math.IsNaN(vals[i]) {
			continue
		}
		key := xs[i]
		if hues != nil && i < len(hues) {
			key = xs[i] + " (" + hues[i] + ")"
		}
		if cnt[key] == 0 {
			order = append(order, key)
		}
		sum[key] += vals[i]
		cnt[key]++
	}
	if len(order) == 0 {
		return nil, ErrNoData
	}
	if len(order) > maxBars {
		order = order[:maxBars]
	}
	bars := make([]chart.Value, 0, len(order))
	for _, key := range order {
		bars = append(bars, chart.Value{Value: sum[key] / float64(cnt[key]), Label: key})
	}
	return renderBars(d.Title, bars, opt)
}

func renderBars(title string, bars []chart.Value, opt Options) ([]byte, error) {
	if len(bars) == 0 {
		return nil, ErrNoData
	}
	graph := chart.BarChart{
		Title:    title,
		Width:    opt.Width,
		Height:   opt.Height,
		BarWidth: barWidth(opt.Width, len(bars)),
		Bars:     bars,
	}
	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render bar chart: %w", err)
	}
	return buf.Bytes(), nil
}

func renderPNG(graph *chart.Chart) ([]byte, error) {
	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return buf.Bytes(), nil
}

func barWidth(total, n int) int {
	w := total/(n+1) - 10
	if w < 8 {
		w = 8
	}
	if w > 60 {
		w = 60
	}
	return w
}

// topCategories keeps the n most frequent keys, preserving first-occurrence
// order among the survivors.
func topCategories(counts map[string]int, order []string, n int) []string {
	if len(order) <= n {
		return order
	}
	kept := make([]string, len(order))
	copy(kept, order)
	// selection by count: find the n-th largest count as threshold
	cs := make([]int, 0, len(order))
	for _, k := range order {
		cs = append(cs, counts[k])
	}
	thr := nthLargest(cs, n)
	out := make([]string, 0, n)
	for _, k := range kept {
		if counts[k] >= thr && len(out) < n {
			out = append(out, k)
		}
	}
	return out
}

func nthLargest(vals []int, n int) int {
	cp := make([]int, len(vals))
	copy(cp, vals)
	for i := 0; i < len(cp); i++ {
		for j := i + 1; j < len(cp); j++ {
			if cp[j] > cp[i] {
				cp[i], cp[j] = cp[j], cp[i]
			}
		}
	}
	if n-1 < len(cp) {
		return cp[n-1]
	}
	return 0
}

// padRange widens a degenerate axis range so go-chart never sees a zero
// span.
func padRange(vals []float64) *chart.ContinuousRange {
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
		lo, hi = 0, 1
	}
	if hi-lo < 1e-9 {
		lo--
		hi++
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}
}

// boxSegmentsH appends the line segments of a horizontal box centered at y.
func boxSegmentsH(series *[]chart.Series, f fiveNum, y, half float64, color drawing.Color) {
	seg := func(x0, y0, x1, y1 float64) {
		*series = append(*series, chart.ContinuousSeries{
			XValues: []float64{x0, x1},
			YValues: []float64{y0, y1},
			Style:   chart.Style{StrokeWidth: 2, StrokeColor: color},
		})
	}
	seg(f.Min, y, f.Q1, y)
	seg(f.Q3, y, f.Max, y)
	seg(f.Q1, y-half, f.Q3, y-half)
	seg(f.Q1, y+half, f.Q3, y+half)
	seg(f.Q1, y-half, f.Q1, y+half)
	seg(f.Q3, y-half, f.Q3, y+half)
	seg(f.Median, y-half, f.Median, y+half)
}

// boxSegmentsV appends the line segments of a vertical box centered at x.
func boxSegmentsV(series *[]chart.Series, f fiveNum, x, half float64, color drawing.Color) {
	seg := func(x0, y0, x1, y1 float64) {
		*series = append(*series, chart.ContinuousSeries{
			XValues: []float64{x0, x1},
			YValues: []float64{y0, y1},
			Style:   chart.Style{StrokeWidth: 2, StrokeColor: color},
		})
	}
	seg(x, f.Min, x, f.Q1)
	seg(x, f.Q3, x, f.Max)
	seg(x-half, f.Q1, x+half, f.Q1)
	seg(x-half, f.Q3, x+half, f.Q3)
	seg(x-half, f.Q1, x-half, f.Q3)
	seg(x+half, f.Q1, x+half, f.Q3)
	seg(x-half, f.Median, x+half, f.Median)
}
