// Package chart maps analysis choices onto fully parameterized chart
// descriptors and renders the drawable ones to PNG. Selection is a pure
// function of the table schema and user inputs; no descriptor ever mutates
// data.
package chart

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/carloom/internal/dataset"
)

// Kind identifies a chart shape the renderer or the page layer knows how to
// draw.
type Kind string

const (
	KindFrequency        Kind = "frequency"
	KindHistogram        Kind = "histogram"
	KindDensity          Kind = "density"
	KindBox              Kind = "box"
	KindScatter          Kind = "scatter"
	KindGroupedFrequency Kind = "grouped_frequency"
	KindHeatmap          Kind = "heatmap"
	KindPairMatrix       Kind = "pairs"
	KindGroupedBar       Kind = "grouped_bar"
)

// Subtype is the user toggle for numeric univariate charts.
type Subtype string

const (
	SubtypeHistogram Subtype = "histogram"
	SubtypeDensity   Subtype = "density"
	SubtypeBox       Subtype = "box"
)

// Method is the user choice for multivariate analysis.
type Method string

const (
	MethodHeatmap    Method = "heatmap"
	MethodPairs      Method = "pairs"
	MethodGroupedBar Method = "grouped_bar"
)

// Descriptor is a fully parameterized chart: what to draw, over which
// columns, and whether a correlation value accompanies it. It is handed to
// the renderer or, for heatmap and pair-matrix, composed by the page layer.
type Descriptor struct {
	Kind            Kind
	X               string
	Y               string
	Hue             string
	ShowCorrelation bool
	Title           string
}

// MissingColumnsError indicates a chart mode's required columns are absent
// from the table in view. The chart is skipped with a warning; nothing else
// on the page is affected.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("required columns missing: %s", strings.Join(e.Columns, ", "))
}

// SelectUnivariate picks the chart for a single column: categorical columns
// get a frequency chart, numeric columns follow the user's subtype toggle.
func SelectUnivariate(t *dataset.Table, col string, sub Subtype) (Descriptor, error) {
	if !t.HasColumn(col) {
		return Descriptor{}, &dataset.ColumnNotFoundError{Column: col, Table: t.Name}
	}
	if !t.IsNumeric(col) {
		return Descriptor{Kind: KindFrequency, X: col, Title: "Count of " + col}, nil
	}
	switch sub {
	case SubtypeDensity:
		return Descriptor{Kind: KindDensity, X: col, Title: "Density of " + col}, nil
	case SubtypeBox:
		return Descriptor{Kind: KindBox, X: col, Title: "Distribution of " + col}, nil
	default:
		return Descriptor{Kind: KindHistogram, X: col, Title: "Histogram of " + col}, nil
	}
}

// SelectBivariate picks the chart for an X/Y pair. Each axis is
// independently numeric or categorical, giving four cases: scatter with a
// correlation side value, boxplot of the numeric side grouped by the
// categorical side (either order), or a grouped frequency chart.
func SelectBivariate(t *dataset.Table, x, y string) (Descriptor, error) {
	for _, col := range []string{x, y} {
		if !t.HasColumn(col) {
			return Descriptor{}, &dataset.ColumnNotFoundError{Column: col, Table: t.Name}
		}
	}
	xn, yn := t.IsNumeric(x), t.IsNumeric(y)
	switch {
	case xn && yn:
		return Descriptor{Kind: KindScatter, X: x, Y: y, ShowCorrelation: true, Title: x + " vs " + y}, nil
	case xn && !yn:
		// numeric on the value axis, categories along the other
		return Descriptor{Kind: KindBox, X: y, Y: x, Title: x + " by " + y}, nil
	case !xn && yn:
		return Descriptor{Kind: KindBox, X: x, Y: y, Title: y + " by " + x}, nil
	default:
		return Descriptor{Kind: KindGroupedFrequency, X: x, Hue: y, Title: "Count of " + x + " by " + y}, nil
	}
}

// SelectMultivariate picks the chart for a multivariate method. Heatmap and
// pair matrix operate over all numeric columns; the grouped bar requires the
// fuel-type and price columns and uses transmission as hue when present.
func SelectMultivariate(t *dataset.Table, m Method, fuelCol, priceCol, hueCol string) (Descriptor, error) {
	switch m {
	case MethodHeatmap:
		return Descriptor{Kind: KindHeatmap, Title: "Correlation heatmap"}, nil
	case MethodPairs:
		return Descriptor{Kind: KindPairMatrix, Title: "Pairwise relationships"}, nil
	case MethodGroupedBar:
		var missing []string
		for _, col := range []string{fuelCol, priceCol} {
			if !t.HasColumn(col) {
				missing = append(missing, col)
			}
		}
		if len(missing) > 0 {
			return Descriptor{}, &MissingColumnsError{Columns: missing}
		}
		d := Descriptor{Kind: KindGroupedBar, X: fuelCol, Y: priceCol, Title: "Average " + priceCol + " by " + fuelCol}
		if hueCol != "" && t.HasColumn(hueCol) {
			d.Hue = hueCol
		}
		return d, nil
	default:
		return Descriptor{}, fmt.Errorf("unknown multivariate method: %q", m)
	}
}
