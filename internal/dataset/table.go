package dataset

import (
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Table is an immutable tabular dataset. The underlying dataframe is never
// mutated after load; derived views are produced as fresh Tables.
type Table struct {
	Name string
	Path string
	df   dataframe.DataFrame
}

// NewTable wraps a dataframe. Used by the loader and by tests that build
// tables in memory.
func NewTable(name string, df dataframe.DataFrame) *Table {
	return &Table{Name: name, df: df}
}

// Columns returns column names in declaration order.
func (t *Table) Columns() []string { return t.df.Names() }

// NumRows returns the number of data rows.
func (t *Table) NumRows() int { return t.df.Nrow() }

// HasColumn reports whether the table declares the named column.
func (t *Table) HasColumn(name string) bool {
	for _, n := range t.df.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// Col returns the named series, or ColumnNotFoundError.
func (t *Table) Col(name string) (series.Series, error) {
	if !t.HasColumn(name) {
		return series.Series{}, &ColumnNotFoundError{Column: name, Table: t.Name}
	}
	return t.df.Col(name), nil
}

// Classify partitions columns into numeric and categorical sets, both
// order-preserving. Classification reads the declared series type, so a
// zero-row table classifies by schema rather than by inference over no data.
// Boolean columns count as categorical.
func (t *Table) Classify() (numeric, categorical []string) {
	names := t.df.Names()
	types := t.df.Types()
	for i, name := range names {
		switch types[i] {
		case series.Int, series.Float:
			numeric = append(numeric, name)
		default:
			categorical = append(categorical, name)
		}
	}
	return numeric, categorical
}

// IsNumeric reports whether the named column has a numeric declared type.
func (t *Table) IsNumeric(name string) bool {
	names := t.df.Names()
	types := t.df.Types()
	for i, n := range names {
		if n == name {
			return types[i] == series.Int || types[i] == series.Float
		}
	}
	return false
}

// Floats returns the column as float64 values; non-numeric cells come back
// as NaN, which statistic functions are expected to skip.
func (t *Table) Floats(name string) ([]float64, error) {
	s, err := t.Col(name)
	if err != nil {
		return nil, err
	}
	return s.Float(), nil
}

// Strings returns the column rendered as strings.
func (t *Table) Strings(name string) ([]string, error) {
	s, err := t.Col(name)
	if err != nil {
		return nil, err
	}
	return s.Records(), nil
}

// Distinct returns the column's distinct values in first-occurrence order,
// skipping missing cells.
func (t *Table) Distinct(name string) ([]string, error) {
	s, err := t.Col(name)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	var out []string
	for i := 0; i < s.Len(); i++ {
		e := s.Elem(i)
		if e.IsNA() {
			continue
		}
		v := e.String()
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out, nil
}

// Subset returns a new table containing the rows at the given indexes, in
// the given order. An empty index list yields an empty table with the same
// schema.
func (t *Table) Subset(idx []int) *Table {
	if idx == nil {
		idx = []int{}
	}
	sub := t.df.Subset(idx)
	return &Table{Name: t.Name, Path: t.Path, df: sub}
}

// Head returns up to n data rows as string records, preceded by the header
// row. Used for on-screen table previews.
func (t *Table) Head(n int) [][]string {
	recs := t.df.Records()
	if len(recs) == 0 {
		return recs
	}
	if n < 0 {
		n = 0
	}
	if len(recs)-1 > n {
		recs = recs[:n+1]
	}
	return recs
}

// Row returns the i-th data row as a column-name keyed map of rendered
// values.
func (t *Table) Row(i int) map[string]string {
	out := map[string]string{}
	if i < 0 || i >= t.df.Nrow() {
		return out
	}
	names := t.df.Names()
	for _, name := range names {
		out[name] = t.df.Col(name).Elem(i).String()
	}
	return out
}
