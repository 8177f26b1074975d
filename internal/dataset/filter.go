package dataset

import "math"

// Selection is one rendering pass's filter input: the allowed values for a
// categorical column plus a closed interval for a numeric column. It is
// transient; nothing retains it across requests.
type Selection struct {
	Values []string
	Min    float64
	Max    float64
}

// Filter returns the subset of rows whose catCol value is a member of
// sel.Values and whose numCol value lies within [sel.Min, sel.Max].
//
// An empty allowed set yields an empty table, as does an inverted interval
// (Min > Max); neither is an error. Rows with a missing value in either
// column are excluded. Unknown columns yield *ColumnNotFoundError.
func Filter(t *Table, catCol, numCol string, sel Selection) (*Table, error) {
	cat, err := t.Col(catCol)
	if err != nil {
		return nil, err
	}
	num, err := t.Col(numCol)
	if err != nil {
		return nil, err
	}
	if len(sel.Values) == 0 || sel.Min > sel.Max {
		return t.Subset(nil), nil
	}
	allowed := make(map[string]bool, len(sel.Values))
	for _, v := range sel.Values {
		allowed[v] = true
	}
	var idx []int
	for i := 0; i < t.NumRows(); i++ {
		ce := cat.Elem(i)
		ne := num.Elem(i)
		if ce.IsNA() || ne.IsNA() {
			continue
		}
		if !allowed[ce.String()] {
			continue
		}
		v := ne.Float()
		if math.IsNaN(v) || v < sel.Min || v > sel.Max {
			continue
		}
		idx = append(idx, i)
	}
	return t.Subset(idx), nil
}
