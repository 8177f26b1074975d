package stats

import (
	"math"
	"strings"
	"testing"
)

func TestCorrelationSelf(t *testing.T) {
	tbl := tableOf(t, [][]string{
		{"Price"},
		{"10"}, {"25"}, {"40"}, {"55"},
	})
	r, defined, err := Correlation(tbl, "Price", "Price")
	if err != nil {
		t.Fatalf("Correlation: %v", err)
	}
	if !defined {
		t.Fatalf("self-correlation of a varying column should be defined")
	}
	if math.Abs(r-1.0) > 1e-9 {
		t.Fatalf("self-correlation = %v, want 1.0", r)
	}
}

func TestCorrelationConstantColumn(t *testing.T) {
	tbl := tableOf(t, [][]string{
		{"Price", "Year"},
		{"10", "2015"},
		{"20", "2015"},
		{"30", "2015"},
	})
	_, defined, err := Correlation(tbl, "Price", "Year")
	if err != nil {
		t.Fatalf("Correlation must not fail on zero variance: %v", err)
	}
	if defined {
		t.Fatalf("correlation with a constant column should be undefined")
	}
}

func TestCorrelationNegative(t *testing.T) {
	tbl := tableOf(t, [][]string{
		{"Price", "Kilometers_Driven"},
		{"100", "90000"},
		{"200", "60000"},
		{"300", "30000"},
	})
	r, defined, err := Correlation(tbl, "Price", "Kilometers_Driven")
	if err != nil || !defined {
		t.Fatalf("Correlation: defined=%v err=%v", defined, err)
	}
	if math.Abs(r+1.0) > 1e-9 {
		t.Fatalf("correlation = %v, want -1.0", r)
	}
}

func TestCorrelationMatrixStrongestWith(t *testing.T) {
	// Year tracks Price exactly; Kilometers runs against it.
	tbl := tableOf(t, [][]string{
		{"Company_Name", "Price", "Year", "Kilometers_Driven"},
		{"Maruti", "100", "2010", "90000"},
		{"Hyundai", "200", "2012", "60000"},
		{"Honda", "300", "2014", "30000"},
	})
	m := CorrelationMatrix(tbl)
	want := []string{"Price", "Year", "Kilometers_Driven"}
	if len(m.Columns) != len(want) {
		t.Fatalf("matrix columns = %v, want %v", m.Columns, want)
	}
	for i := range want {
		if m.Columns[i] != want[i] {
			t.Fatalf("matrix columns = %v, want %v", m.Columns, want)
		}
	}
	for i := range m.Columns {
		if !m.Defined[i][i] || m.Values[i][i] != 1 {
			t.Fatalf("diagonal [%d] should be defined 1, got %v defined=%v", i, m.Values[i][i], m.Defined[i][i])
		}
	}
	col, r, ok := m.StrongestWith("Price")
	if !ok {
		t.Fatalf("StrongestWith should be defined")
	}
	if col != "Year" {
		t.Fatalf("StrongestWith = %q, want Year", col)
	}
	if math.Abs(r-1.0) > 1e-9 {
		t.Fatalf("StrongestWith r = %v, want 1.0", r)
	}
}

func TestStrongestWithUnknownRef(t *testing.T) {
	tbl := tableOf(t, [][]string{
		{"Price", "Year"},
		{"100", "2010"},
		{"200", "2012"},
	})
	m := CorrelationMatrix(tbl)
	if _, _, ok := m.StrongestWith("Power_value"); ok {
		t.Fatalf("StrongestWith on an absent reference should be undefined")
	}
}

func TestReportMarkdown(t *testing.T) {
	tbl := tableOf(t, [][]string{
		{"Company_Name", "Price"},
		{"Maruti", "100"},
		{"Maruti", "200"},
		{"Honda", "300"},
	})
	md := Summarize(tbl).Markdown()
	for _, want := range []string{"[DATASET SUMMARY]", "Rows: 3", "- Price: numeric", "- Company_Name: categorical", "Maruti(2)"} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
}
