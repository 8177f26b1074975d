package chart

import (
	"testing"

	"github.com/go-gota/gota/dataframe"

	"github.com/KaramelBytes/carloom/internal/dataset"
)

func carsTable(t *testing.T) *dataset.Table {
	t.Helper()
	df := dataframe.LoadRecords([][]string{
		{"Company_Name", "Year", "Price", "Fuel_Type", "Transmission"},
		{"Maruti", "2015", "350000", "Petrol", "Manual"},
		{"Hyundai", "2018", "550000", "Diesel", "Automatic"},
		{"Honda", "2019", "780000", "Petrol", "Manual"},
		{"Maruti", "2012", "210000", "CNG", "Manual"},
	}, dataframe.HasHeader(true), dataframe.DetectTypes(true))
	if df.Error() != nil {
		t.Fatalf("load records: %v", df.Error())
	}
	return dataset.NewTable("cars", df)
}

func TestSelectUnivariate(t *testing.T) {
	tbl := carsTable(t)
	cases := []struct {
		name string
		col  string
		sub  Subtype
		want Kind
	}{
		{"categorical ignores subtype", "Fuel_Type", SubtypeBox, KindFrequency},
		{"numeric histogram", "Price", SubtypeHistogram, KindHistogram},
		{"numeric density", "Price", SubtypeDensity, KindDensity},
		{"numeric box", "Price", SubtypeBox, KindBox},
		{"numeric default subtype", "Price", Subtype(""), KindHistogram},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := SelectUnivariate(tbl, tc.col, tc.sub)
			if err != nil {
				t.Fatalf("SelectUnivariate: %v", err)
			}
			if d.Kind != tc.want {
				t.Fatalf("kind = %q, want %q", d.Kind, tc.want)
			}
			if d.X != tc.col {
				t.Fatalf("X = %q, want %q", d.X, tc.col)
			}
		})
	}
	if _, err := SelectUnivariate(tbl, "Owner_Count", SubtypeHistogram); err == nil {
		t.Fatalf("expected error for unknown column")
	}
}

func TestSelectBivariate(t *testing.T) {
	tbl := carsTable(t)
	cases := []struct {
		name     string
		x, y     string
		want     Kind
		wantCorr bool
	}{
		{"num num scatter", "Year", "Price", KindScatter, true},
		{"num cat box", "Price", "Fuel_Type", KindBox, false},
		{"cat num box", "Fuel_Type", "Price", KindBox, false},
		{"cat cat grouped", "Fuel_Type", "Transmission", KindGroupedFrequency, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := SelectBivariate(tbl, tc.x, tc.y)
			if err != nil {
				t.Fatalf("SelectBivariate: %v", err)
			}
			if d.Kind != tc.want {
				t.Fatalf("kind = %q, want %q", d.Kind, tc.want)
			}
			if d.ShowCorrelation != tc.wantCorr {
				t.Fatalf("ShowCorrelation = %v, want %v", d.ShowCorrelation, tc.wantCorr)
			}
		})
	}
	// Box descriptors put the categorical side on X regardless of argument order
	d, err := SelectBivariate(tbl, "Price", "Fuel_Type")
	if err != nil {
		t.Fatalf("SelectBivariate: %v", err)
	}
	if d.X != "Fuel_Type" || d.Y != "Price" {
		t.Fatalf("box axes = (%q,%q), want (Fuel_Type,Price)", d.X, d.Y)
	}
}

func TestSelectMultivariateGroupedBar(t *testing.T) {
	tbl := carsTable(t)
	d, err := SelectMultivariate(tbl, MethodGroupedBar, "Fuel_Type", "Price", "Transmission")
	if err != nil {
		t.Fatalf("SelectMultivariate: %v", err)
	}
	if d.Kind != KindGroupedBar || d.X != "Fuel_Type" || d.Y != "Price" || d.Hue != "Transmission" {
		t.Fatalf("unexpected descriptor: %+v", d)
	}

	// Missing required column is a defined failure, not a crash
	_, err = SelectMultivariate(tbl, MethodGroupedBar, "Fuel_Type", "Resale_Price", "Transmission")
	if err == nil {
		t.Fatalf("expected MissingColumnsError")
	}
	missErr, ok := err.(*MissingColumnsError)
	if !ok {
		t.Fatalf("expected *MissingColumnsError, got %T", err)
	}
	if len(missErr.Columns) != 1 || missErr.Columns[0] != "Resale_Price" {
		t.Fatalf("missing columns = %v, want [Resale_Price]", missErr.Columns)
	}

	// Hue is optional: absent transmission column just drops the grouping
	d, err = SelectMultivariate(tbl, MethodGroupedBar, "Fuel_Type", "Price", "Gearbox")
	if err != nil {
		t.Fatalf("SelectMultivariate: %v", err)
	}
	if d.Hue != "" {
		t.Fatalf("hue = %q, want empty for absent column", d.Hue)
	}
}

func TestSelectMultivariateCompositeKinds(t *testing.T) {
	tbl := carsTable(t)
	d, err := SelectMultivariate(tbl, MethodHeatmap, "Fuel_Type", "Price", "")
	if err != nil || d.Kind != KindHeatmap {
		t.Fatalf("heatmap: kind=%q err=%v", d.Kind, err)
	}
	d, err = SelectMultivariate(tbl, MethodPairs, "Fuel_Type", "Price", "")
	if err != nil || d.Kind != KindPairMatrix {
		t.Fatalf("pairs: kind=%q err=%v", d.Kind, err)
	}
	if _, err := SelectMultivariate(tbl, Method("violin"), "Fuel_Type", "Price", ""); err == nil {
		t.Fatalf("expected error for unknown method")
	}
}
