package dataset

import (
	"fmt"
	"testing"

	"github.com/go-gota/gota/dataframe"
)

func filterFixture(t *testing.T) *Table {
	t.Helper()
	records := [][]string{{"Company_Name", "Year", "Price"}}
	companies := []string{"Maruti", "Hyundai", "Honda", "Tata"}
	for i := 0; i < 100; i++ {
		records = append(records, []string{
			companies[i%len(companies)],
			fmt.Sprintf("%d", 2005+i%15),
			fmt.Sprintf("%d", 200000+i*1000),
		})
	}
	df := dataframe.LoadRecords(records, dataframe.HasHeader(true), dataframe.DetectTypes(true))
	if df.Error() != nil {
		t.Fatalf("load records: %v", df.Error())
	}
	return NewTable("cars", df)
}

func TestFilterSubsetProperty(t *testing.T) {
	tbl := filterFixture(t)
	sub, err := Filter(tbl, "Company_Name", "Year", Selection{
		Values: []string{"Maruti", "Honda"},
		Min:    2010, Max: 2015,
	})
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if sub.NumRows() == 0 || sub.NumRows() >= tbl.NumRows() {
		t.Fatalf("expected a proper subset, got %d of %d rows", sub.NumRows(), tbl.NumRows())
	}
	comps, _ := sub.Strings("Company_Name")
	years, _ := sub.Floats("Year")
	for i := range comps {
		if comps[i] != "Maruti" && comps[i] != "Honda" {
			t.Fatalf("row %d has disallowed company %q", i, comps[i])
		}
		if years[i] < 2010 || years[i] > 2015 {
			t.Fatalf("row %d year %v outside [2010,2015]", i, years[i])
		}
	}
}

func TestFilterIdentity(t *testing.T) {
	tbl := filterFixture(t)
	all, err := tbl.Distinct("Company_Name")
	if err != nil {
		t.Fatalf("Distinct: %v", err)
	}
	sub, err := Filter(tbl, "Company_Name", "Year", Selection{
		Values: all,
		Min:    2005, Max: 2019,
	})
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if sub.NumRows() != tbl.NumRows() {
		t.Fatalf("identity filter kept %d of %d rows", sub.NumRows(), tbl.NumRows())
	}
}

func TestFilterEmptyAllowedSet(t *testing.T) {
	tbl := filterFixture(t)
	sub, err := Filter(tbl, "Company_Name", "Year", Selection{Min: 2005, Max: 2019})
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if sub.NumRows() != 0 {
		t.Fatalf("empty allowed set should yield 0 rows, got %d", sub.NumRows())
	}
	// Schema survives an empty subset
	if len(sub.Columns()) != len(tbl.Columns()) {
		t.Fatalf("empty subset lost columns: %v", sub.Columns())
	}
}

func TestFilterInvertedBounds(t *testing.T) {
	tbl := filterFixture(t)
	sub, err := Filter(tbl, "Company_Name", "Year", Selection{
		Values: []string{"Maruti"},
		Min:    2019, Max: 2005,
	})
	if err != nil {
		t.Fatalf("Filter must not fail on inverted bounds: %v", err)
	}
	if sub.NumRows() != 0 {
		t.Fatalf("inverted bounds should yield 0 rows, got %d", sub.NumRows())
	}
}

func TestFilterUnknownColumn(t *testing.T) {
	tbl := filterFixture(t)
	_, err := Filter(tbl, "Brand", "Year", Selection{Values: []string{"Maruti"}, Min: 0, Max: 9999})
	if err == nil {
		t.Fatalf("expected error for unknown column")
	}
	if _, ok := err.(*ColumnNotFoundError); !ok {
		t.Fatalf("expected *ColumnNotFoundError, got %T", err)
	}
}
