package dataset

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

// buildXLSX writes a minimal workbook: one sheet, string cells via the
// shared-strings part, numbers inline.
func buildXLSX(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cars.xlsx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create xlsx: %v", err)
	}
	zw := zip.NewWriter(f)
	parts := map[string]string{
		"xl/workbook.xml": `<?xml version="1.0"?><workbook><sheets><sheet name="Sheet1" sheetId="1" r:id="rId1"/></sheets></workbook>`,
		"xl/sharedStrings.xml": `<?xml version="1.0"?><sst count="5" uniqueCount="5">` +
			`<si><t>Company_Name</t></si><si><t>Price</t></si>` +
			`<si><t>Maruti</t></si><si><t>Hyundai</t></si><si><t>Honda</t></si></sst>`,
		"xl/worksheets/sheet1.xml": `<?xml version="1.0"?><worksheet><sheetData>` +
			`<row r="1"><c r="A1" t="s"><v>0</v></c><c r="B1" t="s"><v>1</v></c></row>` +
			`<row r="2"><c r="A2" t="s"><v>2</v></c><c r="B2"><v>350000</v></c></row>` +
			`<row r="3"><c r="A3" t="s"><v>3</v></c><c r="B3"><v>550000</v></c></row>` +
			`<row r="4"><c r="A4" t="s"><v>4</v></c><c r="B4"><v>780000</v></c></row>` +
			`</sheetData></worksheet>`,
	}
	for name, body := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}
	return path
}

func TestLoadXLSX(t *testing.T) {
	ResetCache()
	tbl, err := Load(buildXLSX(t))
	if err != nil {
		t.Fatalf("Load xlsx: %v", err)
	}
	if tbl.NumRows() != 3 {
		t.Fatalf("expected 3 rows, got %d", tbl.NumRows())
	}
	numeric, categorical := tbl.Classify()
	if len(numeric) != 1 || numeric[0] != "Price" {
		t.Fatalf("numeric = %v, want [Price]", numeric)
	}
	if len(categorical) != 1 || categorical[0] != "Company_Name" {
		t.Fatalf("categorical = %v, want [Company_Name]", categorical)
	}
	comps, err := tbl.Strings("Company_Name")
	if err != nil {
		t.Fatalf("Strings: %v", err)
	}
	if comps[0] != "Maruti" || comps[2] != "Honda" {
		t.Fatalf("unexpected companies: %v", comps)
	}
}

func TestLoadXLSXMissingSheet(t *testing.T) {
	ResetCache()
	path := filepath.Join(t.TempDir(), "broken.xlsx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	zw := zip.NewWriter(f)
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	_ = f.Close()
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for workbook without worksheet")
	} else if _, ok := err.(*DataUnavailableError); !ok {
		t.Fatalf("expected *DataUnavailableError, got %T", err)
	}
}
