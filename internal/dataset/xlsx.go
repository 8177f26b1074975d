package dataset

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
)

// readXLSX extracts the first worksheet of a .xlsx workbook into a Table.
// The workbook is a ZIP of XML parts; cells typed "s" index into the shared
// strings part, everything else carries its value inline.
func readXLSX(path string) (*Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &DataUnavailableError{Path: path, Err: err}
	}
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return nil, &DataUnavailableError{Path: path, Err: err}
	}
	shared := parseSharedStrings(zipPart(zr, "xl/sharedStrings.xml"))
	sheet := zipPart(zr, "xl/worksheets/sheet1.xml")
	if sheet == nil {
		return nil, &DataUnavailableError{Path: path, Err: fmt.Errorf("no worksheet found")}
	}
	records, err := sheetRecords(sheet, shared)
	if err != nil {
		return nil, &DataUnavailableError{Path: path, Err: err}
	}
	if len(records) == 0 {
		return nil, &DataUnavailableError{Path: path, Err: fmt.Errorf("worksheet has no header row")}
	}
	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
	)
	if df.Error() != nil {
		return nil, &DataUnavailableError{Path: path, Err: df.Error()}
	}
	return &Table{Name: filepath.Base(path), Path: path, df: df}, nil
}

func zipPart(zr *zip.Reader, name string) []byte {
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil
			}
			defer rc.Close()
			b, _ := io.ReadAll(rc)
			return b
		}
	}
	return nil
}

func parseSharedStrings(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	dec := xml.NewDecoder(bytes.NewReader(data))
	var out []string
	var buf strings.Builder
	var inT bool
	for {
		tok, err := dec.Token()
		if err != nil {
			return out
		}
		switch se := tok.(type) {
		case xml.StartElement:
			if se.Name.Local == "si" {
				buf.Reset()
			}
			if se.Name.Local == "t" {
				inT = true
			}
		case xml.EndElement:
			if se.Name.Local == "t" {
				inT = false
			}
			if se.Name.Local == "si" {
				out = append(out, buf.String())
			}
		case xml.CharData:
			if inT {
				buf.Write([]byte(se))
			}
		}
	}
}

// sheetRecords walks sheetData rows and returns rectangular string records.
// Sparse rows are padded to the widest row seen so the dataframe loader gets
// a consistent column count.
func sheetRecords(data []byte, shared []string) ([][]string, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var records [][]string
	var row []string
	width := 0
	inRow := false
	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("parse worksheet: %w", err)
		}
		switch se := tok.(type) {
		case xml.StartElement:
			switch se.Name.Local {
			case "row":
				inRow = true
				row = nil
			case "c":
				if !inRow {
					continue
				}
				var ref, typ string
				for _, a := range se.Attr {
					switch a.Name.Local {
					case "r":
						ref = a.Value
					case "t":
						typ = a.Value
					}
				}
				col := cellColumn(ref)
				if col < 0 {
					col = len(row)
				}
				for len(row) <= col {
					row = append(row, "")
				}
				row[col] = cellValue(dec, typ, shared)
			}
		case xml.EndElement:
			if se.Name.Local == "row" && inRow {
				inRow = false
				if len(row) > width {
					width = len(row)
				}
				records = append(records, row)
			}
		}
	}
	for i := range records {
		for len(records[i]) < width {
			records[i] = append(records[i], "")
		}
	}
	return records, nil
}

// cellValue consumes tokens up to </c> and returns the cell's text, resolving
// shared-string references.
func cellValue(dec *xml.Decoder, typ string, shared []string) string {
	var val string
	var sb strings.Builder
	inVal := false
	for {
		tok, err := dec.Token()
		if err != nil {
			return val
		}
		switch se := tok.(type) {
		case xml.StartElement:
			if se.Name.Local == "v" || se.Name.Local == "t" {
				inVal = true
				sb.Reset()
			}
		case xml.CharData:
			if inVal {
				sb.Write([]byte(se))
			}
		case xml.EndElement:
			switch se.Name.Local {
			case "v", "t":
				inVal = false
				val = sb.String()
			case "c":
				if typ == "s" {
					if i := atoiSafe(val); i >= 0 && i < len(shared) {
						return shared[i]
					}
					return ""
				}
				return val
			}
		}
	}
}

// cellColumn converts a reference like "C12" into a 0-based column index,
// or -1 when the reference is absent.
func cellColumn(ref string) int {
	i := 0
	for i < len(ref) && ((ref[i] >= 'A' && ref[i] <= 'Z') || (ref[i] >= 'a' && ref[i] <= 'z')) {
		i++
	}
	if i == 0 {
		return -1
	}
	idx := 0
	for _, c := range strings.ToUpper(ref[:i]) {
		idx = idx*26 + int(c-'A'+1)
	}
	return idx - 1
}

func atoiSafe(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			break
		}
		n = n*10 + int(s[i]-'0')
	}
	return n
}
