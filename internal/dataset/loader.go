package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-gota/gota/dataframe"
)

// The loader memoizes parsed tables for the process lifetime, keyed by
// absolute path. Tables are write-once read-many, so later lookups can be
// served concurrently without copying.
var (
	cacheMu sync.Mutex
	cache   = map[string]*Table{}
)

// Load reads the dataset at path into a Table, caching the result so
// repeated calls within a process do not touch storage again. A missing or
// unparsable file yields *DataUnavailableError.
func Load(path string) (*Table, error) {
	key, err := filepath.Abs(path)
	if err != nil {
		key = path
	}
	cacheMu.Lock()
	defer cacheMu.Unlock()
	if t, ok := cache[key]; ok {
		return t, nil
	}
	t, err := read(path)
	if err != nil {
		return nil, err
	}
	cache[key] = t
	return t, nil
}

// ResetCache drops all memoized tables. Only tests use this.
func ResetCache() {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	cache = map[string]*Table{}
}

func read(path string) (*Table, error) {
	name := filepath.Base(path)
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return readXLSX(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &DataUnavailableError{Path: path, Err: err}
	}
	defer f.Close()
	df := dataframe.ReadCSV(f,
		dataframe.WithDelimiter(sniffDelimiter(path)),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
	)
	if df.Error() != nil {
		return nil, &DataUnavailableError{Path: path, Err: df.Error()}
	}
	return &Table{Name: name, Path: path, df: df}, nil
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}
