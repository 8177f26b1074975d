package dataset

import "fmt"

// DataUnavailableError indicates an input dataset could not be read or parsed.
// This is the only fatal error class: without a dataset there is nothing to show.
type DataUnavailableError struct {
	Path string
	Err  error
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("dataset unavailable: %s: %v", e.Path, e.Err)
}

func (e *DataUnavailableError) Unwrap() error { return e.Err }

// ColumnNotFoundError indicates a referenced column is absent from the table
// currently in view. Callers surface it as a warning next to the affected
// output; it never aborts a page.
type ColumnNotFoundError struct {
	Column string
	Table  string
}

func (e *ColumnNotFoundError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("column %q not found in table %q", e.Column, e.Table)
	}
	return fmt.Sprintf("column %q not found", e.Column)
}
