package recap

import (
	"fmt"
)

// RangeError indicates a row index past the end of the recap table.
type RangeError struct {
	Index int
	Len   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("row index %d out of range for table with %d rows", e.Index, e.Len)
}

// StateError indicates an operation was attempted before the page was parsed.
type StateError struct {
	Op string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: no recap table loaded", e.Op)
}

// StructureError indicates the page layout did not match what the parser expects:
// the table of interest is missing or a header row is absent.
type StructureError struct {
	URL    string
	Detail string
	Err    error
}

func (e *StructureError) Error() string {
	msg := "unexpected recap structure"
	if e.URL != "" {
		msg += fmt.Sprintf(" at %s", e.URL)
	}
	msg += ": " + e.Detail
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *StructureError) Unwrap() error {
	return e.Err
}

// ValidationError indicates a header record that cannot be transformed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid header %s: %s", e.Field, e.Reason)
}

// SchemaMismatchError reports a disagreement between the column schema and what
// a page actually contains. Row is -1 for header-level mismatches.
type SchemaMismatchError struct {
	Schema   string
	URL      string
	Field    string
	Row      int
	Expected int
	Actual   int
}

func (e *SchemaMismatchError) Error() string {
	where := e.Field
	if e.Row >= 0 {
		where = fmt.Sprintf("%s (row %d)", e.Field, e.Row)
	}
	msg := fmt.Sprintf("schema %s mismatch in %s: expected %d, got %d", e.Schema, where, e.Expected, e.Actual)
	if e.URL != "" {
		msg += " at " + e.URL
	}
	return msg
}

// LookupError indicates a school missing from the city/state lookup.
type LookupError struct {
	School string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("no city/state known for school %q", e.School)
}
