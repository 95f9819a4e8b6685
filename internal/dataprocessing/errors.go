package dataprocessing

import "fmt"

// MissingFileError reports a configured dataset file that does not exist.
// Available carries a listing of the base directory so the caller can show
// the user what was actually there.
type MissingFileError struct {
	Filename  string
	Dir       string
	Available []string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("dataset file %s not found in %s (found: %v)", e.Filename, e.Dir, e.Available)
}

// ParseError reports malformed tabular structure in a dataset file: a broken
// delimiter layout, an unreadable sheet, or a header row missing required
// columns. Line is 1-based when known, 0 otherwise.
type ParseError struct {
	Filename string
	Line     int
	Err      error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse %s: line %d: %v", e.Filename, e.Line, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Filename, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// FormatError reports a single field that failed numeric coercion. The
// normalizer recovers from it by dropping the row; it is exported so strict
// callers can distinguish it if they choose to fail instead.
type FormatError struct {
	Column string
	Value  string
	Err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("field %s: cannot parse %q: %v", e.Column, e.Value, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }
