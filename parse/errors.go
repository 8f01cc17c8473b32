package parse

import "github.com/pkg/errors"

// SchemaError reports a missing file, header row, or required column.
type SchemaError struct {
	File    string
	Field   string
	Wrapped error
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return errors.Wrapf(e.Wrapped, "%s: schema error", e.File).Error()
	}
	return errors.Wrapf(e.Wrapped, "%s: missing required column %q", e.File, e.Field).Error()
}

func (e *SchemaError) Unwrap() error { return e.Wrapped }

func newSchemaError(file, field string, cause error) *SchemaError {
	return &SchemaError{File: file, Field: field, Wrapped: cause}
}

// ValueError reports a cell that could not be parsed into its typed
// value: a bad float/int, bad enum code, or malformed date/time.
type ValueError struct {
	File    string
	Field   string
	Value   string
	Row     int
	Wrapped error
}

func (e *ValueError) Error() string {
	return errors.Wrapf(
		e.Wrapped,
		"%s: row %d: field %q value %q",
		e.File, e.Row, e.Field, e.Value,
	).Error()
}

func (e *ValueError) Unwrap() error { return e.Wrapped }

func newValueError(file, field, value string, row int, cause error) *ValueError {
	return &ValueError{File: file, Field: field, Value: value, Row: row, Wrapped: cause}
}

// IntegrityError reports a duplicate id in a 1:1 table.
type IntegrityError struct {
	File string
	Key  string
}

func (e *IntegrityError) Error() string {
	return errors.Errorf("%s: duplicate key %q", e.File, e.Key).Error()
}

func newIntegrityError(file, key string) *IntegrityError {
	return &IntegrityError{File: file, Key: key}
}
