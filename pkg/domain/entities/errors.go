package entities

import "fmt"

// ValidationError reports a field-level violation detected before a
// record is admitted to the store. The record it belongs to is rejected
// whole; no partial admission happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// ReferentialError reports a foreign key whose target record does not
// exist at insert time. The offending record is rejected; bulk loading
// continues with the remaining rows.
type ReferentialError struct {
	Field     string
	MissingID int64
}

func (e *ReferentialError) Error() string {
	return fmt.Sprintf("%s references missing id %d", e.Field, e.MissingID)
}

// FormatError reports an unparseable date or timestamp literal
type FormatError struct {
	Field    string
	Value    string
	Expected string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("cannot parse %s value %q (expected %s)", e.Field, e.Value, e.Expected)
}
