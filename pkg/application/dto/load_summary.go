package dto

import "github.com/chetanu/foodlink/pkg/domain/entities"

// RowError ties a rejected ingestion row to the reason it was rejected.
// Row numbers are 1-based over the data rows (the header is not counted).
type RowError struct {
	Row int
	Err error
}

// LoadSummary reports the outcome of one bulk load. Record-level
// failures never abort a load; every rejected row is attributable to a
// specific row number and reason.
type LoadSummary struct {
	Kind     entities.Kind
	Accepted int
	Rejected int
	Errors   []RowError
}

// Reject records one rejected row with its reason
func (s *LoadSummary) Reject(row int, err error) {
	s.Rejected++
	s.Errors = append(s.Errors, RowError{Row: row, Err: err})
}
