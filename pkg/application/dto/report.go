package dto

import "time"

// Result contains the tabular outcome of one catalog query
type Result struct {
	Query    string        `json:"query"`
	Columns  []string      `json:"columns"`
	Rows     [][]any       `json:"rows"`
	RowCount int           `json:"row_count"`
	Elapsed  time.Duration `json:"elapsed_ns"`
}

// NewResult builds a Result with its row count filled in
func NewResult(query string, columns []string, rows [][]any) *Result {
	return &Result{
		Query:    query,
		Columns:  columns,
		Rows:     rows,
		RowCount: len(rows),
	}
}
