package services

import (
	"fmt"
	"time"

	"github.com/chetanu/foodlink/pkg/application/dto"
	"github.com/chetanu/foodlink/pkg/domain/repositories"
)

// UnknownQueryError is returned when a report name does not exist in
// the catalog.
type UnknownQueryError struct {
	Name string
}

func (e *UnknownQueryError) Error() string {
	return fmt.Sprintf("unknown query %q", e.Name)
}

// Outcome is the result of one catalog entry in a full run. Exactly one
// of Result and Err is set.
type Outcome struct {
	Result *dto.Result
	Err    error
}

// Runner executes catalog queries against a store
type Runner struct {
	store   repositories.ReadStore
	catalog *Catalog
}

// NewRunner creates a runner over the given store and catalog
func NewRunner(store repositories.ReadStore, catalog *Catalog) *Runner {
	return &Runner{store: store, catalog: catalog}
}

// Names returns the catalog's query names in registration order
func (r *Runner) Names() []string {
	return r.catalog.Names()
}

// Describe returns the catalog entry for a name, for listings and help
func (r *Runner) Describe(name string) (*Entry, bool) {
	return r.catalog.Entry(name)
}

// Run executes a single named query and records its elapsed time
func (r *Runner) Run(name string, p Params) (*dto.Result, error) {
	entry, ok := r.catalog.Entry(name)
	if !ok {
		return nil, &UnknownQueryError{Name: name}
	}

	start := time.Now()
	result, err := entry.run(r.store, p)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", name, err)
	}
	result.Elapsed = time.Since(start)
	return result, nil
}

// RunAll executes every catalog entry. A failing entry does not stop
// the run; its error is captured in the returned outcome.
func (r *Runner) RunAll(p Params) map[string]Outcome {
	outcomes := make(map[string]Outcome, len(r.catalog.names))
	for _, name := range r.catalog.names {
		result, err := r.Run(name, p)
		if err != nil {
			outcomes[name] = Outcome{Err: err}
			continue
		}
		outcomes[name] = Outcome{Result: result}
	}
	return outcomes
}
