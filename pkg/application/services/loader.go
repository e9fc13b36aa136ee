package services

import (
	"fmt"
	"io"

	"github.com/chetanu/foodlink/pkg/application/dto"
	"github.com/chetanu/foodlink/pkg/domain/entities"
	"github.com/chetanu/foodlink/pkg/domain/repositories"
	"github.com/chetanu/foodlink/pkg/infrastructure/repositories/csv"
)

// Loader ingests raw rows into a store with partial-success semantics:
// each row is parsed, validated, and referentially checked on its own,
// and a bad row never aborts the rows after it. Parents must be loaded
// before their dependents (providers before listings; listings and
// receivers before claims) — that ordering is the caller's duty.
type Loader struct {
	store repositories.Store
}

// NewLoader creates a loader writing into store
func NewLoader(store repositories.Store) *Loader {
	return &Loader{store: store}
}

// Load ingests raw rows of one entity kind and returns a summary of
// accepted and rejected rows. Row numbers in the summary are 1-based
// over the given records.
func (l *Loader) Load(kind entities.Kind, records [][]string) *dto.LoadSummary {
	summary := &dto.LoadSummary{Kind: kind}
	for i, record := range records {
		rec, err := csv.ParseRecord(kind, record)
		if err == nil {
			err = l.insert(rec)
		}
		if err != nil {
			summary.Reject(i+1, err)
			continue
		}
		summary.Accepted++
	}
	return summary
}

// LoadCSV reads one delimited file (header row first) and ingests its
// rows. The returned error covers unreadable input only; row-level
// failures land in the summary.
func (l *Loader) LoadCSV(kind entities.Kind, r io.Reader) (*dto.LoadSummary, error) {
	records, err := csv.ReadRows(r)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", kind, err)
	}
	return l.Load(kind, records), nil
}

func (l *Loader) insert(rec any) error {
	switch v := rec.(type) {
	case *entities.Provider:
		return l.store.AddProvider(v)
	case *entities.Receiver:
		return l.store.AddReceiver(v)
	case *entities.FoodListing:
		return l.store.AddFoodListing(v)
	case *entities.Claim:
		return l.store.AddClaim(v)
	default:
		return fmt.Errorf("unsupported record type %T", rec)
	}
}
