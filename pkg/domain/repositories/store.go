package repositories

import (
	"errors"

	"github.com/chetanu/foodlink/pkg/domain/entities"
)

// ErrNotFound is returned when an id does not resolve to a stored record
var ErrNotFound = errors.New("record not found")

// CascadeResult reports how many dependent rows a cascading delete
// removed, not counting the parent record itself.
type CascadeResult struct {
	ListingsRemoved int
	ClaimsRemoved   int
}

// ReadStore is the read-only view of the dataset consumed by catalog
// queries. Implementations return records ordered by id ascending and
// must not expose internal state that a caller could mutate.
type ReadStore interface {
	Providers() ([]*entities.Provider, error)
	Receivers() ([]*entities.Receiver, error)
	FoodListings() ([]*entities.FoodListing, error)
	Claims() ([]*entities.Claim, error)
}

// Store provides access to the four entity tables with enforced
// uniqueness and referential constraints. Writers are serialized; a
// cascade either applies in full or not at all.
type Store interface {
	ReadStore

	AddProvider(p *entities.Provider) error
	AddReceiver(r *entities.Receiver) error
	AddFoodListing(l *entities.FoodListing) error
	AddClaim(c *entities.Claim) error

	UpdateProvider(p *entities.Provider) error
	UpdateReceiver(r *entities.Receiver) error
	UpdateFoodListing(l *entities.FoodListing) error
	UpdateClaimStatus(id entities.ClaimID, status entities.ClaimStatus) error

	DeleteProvider(id entities.ProviderID) (*CascadeResult, error)
	DeleteReceiver(id entities.ReceiverID) (*CascadeResult, error)
	DeleteFoodListing(id entities.FoodID) (*CascadeResult, error)
	DeleteClaim(id entities.ClaimID) error

	Close() error
}
