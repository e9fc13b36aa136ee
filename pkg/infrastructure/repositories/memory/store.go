package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/chetanu/foodlink/pkg/domain/entities"
	"github.com/chetanu/foodlink/pkg/domain/repositories"
)

// Store provides in-memory storage for the four entity tables.
// Dependency indexes (provider -> listings, food -> claims,
// receiver -> claims) are maintained alongside the primary maps and
// drive cascading deletes without a relational engine underneath.
// A RWMutex serializes writers; readers only observe committed state.
type Store struct {
	mu sync.RWMutex

	providers map[entities.ProviderID]*entities.Provider
	receivers map[entities.ReceiverID]*entities.Receiver
	listings  map[entities.FoodID]*entities.FoodListing
	claims    map[entities.ClaimID]*entities.Claim

	listingsByProvider map[entities.ProviderID]map[entities.FoodID]struct{}
	claimsByFood       map[entities.FoodID]map[entities.ClaimID]struct{}
	claimsByReceiver   map[entities.ReceiverID]map[entities.ClaimID]struct{}
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{
		providers:          make(map[entities.ProviderID]*entities.Provider),
		receivers:          make(map[entities.ReceiverID]*entities.Receiver),
		listings:           make(map[entities.FoodID]*entities.FoodListing),
		claims:             make(map[entities.ClaimID]*entities.Claim),
		listingsByProvider: make(map[entities.ProviderID]map[entities.FoodID]struct{}),
		claimsByFood:       make(map[entities.FoodID]map[entities.ClaimID]struct{}),
		claimsByReceiver:   make(map[entities.ReceiverID]map[entities.ClaimID]struct{}),
	}
}

// Verify interface compliance
var _ repositories.Store = (*Store)(nil)

// AddProvider validates and inserts a provider
func (s *Store) AddProvider(p *entities.Provider) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.providers[p.ID]; exists {
		return &entities.ValidationError{Field: "Provider_ID", Reason: fmt.Sprintf("duplicate id %d", p.ID)}
	}
	cp := *p
	s.providers[p.ID] = &cp
	return nil
}

// AddReceiver validates and inserts a receiver
func (s *Store) AddReceiver(r *entities.Receiver) error {
	if err := r.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.receivers[r.ID]; exists {
		return &entities.ValidationError{Field: "Receiver_ID", Reason: fmt.Sprintf("duplicate id %d", r.ID)}
	}
	cp := *r
	s.receivers[r.ID] = &cp
	return nil
}

// AddFoodListing validates and inserts a listing. The owning provider
// must already exist.
func (s *Store) AddFoodListing(l *entities.FoodListing) error {
	if err := l.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.listings[l.ID]; exists {
		return &entities.ValidationError{Field: "Food_ID", Reason: fmt.Sprintf("duplicate id %d", l.ID)}
	}
	if _, exists := s.providers[l.ProviderID]; !exists {
		return &entities.ReferentialError{Field: "Provider_ID", MissingID: int64(l.ProviderID)}
	}
	cp := *l
	s.listings[l.ID] = &cp
	s.indexListing(&cp)
	return nil
}

// AddClaim validates and inserts a claim. Both the claimed listing and
// the claiming receiver must already exist.
func (s *Store) AddClaim(c *entities.Claim) error {
	if err := c.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.claims[c.ID]; exists {
		return &entities.ValidationError{Field: "Claim_ID", Reason: fmt.Sprintf("duplicate id %d", c.ID)}
	}
	if _, exists := s.listings[c.FoodID]; !exists {
		return &entities.ReferentialError{Field: "Food_ID", MissingID: int64(c.FoodID)}
	}
	if _, exists := s.receivers[c.ReceiverID]; !exists {
		return &entities.ReferentialError{Field: "Receiver_ID", MissingID: int64(c.ReceiverID)}
	}
	cp := *c
	s.claims[c.ID] = &cp
	s.indexClaim(&cp)
	return nil
}

// Providers returns all providers ordered by id ascending
func (s *Store) Providers() ([]*entities.Provider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entities.Provider, 0, len(s.providers))
	for _, p := range s.providers {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Receivers returns all receivers ordered by id ascending
func (s *Store) Receivers() ([]*entities.Receiver, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entities.Receiver, 0, len(s.receivers))
	for _, r := range s.receivers {
		cp := *r
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// FoodListings returns all listings ordered by id ascending
func (s *Store) FoodListings() ([]*entities.FoodListing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entities.FoodListing, 0, len(s.listings))
	for _, l := range s.listings {
		cp := *l
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Claims returns all claims ordered by id ascending
func (s *Store) Claims() ([]*entities.Claim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entities.Claim, 0, len(s.claims))
	for _, c := range s.claims {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// UpdateProvider replaces a stored provider record
func (s *Store) UpdateProvider(p *entities.Provider) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.providers[p.ID]; !exists {
		return fmt.Errorf("provider %d: %w", p.ID, repositories.ErrNotFound)
	}
	cp := *p
	s.providers[p.ID] = &cp
	return nil
}

// UpdateReceiver replaces a stored receiver record
func (s *Store) UpdateReceiver(r *entities.Receiver) error {
	if err := r.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.receivers[r.ID]; !exists {
		return fmt.Errorf("receiver %d: %w", r.ID, repositories.ErrNotFound)
	}
	cp := *r
	s.receivers[r.ID] = &cp
	return nil
}

// UpdateFoodListing replaces a stored listing record. Re-parenting to
// another provider is referentially checked.
func (s *Store) UpdateFoodListing(l *entities.FoodListing) error {
	if err := l.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	old, exists := s.listings[l.ID]
	if !exists {
		return fmt.Errorf("food listing %d: %w", l.ID, repositories.ErrNotFound)
	}
	if _, exists := s.providers[l.ProviderID]; !exists {
		return &entities.ReferentialError{Field: "Provider_ID", MissingID: int64(l.ProviderID)}
	}
	if old.ProviderID != l.ProviderID {
		delete(s.listingsByProvider[old.ProviderID], old.ID)
	}
	cp := *l
	s.listings[l.ID] = &cp
	s.indexListing(&cp)
	return nil
}

// UpdateClaimStatus moves a claim through its lifecycle
func (s *Store) UpdateClaimStatus(id entities.ClaimID, status entities.ClaimStatus) error {
	if !statusValid(status) {
		return &entities.ValidationError{Field: "Status", Reason: "unknown claim status"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, exists := s.claims[id]
	if !exists {
		return fmt.Errorf("claim %d: %w", id, repositories.ErrNotFound)
	}
	c.Status = status
	return nil
}

// DeleteProvider removes a provider, its listings, and transitively the
// claims against those listings. The whole cascade applies under one
// write lock, so readers never observe a partial removal.
func (s *Store) DeleteProvider(id entities.ProviderID) (*repositories.CascadeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.providers[id]; !exists {
		return nil, fmt.Errorf("provider %d: %w", id, repositories.ErrNotFound)
	}
	result := &repositories.CascadeResult{}
	for foodID := range s.listingsByProvider[id] {
		result.ClaimsRemoved += s.removeClaimsOfFood(foodID)
		delete(s.listings, foodID)
		delete(s.claimsByFood, foodID)
		result.ListingsRemoved++
	}
	delete(s.listingsByProvider, id)
	delete(s.providers, id)
	return result, nil
}

// DeleteReceiver removes a receiver and the claims it made
func (s *Store) DeleteReceiver(id entities.ReceiverID) (*repositories.CascadeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.receivers[id]; !exists {
		return nil, fmt.Errorf("receiver %d: %w", id, repositories.ErrNotFound)
	}
	result := &repositories.CascadeResult{}
	for claimID := range s.claimsByReceiver[id] {
		s.removeClaim(claimID)
		result.ClaimsRemoved++
	}
	delete(s.claimsByReceiver, id)
	delete(s.receivers, id)
	return result, nil
}

// DeleteFoodListing removes a listing and the claims against it
func (s *Store) DeleteFoodListing(id entities.FoodID) (*repositories.CascadeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, exists := s.listings[id]
	if !exists {
		return nil, fmt.Errorf("food listing %d: %w", id, repositories.ErrNotFound)
	}
	result := &repositories.CascadeResult{}
	result.ClaimsRemoved = s.removeClaimsOfFood(id)
	delete(s.listingsByProvider[l.ProviderID], id)
	delete(s.claimsByFood, id)
	delete(s.listings, id)
	return result, nil
}

// DeleteClaim removes a single claim
func (s *Store) DeleteClaim(id entities.ClaimID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.claims[id]; !exists {
		return fmt.Errorf("claim %d: %w", id, repositories.ErrNotFound)
	}
	s.removeClaim(id)
	return nil
}

// Close releases nothing for the in-memory store
func (s *Store) Close() error {
	return nil
}

func (s *Store) indexListing(l *entities.FoodListing) {
	if s.listingsByProvider[l.ProviderID] == nil {
		s.listingsByProvider[l.ProviderID] = make(map[entities.FoodID]struct{})
	}
	s.listingsByProvider[l.ProviderID][l.ID] = struct{}{}
}

func (s *Store) indexClaim(c *entities.Claim) {
	if s.claimsByFood[c.FoodID] == nil {
		s.claimsByFood[c.FoodID] = make(map[entities.ClaimID]struct{})
	}
	s.claimsByFood[c.FoodID][c.ID] = struct{}{}
	if s.claimsByReceiver[c.ReceiverID] == nil {
		s.claimsByReceiver[c.ReceiverID] = make(map[entities.ClaimID]struct{})
	}
	s.claimsByReceiver[c.ReceiverID][c.ID] = struct{}{}
}

// removeClaim deletes a claim and unlinks it from both indexes.
// Callers must hold the write lock.
func (s *Store) removeClaim(id entities.ClaimID) {
	c, exists := s.claims[id]
	if !exists {
		return
	}
	delete(s.claimsByFood[c.FoodID], id)
	delete(s.claimsByReceiver[c.ReceiverID], id)
	delete(s.claims, id)
}

// removeClaimsOfFood deletes every claim against a listing and returns
// how many were removed. Callers must hold the write lock.
func (s *Store) removeClaimsOfFood(id entities.FoodID) int {
	removed := 0
	for claimID := range s.claimsByFood[id] {
		s.removeClaim(claimID)
		removed++
	}
	return removed
}

func statusValid(st entities.ClaimStatus) bool {
	switch st {
	case entities.Pending, entities.Completed, entities.Cancelled:
		return true
	}
	return false
}
