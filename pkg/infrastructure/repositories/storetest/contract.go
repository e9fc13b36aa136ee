// Package storetest holds a behavioral test suite that every Store
// implementation must pass. Backend packages call Run from their own
// tests with a factory for a fresh store.
package storetest

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chetanu/foodlink/pkg/domain/entities"
	"github.com/chetanu/foodlink/pkg/domain/repositories"
)

// Factory returns a fresh, empty store. Cleanup is registered on t.
type Factory func(t *testing.T) repositories.Store

// Run executes the full contract suite against the factory's stores
func Run(t *testing.T, open Factory) {
	t.Run("AddAndReadBack", func(t *testing.T) { testAddAndReadBack(t, open) })
	t.Run("OrderedByID", func(t *testing.T) { testOrderedByID(t, open) })
	t.Run("DuplicateID", func(t *testing.T) { testDuplicateID(t, open) })
	t.Run("ReferentialChecks", func(t *testing.T) { testReferentialChecks(t, open) })
	t.Run("Updates", func(t *testing.T) { testUpdates(t, open) })
	t.Run("UpdateMissing", func(t *testing.T) { testUpdateMissing(t, open) })
	t.Run("DeleteLeaf", func(t *testing.T) { testDeleteLeaf(t, open) })
	t.Run("DeleteListingCascade", func(t *testing.T) { testDeleteListingCascade(t, open) })
	t.Run("DeleteProviderCascade", func(t *testing.T) { testDeleteProviderCascade(t, open) })
	t.Run("DeleteReceiverCascade", func(t *testing.T) { testDeleteReceiverCascade(t, open) })
	t.Run("DeleteMissing", func(t *testing.T) { testDeleteMissing(t, open) })
}

func seedProvider(t *testing.T, s repositories.Store, id entities.ProviderID, city string) {
	t.Helper()
	err := s.AddProvider(&entities.Provider{
		ID:      id,
		Name:    "Provider " + city,
		Type:    entities.Restaurant,
		Address: "1 Main St",
		City:    city,
		Contact: "555-0100",
	})
	require.NoError(t, err)
}

func seedReceiver(t *testing.T, s repositories.Store, id entities.ReceiverID) {
	t.Helper()
	err := s.AddReceiver(&entities.Receiver{
		ID:      id,
		Name:    "Receiver",
		Type:    entities.NGO,
		City:    "Springfield",
		Contact: "555-0200",
	})
	require.NoError(t, err)
}

func seedListing(t *testing.T, s repositories.Store, id entities.FoodID, provider entities.ProviderID) {
	t.Helper()
	err := s.AddFoodListing(&entities.FoodListing{
		ID:           id,
		Name:         "Bread",
		Quantity:     10,
		ExpiryDate:   time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC),
		ProviderID:   provider,
		ProviderType: entities.Restaurant,
		Location:     "Springfield",
		FoodType:     entities.Vegetarian,
		MealType:     entities.Breakfast,
	})
	require.NoError(t, err)
}

func seedClaim(t *testing.T, s repositories.Store, id entities.ClaimID, food entities.FoodID, receiver entities.ReceiverID) {
	t.Helper()
	err := s.AddClaim(&entities.Claim{
		ID:         id,
		FoodID:     food,
		ReceiverID: receiver,
		Status:     entities.Pending,
		Timestamp:  time.Date(2025, 3, 18, 9, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)
}

func testAddAndReadBack(t *testing.T, open Factory) {
	s := open(t)

	seedProvider(t, s, 1, "Springfield")
	seedReceiver(t, s, 1)
	seedListing(t, s, 1, 1)
	seedClaim(t, s, 1, 1, 1)

	providers, err := s.Providers()
	require.NoError(t, err)
	require.Len(t, providers, 1)
	assert.Equal(t, entities.ProviderID(1), providers[0].ID)
	assert.Equal(t, "Provider Springfield", providers[0].Name)
	assert.Equal(t, entities.Restaurant, providers[0].Type)

	receivers, err := s.Receivers()
	require.NoError(t, err)
	require.Len(t, receivers, 1)
	assert.Equal(t, entities.NGO, receivers[0].Type)

	listings, err := s.FoodListings()
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, entities.Quantity(10), listings[0].Quantity)
	assert.True(t, listings[0].ExpiryDate.Equal(time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)))

	claims, err := s.Claims()
	require.NoError(t, err)
	require.Len(t, claims, 1)
	assert.Equal(t, entities.Pending, claims[0].Status)
	assert.True(t, claims[0].Timestamp.Equal(time.Date(2025, 3, 18, 9, 30, 0, 0, time.UTC)))
}

func testOrderedByID(t *testing.T, open Factory) {
	s := open(t)

	seedProvider(t, s, 3, "Ogdenville")
	seedProvider(t, s, 1, "Springfield")
	seedProvider(t, s, 2, "Shelbyville")

	providers, err := s.Providers()
	require.NoError(t, err)
	require.Len(t, providers, 3)
	assert.Equal(t, entities.ProviderID(1), providers[0].ID)
	assert.Equal(t, entities.ProviderID(2), providers[1].ID)
	assert.Equal(t, entities.ProviderID(3), providers[2].ID)
}

func testDuplicateID(t *testing.T, open Factory) {
	s := open(t)

	seedProvider(t, s, 1, "Springfield")
	err := s.AddProvider(&entities.Provider{
		ID:   1,
		Name: "Again",
		Type: entities.Supermarket,
		City: "Shelbyville",
	})
	require.Error(t, err)
	var verr *entities.ValidationError
	assert.ErrorAs(t, err, &verr)

	// the original row survives
	providers, err := s.Providers()
	require.NoError(t, err)
	require.Len(t, providers, 1)
	assert.Equal(t, "Provider Springfield", providers[0].Name)
}

func testReferentialChecks(t *testing.T, open Factory) {
	s := open(t)

	err := s.AddFoodListing(&entities.FoodListing{
		ID:         1,
		Name:       "Soup",
		Quantity:   4,
		ExpiryDate: time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC),
		ProviderID: 99,
		Location:   "Springfield",
		FoodType:   entities.Vegan,
		MealType:   entities.Dinner,
	})
	require.Error(t, err)
	var rerr *entities.ReferentialError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, int64(99), rerr.MissingID)

	seedProvider(t, s, 1, "Springfield")
	seedListing(t, s, 1, 1)

	err = s.AddClaim(&entities.Claim{ID: 1, FoodID: 1, ReceiverID: 42, Status: entities.Pending, Timestamp: time.Now()})
	require.ErrorAs(t, err, &rerr)

	err = s.AddClaim(&entities.Claim{ID: 1, FoodID: 77, ReceiverID: 1, Status: entities.Pending, Timestamp: time.Now()})
	require.Error(t, err)

	claims, err := s.Claims()
	require.NoError(t, err)
	assert.Empty(t, claims)
}

func testUpdates(t *testing.T, open Factory) {
	s := open(t)

	seedProvider(t, s, 1, "Springfield")
	seedReceiver(t, s, 1)
	seedListing(t, s, 1, 1)
	seedClaim(t, s, 1, 1, 1)

	err := s.UpdateProvider(&entities.Provider{
		ID:      1,
		Name:    "Renamed",
		Type:    entities.CateringService,
		Address: "2 Oak Ave",
		City:    "Shelbyville",
		Contact: "555-0300",
	})
	require.NoError(t, err)
	providers, err := s.Providers()
	require.NoError(t, err)
	assert.Equal(t, "Renamed", providers[0].Name)
	assert.Equal(t, entities.CateringService, providers[0].Type)

	err = s.UpdateReceiver(&entities.Receiver{
		ID:      1,
		Name:    "Hope Shelter",
		Type:    entities.Charity,
		City:    "Springfield",
		Contact: "555-0400",
	})
	require.NoError(t, err)
	receivers, err := s.Receivers()
	require.NoError(t, err)
	assert.Equal(t, entities.Charity, receivers[0].Type)

	err = s.UpdateFoodListing(&entities.FoodListing{
		ID:           1,
		Name:         "Bread Rolls",
		Quantity:     25,
		ExpiryDate:   time.Date(2025, 3, 21, 0, 0, 0, 0, time.UTC),
		ProviderID:   1,
		ProviderType: entities.Restaurant,
		Location:     "Shelbyville",
		FoodType:     entities.Vegetarian,
		MealType:     entities.Lunch,
	})
	require.NoError(t, err)
	listings, err := s.FoodListings()
	require.NoError(t, err)
	assert.Equal(t, "Bread Rolls", listings[0].Name)
	assert.Equal(t, entities.Quantity(25), listings[0].Quantity)

	err = s.UpdateClaimStatus(1, entities.Completed)
	require.NoError(t, err)
	claims, err := s.Claims()
	require.NoError(t, err)
	assert.Equal(t, entities.Completed, claims[0].Status)
}

func testUpdateMissing(t *testing.T, open Factory) {
	s := open(t)

	err := s.UpdateProvider(&entities.Provider{ID: 5, Name: "Nobody", Type: entities.Restaurant, City: "Nowhere"})
	assert.True(t, errors.Is(err, repositories.ErrNotFound))

	err = s.UpdateClaimStatus(5, entities.Cancelled)
	assert.True(t, errors.Is(err, repositories.ErrNotFound))
}

func testDeleteLeaf(t *testing.T, open Factory) {
	s := open(t)

	seedProvider(t, s, 1, "Springfield")
	seedReceiver(t, s, 1)
	seedListing(t, s, 1, 1)
	seedClaim(t, s, 1, 1, 1)

	require.NoError(t, s.DeleteClaim(1))
	claims, err := s.Claims()
	require.NoError(t, err)
	assert.Empty(t, claims)

	// everything upstream survives
	listings, err := s.FoodListings()
	require.NoError(t, err)
	assert.Len(t, listings, 1)
}

func testDeleteListingCascade(t *testing.T, open Factory) {
	s := open(t)

	seedProvider(t, s, 1, "Springfield")
	seedReceiver(t, s, 1)
	seedListing(t, s, 1, 1)
	seedListing(t, s, 2, 1)
	seedClaim(t, s, 1, 1, 1)
	seedClaim(t, s, 2, 1, 1)
	seedClaim(t, s, 3, 2, 1)

	res, err := s.DeleteFoodListing(1)
	require.NoError(t, err)
	assert.Equal(t, 2, res.ClaimsRemoved)

	claims, err := s.Claims()
	require.NoError(t, err)
	require.Len(t, claims, 1)
	assert.Equal(t, entities.ClaimID(3), claims[0].ID)
}

func testDeleteProviderCascade(t *testing.T, open Factory) {
	s := open(t)

	seedProvider(t, s, 1, "Springfield")
	seedProvider(t, s, 2, "Shelbyville")
	seedReceiver(t, s, 1)
	seedListing(t, s, 1, 1)
	seedListing(t, s, 2, 1)
	seedListing(t, s, 3, 2)
	seedClaim(t, s, 1, 1, 1)
	seedClaim(t, s, 2, 3, 1)

	res, err := s.DeleteProvider(1)
	require.NoError(t, err)
	assert.Equal(t, 2, res.ListingsRemoved)
	assert.Equal(t, 1, res.ClaimsRemoved)

	listings, err := s.FoodListings()
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, entities.FoodID(3), listings[0].ID)

	claims, err := s.Claims()
	require.NoError(t, err)
	require.Len(t, claims, 1)
	assert.Equal(t, entities.ClaimID(2), claims[0].ID)
}

func testDeleteReceiverCascade(t *testing.T, open Factory) {
	s := open(t)

	seedProvider(t, s, 1, "Springfield")
	seedReceiver(t, s, 1)
	seedReceiver(t, s, 2)
	seedListing(t, s, 1, 1)
	seedClaim(t, s, 1, 1, 1)
	seedClaim(t, s, 2, 1, 2)

	res, err := s.DeleteReceiver(1)
	require.NoError(t, err)
	assert.Equal(t, 1, res.ClaimsRemoved)

	claims, err := s.Claims()
	require.NoError(t, err)
	require.Len(t, claims, 1)
	assert.Equal(t, entities.ClaimID(2), claims[0].ID)

	// listings are untouched by receiver removal
	listings, err := s.FoodListings()
	require.NoError(t, err)
	assert.Len(t, listings, 1)
}

func testDeleteMissing(t *testing.T, open Factory) {
	s := open(t)

	_, err := s.DeleteProvider(9)
	assert.True(t, errors.Is(err, repositories.ErrNotFound))

	_, err = s.DeleteReceiver(9)
	assert.True(t, errors.Is(err, repositories.ErrNotFound))

	_, err = s.DeleteFoodListing(9)
	assert.True(t, errors.Is(err, repositories.ErrNotFound))

	err = s.DeleteClaim(9)
	assert.True(t, errors.Is(err, repositories.ErrNotFound))
}
