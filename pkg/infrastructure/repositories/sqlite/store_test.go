package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chetanu/foodlink/pkg/domain/entities"
	"github.com/chetanu/foodlink/pkg/domain/repositories"
	"github.com/chetanu/foodlink/pkg/infrastructure/repositories/storetest"
)

func openTemp(t *testing.T) repositories.Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "foodlink.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) repositories.Store { return openTemp(t) })
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foodlink.db")

	s, err := New(path)
	require.NoError(t, err)
	require.NoError(t, s.AddProvider(&entities.Provider{
		ID:   1,
		Name: "Night Kitchen",
		Type: entities.CateringService,
		City: "Ogdenville",
	}))
	require.NoError(t, s.AddFoodListing(&entities.FoodListing{
		ID:           1,
		Name:         "Dal",
		Quantity:     12,
		ExpiryDate:   time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC),
		ProviderID:   1,
		ProviderType: entities.CateringService,
		Location:     "Ogdenville",
		FoodType:     entities.Vegan,
		MealType:     entities.Dinner,
	}))
	require.NoError(t, s.Close())

	s2, err := New(path)
	require.NoError(t, err)
	defer s2.Close()

	listings, err := s2.FoodListings()
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "Dal", listings[0].Name)
	assert.Equal(t, entities.Vegan, listings[0].FoodType)
	assert.True(t, listings[0].ExpiryDate.Equal(time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC)))
}

func TestInMemoryDatabase(t *testing.T) {
	s, err := New(":memory:")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.AddProvider(&entities.Provider{
		ID:   1,
		Name: "Corner Deli",
		Type: entities.Restaurant,
		City: "Springfield",
	}))
	providers, err := s.Providers()
	require.NoError(t, err)
	assert.Len(t, providers, 1)
}
