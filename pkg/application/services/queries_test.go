package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chetanu/foodlink/pkg/domain/entities"
	"github.com/chetanu/foodlink/pkg/domain/repositories"
	"github.com/chetanu/foodlink/pkg/infrastructure/repositories/memory"
)

// fixtureNow sits mid-day so day truncation matters for the expiry
// window tests.
var fixtureNow = time.Date(2025, 3, 17, 12, 0, 0, 0, time.UTC)

func newFixtureStore(t *testing.T) repositories.Store {
	t.Helper()
	s := memory.NewStore()
	t.Cleanup(func() { _ = s.Close() })

	providers := []*entities.Provider{
		{ID: 1, Name: "Harvest Table", Type: entities.Restaurant, Address: "1 Elm St", City: "Springfield", Contact: "555-0101"},
		{ID: 2, Name: "Fresh Basket", Type: entities.GroceryStore, Address: "2 Oak Ave", City: "Shelbyville", Contact: "555-0102"},
		{ID: 3, Name: "Night Kitchen", Type: entities.CateringService, Address: "3 Pine Rd", City: "Springfield", Contact: "555-0103"},
		{ID: 4, Name: "Corner Mart", Type: entities.Supermarket, Address: "4 Birch Ln", City: "Ogdenville", Contact: "555-0104"},
	}
	for _, p := range providers {
		require.NoError(t, s.AddProvider(p))
	}

	receivers := []*entities.Receiver{
		{ID: 1, Name: "Hope Shelter", Type: entities.Shelter, City: "Springfield", Contact: "555-0201"},
		{ID: 2, Name: "City Food Bank", Type: entities.NGO, City: "Springfield", Contact: "555-0202"},
		{ID: 3, Name: "Kind Hearts", Type: entities.Charity, City: "Shelbyville", Contact: "555-0203"},
		{ID: 4, Name: "Alex Rivera", Type: entities.Individual, City: "Ogdenville", Contact: "555-0204"},
	}
	for _, r := range receivers {
		require.NoError(t, s.AddReceiver(r))
	}

	listings := []*entities.FoodListing{
		{ID: 1, Name: "Vegetable Curry", Quantity: 20, ExpiryDate: date(2025, 3, 18), ProviderID: 1, ProviderType: entities.Restaurant, Location: "North", FoodType: entities.Vegan, MealType: entities.Dinner},
		{ID: 2, Name: "Day-Old Bread", Quantity: 30, ExpiryDate: date(2025, 3, 25), ProviderID: 2, ProviderType: entities.GroceryStore, Location: "South", FoodType: entities.Vegetarian, MealType: entities.Breakfast},
		{ID: 3, Name: "Chicken Biryani", Quantity: 15, ExpiryDate: date(2025, 3, 17), ProviderID: 1, ProviderType: entities.Restaurant, Location: "North", FoodType: entities.NonVegetarian, MealType: entities.Lunch},
		{ID: 4, Name: "Fruit Crates", Quantity: 40, ExpiryDate: date(2025, 3, 20), ProviderID: 3, ProviderType: entities.CateringService, Location: "South", FoodType: entities.Vegan, MealType: entities.Snacks},
		{ID: 5, Name: "Paneer Wraps", Quantity: 10, ExpiryDate: date(2025, 3, 16), ProviderID: 3, ProviderType: entities.CateringService, Location: "North", FoodType: entities.Vegetarian, MealType: entities.Lunch},
	}
	for _, l := range listings {
		require.NoError(t, s.AddFoodListing(l))
	}

	claims := []*entities.Claim{
		{ID: 1, FoodID: 1, ReceiverID: 1, Status: entities.Completed, Timestamp: time.Date(2025, 3, 16, 18, 0, 0, 0, time.UTC)},
		{ID: 2, FoodID: 1, ReceiverID: 2, Status: entities.Pending, Timestamp: time.Date(2025, 3, 16, 19, 0, 0, 0, time.UTC)},
		{ID: 3, FoodID: 3, ReceiverID: 1, Status: entities.Completed, Timestamp: time.Date(2025, 3, 18, 6, 0, 0, 0, time.UTC)},
		{ID: 4, FoodID: 2, ReceiverID: 3, Status: entities.Cancelled, Timestamp: time.Date(2025, 2, 28, 10, 0, 0, 0, time.UTC)},
		{ID: 5, FoodID: 4, ReceiverID: 2, Status: entities.Completed, Timestamp: time.Date(2025, 3, 19, 8, 0, 0, 0, time.UTC)},
		{ID: 6, FoodID: 2, ReceiverID: 1, Status: entities.Pending, Timestamp: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)},
	}
	for _, c := range claims {
		require.NoError(t, s.AddClaim(c))
	}

	return s
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTableCounts(t *testing.T) {
	s := newFixtureStore(t)

	rows, err := TableCounts(s)
	require.NoError(t, err)
	assert.Equal(t, []TableCount{
		{Table: "providers", Count: 4},
		{Table: "receivers", Count: 4},
		{Table: "food_listings", Count: 5},
		{Table: "claims", Count: 6},
	}, rows)
}

func TestReferentialViolationsAllZero(t *testing.T) {
	s := newFixtureStore(t)

	rows, err := ReferentialViolations(s)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for _, row := range rows {
		assert.Zero(t, row.Count, row.Label)
	}
}

func TestProvidersPerCity(t *testing.T) {
	s := newFixtureStore(t)

	rows, err := ProvidersPerCity(s)
	require.NoError(t, err)
	assert.Equal(t, []LabelCount{
		{Label: "Ogdenville", Count: 1},
		{Label: "Shelbyville", Count: 1},
		{Label: "Springfield", Count: 2},
	}, rows)
}

func TestProviderTypeCountsTieBreak(t *testing.T) {
	s := newFixtureStore(t)

	rows, err := ProviderTypeCounts(s)
	require.NoError(t, err)
	// all counts equal, so label ascending decides the order
	assert.Equal(t, []LabelCount{
		{Label: "Catering Service", Count: 1},
		{Label: "Grocery Store", Count: 1},
		{Label: "Restaurant", Count: 1},
		{Label: "Supermarket", Count: 1},
	}, rows)
}

func TestTopReceiversByClaims(t *testing.T) {
	s := newFixtureStore(t)

	rows, err := TopReceiversByClaims(s, 10)
	require.NoError(t, err)
	assert.Equal(t, []ReceiverClaims{
		{Name: "Hope Shelter", City: "Springfield", Claims: 3},
		{Name: "City Food Bank", City: "Springfield", Claims: 2},
		{Name: "Kind Hearts", City: "Shelbyville", Claims: 1},
	}, rows)

	capped, err := TopReceiversByClaims(s, 2)
	require.NoError(t, err)
	require.Len(t, capped, 2)
	assert.Equal(t, "Hope Shelter", capped[0].Name)
}

func TestTopLocationByListings(t *testing.T) {
	s := newFixtureStore(t)

	rows, err := TopLocationByListings(s)
	require.NoError(t, err)
	assert.Equal(t, []LabelCount{{Label: "North", Count: 3}}, rows)
}

func TestProvidersInCity(t *testing.T) {
	s := newFixtureStore(t)

	rows, err := ProvidersInCity(s, "Springfield")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, entities.ProviderID(1), rows[0].ID)
	assert.Equal(t, entities.ProviderID(3), rows[1].ID)

	none, err := ProvidersInCity(s, "Atlantis")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestTotalFoodQuantity(t *testing.T) {
	s := newFixtureStore(t)

	total, err := TotalFoodQuantity(s)
	require.NoError(t, err)
	assert.Equal(t, entities.Quantity(115), total)
}

func TestFoodTypeCounts(t *testing.T) {
	s := newFixtureStore(t)

	rows, err := FoodTypeCounts(s)
	require.NoError(t, err)
	assert.Equal(t, []LabelCount{
		{Label: "Vegan", Count: 2},
		{Label: "Vegetarian", Count: 2},
		{Label: "Non-Vegetarian", Count: 1},
	}, rows)
}

func TestExpiringWithinWindow(t *testing.T) {
	s := newFixtureStore(t)

	rows, err := ExpiringWithin(s, 3, fixtureNow)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	// expiry ascending: today's listing first, boundary day included,
	// yesterday's and next week's excluded
	assert.Equal(t, entities.FoodID(3), rows[0].ID)
	assert.Equal(t, entities.FoodID(1), rows[1].ID)
	assert.Equal(t, entities.FoodID(4), rows[2].ID)

	// one day past the boundary falls out of the window
	narrow, err := ExpiringWithin(s, 2, fixtureNow)
	require.NoError(t, err)
	require.Len(t, narrow, 2)
	assert.Equal(t, entities.FoodID(3), narrow[0].ID)
	assert.Equal(t, entities.FoodID(1), narrow[1].ID)
}

func TestExpiringWithinExcludesExpired(t *testing.T) {
	s := newFixtureStore(t)

	rows, err := ExpiringWithin(s, 30, fixtureNow)
	require.NoError(t, err)
	for _, l := range rows {
		assert.NotEqual(t, entities.FoodID(5), l.ID, "already-expired listing must not appear")
	}
	assert.Len(t, rows, 4)
}

func TestClaimsPerFood(t *testing.T) {
	s := newFixtureStore(t)

	rows, err := ClaimsPerFood(s)
	require.NoError(t, err)
	assert.Equal(t, []LabelCount{
		{Label: "Day-Old Bread", Count: 2},
		{Label: "Vegetable Curry", Count: 2},
		{Label: "Chicken Biryani", Count: 1},
		{Label: "Fruit Crates", Count: 1},
	}, rows)
}

func TestTopProviderByCompletedClaims(t *testing.T) {
	s := newFixtureStore(t)

	rows, err := TopProviderByCompletedClaims(s)
	require.NoError(t, err)
	assert.Equal(t, []LabelCount{{Label: "Harvest Table", Count: 2}}, rows)
}

func TestClaimStatusCounts(t *testing.T) {
	s := newFixtureStore(t)

	rows, err := ClaimStatusCounts(s)
	require.NoError(t, err)
	assert.Equal(t, []LabelCount{
		{Label: "Completed", Count: 3},
		{Label: "Pending", Count: 2},
		{Label: "Cancelled", Count: 1},
	}, rows)
}

func TestTopReceiversByAvgQuantity(t *testing.T) {
	s := newFixtureStore(t)

	rows, err := TopReceiversByAvgQuantity(s, 10)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	// two receivers average exactly 30, name ascending breaks the tie
	assert.Equal(t, "City Food Bank", rows[0].Name)
	assert.InDelta(t, 30.0, rows[0].AvgQuantity, 1e-9)
	assert.Equal(t, "Kind Hearts", rows[1].Name)
	assert.InDelta(t, 30.0, rows[1].AvgQuantity, 1e-9)
	assert.Equal(t, "Hope Shelter", rows[2].Name)
	assert.InDelta(t, 65.0/3.0, rows[2].AvgQuantity, 1e-9)
}

func TestClaimsPerMealType(t *testing.T) {
	s := newFixtureStore(t)

	rows, err := ClaimsPerMealType(s)
	require.NoError(t, err)
	assert.Equal(t, []LabelCount{
		{Label: "Breakfast", Count: 2},
		{Label: "Dinner", Count: 2},
		{Label: "Lunch", Count: 1},
		{Label: "Snacks", Count: 1},
	}, rows)
}

func TestTopProvidersByQuantity(t *testing.T) {
	s := newFixtureStore(t)

	rows, err := TopProvidersByQuantity(s, 10)
	require.NoError(t, err)
	assert.Equal(t, []ProviderQuantity{
		{Name: "Night Kitchen", Total: 50},
		{Name: "Harvest Table", Total: 35},
		{Name: "Fresh Basket", Total: 30},
	}, rows)
}

func TestClaimsPerMonthAscending(t *testing.T) {
	s := newFixtureStore(t)

	rows, err := ClaimsPerMonth(s)
	require.NoError(t, err)
	assert.Equal(t, []LabelCount{
		{Label: "2025-02", Count: 1},
		{Label: "2025-03", Count: 5},
	}, rows)
}

func TestCompletedClaimsByLocation(t *testing.T) {
	s := newFixtureStore(t)

	rows, err := CompletedClaimsByLocation(s)
	require.NoError(t, err)
	assert.Equal(t, []LabelCount{
		{Label: "North", Count: 2},
		{Label: "South", Count: 1},
	}, rows)
}

func TestCompletedClaimLeadHours(t *testing.T) {
	s := newFixtureStore(t)

	rows, err := CompletedClaimLeadHours(s)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, entities.ClaimID(1), rows[0].ClaimID)
	assert.InDelta(t, 30.0, rows[0].Hours, 1e-9)

	// claimed after expiry stays negative
	assert.Equal(t, entities.ClaimID(3), rows[1].ClaimID)
	assert.InDelta(t, -30.0, rows[1].Hours, 1e-9)

	assert.Equal(t, entities.ClaimID(5), rows[2].ClaimID)
	assert.InDelta(t, 16.0, rows[2].Hours, 1e-9)
}

func TestUnclaimedProviders(t *testing.T) {
	s := newFixtureStore(t)

	rows, err := UnclaimedProviders(s)
	require.NoError(t, err)
	assert.Equal(t, []UnclaimedProvider{
		{Name: "Night Kitchen", UnclaimedListings: 1},
	}, rows)
}

func TestQueriesAreReadOnly(t *testing.T) {
	s := newFixtureStore(t)

	before, err := TableCounts(s)
	require.NoError(t, err)

	_, err = TopReceiversByClaims(s, 10)
	require.NoError(t, err)
	_, err = ExpiringWithin(s, 7, fixtureNow)
	require.NoError(t, err)
	_, err = UnclaimedProviders(s)
	require.NoError(t, err)

	after, err := TableCounts(s)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestQueriesOnEmptyStore(t *testing.T) {
	s := memory.NewStore()
	defer s.Close()

	counts, err := TableCounts(s)
	require.NoError(t, err)
	for _, row := range counts {
		assert.Zero(t, row.Count)
	}

	total, err := TotalFoodQuantity(s)
	require.NoError(t, err)
	assert.Zero(t, total)

	top, err := TopReceiversByClaims(s, 10)
	require.NoError(t, err)
	assert.Empty(t, top)

	avg, err := TopReceiversByAvgQuantity(s, 10)
	require.NoError(t, err)
	assert.Empty(t, avg)
}
