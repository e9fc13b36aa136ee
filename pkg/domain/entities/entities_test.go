package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProviderType(t *testing.T) {
	cases := []struct {
		in   string
		want ProviderType
	}{
		{"Restaurant", Restaurant},
		{"restaurant", Restaurant},
		{"Grocery Store", GroceryStore},
		{"grocery store", GroceryStore},
		{"GroceryStore", GroceryStore},
		{"Supermarket", Supermarket},
		{"Catering Service", CateringService},
		{"catering-service", CateringService},
		{" Restaurant ", Restaurant},
	}
	for _, tc := range cases {
		got, err := ParseProviderType(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}

	_, err := ParseProviderType("Food Truck")
	assert.Error(t, err)
}

func TestParseReceiverType(t *testing.T) {
	for in, want := range map[string]ReceiverType{
		"NGO":        NGO,
		"ngo":        NGO,
		"Charity":    Charity,
		"Individual": Individual,
		"Shelter":    Shelter,
	} {
		got, err := ParseReceiverType(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, want, got, "input %q", in)
	}

	_, err := ParseReceiverType("Collective")
	assert.Error(t, err)
}

func TestParseFoodType(t *testing.T) {
	for in, want := range map[string]FoodType{
		"Vegetarian":     Vegetarian,
		"Non-Vegetarian": NonVegetarian,
		"non vegetarian": NonVegetarian,
		"NonVegetarian":  NonVegetarian,
		"Vegan":          Vegan,
	} {
		got, err := ParseFoodType(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, want, got, "input %q", in)
	}

	_, err := ParseFoodType("Raw")
	assert.Error(t, err)
}

func TestParseMealType(t *testing.T) {
	for in, want := range map[string]MealType{
		"Breakfast": Breakfast,
		"Lunch":     Lunch,
		"Dinner":    Dinner,
		"Snacks":    Snacks,
		"snacks":    Snacks,
	} {
		got, err := ParseMealType(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, want, got, "input %q", in)
	}

	_, err := ParseMealType("Brunch")
	assert.Error(t, err)
}

func TestParseClaimStatus(t *testing.T) {
	for in, want := range map[string]ClaimStatus{
		"Pending":   Pending,
		"Completed": Completed,
		"Cancelled": Cancelled,
		"cancelled": Cancelled,
	} {
		got, err := ParseClaimStatus(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, want, got, "input %q", in)
	}

	_, err := ParseClaimStatus("Expired")
	assert.Error(t, err)
}

func TestEnumStringRoundTrip(t *testing.T) {
	for _, pt := range []ProviderType{Restaurant, GroceryStore, Supermarket, CateringService} {
		got, err := ParseProviderType(pt.String())
		require.NoError(t, err)
		assert.Equal(t, pt, got)
	}
	for _, ft := range []FoodType{Vegetarian, NonVegetarian, Vegan} {
		got, err := ParseFoodType(ft.String())
		require.NoError(t, err)
		assert.Equal(t, ft, got)
	}
	assert.Equal(t, "Non-Vegetarian", NonVegetarian.String())
}

func TestProviderValidate(t *testing.T) {
	valid := Provider{ID: 1, Name: "Harvest Table", Type: Restaurant, City: "Springfield"}
	assert.NoError(t, valid.Validate())

	var verr *ValidationError

	missingID := valid
	missingID.ID = 0
	err := missingID.Validate()
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Provider_ID", verr.Field)

	noName := valid
	noName.Name = "  "
	err = noName.Validate()
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Name", verr.Field)

	badType := valid
	badType.Type = ProviderType(99)
	assert.Error(t, badType.Validate())
}

func TestFoodListingValidate(t *testing.T) {
	valid := FoodListing{
		ID:         1,
		Name:       "Bread",
		Quantity:   10,
		ExpiryDate: time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC),
		ProviderID: 1,
		Location:   "Springfield",
		FoodType:   Vegetarian,
		MealType:   Breakfast,
	}
	assert.NoError(t, valid.Validate())

	negative := valid
	negative.Quantity = -1
	var verr *ValidationError
	err := negative.Validate()
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Quantity", verr.Field)

	zero := valid
	zero.Quantity = 0
	assert.NoError(t, zero.Validate())
}

func TestClaimValidate(t *testing.T) {
	valid := Claim{ID: 1, FoodID: 1, ReceiverID: 1, Status: Pending, Timestamp: time.Now()}
	assert.NoError(t, valid.Validate())

	badStatus := valid
	badStatus.Status = ClaimStatus(7)
	assert.Error(t, badStatus.Validate())
}

func TestErrorMessages(t *testing.T) {
	verr := &ValidationError{Field: "Name", Reason: "name cannot be empty"}
	assert.Equal(t, "validation failed on Name: name cannot be empty", verr.Error())

	rerr := &ReferentialError{Field: "Provider_ID", MissingID: 42}
	assert.Equal(t, "Provider_ID references missing id 42", rerr.Error())

	ferr := &FormatError{Field: "Expiry_Date", Value: "not-a-date", Expected: "M/D/YYYY"}
	assert.Equal(t, `cannot parse Expiry_Date value "not-a-date" (expected M/D/YYYY)`, ferr.Error())
}
