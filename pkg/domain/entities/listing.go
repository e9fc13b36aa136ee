package entities

import (
	"fmt"
	"strings"
	"time"
)

// FoodID uniquely identifies a food listing
type FoodID int64

// FoodType classifies the dietary category of a listing
type FoodType int

const (
	Vegetarian FoodType = iota
	NonVegetarian
	Vegan
)

// String returns the literal used by upstream exports
func (f FoodType) String() string {
	switch f {
	case Vegetarian:
		return "Vegetarian"
	case NonVegetarian:
		return "Non-Vegetarian"
	case Vegan:
		return "Vegan"
	default:
		return "Unknown"
	}
}

func (f FoodType) valid() bool {
	return f >= Vegetarian && f <= Vegan
}

// ParseFoodType parses an upstream food type literal
func ParseFoodType(s string) (FoodType, error) {
	switch normalize(s) {
	case "vegetarian":
		return Vegetarian, nil
	case "nonvegetarian":
		return NonVegetarian, nil
	case "vegan":
		return Vegan, nil
	default:
		return Vegetarian, fmt.Errorf("invalid food type: %q (expected: Vegetarian, Non-Vegetarian, or Vegan)", s)
	}
}

// MealType classifies which meal a listing is suited for
type MealType int

const (
	Breakfast MealType = iota
	Lunch
	Dinner
	Snacks
)

// String returns the literal used by upstream exports
func (m MealType) String() string {
	switch m {
	case Breakfast:
		return "Breakfast"
	case Lunch:
		return "Lunch"
	case Dinner:
		return "Dinner"
	case Snacks:
		return "Snacks"
	default:
		return "Unknown"
	}
}

func (m MealType) valid() bool {
	return m >= Breakfast && m <= Snacks
}

// ParseMealType parses an upstream meal type literal
func ParseMealType(s string) (MealType, error) {
	switch normalize(s) {
	case "breakfast":
		return Breakfast, nil
	case "lunch":
		return Lunch, nil
	case "dinner":
		return Dinner, nil
	case "snacks":
		return Snacks, nil
	default:
		return Breakfast, fmt.Errorf("invalid meal type: %q (expected: Breakfast, Lunch, Dinner, or Snacks)", s)
	}
}

// FoodListing represents one donation batch offered by a provider.
// ProviderType is a denormalized copy of the owning provider's type
// taken at listing time; it is kept verbatim from the upstream export.
type FoodListing struct {
	ID           FoodID
	Name         string
	Quantity     Quantity
	ExpiryDate   time.Time
	ProviderID   ProviderID
	ProviderType ProviderType
	Location     string
	FoodType     FoodType
	MealType     MealType
}

// Validate checks field presence, enum membership, non-negative
// quantity, and id positivity. It returns a *ValidationError on the
// first violation found.
func (l *FoodListing) Validate() error {
	if l.ID <= 0 {
		return &ValidationError{Field: "Food_ID", Reason: "id must be positive"}
	}
	if strings.TrimSpace(l.Name) == "" {
		return &ValidationError{Field: "Food_Name", Reason: "name cannot be empty"}
	}
	if l.Quantity < 0 {
		return &ValidationError{Field: "Quantity", Reason: "quantity cannot be negative"}
	}
	if l.ExpiryDate.IsZero() {
		return &ValidationError{Field: "Expiry_Date", Reason: "expiry date is required"}
	}
	if l.ProviderID <= 0 {
		return &ValidationError{Field: "Provider_ID", Reason: "id must be positive"}
	}
	if !l.ProviderType.valid() {
		return &ValidationError{Field: "Provider_Type", Reason: "unknown provider type"}
	}
	if strings.TrimSpace(l.Location) == "" {
		return &ValidationError{Field: "Location", Reason: "location cannot be empty"}
	}
	if !l.FoodType.valid() {
		return &ValidationError{Field: "Food_Type", Reason: "unknown food type"}
	}
	if !l.MealType.valid() {
		return &ValidationError{Field: "Meal_Type", Reason: "unknown meal type"}
	}
	return nil
}
