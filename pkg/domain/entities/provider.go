package entities

import (
	"fmt"
	"strings"
)

// ProviderID uniquely identifies a food provider
type ProviderID int64

// Quantity represents an integer count of food units
type Quantity int64

// ProviderType classifies the kind of business donating surplus food
type ProviderType int

const (
	Restaurant ProviderType = iota
	GroceryStore
	Supermarket
	CateringService
)

// String returns the literal used by upstream exports
func (p ProviderType) String() string {
	switch p {
	case Restaurant:
		return "Restaurant"
	case GroceryStore:
		return "Grocery Store"
	case Supermarket:
		return "Supermarket"
	case CateringService:
		return "Catering Service"
	default:
		return "Unknown"
	}
}

func (p ProviderType) valid() bool {
	return p >= Restaurant && p <= CateringService
}

// ParseProviderType parses an upstream provider type literal. Spacing
// and case are ignored, so both "Grocery Store" and "grocerystore" parse.
func ParseProviderType(s string) (ProviderType, error) {
	switch normalize(s) {
	case "restaurant":
		return Restaurant, nil
	case "grocerystore":
		return GroceryStore, nil
	case "supermarket":
		return Supermarket, nil
	case "cateringservice":
		return CateringService, nil
	default:
		return Restaurant, fmt.Errorf("invalid provider type: %q (expected: Restaurant, Grocery Store, Supermarket, or Catering Service)", s)
	}
}

// normalize lowercases a literal and strips spaces and hyphens so the
// enum parsers accept the spelling variants seen in upstream exports.
func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "")
	return strings.ReplaceAll(s, "-", "")
}

// Provider represents an entity donating surplus food
type Provider struct {
	ID      ProviderID
	Name    string
	Type    ProviderType
	Address string
	City    string
	Contact string
}

// Validate checks field presence, enum membership, and id positivity.
// It returns a *ValidationError on the first violation found.
func (p *Provider) Validate() error {
	if p.ID <= 0 {
		return &ValidationError{Field: "Provider_ID", Reason: "id must be positive"}
	}
	if strings.TrimSpace(p.Name) == "" {
		return &ValidationError{Field: "Name", Reason: "name cannot be empty"}
	}
	if !p.Type.valid() {
		return &ValidationError{Field: "Type", Reason: "unknown provider type"}
	}
	if strings.TrimSpace(p.City) == "" {
		return &ValidationError{Field: "City", Reason: "city cannot be empty"}
	}
	return nil
}
