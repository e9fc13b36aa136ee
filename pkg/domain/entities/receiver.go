package entities

import (
	"fmt"
	"strings"
)

// ReceiverID uniquely identifies a food receiver
type ReceiverID int64

// ReceiverType classifies the kind of organization claiming food
type ReceiverType int

const (
	NGO ReceiverType = iota
	Charity
	Individual
	Shelter
)

// String returns the literal used by upstream exports
func (r ReceiverType) String() string {
	switch r {
	case NGO:
		return "NGO"
	case Charity:
		return "Charity"
	case Individual:
		return "Individual"
	case Shelter:
		return "Shelter"
	default:
		return "Unknown"
	}
}

func (r ReceiverType) valid() bool {
	return r >= NGO && r <= Shelter
}

// ParseReceiverType parses an upstream receiver type literal
func ParseReceiverType(s string) (ReceiverType, error) {
	switch normalize(s) {
	case "ngo":
		return NGO, nil
	case "charity":
		return Charity, nil
	case "individual":
		return Individual, nil
	case "shelter":
		return Shelter, nil
	default:
		return NGO, fmt.Errorf("invalid receiver type: %q (expected: NGO, Charity, Individual, or Shelter)", s)
	}
}

// Receiver represents an organization or individual that claims food
type Receiver struct {
	ID      ReceiverID
	Name    string
	Type    ReceiverType
	City    string
	Contact string
}

// Validate checks field presence, enum membership, and id positivity.
// It returns a *ValidationError on the first violation found.
func (r *Receiver) Validate() error {
	if r.ID <= 0 {
		return &ValidationError{Field: "Receiver_ID", Reason: "id must be positive"}
	}
	if strings.TrimSpace(r.Name) == "" {
		return &ValidationError{Field: "Name", Reason: "name cannot be empty"}
	}
	if !r.Type.valid() {
		return &ValidationError{Field: "Type", Reason: "unknown receiver type"}
	}
	if strings.TrimSpace(r.City) == "" {
		return &ValidationError{Field: "City", Reason: "city cannot be empty"}
	}
	return nil
}
