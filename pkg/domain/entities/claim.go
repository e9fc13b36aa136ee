package entities

import (
	"fmt"
	"time"
)

// ClaimID uniquely identifies a claim
type ClaimID int64

// ClaimStatus represents the lifecycle state of a claim
type ClaimStatus int

const (
	Pending ClaimStatus = iota
	Completed
	Cancelled
)

// String returns the literal used by upstream exports
func (c ClaimStatus) String() string {
	switch c {
	case Pending:
		return "Pending"
	case Completed:
		return "Completed"
	case Cancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

func (c ClaimStatus) valid() bool {
	return c >= Pending && c <= Cancelled
}

// ParseClaimStatus parses an upstream claim status literal
func ParseClaimStatus(s string) (ClaimStatus, error) {
	switch normalize(s) {
	case "pending":
		return Pending, nil
	case "completed":
		return Completed, nil
	case "cancelled":
		return Cancelled, nil
	default:
		return Pending, fmt.Errorf("invalid claim status: %q (expected: Pending, Completed, or Cancelled)", s)
	}
}

// Claim represents a receiver's request against a specific food listing
type Claim struct {
	ID         ClaimID
	FoodID     FoodID
	ReceiverID ReceiverID
	Status     ClaimStatus
	Timestamp  time.Time
}

// Validate checks id positivity, enum membership, and timestamp
// presence. It returns a *ValidationError on the first violation found.
func (c *Claim) Validate() error {
	if c.ID <= 0 {
		return &ValidationError{Field: "Claim_ID", Reason: "id must be positive"}
	}
	if c.FoodID <= 0 {
		return &ValidationError{Field: "Food_ID", Reason: "id must be positive"}
	}
	if c.ReceiverID <= 0 {
		return &ValidationError{Field: "Receiver_ID", Reason: "id must be positive"}
	}
	if !c.Status.valid() {
		return &ValidationError{Field: "Status", Reason: "unknown claim status"}
	}
	if c.Timestamp.IsZero() {
		return &ValidationError{Field: "Timestamp", Reason: "timestamp is required"}
	}
	return nil
}
