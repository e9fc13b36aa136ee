package entities

// Kind identifies one of the four entity tables
type Kind int

const (
	KindProvider Kind = iota
	KindReceiver
	KindFoodListing
	KindClaim
)

// String returns the upstream table name for the kind
func (k Kind) String() string {
	switch k {
	case KindProvider:
		return "providers"
	case KindReceiver:
		return "receivers"
	case KindFoodListing:
		return "food_listings"
	case KindClaim:
		return "claims"
	default:
		return "Unknown"
	}
}
