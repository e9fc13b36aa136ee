package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/chetanu/foodlink/pkg/domain/entities"
)

// Column counts of the upstream export layout, per entity kind
const (
	providerColumns = 6
	receiverColumns = 5
	listingColumns  = 9
	claimColumns    = 5
)

// Date layouts accepted from upstream exports. The month/day/year
// forms are what the source system emits; the ISO forms show up in
// hand-edited files.
var (
	dateLayouts      = []string{"1/2/2006", "2006-01-02"}
	timestampLayouts = []string{"1/2/2006 15:04", "2006-01-02 15:04:05"}
)

// ReadRows reads every data row from r, skipping the header row.
// Rows keep their raw string fields; parsing happens per entity kind.
func ReadRows(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // column counts are checked per kind

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[1:], nil
}

// ParseRecord parses one raw row into the entity for kind
func ParseRecord(kind entities.Kind, record []string) (any, error) {
	switch kind {
	case entities.KindProvider:
		return ParseProvider(record)
	case entities.KindReceiver:
		return ParseReceiver(record)
	case entities.KindFoodListing:
		return ParseFoodListing(record)
	case entities.KindClaim:
		return ParseClaim(record)
	default:
		return nil, fmt.Errorf("unknown entity kind %d", kind)
	}
}

// ParseProvider parses a providers row:
// Provider_ID, Name, Type, Address, City, Contact
func ParseProvider(record []string) (*entities.Provider, error) {
	if err := checkColumns(record, providerColumns); err != nil {
		return nil, err
	}
	id, err := parseID("Provider_ID", record[0])
	if err != nil {
		return nil, err
	}
	providerType, err := entities.ParseProviderType(record[2])
	if err != nil {
		return nil, &entities.ValidationError{Field: "Type", Reason: err.Error()}
	}
	return &entities.Provider{
		ID:      entities.ProviderID(id),
		Name:    record[1],
		Type:    providerType,
		Address: record[3],
		City:    record[4],
		Contact: record[5],
	}, nil
}

// ParseReceiver parses a receivers row:
// Receiver_ID, Name, Type, City, Contact
func ParseReceiver(record []string) (*entities.Receiver, error) {
	if err := checkColumns(record, receiverColumns); err != nil {
		return nil, err
	}
	id, err := parseID("Receiver_ID", record[0])
	if err != nil {
		return nil, err
	}
	receiverType, err := entities.ParseReceiverType(record[2])
	if err != nil {
		return nil, &entities.ValidationError{Field: "Type", Reason: err.Error()}
	}
	return &entities.Receiver{
		ID:      entities.ReceiverID(id),
		Name:    record[1],
		Type:    receiverType,
		City:    record[3],
		Contact: record[4],
	}, nil
}

// ParseFoodListing parses a food_listings row:
// Food_ID, Food_Name, Quantity, Expiry_Date, Provider_ID, Provider_Type,
// Location, Food_Type, Meal_Type
func ParseFoodListing(record []string) (*entities.FoodListing, error) {
	if err := checkColumns(record, listingColumns); err != nil {
		return nil, err
	}
	id, err := parseID("Food_ID", record[0])
	if err != nil {
		return nil, err
	}
	quantity, err := strconv.ParseInt(record[2], 10, 64)
	if err != nil {
		return nil, &entities.ValidationError{Field: "Quantity", Reason: fmt.Sprintf("invalid integer: %q", record[2])}
	}
	expiry, err := parseDate("Expiry_Date", record[3])
	if err != nil {
		return nil, err
	}
	providerID, err := parseID("Provider_ID", record[4])
	if err != nil {
		return nil, err
	}
	providerType, err := entities.ParseProviderType(record[5])
	if err != nil {
		return nil, &entities.ValidationError{Field: "Provider_Type", Reason: err.Error()}
	}
	foodType, err := entities.ParseFoodType(record[7])
	if err != nil {
		return nil, &entities.ValidationError{Field: "Food_Type", Reason: err.Error()}
	}
	mealType, err := entities.ParseMealType(record[8])
	if err != nil {
		return nil, &entities.ValidationError{Field: "Meal_Type", Reason: err.Error()}
	}
	return &entities.FoodListing{
		ID:           entities.FoodID(id),
		Name:         record[1],
		Quantity:     entities.Quantity(quantity),
		ExpiryDate:   expiry,
		ProviderID:   entities.ProviderID(providerID),
		ProviderType: providerType,
		Location:     record[6],
		FoodType:     foodType,
		MealType:     mealType,
	}, nil
}

// ParseClaim parses a claims row:
// Claim_ID, Food_ID, Receiver_ID, Status, Timestamp
func ParseClaim(record []string) (*entities.Claim, error) {
	if err := checkColumns(record, claimColumns); err != nil {
		return nil, err
	}
	id, err := parseID("Claim_ID", record[0])
	if err != nil {
		return nil, err
	}
	foodID, err := parseID("Food_ID", record[1])
	if err != nil {
		return nil, err
	}
	receiverID, err := parseID("Receiver_ID", record[2])
	if err != nil {
		return nil, err
	}
	status, err := entities.ParseClaimStatus(record[3])
	if err != nil {
		return nil, &entities.ValidationError{Field: "Status", Reason: err.Error()}
	}
	timestamp, err := parseTimestamp("Timestamp", record[4])
	if err != nil {
		return nil, err
	}
	return &entities.Claim{
		ID:         entities.ClaimID(id),
		FoodID:     entities.FoodID(foodID),
		ReceiverID: entities.ReceiverID(receiverID),
		Status:     status,
		Timestamp:  timestamp,
	}, nil
}

func checkColumns(record []string, want int) error {
	if len(record) != want {
		return &entities.ValidationError{
			Field:  "record",
			Reason: fmt.Sprintf("expected %d columns, got %d", want, len(record)),
		}
	}
	return nil
}

func parseID(field, value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, &entities.ValidationError{Field: field, Reason: fmt.Sprintf("invalid integer: %q", value)}
	}
	return id, nil
}

func parseDate(field, value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &entities.FormatError{Field: field, Value: value, Expected: "M/D/YYYY"}
}

func parseTimestamp(field, value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &entities.FormatError{Field: field, Value: value, Expected: "M/D/YYYY HH:MM"}
}
