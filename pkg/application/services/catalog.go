package services

import (
	"time"

	"github.com/chetanu/foodlink/pkg/application/dto"
	"github.com/chetanu/foodlink/pkg/domain/repositories"
)

// Default parameter values applied when the caller leaves a field unset
const (
	DefaultDays  = 7
	DefaultLimit = 10
)

// Params carries the caller-supplied arguments a catalog entry may use.
// Zero values fall back to the entry defaults: Days and Limit to the
// constants above, Now to the wall clock. An empty City simply matches
// no provider.
type Params struct {
	City  string
	Days  int
	Limit int
	Now   time.Time
}

func (p Params) days() int {
	if p.Days > 0 {
		return p.Days
	}
	return DefaultDays
}

func (p Params) limit() int {
	if p.Limit > 0 {
		return p.Limit
	}
	return DefaultLimit
}

func (p Params) now() time.Time {
	if !p.Now.IsZero() {
		return p.Now
	}
	return time.Now()
}

// Entry is one named, read-only catalog query
type Entry struct {
	Name        string
	Description string
	ParamHint   string
	run         func(s repositories.ReadStore, p Params) (*dto.Result, error)
}

// Catalog holds the fixed set of named queries in registration order
type Catalog struct {
	entries map[string]*Entry
	names   []string
}

// Entry resolves a catalog entry by name
func (c *Catalog) Entry(name string) (*Entry, bool) {
	e, ok := c.entries[name]
	return e, ok
}

// Names returns every query name in registration order
func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}

func (c *Catalog) register(e *Entry) {
	c.entries[e.Name] = e
	c.names = append(c.names, e.Name)
}

// NewCatalog builds the full query catalog
func NewCatalog() *Catalog {
	c := &Catalog{entries: make(map[string]*Entry)}

	c.register(&Entry{
		Name:        "table_counts",
		Description: "Row counts of the four tables",
		run: func(s repositories.ReadStore, _ Params) (*dto.Result, error) {
			rows, err := TableCounts(s)
			if err != nil {
				return nil, err
			}
			out := make([][]any, 0, len(rows))
			for _, r := range rows {
				out = append(out, []any{r.Table, r.Count})
			}
			return dto.NewResult("table_counts", []string{"Table", "Count"}, out), nil
		},
	})

	c.register(&Entry{
		Name:        "referential_violations",
		Description: "Rows whose foreign key does not resolve (always zero post-load)",
		run: func(s repositories.ReadStore, _ Params) (*dto.Result, error) {
			rows, err := ReferentialViolations(s)
			if err != nil {
				return nil, err
			}
			return dto.NewResult("referential_violations", []string{"Link", "Violations"}, labelCountRows(rows)), nil
		},
	})

	c.register(&Entry{
		Name:        "providers_per_city",
		Description: "Provider counts grouped by city",
		run: func(s repositories.ReadStore, _ Params) (*dto.Result, error) {
			rows, err := ProvidersPerCity(s)
			if err != nil {
				return nil, err
			}
			return dto.NewResult("providers_per_city", []string{"City", "Provider_Count"}, labelCountRows(rows)), nil
		},
	})

	c.register(&Entry{
		Name:        "provider_type_counts",
		Description: "Provider counts grouped by type, most common first",
		run: func(s repositories.ReadStore, _ Params) (*dto.Result, error) {
			rows, err := ProviderTypeCounts(s)
			if err != nil {
				return nil, err
			}
			return dto.NewResult("provider_type_counts", []string{"Type", "Provider_Count"}, labelCountRows(rows)), nil
		},
	})

	c.register(&Entry{
		Name:        "top_receivers_by_claims",
		Description: "Receivers with the most claims",
		ParamHint:   "limit",
		run: func(s repositories.ReadStore, p Params) (*dto.Result, error) {
			rows, err := TopReceiversByClaims(s, p.limit())
			if err != nil {
				return nil, err
			}
			out := make([][]any, 0, len(rows))
			for _, r := range rows {
				out = append(out, []any{r.Name, r.City, r.Claims})
			}
			return dto.NewResult("top_receivers_by_claims", []string{"Name", "City", "Total_Claims"}, out), nil
		},
	})

	c.register(&Entry{
		Name:        "top_location_by_listings",
		Description: "The single location with the most listings",
		run: func(s repositories.ReadStore, _ Params) (*dto.Result, error) {
			rows, err := TopLocationByListings(s)
			if err != nil {
				return nil, err
			}
			return dto.NewResult("top_location_by_listings", []string{"Location", "Listings"}, labelCountRows(rows)), nil
		},
	})

	c.register(&Entry{
		Name:        "receiver_type_counts",
		Description: "Receiver counts grouped by type",
		run: func(s repositories.ReadStore, _ Params) (*dto.Result, error) {
			rows, err := ReceiverTypeCounts(s)
			if err != nil {
				return nil, err
			}
			return dto.NewResult("receiver_type_counts", []string{"Type", "Receiver_Count"}, labelCountRows(rows)), nil
		},
	})

	c.register(&Entry{
		Name:        "providers_in_city",
		Description: "Contact-ready providers in one city (exact match)",
		ParamHint:   "city",
		run: func(s repositories.ReadStore, p Params) (*dto.Result, error) {
			rows, err := ProvidersInCity(s, p.City)
			if err != nil {
				return nil, err
			}
			out := make([][]any, 0, len(rows))
			for _, r := range rows {
				out = append(out, []any{int64(r.ID), r.Name, r.Type.String(), r.City, r.Contact})
			}
			return dto.NewResult("providers_in_city", []string{"Provider_ID", "Name", "Type", "City", "Contact"}, out), nil
		},
	})

	c.register(&Entry{
		Name:        "total_food_quantity",
		Description: "Sum of all listing quantities",
		run: func(s repositories.ReadStore, _ Params) (*dto.Result, error) {
			total, err := TotalFoodQuantity(s)
			if err != nil {
				return nil, err
			}
			return dto.NewResult("total_food_quantity", []string{"Total_Quantity"}, [][]any{{int64(total)}}), nil
		},
	})

	c.register(&Entry{
		Name:        "food_type_counts",
		Description: "Listing counts grouped by food type, most common first",
		run: func(s repositories.ReadStore, _ Params) (*dto.Result, error) {
			rows, err := FoodTypeCounts(s)
			if err != nil {
				return nil, err
			}
			return dto.NewResult("food_type_counts", []string{"Food_Type", "Count"}, labelCountRows(rows)), nil
		},
	})

	c.register(&Entry{
		Name:        "meal_type_counts",
		Description: "Listing counts grouped by meal type, most common first",
		run: func(s repositories.ReadStore, _ Params) (*dto.Result, error) {
			rows, err := MealTypeCounts(s)
			if err != nil {
				return nil, err
			}
			return dto.NewResult("meal_type_counts", []string{"Meal_Type", "Count"}, labelCountRows(rows)), nil
		},
	})

	c.register(&Entry{
		Name:        "expiring_within",
		Description: "Listings expiring inside a day window from now (boundary inclusive)",
		ParamHint:   "days, now",
		run: func(s repositories.ReadStore, p Params) (*dto.Result, error) {
			rows, err := ExpiringWithin(s, p.days(), p.now())
			if err != nil {
				return nil, err
			}
			out := make([][]any, 0, len(rows))
			for _, l := range rows {
				out = append(out, []any{int64(l.ID), l.Name, int64(l.Quantity), l.ExpiryDate.Format("2006-01-02"), l.Location})
			}
			return dto.NewResult("expiring_within", []string{"Food_ID", "Food_Name", "Quantity", "Expiry_Date", "Location"}, out), nil
		},
	})

	c.register(&Entry{
		Name:        "claims_per_food",
		Description: "Claim counts grouped by food name, most claimed first",
		run: func(s repositories.ReadStore, _ Params) (*dto.Result, error) {
			rows, err := ClaimsPerFood(s)
			if err != nil {
				return nil, err
			}
			return dto.NewResult("claims_per_food", []string{"Food_Name", "Claim_Count"}, labelCountRows(rows)), nil
		},
	})

	c.register(&Entry{
		Name:        "top_provider_by_completed_claims",
		Description: "The provider with the most completed claims",
		run: func(s repositories.ReadStore, _ Params) (*dto.Result, error) {
			rows, err := TopProviderByCompletedClaims(s)
			if err != nil {
				return nil, err
			}
			return dto.NewResult("top_provider_by_completed_claims", []string{"Name", "Successful_Claims"}, labelCountRows(rows)), nil
		},
	})

	c.register(&Entry{
		Name:        "claim_status_counts",
		Description: "Claim counts grouped by status",
		run: func(s repositories.ReadStore, _ Params) (*dto.Result, error) {
			rows, err := ClaimStatusCounts(s)
			if err != nil {
				return nil, err
			}
			return dto.NewResult("claim_status_counts", []string{"Status", "Count"}, labelCountRows(rows)), nil
		},
	})

	c.register(&Entry{
		Name:        "top_receivers_by_avg_quantity",
		Description: "Receivers with the highest average claimed quantity",
		ParamHint:   "limit",
		run: func(s repositories.ReadStore, p Params) (*dto.Result, error) {
			rows, err := TopReceiversByAvgQuantity(s, p.limit())
			if err != nil {
				return nil, err
			}
			out := make([][]any, 0, len(rows))
			for _, r := range rows {
				out = append(out, []any{r.Name, r.AvgQuantity})
			}
			return dto.NewResult("top_receivers_by_avg_quantity", []string{"Name", "Avg_Quantity"}, out), nil
		},
	})

	c.register(&Entry{
		Name:        "claims_per_meal_type",
		Description: "Claim counts grouped by meal type, most claimed first",
		run: func(s repositories.ReadStore, _ Params) (*dto.Result, error) {
			rows, err := ClaimsPerMealType(s)
			if err != nil {
				return nil, err
			}
			return dto.NewResult("claims_per_meal_type", []string{"Meal_Type", "Claim_Count"}, labelCountRows(rows)), nil
		},
	})

	c.register(&Entry{
		Name:        "top_providers_by_quantity",
		Description: "Providers with the highest total donated quantity",
		ParamHint:   "limit",
		run: func(s repositories.ReadStore, p Params) (*dto.Result, error) {
			rows, err := TopProvidersByQuantity(s, p.limit())
			if err != nil {
				return nil, err
			}
			out := make([][]any, 0, len(rows))
			for _, r := range rows {
				out = append(out, []any{r.Name, int64(r.Total)})
			}
			return dto.NewResult("top_providers_by_quantity", []string{"Name", "Total_Quantity"}, out), nil
		},
	})

	c.register(&Entry{
		Name:        "claims_per_month",
		Description: "Claim counts grouped by calendar month, oldest first",
		run: func(s repositories.ReadStore, _ Params) (*dto.Result, error) {
			rows, err := ClaimsPerMonth(s)
			if err != nil {
				return nil, err
			}
			return dto.NewResult("claims_per_month", []string{"Month", "Claim_Count"}, labelCountRows(rows)), nil
		},
	})

	c.register(&Entry{
		Name:        "completed_claims_by_location",
		Description: "Top five locations by completed claims",
		run: func(s repositories.ReadStore, _ Params) (*dto.Result, error) {
			rows, err := CompletedClaimsByLocation(s)
			if err != nil {
				return nil, err
			}
			return dto.NewResult("completed_claims_by_location", []string{"Location", "Claim_Count"}, labelCountRows(rows)), nil
		},
	})

	c.register(&Entry{
		Name:        "completed_claim_lead_hours",
		Description: "Hours between each completed claim and its listing's expiry (negative if claimed after expiry)",
		run: func(s repositories.ReadStore, _ Params) (*dto.Result, error) {
			rows, err := CompletedClaimLeadHours(s)
			if err != nil {
				return nil, err
			}
			out := make([][]any, 0, len(rows))
			for _, r := range rows {
				out = append(out, []any{int64(r.ClaimID), r.FoodName, r.Hours})
			}
			return dto.NewResult("completed_claim_lead_hours", []string{"Claim_ID", "Food_Name", "Hours_To_Expiry"}, out), nil
		},
	})

	c.register(&Entry{
		Name:        "unclaimed_providers",
		Description: "Providers ranked by listings that have no claims",
		run: func(s repositories.ReadStore, _ Params) (*dto.Result, error) {
			rows, err := UnclaimedProviders(s)
			if err != nil {
				return nil, err
			}
			out := make([][]any, 0, len(rows))
			for _, r := range rows {
				out = append(out, []any{r.Name, r.UnclaimedListings})
			}
			return dto.NewResult("unclaimed_providers", []string{"Name", "Unclaimed_Listings"}, out), nil
		},
	})

	return c
}

func labelCountRows(rows []LabelCount) [][]any {
	out := make([][]any, 0, len(rows))
	for _, r := range rows {
		out = append(out, []any{r.Label, r.Count})
	}
	return out
}
