package services

import (
	"sort"
	"time"

	"github.com/chetanu/foodlink/pkg/domain/entities"
	"github.com/chetanu/foodlink/pkg/domain/repositories"
	"github.com/shopspring/decimal"
)

// Typed result rows for the catalog computations. Every function in
// this file is read-only over the store and returns rows in a
// deterministic total order.

// TableCount is one table's row count
type TableCount struct {
	Table string
	Count int
}

// LabelCount pairs a grouping key (city, type, status, food name) with
// its count.
type LabelCount struct {
	Label string
	Count int
}

// ReceiverClaims is a receiver's total claim count
type ReceiverClaims struct {
	Name   string
	City   string
	Claims int
}

// ReceiverAvgQuantity is a receiver's average claimed listing quantity
type ReceiverAvgQuantity struct {
	Name        string
	AvgQuantity float64
}

// ProviderQuantity is a provider's total listed quantity
type ProviderQuantity struct {
	Name  string
	Total entities.Quantity
}

// ClaimLeadHours is the elapsed time between a completed claim and the
// claimed listing's expiry. Negative when the claim happened after
// expiry; that sign is preserved, never clamped.
type ClaimLeadHours struct {
	ClaimID  entities.ClaimID
	FoodName string
	Hours    float64
}

// UnclaimedProvider is a provider ranked by how many of its listings
// have no claims at all.
type UnclaimedProvider struct {
	Name              string
	UnclaimedListings int
}

// TableCounts returns the row count of each of the four tables, in
// fixed table order.
func TableCounts(s repositories.ReadStore) ([]TableCount, error) {
	providers, err := s.Providers()
	if err != nil {
		return nil, err
	}
	receivers, err := s.Receivers()
	if err != nil {
		return nil, err
	}
	listings, err := s.FoodListings()
	if err != nil {
		return nil, err
	}
	claims, err := s.Claims()
	if err != nil {
		return nil, err
	}
	return []TableCount{
		{Table: entities.KindProvider.String(), Count: len(providers)},
		{Table: entities.KindReceiver.String(), Count: len(receivers)},
		{Table: entities.KindFoodListing.String(), Count: len(listings)},
		{Table: entities.KindClaim.String(), Count: len(claims)},
	}, nil
}

// ReferentialViolations counts rows whose foreign key does not resolve.
// All three counts are zero after any successful load; non-zero values
// mean the store invariants are broken.
func ReferentialViolations(s repositories.ReadStore) ([]LabelCount, error) {
	providers, err := s.Providers()
	if err != nil {
		return nil, err
	}
	receivers, err := s.Receivers()
	if err != nil {
		return nil, err
	}
	listings, err := s.FoodListings()
	if err != nil {
		return nil, err
	}
	claims, err := s.Claims()
	if err != nil {
		return nil, err
	}

	providerIDs := make(map[entities.ProviderID]struct{}, len(providers))
	for _, p := range providers {
		providerIDs[p.ID] = struct{}{}
	}
	receiverIDs := make(map[entities.ReceiverID]struct{}, len(receivers))
	for _, r := range receivers {
		receiverIDs[r.ID] = struct{}{}
	}
	foodIDs := make(map[entities.FoodID]struct{}, len(listings))
	for _, l := range listings {
		foodIDs[l.ID] = struct{}{}
	}

	danglingListings := 0
	for _, l := range listings {
		if _, ok := providerIDs[l.ProviderID]; !ok {
			danglingListings++
		}
	}
	danglingFood, danglingReceiver := 0, 0
	for _, c := range claims {
		if _, ok := foodIDs[c.FoodID]; !ok {
			danglingFood++
		}
		if _, ok := receiverIDs[c.ReceiverID]; !ok {
			danglingReceiver++
		}
	}
	return []LabelCount{
		{Label: "food_listings.Provider_ID", Count: danglingListings},
		{Label: "claims.Food_ID", Count: danglingFood},
		{Label: "claims.Receiver_ID", Count: danglingReceiver},
	}, nil
}

// ProvidersPerCity counts providers grouped by city, city ascending
func ProvidersPerCity(s repositories.ReadStore) ([]LabelCount, error) {
	providers, err := s.Providers()
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, p := range providers {
		counts[p.City]++
	}
	return sortCountsByLabel(counts), nil
}

// ProviderTypeCounts counts providers grouped by type, count descending
func ProviderTypeCounts(s repositories.ReadStore) ([]LabelCount, error) {
	providers, err := s.Providers()
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, p := range providers {
		counts[p.Type.String()]++
	}
	return sortCountsDesc(counts), nil
}

// TopReceiversByClaims returns the limit receivers with the most
// claims, count descending, ties broken by receiver name ascending.
func TopReceiversByClaims(s repositories.ReadStore, limit int) ([]ReceiverClaims, error) {
	receivers, err := s.Receivers()
	if err != nil {
		return nil, err
	}
	claims, err := s.Claims()
	if err != nil {
		return nil, err
	}
	counts := make(map[entities.ReceiverID]int)
	for _, c := range claims {
		counts[c.ReceiverID]++
	}
	var rows []ReceiverClaims
	for _, r := range receivers {
		if n := counts[r.ID]; n > 0 {
			rows = append(rows, ReceiverClaims{Name: r.Name, City: r.City, Claims: n})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Claims != rows[j].Claims {
			return rows[i].Claims > rows[j].Claims
		}
		return rows[i].Name < rows[j].Name
	})
	return truncate(rows, limit), nil
}

// TopLocationByListings returns the single location with the most
// listings; a tie goes to the alphabetically first location.
func TopLocationByListings(s repositories.ReadStore) ([]LabelCount, error) {
	listings, err := s.FoodListings()
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, l := range listings {
		counts[l.Location]++
	}
	ranked := sortCountsDesc(counts)
	return truncate(ranked, 1), nil
}

// ReceiverTypeCounts counts receivers grouped by type, type ascending
func ReceiverTypeCounts(s repositories.ReadStore) ([]LabelCount, error) {
	receivers, err := s.Receivers()
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, r := range receivers {
		counts[r.Type.String()]++
	}
	return sortCountsByLabel(counts), nil
}

// ProvidersInCity returns the providers whose city matches exactly,
// ordered by id ascending.
func ProvidersInCity(s repositories.ReadStore, city string) ([]*entities.Provider, error) {
	providers, err := s.Providers()
	if err != nil {
		return nil, err
	}
	var rows []*entities.Provider
	for _, p := range providers {
		if p.City == city {
			rows = append(rows, p)
		}
	}
	return rows, nil
}

// TotalFoodQuantity sums the quantity of every listing
func TotalFoodQuantity(s repositories.ReadStore) (entities.Quantity, error) {
	listings, err := s.FoodListings()
	if err != nil {
		return 0, err
	}
	var total entities.Quantity
	for _, l := range listings {
		total += l.Quantity
	}
	return total, nil
}

// FoodTypeCounts counts listings grouped by food type, count descending
func FoodTypeCounts(s repositories.ReadStore) ([]LabelCount, error) {
	listings, err := s.FoodListings()
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, l := range listings {
		counts[l.FoodType.String()]++
	}
	return sortCountsDesc(counts), nil
}

// MealTypeCounts counts listings grouped by meal type, count descending
func MealTypeCounts(s repositories.ReadStore) ([]LabelCount, error) {
	listings, err := s.FoodListings()
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, l := range listings {
		counts[l.MealType.String()]++
	}
	return sortCountsDesc(counts), nil
}

// ExpiringWithin returns listings whose expiry date falls inside
// [today, today+days], comparing at whole-day granularity so the
// boundary day is inclusive. Already-expired listings are excluded.
// Rows are ordered by expiry ascending, id ascending on equal expiry.
func ExpiringWithin(s repositories.ReadStore, days int, now time.Time) ([]*entities.FoodListing, error) {
	listings, err := s.FoodListings()
	if err != nil {
		return nil, err
	}
	today := dateOf(now)
	deadline := today.AddDate(0, 0, days)

	var rows []*entities.FoodListing
	for _, l := range listings {
		expiry := dateOf(l.ExpiryDate)
		if expiry.Before(today) || expiry.After(deadline) {
			continue
		}
		rows = append(rows, l)
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].ExpiryDate.Equal(rows[j].ExpiryDate) {
			return rows[i].ExpiryDate.Before(rows[j].ExpiryDate)
		}
		return rows[i].ID < rows[j].ID
	})
	return rows, nil
}

// ClaimsPerFood counts claims grouped by the claimed listing's food
// name, count descending.
func ClaimsPerFood(s repositories.ReadStore) ([]LabelCount, error) {
	listings, err := s.FoodListings()
	if err != nil {
		return nil, err
	}
	claims, err := s.Claims()
	if err != nil {
		return nil, err
	}
	names := make(map[entities.FoodID]string, len(listings))
	for _, l := range listings {
		names[l.ID] = l.Name
	}
	counts := make(map[string]int)
	for _, c := range claims {
		if name, ok := names[c.FoodID]; ok {
			counts[name]++
		}
	}
	return sortCountsDesc(counts), nil
}

// TopProviderByCompletedClaims returns the provider with the most
// completed claims against its listings; a tie goes to the
// alphabetically first provider name.
func TopProviderByCompletedClaims(s repositories.ReadStore) ([]LabelCount, error) {
	providers, err := s.Providers()
	if err != nil {
		return nil, err
	}
	listings, err := s.FoodListings()
	if err != nil {
		return nil, err
	}
	claims, err := s.Claims()
	if err != nil {
		return nil, err
	}
	providerOf := make(map[entities.FoodID]entities.ProviderID, len(listings))
	for _, l := range listings {
		providerOf[l.ID] = l.ProviderID
	}
	names := make(map[entities.ProviderID]string, len(providers))
	for _, p := range providers {
		names[p.ID] = p.Name
	}
	counts := make(map[string]int)
	for _, c := range claims {
		if c.Status != entities.Completed {
			continue
		}
		if pid, ok := providerOf[c.FoodID]; ok {
			counts[names[pid]]++
		}
	}
	ranked := sortCountsDesc(counts)
	return truncate(ranked, 1), nil
}

// ClaimStatusCounts counts claims grouped by status, count descending
func ClaimStatusCounts(s repositories.ReadStore) ([]LabelCount, error) {
	claims, err := s.Claims()
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, c := range claims {
		counts[c.Status.String()]++
	}
	return sortCountsDesc(counts), nil
}

// TopReceiversByAvgQuantity returns the limit receivers with the
// highest average claimed listing quantity, descending, ties broken by
// receiver name ascending.
func TopReceiversByAvgQuantity(s repositories.ReadStore, limit int) ([]ReceiverAvgQuantity, error) {
	receivers, err := s.Receivers()
	if err != nil {
		return nil, err
	}
	listings, err := s.FoodListings()
	if err != nil {
		return nil, err
	}
	claims, err := s.Claims()
	if err != nil {
		return nil, err
	}
	quantityOf := make(map[entities.FoodID]entities.Quantity, len(listings))
	for _, l := range listings {
		quantityOf[l.ID] = l.Quantity
	}

	type acc struct {
		sum   int64
		count int64
	}
	sums := make(map[entities.ReceiverID]*acc)
	for _, c := range claims {
		qty, ok := quantityOf[c.FoodID]
		if !ok {
			continue
		}
		a := sums[c.ReceiverID]
		if a == nil {
			a = &acc{}
			sums[c.ReceiverID] = a
		}
		a.sum += int64(qty)
		a.count++
	}

	var rows []ReceiverAvgQuantity
	for _, r := range receivers {
		a, ok := sums[r.ID]
		if !ok {
			continue
		}
		avg := decimal.NewFromInt(a.sum).Div(decimal.NewFromInt(a.count))
		f, _ := avg.Float64()
		rows = append(rows, ReceiverAvgQuantity{Name: r.Name, AvgQuantity: f})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].AvgQuantity != rows[j].AvgQuantity {
			return rows[i].AvgQuantity > rows[j].AvgQuantity
		}
		return rows[i].Name < rows[j].Name
	})
	return truncate(rows, limit), nil
}

// ClaimsPerMealType counts claims grouped by the claimed listing's meal
// type, count descending.
func ClaimsPerMealType(s repositories.ReadStore) ([]LabelCount, error) {
	listings, err := s.FoodListings()
	if err != nil {
		return nil, err
	}
	claims, err := s.Claims()
	if err != nil {
		return nil, err
	}
	mealOf := make(map[entities.FoodID]entities.MealType, len(listings))
	for _, l := range listings {
		mealOf[l.ID] = l.MealType
	}
	counts := make(map[string]int)
	for _, c := range claims {
		if meal, ok := mealOf[c.FoodID]; ok {
			counts[meal.String()]++
		}
	}
	return sortCountsDesc(counts), nil
}

// TopProvidersByQuantity returns the limit providers with the highest
// total listed quantity, descending, ties broken by provider name
// ascending.
func TopProvidersByQuantity(s repositories.ReadStore, limit int) ([]ProviderQuantity, error) {
	providers, err := s.Providers()
	if err != nil {
		return nil, err
	}
	listings, err := s.FoodListings()
	if err != nil {
		return nil, err
	}
	totals := make(map[entities.ProviderID]entities.Quantity)
	for _, l := range listings {
		totals[l.ProviderID] += l.Quantity
	}
	var rows []ProviderQuantity
	for _, p := range providers {
		if total, ok := totals[p.ID]; ok {
			rows = append(rows, ProviderQuantity{Name: p.Name, Total: total})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Total != rows[j].Total {
			return rows[i].Total > rows[j].Total
		}
		return rows[i].Name < rows[j].Name
	})
	return truncate(rows, limit), nil
}

// ClaimsPerMonth counts claims grouped by calendar month (YYYY-MM),
// in ascending chronological order.
func ClaimsPerMonth(s repositories.ReadStore) ([]LabelCount, error) {
	claims, err := s.Claims()
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, c := range claims {
		counts[c.Timestamp.Format("2006-01")]++
	}
	return sortCountsByLabel(counts), nil
}

// CompletedClaimsByLocation counts completed claims grouped by the
// claimed listing's location, count descending, top five locations.
func CompletedClaimsByLocation(s repositories.ReadStore) ([]LabelCount, error) {
	listings, err := s.FoodListings()
	if err != nil {
		return nil, err
	}
	claims, err := s.Claims()
	if err != nil {
		return nil, err
	}
	locationOf := make(map[entities.FoodID]string, len(listings))
	for _, l := range listings {
		locationOf[l.ID] = l.Location
	}
	counts := make(map[string]int)
	for _, c := range claims {
		if c.Status != entities.Completed {
			continue
		}
		if loc, ok := locationOf[c.FoodID]; ok {
			counts[loc]++
		}
	}
	ranked := sortCountsDesc(counts)
	return truncate(ranked, 5), nil
}

// CompletedClaimLeadHours reports, for every completed claim, the hours
// between the claim timestamp and the claimed listing's expiry. A claim
// made after expiry yields a negative value, which is preserved as-is.
// Rows are ordered by claim id ascending.
func CompletedClaimLeadHours(s repositories.ReadStore) ([]ClaimLeadHours, error) {
	listings, err := s.FoodListings()
	if err != nil {
		return nil, err
	}
	claims, err := s.Claims()
	if err != nil {
		return nil, err
	}
	byID := make(map[entities.FoodID]*entities.FoodListing, len(listings))
	for _, l := range listings {
		byID[l.ID] = l
	}
	var rows []ClaimLeadHours
	for _, c := range claims {
		if c.Status != entities.Completed {
			continue
		}
		l, ok := byID[c.FoodID]
		if !ok {
			continue
		}
		rows = append(rows, ClaimLeadHours{
			ClaimID:  c.ID,
			FoodName: l.Name,
			Hours:    l.ExpiryDate.Sub(c.Timestamp).Hours(),
		})
	}
	return rows, nil
}

// UnclaimedProviders ranks providers by how many of their listings have
// no claims at all, count descending, ties broken by provider name
// ascending. Providers whose every listing is claimed do not appear.
func UnclaimedProviders(s repositories.ReadStore) ([]UnclaimedProvider, error) {
	providers, err := s.Providers()
	if err != nil {
		return nil, err
	}
	listings, err := s.FoodListings()
	if err != nil {
		return nil, err
	}
	claims, err := s.Claims()
	if err != nil {
		return nil, err
	}
	claimed := make(map[entities.FoodID]struct{})
	for _, c := range claims {
		claimed[c.FoodID] = struct{}{}
	}
	counts := make(map[entities.ProviderID]int)
	for _, l := range listings {
		if _, ok := claimed[l.ID]; !ok {
			counts[l.ProviderID]++
		}
	}
	var rows []UnclaimedProvider
	for _, p := range providers {
		if n := counts[p.ID]; n > 0 {
			rows = append(rows, UnclaimedProvider{Name: p.Name, UnclaimedListings: n})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].UnclaimedListings != rows[j].UnclaimedListings {
			return rows[i].UnclaimedListings > rows[j].UnclaimedListings
		}
		return rows[i].Name < rows[j].Name
	})
	return rows, nil
}

// sortCountsDesc flattens a counting map ordered by count descending,
// ties broken by label ascending.
func sortCountsDesc(counts map[string]int) []LabelCount {
	rows := flatten(counts)
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Label < rows[j].Label
	})
	return rows
}

// sortCountsByLabel flattens a counting map ordered by label ascending
func sortCountsByLabel(counts map[string]int) []LabelCount {
	rows := flatten(counts)
	sort.Slice(rows, func(i, j int) bool { return rows[i].Label < rows[j].Label })
	return rows
}

func flatten(counts map[string]int) []LabelCount {
	rows := make([]LabelCount, 0, len(counts))
	for label, count := range counts {
		rows = append(rows, LabelCount{Label: label, Count: count})
	}
	return rows
}

func truncate[T any](rows []T, limit int) []T {
	if limit > 0 && len(rows) > limit {
		return rows[:limit]
	}
	return rows
}

// dateOf truncates a time to its calendar day in UTC
func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
