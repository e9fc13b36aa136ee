package main

import (
	"fmt"
	"time"

	"github.com/chetanu/foodlink/pkg/application/services"
	"github.com/chetanu/foodlink/pkg/domain/entities"
	"github.com/chetanu/foodlink/pkg/infrastructure/repositories/memory"
)

func main() {
	store := memory.NewStore()
	defer store.Close()

	// Seed a small dataset
	seedDonations(store)

	runner := services.NewRunner(store, services.NewCatalog())
	params := services.Params{
		Days: 3,
		Now:  time.Date(2025, 3, 17, 12, 0, 0, 0, time.UTC),
	}

	fmt.Println("🍲 Foodlink example")
	fmt.Println()

	for _, name := range []string{"table_counts", "expiring_within", "top_receivers_by_claims"} {
		result, err := runner.Run(name, params)
		if err != nil {
			fmt.Printf("❌ %s failed: %v\n", name, err)
			return
		}
		fmt.Printf("📊 %s (%d rows)\n", result.Query, result.RowCount)
		for _, row := range result.Rows {
			fmt.Printf("  %v\n", row)
		}
		fmt.Println()
	}

	fmt.Println("✅ Done")
}

func seedDonations(store *memory.Store) {
	providers := []*entities.Provider{
		{ID: 1, Name: "Harvest Table", Type: entities.Restaurant, Address: "1 Elm St", City: "Springfield", Contact: "555-0101"},
		{ID: 2, Name: "Fresh Basket", Type: entities.GroceryStore, Address: "2 Oak Ave", City: "Shelbyville", Contact: "555-0102"},
	}
	for _, p := range providers {
		if err := store.AddProvider(p); err != nil {
			panic(err)
		}
	}

	receivers := []*entities.Receiver{
		{ID: 1, Name: "Hope Shelter", Type: entities.Shelter, City: "Springfield", Contact: "555-0201"},
		{ID: 2, Name: "City Food Bank", Type: entities.NGO, City: "Springfield", Contact: "555-0202"},
	}
	for _, r := range receivers {
		if err := store.AddReceiver(r); err != nil {
			panic(err)
		}
	}

	listings := []*entities.FoodListing{
		{
			ID: 1, Name: "Vegetable Curry", Quantity: 20,
			ExpiryDate: time.Date(2025, 3, 18, 0, 0, 0, 0, time.UTC),
			ProviderID: 1, ProviderType: entities.Restaurant,
			Location: "Springfield", FoodType: entities.Vegan, MealType: entities.Dinner,
		},
		{
			ID: 2, Name: "Day-Old Bread", Quantity: 35,
			ExpiryDate: time.Date(2025, 3, 25, 0, 0, 0, 0, time.UTC),
			ProviderID: 2, ProviderType: entities.GroceryStore,
			Location: "Shelbyville", FoodType: entities.Vegetarian, MealType: entities.Breakfast,
		},
	}
	for _, l := range listings {
		if err := store.AddFoodListing(l); err != nil {
			panic(err)
		}
	}

	claims := []*entities.Claim{
		{ID: 1, FoodID: 1, ReceiverID: 1, Status: entities.Completed, Timestamp: time.Date(2025, 3, 16, 18, 0, 0, 0, time.UTC)},
		{ID: 2, FoodID: 2, ReceiverID: 2, Status: entities.Pending, Timestamp: time.Date(2025, 3, 17, 9, 0, 0, 0, time.UTC)},
	}
	for _, c := range claims {
		if err := store.AddClaim(c); err != nil {
			panic(err)
		}
	}
}
