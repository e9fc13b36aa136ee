package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/chetanu/foodlink/pkg/interfaces/cli/commands"
)

func main() {
	// Command line flags
	var (
		configFile    = flag.String("config", "", "Path to YAML config file")
		dataDir       = flag.String("data", "", "Directory containing the four CSV data files")
		providersFile = flag.String("providers", "", "Path to providers CSV file")
		receiversFile = flag.String("receivers", "", "Path to receivers CSV file")
		listingsFile  = flag.String("listings", "", "Path to food listings CSV file")
		claimsFile    = flag.String("claims", "", "Path to claims CSV file")
		driver        = flag.String("store", "", "Storage backend: memory, sqlite")
		dbPath        = flag.String("db", "", "SQLite database path (sqlite driver only)")
		query         = flag.String("query", "", "Catalog query to run")
		all           = flag.Bool("all", false, "Run the full catalog")
		list          = flag.Bool("list", false, "List catalog queries and exit")
		format        = flag.String("format", "", "Output format: text, json, csv")
		city          = flag.String("city", "", "City filter for city-scoped queries")
		days          = flag.Int("days", 0, "Window size in days for expiring_within")
		limit         = flag.Int("limit", 0, "Row cap for top-N queries")
		now           = flag.String("now", "", "Reference date as YYYY-MM-DD")
		verbose       = flag.Bool("verbose", false, "Enable verbose output")
		help          = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	// Create command configuration
	config := commands.Config{
		ConfigFile:    *configFile,
		DataDir:       *dataDir,
		ProvidersFile: *providersFile,
		ReceiversFile: *receiversFile,
		ListingsFile:  *listingsFile,
		ClaimsFile:    *claimsFile,
		Driver:        *driver,
		DBPath:        *dbPath,
		Query:         *query,
		All:           *all,
		List:          *list,
		Format:        *format,
		City:          *city,
		Days:          *days,
		Limit:         *limit,
		Now:           *now,
		Verbose:       *verbose,
		Help:          *help,
	}

	// Create and execute command
	cmd := commands.NewReportCommand(config)
	ctx := context.Background()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
