package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/chetanu/foodlink/pkg/application/dto"
	"github.com/chetanu/foodlink/pkg/application/services"
	"github.com/chetanu/foodlink/pkg/domain/entities"
	"github.com/chetanu/foodlink/pkg/domain/repositories"
	"github.com/chetanu/foodlink/pkg/infrastructure/config"
	"github.com/chetanu/foodlink/pkg/infrastructure/repositories/memory"
	"github.com/chetanu/foodlink/pkg/infrastructure/repositories/sqlite"
	"github.com/chetanu/foodlink/pkg/interfaces/cli/output"
)

// Config holds configuration for the report command
type Config struct {
	ConfigFile    string
	DataDir       string
	ProvidersFile string
	ReceiversFile string
	ListingsFile  string
	ClaimsFile    string
	Driver        string
	DBPath        string
	Query         string
	All           bool
	List          bool
	Format        string
	City          string
	Days          int
	Limit         int
	Now           string
	Verbose       bool
	Help          bool
}

// ReportCommand loads the dataset and runs catalog queries
type ReportCommand struct {
	config Config
	out    io.Writer
}

// NewReportCommand creates a report command writing to stdout
func NewReportCommand(cfg Config) *ReportCommand {
	return &ReportCommand{config: cfg, out: os.Stdout}
}

// NewReportCommandWithOutput creates a report command with a custom writer
func NewReportCommandWithOutput(cfg Config, out io.Writer) *ReportCommand {
	return &ReportCommand{config: cfg, out: out}
}

// Execute runs the report command
func (c *ReportCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if err := c.applyConfigFile(); err != nil {
		return err
	}

	catalog := services.NewCatalog()

	if c.config.List {
		fmt.Fprintln(c.out, "Available queries:")
		store := memory.NewStore()
		defer store.Close()
		output.ListQueries(c.out, services.NewRunner(store, catalog))
		return nil
	}

	if !c.config.All && c.config.Query == "" {
		return fmt.Errorf("must specify -query <name>, -all, or -list")
	}

	files, err := c.resolveInputFiles()
	if err != nil {
		return err
	}

	store, err := c.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if c.config.Verbose {
		c.printHeader(files)
	}

	if err := c.loadData(store, files); err != nil {
		return err
	}

	now := time.Now()
	if c.config.Now != "" {
		now, err = time.Parse("2006-01-02", c.config.Now)
		if err != nil {
			return fmt.Errorf("invalid -now value %q: expected YYYY-MM-DD", c.config.Now)
		}
	}

	runner := services.NewRunner(store, catalog)
	params := services.Params{
		City:  c.config.City,
		Days:  c.config.Days,
		Limit: c.config.Limit,
		Now:   now,
	}

	if c.config.All {
		outcomes := runner.RunAll(params)
		return output.RenderAll(c.out, runner.Names(), outcomes, c.config.Format)
	}

	result, err := runner.Run(c.config.Query, params)
	if err != nil {
		return err
	}
	return output.Render(c.out, result, c.config.Format)
}

// applyConfigFile merges file-level settings under the flags. A flag
// that was set on the command line wins over the file.
func (c *ReportCommand) applyConfigFile() error {
	var cfg *config.Config
	if c.config.ConfigFile != "" {
		loaded, err := config.Load(c.config.ConfigFile)
		if err != nil {
			return err
		}
		cfg = loaded
	} else {
		cfg = config.Default()
	}

	if c.config.ProvidersFile == "" {
		c.config.ProvidersFile = cfg.Data.Providers
	}
	if c.config.ReceiversFile == "" {
		c.config.ReceiversFile = cfg.Data.Receivers
	}
	if c.config.ListingsFile == "" {
		c.config.ListingsFile = cfg.Data.Listings
	}
	if c.config.ClaimsFile == "" {
		c.config.ClaimsFile = cfg.Data.Claims
	}
	if c.config.Driver == "" {
		c.config.Driver = cfg.Store.Driver
	}
	if c.config.DBPath == "" {
		c.config.DBPath = cfg.Store.Path
	}
	if c.config.Format == "" {
		c.config.Format = cfg.Report.Format
	}
	if c.config.Limit == 0 {
		c.config.Limit = cfg.Report.Limit
	}
	if c.config.Days == 0 {
		c.config.Days = cfg.Report.WindowDays
	}
	return nil
}

func (c *ReportCommand) openStore() (repositories.Store, error) {
	switch c.config.Driver {
	case "", "memory":
		return memory.NewStore(), nil
	case "sqlite":
		path := c.config.DBPath
		if path == "" {
			path = ":memory:"
		}
		return sqlite.New(path)
	default:
		return nil, fmt.Errorf("unknown store driver: %s", c.config.Driver)
	}
}

// resolveInputFiles determines the actual file paths to use
func (c *ReportCommand) resolveInputFiles() (map[entities.Kind]string, error) {
	providers := c.config.ProvidersFile
	receivers := c.config.ReceiversFile
	listings := c.config.ListingsFile
	claims := c.config.ClaimsFile

	if c.config.DataDir != "" {
		providers = filepath.Join(c.config.DataDir, "providers_data.csv")
		receivers = filepath.Join(c.config.DataDir, "receivers_data.csv")
		listings = filepath.Join(c.config.DataDir, "food_listings_data.csv")
		claims = filepath.Join(c.config.DataDir, "claims_data.csv")
	}

	files := map[entities.Kind]string{
		entities.KindProvider:    providers,
		entities.KindReceiver:    receivers,
		entities.KindFoodListing: listings,
		entities.KindClaim:       claims,
	}

	for kind, path := range files {
		if path == "" {
			return nil, fmt.Errorf("no input file for %s: use -data <dir> or the individual file flags", kind)
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("%s file not found: %s", kind, path)
		}
	}
	return files, nil
}

// loadData ingests the four CSV files in dependency order so parent
// rows exist before their children arrive.
func (c *ReportCommand) loadData(store repositories.Store, files map[entities.Kind]string) error {
	loader := services.NewLoader(store)
	order := []entities.Kind{
		entities.KindProvider,
		entities.KindReceiver,
		entities.KindFoodListing,
		entities.KindClaim,
	}

	for _, kind := range order {
		summary, err := c.loadFile(loader, kind, files[kind])
		if err != nil {
			return fmt.Errorf("error loading %s: %w", kind, err)
		}
		if c.config.Verbose || summary.Rejected > 0 {
			output.RenderSummary(c.out, summary)
		}
	}
	if c.config.Verbose {
		fmt.Fprintln(c.out)
	}
	return nil
}

func (c *ReportCommand) loadFile(loader *services.Loader, kind entities.Kind, path string) (*dto.LoadSummary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return loader.LoadCSV(kind, f)
}

// printHeader prints the command header information
func (c *ReportCommand) printHeader(files map[entities.Kind]string) {
	fmt.Fprintf(c.out, "🍲 Foodlink Reports\n")
	fmt.Fprintf(c.out, "Input files:\n")
	fmt.Fprintf(c.out, "  Providers: %s\n", files[entities.KindProvider])
	fmt.Fprintf(c.out, "  Receivers: %s\n", files[entities.KindReceiver])
	fmt.Fprintf(c.out, "  Listings: %s\n", files[entities.KindFoodListing])
	fmt.Fprintf(c.out, "  Claims: %s\n", files[entities.KindClaim])
	fmt.Fprintf(c.out, "Store: %s\n", c.config.Driver)
	fmt.Fprintf(c.out, "Output format: %s\n", c.config.Format)
	fmt.Fprintln(c.out)
}

// showHelp displays the help message
func (c *ReportCommand) showHelp() {
	fmt.Fprintf(c.out, `Foodlink - surplus food donation reports

USAGE:
    foodlink -data <directory> -query <name>     # Run one catalog query
    foodlink -data <directory> -all              # Run every catalog query
    foodlink -list                               # List available queries

OPTIONS:
    -config <file>      Path to YAML config file
    -data <dir>         Directory containing the four CSV data files
    -providers <file>   Path to providers CSV file
    -receivers <file>   Path to receivers CSV file
    -listings <file>    Path to food listings CSV file
    -claims <file>      Path to claims CSV file
    -store <driver>     Storage backend: memory, sqlite (default: memory)
    -db <file>          SQLite database path (sqlite driver only)
    -query <name>       Catalog query to run
    -all                Run the full catalog
    -list               List catalog queries and exit
    -format <fmt>       Output format: text, json, csv (default: text)
    -city <name>        City filter for city-scoped queries
    -days <n>           Window size for expiring_within (default: 7)
    -limit <n>          Row cap for top-N queries (default: 10)
    -now <date>         Reference date as YYYY-MM-DD (default: today)
    -verbose            Enable verbose output
    -help               Show this help message

DATA DIRECTORY STRUCTURE:
    data/
    ├── providers_data.csv
    ├── receivers_data.csv
    ├── food_listings_data.csv
    └── claims_data.csv

EXAMPLES:
    # Row counts of all four tables
    foodlink -data data -query table_counts

    # Ten receivers with the most claims, as JSON
    foodlink -data data -query top_receivers_by_claims -format json

    # Listings expiring in the next 3 days
    foodlink -data data -query expiring_within -days 3

    # Full catalog against a SQLite copy of the dataset
    foodlink -data data -store sqlite -db foodlink.db -all
`)
}
