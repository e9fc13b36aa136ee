package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/chetanu/foodlink/pkg/domain/entities"
	"github.com/chetanu/foodlink/pkg/domain/repositories"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// timeLayout is how dates and timestamps are persisted. RFC3339 keeps
// lexical order equal to chronological order in the TEXT columns.
const timeLayout = time.RFC3339

// Store is a SQLite-backed implementation of repositories.Store.
// Ingestion is serialized by the caller; cascading deletes run inside
// a single transaction so readers only see fully-committed state.
type Store struct {
	conn *sql.DB
}

// New opens (and if necessary creates) a SQLite database at path
func New(path string) (*Store, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// a single connection keeps :memory: databases coherent and
	// serializes writers
	conn.SetMaxOpenConns(1)

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Verify interface compliance
var _ repositories.Store = (*Store)(nil)

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS providers (
		provider_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		address TEXT,
		city TEXT NOT NULL,
		contact TEXT
	);

	CREATE TABLE IF NOT EXISTS receivers (
		receiver_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		city TEXT NOT NULL,
		contact TEXT
	);

	CREATE TABLE IF NOT EXISTS food_listings (
		food_id INTEGER PRIMARY KEY,
		food_name TEXT NOT NULL,
		quantity INTEGER NOT NULL CHECK (quantity >= 0),
		expiry_date TEXT NOT NULL,
		provider_id INTEGER NOT NULL REFERENCES providers(provider_id),
		provider_type TEXT NOT NULL,
		location TEXT NOT NULL,
		food_type TEXT NOT NULL,
		meal_type TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS claims (
		claim_id INTEGER PRIMARY KEY,
		food_id INTEGER NOT NULL REFERENCES food_listings(food_id),
		receiver_id INTEGER NOT NULL REFERENCES receivers(receiver_id),
		status TEXT NOT NULL,
		timestamp TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_listings_provider ON food_listings(provider_id);
	CREATE INDEX IF NOT EXISTS idx_claims_food ON claims(food_id);
	CREATE INDEX IF NOT EXISTS idx_claims_receiver ON claims(receiver_id);
	`

	_, err := s.conn.Exec(schema)
	return err
}

// AddProvider validates and inserts a provider
func (s *Store) AddProvider(p *entities.Provider) error {
	if err := p.Validate(); err != nil {
		return err
	}
	exists, err := s.exists(`SELECT 1 FROM providers WHERE provider_id = ?`, int64(p.ID))
	if err != nil {
		return err
	}
	if exists {
		return &entities.ValidationError{Field: "Provider_ID", Reason: fmt.Sprintf("duplicate id %d", p.ID)}
	}
	_, err = s.conn.Exec(
		`INSERT INTO providers (provider_id, name, type, address, city, contact) VALUES (?, ?, ?, ?, ?, ?)`,
		int64(p.ID), p.Name, p.Type.String(), p.Address, p.City, p.Contact,
	)
	return err
}

// AddReceiver validates and inserts a receiver
func (s *Store) AddReceiver(r *entities.Receiver) error {
	if err := r.Validate(); err != nil {
		return err
	}
	exists, err := s.exists(`SELECT 1 FROM receivers WHERE receiver_id = ?`, int64(r.ID))
	if err != nil {
		return err
	}
	if exists {
		return &entities.ValidationError{Field: "Receiver_ID", Reason: fmt.Sprintf("duplicate id %d", r.ID)}
	}
	_, err = s.conn.Exec(
		`INSERT INTO receivers (receiver_id, name, type, city, contact) VALUES (?, ?, ?, ?, ?)`,
		int64(r.ID), r.Name, r.Type.String(), r.City, r.Contact,
	)
	return err
}

// AddFoodListing validates and inserts a listing. The owning provider
// must already exist.
func (s *Store) AddFoodListing(l *entities.FoodListing) error {
	if err := l.Validate(); err != nil {
		return err
	}
	exists, err := s.exists(`SELECT 1 FROM food_listings WHERE food_id = ?`, int64(l.ID))
	if err != nil {
		return err
	}
	if exists {
		return &entities.ValidationError{Field: "Food_ID", Reason: fmt.Sprintf("duplicate id %d", l.ID)}
	}
	parentExists, err := s.exists(`SELECT 1 FROM providers WHERE provider_id = ?`, int64(l.ProviderID))
	if err != nil {
		return err
	}
	if !parentExists {
		return &entities.ReferentialError{Field: "Provider_ID", MissingID: int64(l.ProviderID)}
	}
	_, err = s.conn.Exec(
		`INSERT INTO food_listings
		 (food_id, food_name, quantity, expiry_date, provider_id, provider_type, location, food_type, meal_type)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		int64(l.ID), l.Name, int64(l.Quantity), l.ExpiryDate.Format(timeLayout),
		int64(l.ProviderID), l.ProviderType.String(), l.Location, l.FoodType.String(), l.MealType.String(),
	)
	return err
}

// AddClaim validates and inserts a claim. Both the claimed listing and
// the claiming receiver must already exist.
func (s *Store) AddClaim(c *entities.Claim) error {
	if err := c.Validate(); err != nil {
		return err
	}
	exists, err := s.exists(`SELECT 1 FROM claims WHERE claim_id = ?`, int64(c.ID))
	if err != nil {
		return err
	}
	if exists {
		return &entities.ValidationError{Field: "Claim_ID", Reason: fmt.Sprintf("duplicate id %d", c.ID)}
	}
	foodExists, err := s.exists(`SELECT 1 FROM food_listings WHERE food_id = ?`, int64(c.FoodID))
	if err != nil {
		return err
	}
	if !foodExists {
		return &entities.ReferentialError{Field: "Food_ID", MissingID: int64(c.FoodID)}
	}
	receiverExists, err := s.exists(`SELECT 1 FROM receivers WHERE receiver_id = ?`, int64(c.ReceiverID))
	if err != nil {
		return err
	}
	if !receiverExists {
		return &entities.ReferentialError{Field: "Receiver_ID", MissingID: int64(c.ReceiverID)}
	}
	_, err = s.conn.Exec(
		`INSERT INTO claims (claim_id, food_id, receiver_id, status, timestamp) VALUES (?, ?, ?, ?, ?)`,
		int64(c.ID), int64(c.FoodID), int64(c.ReceiverID), c.Status.String(), c.Timestamp.Format(timeLayout),
	)
	return err
}

// Providers returns all providers ordered by id ascending
func (s *Store) Providers() ([]*entities.Provider, error) {
	rows, err := s.conn.Query(
		`SELECT provider_id, name, type, address, city, contact FROM providers ORDER BY provider_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var providers []*entities.Provider
	for rows.Next() {
		var p entities.Provider
		var id int64
		var typeStr string
		if err := rows.Scan(&id, &p.Name, &typeStr, &p.Address, &p.City, &p.Contact); err != nil {
			return nil, err
		}
		p.ID = entities.ProviderID(id)
		if p.Type, err = entities.ParseProviderType(typeStr); err != nil {
			return nil, fmt.Errorf("provider %d: %w", id, err)
		}
		providers = append(providers, &p)
	}
	return providers, rows.Err()
}

// Receivers returns all receivers ordered by id ascending
func (s *Store) Receivers() ([]*entities.Receiver, error) {
	rows, err := s.conn.Query(
		`SELECT receiver_id, name, type, city, contact FROM receivers ORDER BY receiver_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var receivers []*entities.Receiver
	for rows.Next() {
		var r entities.Receiver
		var id int64
		var typeStr string
		if err := rows.Scan(&id, &r.Name, &typeStr, &r.City, &r.Contact); err != nil {
			return nil, err
		}
		r.ID = entities.ReceiverID(id)
		if r.Type, err = entities.ParseReceiverType(typeStr); err != nil {
			return nil, fmt.Errorf("receiver %d: %w", id, err)
		}
		receivers = append(receivers, &r)
	}
	return receivers, rows.Err()
}

// FoodListings returns all listings ordered by id ascending
func (s *Store) FoodListings() ([]*entities.FoodListing, error) {
	rows, err := s.conn.Query(
		`SELECT food_id, food_name, quantity, expiry_date, provider_id, provider_type, location, food_type, meal_type
		 FROM food_listings ORDER BY food_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []*entities.FoodListing
	for rows.Next() {
		var l entities.FoodListing
		var id, providerID, quantity int64
		var expiry, providerType, foodType, mealType string
		if err := rows.Scan(&id, &l.Name, &quantity, &expiry, &providerID, &providerType, &l.Location, &foodType, &mealType); err != nil {
			return nil, err
		}
		l.ID = entities.FoodID(id)
		l.Quantity = entities.Quantity(quantity)
		l.ProviderID = entities.ProviderID(providerID)
		if l.ExpiryDate, err = time.Parse(timeLayout, expiry); err != nil {
			return nil, fmt.Errorf("food listing %d: %w", id, err)
		}
		if l.ProviderType, err = entities.ParseProviderType(providerType); err != nil {
			return nil, fmt.Errorf("food listing %d: %w", id, err)
		}
		if l.FoodType, err = entities.ParseFoodType(foodType); err != nil {
			return nil, fmt.Errorf("food listing %d: %w", id, err)
		}
		if l.MealType, err = entities.ParseMealType(mealType); err != nil {
			return nil, fmt.Errorf("food listing %d: %w", id, err)
		}
		listings = append(listings, &l)
	}
	return listings, rows.Err()
}

// Claims returns all claims ordered by id ascending
func (s *Store) Claims() ([]*entities.Claim, error) {
	rows, err := s.conn.Query(
		`SELECT claim_id, food_id, receiver_id, status, timestamp FROM claims ORDER BY claim_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var claims []*entities.Claim
	for rows.Next() {
		var c entities.Claim
		var id, foodID, receiverID int64
		var status, timestamp string
		if err := rows.Scan(&id, &foodID, &receiverID, &status, &timestamp); err != nil {
			return nil, err
		}
		c.ID = entities.ClaimID(id)
		c.FoodID = entities.FoodID(foodID)
		c.ReceiverID = entities.ReceiverID(receiverID)
		if c.Status, err = entities.ParseClaimStatus(status); err != nil {
			return nil, fmt.Errorf("claim %d: %w", id, err)
		}
		if c.Timestamp, err = time.Parse(timeLayout, timestamp); err != nil {
			return nil, fmt.Errorf("claim %d: %w", id, err)
		}
		claims = append(claims, &c)
	}
	return claims, rows.Err()
}

// UpdateProvider replaces a stored provider record
func (s *Store) UpdateProvider(p *entities.Provider) error {
	if err := p.Validate(); err != nil {
		return err
	}
	result, err := s.conn.Exec(
		`UPDATE providers SET name = ?, type = ?, address = ?, city = ?, contact = ? WHERE provider_id = ?`,
		p.Name, p.Type.String(), p.Address, p.City, p.Contact, int64(p.ID),
	)
	if err != nil {
		return err
	}
	return requireAffected(result, fmt.Sprintf("provider %d", p.ID))
}

// UpdateReceiver replaces a stored receiver record
func (s *Store) UpdateReceiver(r *entities.Receiver) error {
	if err := r.Validate(); err != nil {
		return err
	}
	result, err := s.conn.Exec(
		`UPDATE receivers SET name = ?, type = ?, city = ?, contact = ? WHERE receiver_id = ?`,
		r.Name, r.Type.String(), r.City, r.Contact, int64(r.ID),
	)
	if err != nil {
		return err
	}
	return requireAffected(result, fmt.Sprintf("receiver %d", r.ID))
}

// UpdateFoodListing replaces a stored listing record. Re-parenting to
// another provider is referentially checked.
func (s *Store) UpdateFoodListing(l *entities.FoodListing) error {
	if err := l.Validate(); err != nil {
		return err
	}
	parentExists, err := s.exists(`SELECT 1 FROM providers WHERE provider_id = ?`, int64(l.ProviderID))
	if err != nil {
		return err
	}
	if !parentExists {
		return &entities.ReferentialError{Field: "Provider_ID", MissingID: int64(l.ProviderID)}
	}
	result, err := s.conn.Exec(
		`UPDATE food_listings
		 SET food_name = ?, quantity = ?, expiry_date = ?, provider_id = ?, provider_type = ?, location = ?, food_type = ?, meal_type = ?
		 WHERE food_id = ?`,
		l.Name, int64(l.Quantity), l.ExpiryDate.Format(timeLayout), int64(l.ProviderID),
		l.ProviderType.String(), l.Location, l.FoodType.String(), l.MealType.String(), int64(l.ID),
	)
	if err != nil {
		return err
	}
	return requireAffected(result, fmt.Sprintf("food listing %d", l.ID))
}

// UpdateClaimStatus moves a claim through its lifecycle
func (s *Store) UpdateClaimStatus(id entities.ClaimID, status entities.ClaimStatus) error {
	if _, err := entities.ParseClaimStatus(status.String()); err != nil {
		return &entities.ValidationError{Field: "Status", Reason: "unknown claim status"}
	}
	result, err := s.conn.Exec(
		`UPDATE claims SET status = ? WHERE claim_id = ?`, status.String(), int64(id))
	if err != nil {
		return err
	}
	return requireAffected(result, fmt.Sprintf("claim %d", id))
}

// DeleteProvider removes a provider, its listings, and transitively the
// claims against those listings, all in one transaction.
func (s *Store) DeleteProvider(id entities.ProviderID) (*repositories.CascadeResult, error) {
	tx, err := s.conn.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	exists, err := existsTx(tx, `SELECT 1 FROM providers WHERE provider_id = ?`, int64(id))
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("provider %d: %w", id, repositories.ErrNotFound)
	}

	result := &repositories.CascadeResult{}
	if result.ClaimsRemoved, err = execCount(tx,
		`DELETE FROM claims WHERE food_id IN (SELECT food_id FROM food_listings WHERE provider_id = ?)`, int64(id)); err != nil {
		return nil, err
	}
	if result.ListingsRemoved, err = execCount(tx,
		`DELETE FROM food_listings WHERE provider_id = ?`, int64(id)); err != nil {
		return nil, err
	}
	if _, err = tx.Exec(`DELETE FROM providers WHERE provider_id = ?`, int64(id)); err != nil {
		return nil, err
	}
	return result, tx.Commit()
}

// DeleteReceiver removes a receiver and the claims it made
func (s *Store) DeleteReceiver(id entities.ReceiverID) (*repositories.CascadeResult, error) {
	tx, err := s.conn.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	exists, err := existsTx(tx, `SELECT 1 FROM receivers WHERE receiver_id = ?`, int64(id))
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("receiver %d: %w", id, repositories.ErrNotFound)
	}

	result := &repositories.CascadeResult{}
	if result.ClaimsRemoved, err = execCount(tx,
		`DELETE FROM claims WHERE receiver_id = ?`, int64(id)); err != nil {
		return nil, err
	}
	if _, err = tx.Exec(`DELETE FROM receivers WHERE receiver_id = ?`, int64(id)); err != nil {
		return nil, err
	}
	return result, tx.Commit()
}

// DeleteFoodListing removes a listing and the claims against it
func (s *Store) DeleteFoodListing(id entities.FoodID) (*repositories.CascadeResult, error) {
	tx, err := s.conn.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	exists, err := existsTx(tx, `SELECT 1 FROM food_listings WHERE food_id = ?`, int64(id))
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("food listing %d: %w", id, repositories.ErrNotFound)
	}

	result := &repositories.CascadeResult{}
	if result.ClaimsRemoved, err = execCount(tx,
		`DELETE FROM claims WHERE food_id = ?`, int64(id)); err != nil {
		return nil, err
	}
	if _, err = tx.Exec(`DELETE FROM food_listings WHERE food_id = ?`, int64(id)); err != nil {
		return nil, err
	}
	return result, tx.Commit()
}

// DeleteClaim removes a single claim
func (s *Store) DeleteClaim(id entities.ClaimID) error {
	result, err := s.conn.Exec(`DELETE FROM claims WHERE claim_id = ?`, int64(id))
	if err != nil {
		return err
	}
	return requireAffected(result, fmt.Sprintf("claim %d", id))
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) exists(query string, args ...any) (bool, error) {
	var one int
	err := s.conn.QueryRow(query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func existsTx(tx *sql.Tx, query string, args ...any) (bool, error) {
	var one int
	err := tx.QueryRow(query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func execCount(tx *sql.Tx, query string, args ...any) (int, error) {
	result, err := tx.Exec(query, args...)
	if err != nil {
		return 0, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}

func requireAffected(result sql.Result, what string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", what, repositories.ErrNotFound)
	}
	return nil
}
