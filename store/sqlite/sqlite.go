/*
Package sqlite provides a SQLite-backed implementation of the storage
interfaces.

PURPOSE:
  Implements tariff.Store plus the CRUD surface the API needs (officials,
  competitions, assignments, roles, settings, payments) using SQLite. In
  production the same patterns apply to PostgreSQL - only minor SQL dialect
  differences.

DUPLICATE GUARD:
  The payments table carries a UNIQUE index on (competition_id,
  official_id). CreatePayment maps a violation of that index to
  tariff.ErrDuplicatePayment, so even two generation runs racing past the
  PaymentExists check cannot both insert.

KEY TABLES:
  officials:     Licensed officials
  competitions:  Events officials work at
  assignments:   Roster entries (competition x official, role, hours, km)
  roles:         Rate configuration as JSON, parsed via the factory
  settings:      Keyed configuration (travel rate, payment method, currency)
  payments:      Generated payment records, one per pair

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  multiple readers don't block and crash recovery improves.

USAGE:
  store, err := sqlite.New("./data/tariff.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  gen := tariff.NewGenerator(store)

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper migration
  tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - tariff/store.go: Interface definitions
  - tariff/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/courtside/tariff-engine/factory"
	"github.com/courtside/tariff-engine/tariff"
)

// Store implements tariff.Store and the CRUD surface using SQLite.
type Store struct {
	db    *sql.DB
	rates *factory.RateFactory
	mu    sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db, rates: factory.NewRateFactory()}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS officials (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT,
		address TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS competitions (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		date TEXT NOT NULL,
		venue TEXT,
		notes TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS assignments (
		id TEXT PRIMARY KEY,
		competition_id TEXT NOT NULL,
		official_id TEXT NOT NULL,
		role TEXT NOT NULL,
		hours REAL NOT NULL DEFAULT 0,
		kilometers REAL NOT NULL DEFAULT 0,
		discipline TEXT,
		notes TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_assignments_competition
		ON assignments(competition_id);
	CREATE INDEX IF NOT EXISTS idx_assignments_official
		ON assignments(official_id);

	-- Rate configuration stored as JSON, parsed via the factory
	CREATE TABLE IF NOT EXISTS roles (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		config_json TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS payments (
		id TEXT PRIMARY KEY,
		official_id TEXT NOT NULL,
		competition_id TEXT NOT NULL,
		amount TEXT NOT NULL,
		date TEXT NOT NULL,
		method TEXT,
		status TEXT NOT NULL DEFAULT 'owed',
		notes TEXT,
		created_at TEXT NOT NULL
	);

	-- CRITICAL: At most one generated payment per (competition, official).
	-- Closes the check-then-insert race between concurrent generation runs.
	CREATE UNIQUE INDEX IF NOT EXISTS idx_unique_payment_pair
		ON payments(competition_id, official_id);

	CREATE INDEX IF NOT EXISTS idx_payments_official
		ON payments(official_id);
	CREATE INDEX IF NOT EXISTS idx_payments_status
		ON payments(status);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// OFFICIALS
// =============================================================================

func (s *Store) SaveOfficial(ctx context.Context, o tariff.Official) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO officials (id, name, email, address, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name,
			email = excluded.email, address = excluded.address
	`, o.ID, o.Name, nullString(o.Email), nullString(o.Address), now())
	if err != nil {
		return fmt.Errorf("failed to save official: %w", err)
	}
	return nil
}

func (s *Store) GetOfficial(ctx context.Context, id tariff.OfficialID) (*tariff.Official, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		o              tariff.Official
		email, address sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, email, address FROM officials WHERE id = ?", id,
	).Scan(&o.ID, &o.Name, &email, &address)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get official: %w", err)
	}
	o.Email = email.String
	o.Address = address.String
	return &o, nil
}

func (s *Store) ListOfficials(ctx context.Context) ([]tariff.Official, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, email, address FROM officials ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list officials: %w", err)
	}
	defer rows.Close()

	var officials []tariff.Official
	for rows.Next() {
		var (
			o              tariff.Official
			email, address sql.NullString
		)
		if err := rows.Scan(&o.ID, &o.Name, &email, &address); err != nil {
			return nil, fmt.Errorf("failed to scan official: %w", err)
		}
		o.Email = email.String
		o.Address = address.String
		officials = append(officials, o)
	}
	return officials, rows.Err()
}

func (s *Store) DeleteOfficial(ctx context.Context, id tariff.OfficialID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM officials WHERE id = ?", id)
	return err
}

// =============================================================================
// COMPETITIONS
// =============================================================================

func (s *Store) SaveCompetition(ctx context.Context, c tariff.Competition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO competitions (id, name, date, venue, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name,
			date = excluded.date, venue = excluded.venue, notes = excluded.notes
	`, c.ID, c.Name, c.Date.UTC().Format(time.RFC3339), nullString(c.Venue), nullString(c.Notes), now())
	if err != nil {
		return fmt.Errorf("failed to save competition: %w", err)
	}
	return nil
}

// GetCompetition returns (nil, nil) when the competition does not exist.
func (s *Store) GetCompetition(ctx context.Context, id tariff.CompetitionID) (*tariff.Competition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		c            tariff.Competition
		date         string
		venue, notes sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, date, venue, notes FROM competitions WHERE id = ?", id,
	).Scan(&c.ID, &c.Name, &date, &venue, &notes)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get competition: %w", err)
	}
	c.Date, _ = time.Parse(time.RFC3339, date)
	c.Venue = venue.String
	c.Notes = notes.String
	return &c, nil
}

func (s *Store) ListCompetitions(ctx context.Context) ([]tariff.Competition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, date, venue, notes FROM competitions ORDER BY date DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list competitions: %w", err)
	}
	defer rows.Close()

	var competitions []tariff.Competition
	for rows.Next() {
		var (
			c            tariff.Competition
			date         string
			venue, notes sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.Name, &date, &venue, &notes); err != nil {
			return nil, fmt.Errorf("failed to scan competition: %w", err)
		}
		c.Date, _ = time.Parse(time.RFC3339, date)
		c.Venue = venue.String
		c.Notes = notes.String
		competitions = append(competitions, c)
	}
	return competitions, rows.Err()
}

func (s *Store) DeleteCompetition(ctx context.Context, id tariff.CompetitionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM competitions WHERE id = ?", id)
	return err
}

// =============================================================================
// ASSIGNMENTS
// =============================================================================

func (s *Store) SaveAssignment(ctx context.Context, a tariff.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO assignments
		(id, competition_id, official_id, role, hours, kilometers, discipline, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET role = excluded.role,
			hours = excluded.hours, kilometers = excluded.kilometers,
			discipline = excluded.discipline, notes = excluded.notes
	`, a.ID, a.CompetitionID, a.OfficialID, a.Role, a.Hours, a.Kilometers,
		nullString(a.Discipline), nullString(a.Notes), now())
	if err != nil {
		return fmt.Errorf("failed to save assignment: %w", err)
	}
	return nil
}

// ListAssignments returns the roster for a competition. The official's name
// is joined in so the generator can name officials in error messages.
func (s *Store) ListAssignments(ctx context.Context, competitionID tariff.CompetitionID) ([]tariff.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT a.id, a.competition_id, a.official_id, COALESCE(o.name, ''),
		       a.role, a.hours, a.kilometers, a.discipline, a.notes
		FROM assignments a
		LEFT JOIN officials o ON o.id = a.official_id
		WHERE a.competition_id = ?
		ORDER BY a.created_at ASC
	`, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	defer rows.Close()

	var assignments []tariff.Assignment
	for rows.Next() {
		var (
			a                 tariff.Assignment
			discipline, notes sql.NullString
		)
		if err := rows.Scan(&a.ID, &a.CompetitionID, &a.OfficialID, &a.OfficialName,
			&a.Role, &a.Hours, &a.Kilometers, &discipline, &notes); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		a.Discipline = discipline.String
		a.Notes = notes.String
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

func (s *Store) DeleteAssignment(ctx context.Context, id tariff.AssignmentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM assignments WHERE id = ?", id)
	return err
}

// =============================================================================
// ROLES - Rate configuration
// =============================================================================

// RoleRecord is the stored form of a role configuration.
type RoleRecord struct {
	ID         string
	Name       string
	ConfigJSON string
}

func (s *Store) SaveRole(ctx context.Context, r RoleRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO roles (id, name, config_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET config_json = excluded.config_json,
			updated_at = excluded.updated_at
	`, r.ID, r.Name, r.ConfigJSON, now(), now())
	if err != nil {
		return fmt.Errorf("failed to save role: %w", err)
	}
	return nil
}

func (s *Store) ListRoleRecords(ctx context.Context) ([]RoleRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, config_json FROM roles ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	defer rows.Close()

	var records []RoleRecord
	for rows.Next() {
		var r RoleRecord
		if err := rows.Scan(&r.ID, &r.Name, &r.ConfigJSON); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// GetRoles parses all stored role configurations. Invalid configurations
// are skipped rather than failing the whole lookup.
func (s *Store) GetRoles(ctx context.Context) ([]tariff.Role, error) {
	records, err := s.ListRoleRecords(ctx)
	if err != nil {
		return nil, err
	}

	var roles []tariff.Role
	for _, r := range records {
		role, err := s.rates.ParseRole(r.ConfigJSON)
		if err != nil {
			continue
		}
		role.ID = tariff.RoleID(r.ID)
		roles = append(roles, role)
	}
	return roles, nil
}

func (s *Store) DeleteRole(ctx context.Context, id tariff.RoleID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM roles WHERE id = ?", id)
	return err
}

// =============================================================================
// SETTINGS
// =============================================================================

// GetSetting returns ("", nil) when the key is unset.
func (s *Store) GetSetting(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var value string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get setting: %w", err)
	}
	return value, nil
}

func (s *Store) SetSetting(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value,
			updated_at = excluded.updated_at
	`, key, value, now())
	if err != nil {
		return fmt.Errorf("failed to set setting: %w", err)
	}
	return nil
}

func (s *Store) ListSettings(ctx context.Context) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT key, value FROM settings")
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		settings[key] = value
	}
	return settings, rows.Err()
}

// =============================================================================
// PAYMENTS (tariff.PaymentWriter plus listing)
// =============================================================================

// PaymentExists reports whether a payment is already keyed by the pair.
func (s *Store) PaymentExists(ctx context.Context, competitionID tariff.CompetitionID, officialID tariff.OfficialID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM payments WHERE competition_id = ? AND official_id = ?",
		competitionID, officialID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check payment existence: %w", err)
	}
	return count > 0, nil
}

// CreatePayment inserts a payment. A violation of the pair uniqueness
// index is returned as tariff.ErrDuplicatePayment.
func (s *Store) CreatePayment(ctx context.Context, p tariff.Payment) (tariff.PaymentID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO payments
		(id, official_id, competition_id, amount, date, method, status, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.OfficialID, p.CompetitionID, p.Amount.String(),
		p.Date.UTC().Format(time.RFC3339), nullString(p.Method), string(p.Status),
		nullString(p.Notes), createdAt.Format(time.RFC3339))
	if err != nil {
		if isUniqueConstraintError(err) {
			return "", tariff.ErrDuplicatePayment
		}
		return "", fmt.Errorf("failed to create payment: %w", err)
	}
	return p.ID, nil
}

func (s *Store) GetPayment(ctx context.Context, id tariff.PaymentID) (*tariff.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	payments, err := s.queryPayments(ctx, selectPayments+" WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(payments) == 0 {
		return nil, nil
	}
	return &payments[0], nil
}

func (s *Store) ListPayments(ctx context.Context) ([]tariff.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryPayments(ctx, selectPayments+" ORDER BY created_at DESC")
}

func (s *Store) ListPaymentsByCompetition(ctx context.Context, competitionID tariff.CompetitionID) ([]tariff.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryPayments(ctx,
		selectPayments+" WHERE competition_id = ? ORDER BY created_at ASC", competitionID)
}

// MarkPaymentPaid transitions a payment from owed to paid.
func (s *Store) MarkPaymentPaid(ctx context.Context, id tariff.PaymentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		"UPDATE payments SET status = ? WHERE id = ?", string(tariff.StatusPaid), id)
	if err != nil {
		return fmt.Errorf("failed to mark payment paid: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

const selectPayments = `
	SELECT id, official_id, competition_id, amount, date, method, status, notes, created_at
	FROM payments`

func (s *Store) queryPayments(ctx context.Context, query string, args ...any) ([]tariff.Payment, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	var payments []tariff.Payment
	for rows.Next() {
		var (
			p               tariff.Payment
			amount          string
			date, createdAt string
			method, notes   sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.OfficialID, &p.CompetitionID, &amount,
			&date, &method, &p.Status, &notes, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		p.Amount = tariff.MustParseDecimal(amount)
		p.Date, _ = time.Parse(time.RFC3339, date)
		p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		p.Method = method.String
		p.Notes = notes.String
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// Helper functions

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func isUniqueConstraintError(err error) bool {
	return err != nil && (strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "duplicate key"))
}
