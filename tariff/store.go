/*
store.go - Persistence collaborator interfaces

PURPOSE:
  Defines the interface between the engine and its persistence layer. The
  engine never owns persistence: it reads competitions, assignments, roles,
  and settings, and writes payment records. Different implementations can
  use SQLite, PostgreSQL, or in-memory storage.

DUPLICATE GUARD CONTRACT:
  PaymentExists must be checked before CreatePayment. On top of that,
  implementations should enforce a uniqueness constraint on
  (competition_id, official_id) and return ErrDuplicatePayment on
  violation - the existence check alone leaves a race window between two
  concurrent generation runs for the same competition.

NULL SEMANTICS:
  GetCompetition returns (nil, nil) when the competition does not exist;
  GetSetting returns ("", nil) when the key is unset. Errors are reserved
  for storage failures.

IMPLEMENTATIONS:
  - store/sqlite: Production SQLite (same SQL shape works for PostgreSQL)
  - tariff/store:  In-memory for testing/dev

SEE ALSO:
  - generator.go: The only engine-side consumer of these interfaces
*/
package tariff

import "context"

// =============================================================================
// COLLABORATOR INTERFACES
// =============================================================================

// CompetitionReader looks up the competition a generation run targets.
type CompetitionReader interface {
	// GetCompetition returns (nil, nil) when no such competition exists.
	GetCompetition(ctx context.Context, id CompetitionID) (*Competition, error)
}

// AssignmentReader lists a competition's roster.
type AssignmentReader interface {
	ListAssignments(ctx context.Context, competitionID CompetitionID) ([]Assignment, error)
}

// RoleReader returns the current role configuration.
type RoleReader interface {
	GetRoles(ctx context.Context) ([]Role, error)
}

// SettingReader reads keyed configuration values.
type SettingReader interface {
	// GetSetting returns ("", nil) when the key is unset.
	GetSetting(ctx context.Context, key string) (string, error)
}

// PaymentWriter is the duplicate guard plus payment persistence.
type PaymentWriter interface {
	// PaymentExists reports whether a payment is already keyed by the
	// (competition, official) pair.
	PaymentExists(ctx context.Context, competitionID CompetitionID, officialID OfficialID) (bool, error)

	// CreatePayment persists a new payment. Implementations enforcing the
	// pair uniqueness constraint return ErrDuplicatePayment on violation.
	CreatePayment(ctx context.Context, p Payment) (PaymentID, error)
}

// Store aggregates everything a generation run needs.
type Store interface {
	CompetitionReader
	AssignmentReader
	RoleReader
	SettingReader
	PaymentWriter
}
