/*
errors.go - Centralized error types for the tariff engine

PURPOSE:
  All engine error types in one place for consistency and discoverability.
  Per-assignment errors are recoverable: the generator accumulates them
  and moves on. Only a missing competition is fatal for a generation call.

ERROR CATEGORIES:
  1. Resolution errors - role lookup and tier matching failures
  2. Persistence errors - duplicate payments, storage failures

USAGE:
  Callers can branch on sentinels:

    if errors.Is(err, tariff.ErrDuplicatePayment) {
        // payment already generated for this pair, safe to report and skip
    }

SEE ALSO:
  - resolver.go: Produces NotResolvableError
  - generator.go: Accumulates these into the per-run error list
  - store/sqlite: Maps the uniqueness constraint to ErrDuplicatePayment
*/
package tariff

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrCompetitionNotFound is returned when the competition a generation
	// run targets does not exist. Fatal for the whole call.
	ErrCompetitionNotFound = errors.New("competition not found")

	// ErrRoleNotResolvable is returned when an assignment's role name has
	// no matching role configuration.
	ErrRoleNotResolvable = errors.New("role not found")

	// ErrNoTierMatch is returned when a tiered role has no tier covering
	// the given hours (e.g. hours of 0 satisfy no exclusive lower bound).
	ErrNoTierMatch = errors.New("no tier for given hours")

	// ErrRoleUnconfigured is returned when a role has neither tiers nor an
	// hourly rate.
	ErrRoleUnconfigured = errors.New("role has no rate configuration")

	// ErrDuplicatePayment is returned when a payment already exists for a
	// (competition, official) pair. The sqlite store maps its uniqueness
	// constraint violation to this error, closing the check-then-insert
	// race between concurrent generation runs.
	ErrDuplicatePayment = errors.New("payment already exists")

	// ErrInvalidRateTable is returned by rate table validation for
	// overlapping tiers, inverted bounds, or negative rates.
	ErrInvalidRateTable = errors.New("invalid rate table")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// NotResolvableError reports why a role/hours pair could not be resolved
// to an amount.
type NotResolvableError struct {
	Role   string
	Hours  float64
	reason error
}

func (e *NotResolvableError) Error() string {
	if e.Role == "" {
		return e.reason.Error()
	}
	return fmt.Sprintf("role %q: %v (%sh)", e.Role, e.reason, formatQty(e.Hours))
}

func (e *NotResolvableError) Unwrap() error {
	return e.reason
}

// TierError reports a rate table validation failure for one tier.
type TierError struct {
	Index  int
	Tier   Tier
	Detail string
}

func (e *TierError) Error() string {
	return fmt.Sprintf("tier %d (%s-%s): %s",
		e.Index, formatQty(e.Tier.From), formatQty(e.Tier.To), e.Detail)
}

func (e *TierError) Unwrap() error {
	return ErrInvalidRateTable
}
