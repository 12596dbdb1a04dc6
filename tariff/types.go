/*
Package tariff provides the tariff resolution and payment generation engine.

PURPOSE:
  This package contains the domain types and algorithms for computing what
  a competition owes each assigned official. Given a roster of assignments
  (role, hours worked, travel distance) and a configured rate table, the
  engine deterministically resolves a monetary amount per official, adds
  travel reimbursement, and emits one payment record per official.

KEY CONCEPTS IN THIS FILE (types.go):
  - Role/Tier: Rate configuration - ordered hour intervals mapped to amounts
  - RateSpec: Tagged variant resolving the tiers-vs-hourly duality once
  - Assignment: One official working one competition (role, hours, km)
  - Payment: The generated record, with an auditable breakdown in Notes
  - Settings: Immutable per-run snapshot of travel rate, method, currency

DESIGN PRINCIPLES:
  1. Precision: Uses decimal.Decimal for money; rounding happens only at
     presentation time, never during accumulation
  2. Type Safety: Strong typing for IDs prevents mixing official and
     competition identifiers
  3. Determinism: Tier matching is first-match in declared order
  4. Auditability: Every payment carries the breakdown that produced it

USAGE:
  gen := tariff.NewGenerator(store)
  result, err := gen.Generate(ctx, competitionID)
  // result.Created, result.Errors

SEE ALSO:
  - resolver.go: Tier matching and breakdown rendering
  - generator.go: Batch orchestration over a competition's roster
  - store.go: Persistence collaborator interfaces
*/
package tariff

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type OfficialID string
type CompetitionID string
type AssignmentID string
type RoleID string
type PaymentID string

// =============================================================================
// RATE CONFIGURATION - Tiers and the hourly fallback
// =============================================================================

// UnboundedTier is the sentinel upper bound denoting "no upper limit".
// Any tier whose To is at or above this value is treated as open-ended.
const UnboundedTier = 999

// Tier maps a half-open-above interval of hours to a fixed amount.
// Hours h match when h > From and h <= To (To inclusive); an unbounded
// tier matches any h > From.
type Tier struct {
	From float64
	To   float64
	Rate decimal.Decimal
}

// Unbounded reports whether this tier has no effective upper limit.
func (t Tier) Unbounded() bool { return t.To >= UnboundedTier }

// Role is a rate configuration for one officiating role. Either Rates
// (ordered tiers) or HourlyRate (legacy fallback) is set; non-empty Rates
// take precedence.
type Role struct {
	ID         RoleID
	Name       string
	Rates      []Tier
	HourlyRate decimal.Decimal
}

// RateKind tags the resolved shape of a role's rate configuration.
type RateKind int

const (
	RateUnconfigured RateKind = iota
	RateTiered
	RateHourly
)

// RateSpec is the tagged variant form of a role's rate configuration.
type RateSpec struct {
	Kind   RateKind
	Tiers  []Tier
	Hourly decimal.Decimal
}

// Spec resolves the tiers-vs-hourly duality once. Non-empty Rates win over
// HourlyRate; a role with neither is Unconfigured.
func (r Role) Spec() RateSpec {
	if len(r.Rates) > 0 {
		return RateSpec{Kind: RateTiered, Tiers: r.Rates}
	}
	if r.HourlyRate.IsPositive() {
		return RateSpec{Kind: RateHourly, Hourly: r.HourlyRate}
	}
	return RateSpec{Kind: RateUnconfigured}
}

// =============================================================================
// DOMAIN ENTITIES
// =============================================================================

// Official is a licensed official who can be assigned to competitions.
type Official struct {
	ID      OfficialID
	Name    string
	Email   string
	Address string
}

// Competition is an event officials work at.
type Competition struct {
	ID    CompetitionID
	Name  string
	Date  time.Time
	Venue string
	Notes string
}

// Assignment links one official to one competition. Role is matched by name
// against the configured roles at generation time. OfficialName is carried
// denormalized so per-assignment errors can name the official.
type Assignment struct {
	ID            AssignmentID
	CompetitionID CompetitionID
	OfficialID    OfficialID
	OfficialName  string
	Role          string
	Hours         float64
	Kilometers    float64
	Discipline    string
	Notes         string
}

// =============================================================================
// PAYMENT - Generated record, one per (competition, official) pair
// =============================================================================

type PaymentStatus string

const (
	StatusOwed PaymentStatus = "owed"
	StatusPaid PaymentStatus = "paid"
)

type Payment struct {
	ID            PaymentID
	OfficialID    OfficialID
	CompetitionID CompetitionID
	Amount        decimal.Decimal
	Date          time.Time
	Method        string
	Status        PaymentStatus
	Notes         string
	CreatedAt     time.Time
}

// =============================================================================
// SETTINGS - Per-run snapshot of process-wide configuration
// =============================================================================

// Setting keys understood by the engine.
const (
	SettingTravelRatePerKm      = "travel_rate_per_km"
	SettingDefaultPaymentMethod = "default_payment_method"
	SettingCurrency             = "currency"
)

// Defaults applied when a setting is unset.
const (
	DefaultTravelRatePerKm = "0.30"
	DefaultPaymentMethod   = "transfer"
	DefaultCurrency        = "€"
)

// Settings is the immutable snapshot a generation run works from. It is
// loaded once at the start of Generate and never re-read mid-loop, so an
// admin edit during a run cannot produce a mixed-rate batch.
type Settings struct {
	TravelRatePerKm      decimal.Decimal
	DefaultPaymentMethod string
	Currency             string
}

func MustParseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
