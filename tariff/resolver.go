/*
resolver.go - Tier matching and breakdown rendering

PURPOSE:
  Resolves (role, hours worked) to a monetary amount plus a human-readable
  breakdown string. The breakdown is stored on the payment record so an
  auditor can see exactly how an amount was derived.

MATCHING RULES:
  Tiers are scanned in declared order; the FIRST tier with
  hours > From and (hours <= To or To unbounded) wins. The engine does not
  detect overlapping tiers - with overlap, resolution is order-dependent.
  Overlap is rejected at configuration time instead (see validate.go).

  The unbounded clause exists so the final open-ended tier still matches
  when hours is supplied exactly at a boundary with the sentinel above it.

FALLBACK:
  A role without tiers but with an hourly rate resolves to rate * hours.
  A role with neither is not resolvable.

BREAKDOWN FORMAT:
  Tiered:  "6h (4-8h tier) = €25"      (unbounded upper bound renders as ∞)
  Hourly:  "5h @ €18/h"

SEE ALSO:
  - validate.go: Configuration-time tier validation
  - generator.go: Appends the travel clause and stores the breakdown
*/
package tariff

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Resolution is the outcome of a successful tariff resolution.
type Resolution struct {
	Amount    decimal.Decimal
	Breakdown string
}

// Resolve computes the base amount for a role and hours worked. A nil role
// means the assignment's role name matched no configuration. Errors unwrap
// to ErrRoleNotResolvable, ErrNoTierMatch, or ErrRoleUnconfigured.
func Resolve(role *Role, hours float64, currency string) (Resolution, error) {
	if role == nil {
		return Resolution{}, &NotResolvableError{Hours: hours, reason: ErrRoleNotResolvable}
	}

	spec := role.Spec()
	switch spec.Kind {
	case RateTiered:
		for _, tier := range spec.Tiers {
			if hours > tier.From && (hours <= tier.To || tier.Unbounded()) {
				breakdown := fmt.Sprintf("%sh (%s-%sh tier) = %s%s",
					formatQty(hours), formatQty(tier.From), tierToDisplay(tier),
					currency, tier.Rate.String())
				return Resolution{Amount: tier.Rate, Breakdown: breakdown}, nil
			}
		}
		return Resolution{}, &NotResolvableError{Role: role.Name, Hours: hours, reason: ErrNoTierMatch}

	case RateHourly:
		amount := spec.Hourly.Mul(decimal.NewFromFloat(hours))
		breakdown := fmt.Sprintf("%sh @ %s%s/h",
			formatQty(hours), currency, spec.Hourly.String())
		return Resolution{Amount: amount, Breakdown: breakdown}, nil

	default:
		return Resolution{}, &NotResolvableError{Role: role.Name, Hours: hours, reason: ErrRoleUnconfigured}
	}
}

func tierToDisplay(t Tier) string {
	if t.Unbounded() {
		return "∞"
	}
	return formatQty(t.To)
}

// formatQty renders hours/kilometers without trailing zeros (6 not 6.00,
// but 5.5 stays 5.5).
func formatQty(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatMoney renders an amount for display, rounded to 2 decimals.
// Internal arithmetic keeps full precision; rounding is presentation-only.
func FormatMoney(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
