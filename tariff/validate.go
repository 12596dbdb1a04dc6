/*
validate.go - Configuration-time rate table validation

PURPOSE:
  The resolver deliberately stays first-match and never inspects a rate
  table for consistency. Validation happens once, when a role is configured:
  the factory and the role-create API reject tables where resolution would
  be order-dependent (overlap) or nonsensical (inverted bounds, negative
  rates) before they are ever stored.

SEE ALSO:
  - resolver.go: First-match semantics this validation protects
  - factory/rates.go: Applies ValidateTiers when parsing role config
*/
package tariff

import "math"

// ValidateTiers rejects tiers with inverted bounds, negative rates, or
// pairwise overlap. Tables do not have to be gap-free. All errors unwrap
// to ErrInvalidRateTable.
func ValidateTiers(tiers []Tier) error {
	for i, t := range tiers {
		if t.From < 0 {
			return &TierError{Index: i, Tier: t, Detail: "negative lower bound"}
		}
		if !t.Unbounded() && t.To <= t.From {
			return &TierError{Index: i, Tier: t, Detail: "upper bound must exceed lower bound"}
		}
		if t.Rate.IsNegative() {
			return &TierError{Index: i, Tier: t, Detail: "negative rate"}
		}
	}

	// Pairwise overlap on the half-open-above intervals (From, To].
	for i := 0; i < len(tiers); i++ {
		for j := i + 1; j < len(tiers); j++ {
			if overlaps(tiers[i], tiers[j]) {
				return &TierError{Index: j, Tier: tiers[j], Detail: "overlaps earlier tier"}
			}
		}
	}
	return nil
}

func overlaps(a, b Tier) bool {
	return a.From < effectiveTo(b) && b.From < effectiveTo(a)
}

func effectiveTo(t Tier) float64 {
	if t.Unbounded() {
		return math.Inf(1)
	}
	return t.To
}
