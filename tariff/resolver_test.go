package tariff_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/courtside/tariff-engine/tariff"
)

// =============================================================================
// TEST FIXTURES
// =============================================================================

func rate(v int) decimal.Decimal { return decimal.NewFromInt(int64(v)) }

// starterRole is the canonical three-tier table: (0,4]=15, (4,8]=25, (8,∞)=35.
func starterRole() tariff.Role {
	return tariff.Role{
		Name: "Starter",
		Rates: []tariff.Tier{
			{From: 0, To: 4, Rate: rate(15)},
			{From: 4, To: 8, Rate: rate(25)},
			{From: 8, To: 999, Rate: rate(35)},
		},
	}
}

// =============================================================================
// TIER MATCHING
// =============================================================================

func TestResolve_TierIntervals(t *testing.T) {
	// Hours strictly within (from, to] resolve to exactly that tier's rate.
	role := starterRole()

	cases := []struct {
		hours float64
		want  int
	}{
		{0.5, 15},
		{2, 15},
		{3.99, 15},
		{4.01, 25},
		{6, 25},
		{7.5, 25},
		{8.01, 35},
		{12, 35},
		{100, 35},
	}
	for _, tc := range cases {
		res, err := tariff.Resolve(&role, tc.hours, "€")
		if err != nil {
			t.Fatalf("hours=%v: unexpected error: %v", tc.hours, err)
		}
		if !res.Amount.Equal(rate(tc.want)) {
			t.Errorf("hours=%v: expected %d, got %v", tc.hours, tc.want, res.Amount)
		}
	}
}

func TestResolve_BoundaryHours(t *testing.T) {
	// hours == tier.to matches that tier (inclusive upper bound);
	// hours == tier.from falls through to the tier below.
	role := starterRole()

	res, err := tariff.Resolve(&role, 4, "€")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Amount.Equal(rate(15)) {
		t.Errorf("hours=4 should match the (0,4] tier, got %v", res.Amount)
	}

	res, err = tariff.Resolve(&role, 8, "€")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Amount.Equal(rate(25)) {
		t.Errorf("hours=8 should match the (4,8] tier, got %v", res.Amount)
	}
}

func TestResolve_UnboundedTopTier(t *testing.T) {
	// Any hours above the top tier's lower bound match, regardless of
	// magnitude - including values past the sentinel itself.
	role := starterRole()

	for _, hours := range []float64{8.5, 50, 999, 5000} {
		res, err := tariff.Resolve(&role, hours, "€")
		if err != nil {
			t.Fatalf("hours=%v: unexpected error: %v", hours, err)
		}
		if !res.Amount.Equal(rate(35)) {
			t.Errorf("hours=%v: expected top tier rate 35, got %v", hours, res.Amount)
		}
	}
}

func TestResolve_ZeroHours_NoTierMatch(t *testing.T) {
	// 0 is not > 0, so the lowest tier's exclusive lower bound excludes it.
	role := starterRole()

	_, err := tariff.Resolve(&role, 0, "€")
	if !errors.Is(err, tariff.ErrNoTierMatch) {
		t.Fatalf("expected ErrNoTierMatch, got %v", err)
	}

	_, err = tariff.Resolve(&role, -2, "€")
	if !errors.Is(err, tariff.ErrNoTierMatch) {
		t.Fatalf("negative hours: expected ErrNoTierMatch, got %v", err)
	}
}

func TestResolve_FirstMatchWins(t *testing.T) {
	// With overlapping tiers the first in declared order is used.
	role := tariff.Role{
		Name: "Overlap",
		Rates: []tariff.Tier{
			{From: 0, To: 10, Rate: rate(20)},
			{From: 4, To: 8, Rate: rate(99)},
		},
	}

	res, err := tariff.Resolve(&role, 6, "€")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Amount.Equal(rate(20)) {
		t.Errorf("expected first declared tier to win, got %v", res.Amount)
	}
}

// =============================================================================
// FALLBACKS AND FAILURES
// =============================================================================

func TestResolve_HourlyFallback(t *testing.T) {
	role := tariff.Role{Name: "Timekeeper", HourlyRate: rate(18)}

	res, err := tariff.Resolve(&role, 5, "€")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Amount.Equal(rate(90)) {
		t.Errorf("expected 90, got %v", res.Amount)
	}
	if res.Breakdown != "5h @ €18/h" {
		t.Errorf("unexpected breakdown: %q", res.Breakdown)
	}
}

func TestResolve_TiersTakePrecedenceOverHourly(t *testing.T) {
	role := starterRole()
	role.HourlyRate = rate(18)

	res, err := tariff.Resolve(&role, 6, "€")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Amount.Equal(rate(25)) {
		t.Errorf("non-empty tiers must win over hourly rate, got %v", res.Amount)
	}
}

func TestResolve_NilRole(t *testing.T) {
	_, err := tariff.Resolve(nil, 6, "€")
	if !errors.Is(err, tariff.ErrRoleNotResolvable) {
		t.Fatalf("expected ErrRoleNotResolvable, got %v", err)
	}
}

func TestResolve_UnconfiguredRole(t *testing.T) {
	role := tariff.Role{Name: "Helper"}

	_, err := tariff.Resolve(&role, 6, "€")
	if !errors.Is(err, tariff.ErrRoleUnconfigured) {
		t.Fatalf("expected ErrRoleUnconfigured, got %v", err)
	}
}

// =============================================================================
// BREAKDOWN RENDERING
// =============================================================================

func TestResolve_BreakdownFormat(t *testing.T) {
	role := starterRole()

	res, err := tariff.Resolve(&role, 6, "€")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Breakdown != "6h (4-8h tier) = €25" {
		t.Errorf("unexpected breakdown: %q", res.Breakdown)
	}
}

func TestResolve_BreakdownRendersInfinity(t *testing.T) {
	role := starterRole()

	res, err := tariff.Resolve(&role, 12, "€")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(res.Breakdown, "8-∞h tier") {
		t.Errorf("unbounded tier should render as ∞: %q", res.Breakdown)
	}
}

func TestResolve_BreakdownFractionalHours(t *testing.T) {
	role := starterRole()

	res, err := tariff.Resolve(&role, 5.5, "€")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(res.Breakdown, "5.5h ") {
		t.Errorf("fractional hours should keep their fraction: %q", res.Breakdown)
	}
}
