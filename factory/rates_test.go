package factory_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/courtside/tariff-engine/factory"
	"github.com/courtside/tariff-engine/tariff"
)

const starterJSON = `{
	"name": "Starter",
	"rates": [
		{"from": 0, "to": 4, "rate": 15},
		{"from": 4, "to": 8, "rate": 25},
		{"from": 8, "to": 999, "rate": 35}
	]
}`

func TestParseRole_Tiered(t *testing.T) {
	f := factory.NewRateFactory()

	role, err := f.ParseRole(starterJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if role.Name != "Starter" {
		t.Errorf("expected name Starter, got %q", role.Name)
	}
	if len(role.Rates) != 3 {
		t.Fatalf("expected 3 tiers, got %d", len(role.Rates))
	}
	if !role.Rates[1].Rate.Equal(decimal.NewFromInt(25)) {
		t.Errorf("middle tier rate: expected 25, got %v", role.Rates[1].Rate)
	}
	if !role.Rates[2].Unbounded() {
		t.Error("top tier with to=999 should be unbounded")
	}
	if role.Spec().Kind != tariff.RateTiered {
		t.Errorf("expected tiered rate kind, got %v", role.Spec().Kind)
	}
}

func TestParseRole_HourlyFallback(t *testing.T) {
	f := factory.NewRateFactory()

	role, err := f.ParseRole(`{"name": "Timekeeper", "hourly_rate": 18}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if role.Spec().Kind != tariff.RateHourly {
		t.Errorf("expected hourly rate kind, got %v", role.Spec().Kind)
	}
	if !role.HourlyRate.Equal(decimal.NewFromInt(18)) {
		t.Errorf("expected hourly rate 18, got %v", role.HourlyRate)
	}
}

func TestParseRole_TiersTakePrecedence(t *testing.T) {
	f := factory.NewRateFactory()

	role, err := f.ParseRole(`{
		"name": "Mixed",
		"hourly_rate": 18,
		"rates": [{"from": 0, "to": 999, "rate": 40}]
	}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if role.Spec().Kind != tariff.RateTiered {
		t.Error("non-empty rates must take precedence over hourly_rate")
	}
}

func TestParseRole_RejectsOverlap(t *testing.T) {
	f := factory.NewRateFactory()

	_, err := f.ParseRole(`{
		"name": "Bad",
		"rates": [
			{"from": 0, "to": 6, "rate": 15},
			{"from": 4, "to": 8, "rate": 25}
		]
	}`)
	if !errors.Is(err, tariff.ErrInvalidRateTable) {
		t.Fatalf("expected ErrInvalidRateTable, got %v", err)
	}
}

func TestParseRole_RequiresName(t *testing.T) {
	f := factory.NewRateFactory()

	if _, err := f.ParseRole(`{"hourly_rate": 18}`); err == nil {
		t.Fatal("expected error for missing name")
	}
}

func TestParseRole_RejectsMalformedJSON(t *testing.T) {
	f := factory.NewRateFactory()

	if _, err := f.ParseRole(`{"name": `); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestToJSON_RoundTrip(t *testing.T) {
	f := factory.NewRateFactory()

	role, err := f.ParseRole(starterJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	back, err := f.FromJSON(f.ToJSON(role))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if back.Name != role.Name || len(back.Rates) != len(role.Rates) {
		t.Errorf("round trip changed the role: %+v vs %+v", back, role)
	}
}
