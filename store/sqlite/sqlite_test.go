package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/courtside/tariff-engine/store/sqlite"
	"github.com/courtside/tariff-engine/tariff"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestGetCompetition_AbsentReturnsNil(t *testing.T) {
	store := newTestStore(t)

	competition, err := store.GetCompetition(context.Background(), "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if competition != nil {
		t.Errorf("expected nil for absent competition, got %+v", competition)
	}
}

func TestGetSetting_UnsetReturnsEmpty(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	value, err := store.GetSetting(ctx, tariff.SettingCurrency)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != "" {
		t.Errorf("expected empty value for unset key, got %q", value)
	}

	if err := store.SetSetting(ctx, tariff.SettingCurrency, "€"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	value, err = store.GetSetting(ctx, tariff.SettingCurrency)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != "€" {
		t.Errorf("expected €, got %q", value)
	}
}

func TestCreatePayment_UniquePair(t *testing.T) {
	// The unique index on (competition_id, official_id) must surface as
	// ErrDuplicatePayment, not a raw SQL error.
	store := newTestStore(t)
	ctx := context.Background()

	payment := tariff.Payment{
		ID:            "pay-1",
		OfficialID:    "off-1",
		CompetitionID: "comp-1",
		Amount:        decimal.RequireFromString("28.70"),
		Date:          time.Date(2026, time.June, 13, 0, 0, 0, 0, time.UTC),
		Status:        tariff.StatusOwed,
	}
	if _, err := store.CreatePayment(ctx, payment); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}

	payment.ID = "pay-2"
	_, err := store.CreatePayment(ctx, payment)
	if !errors.Is(err, tariff.ErrDuplicatePayment) {
		t.Fatalf("expected ErrDuplicatePayment, got %v", err)
	}

	exists, err := store.PaymentExists(ctx, "comp-1", "off-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Error("PaymentExists should report the stored pair")
	}
}

func TestMarkPaymentPaid(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	payment := tariff.Payment{
		ID:            "pay-1",
		OfficialID:    "off-1",
		CompetitionID: "comp-1",
		Amount:        decimal.NewFromInt(25),
		Date:          time.Now().UTC(),
		Status:        tariff.StatusOwed,
	}
	if _, err := store.CreatePayment(ctx, payment); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	if err := store.MarkPaymentPaid(ctx, "pay-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	reloaded, err := store.GetPayment(ctx, "pay-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reloaded.Status != tariff.StatusPaid {
		t.Errorf("expected status paid, got %q", reloaded.Status)
	}

	if err := store.MarkPaymentPaid(ctx, "missing"); err == nil {
		t.Error("marking a missing payment should fail")
	}
}

func TestGetRoles_ParsesStoredConfig(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	record := sqlite.RoleRecord{
		ID:   "role-1",
		Name: "Starter",
		ConfigJSON: `{"name": "Starter", "rates": [
			{"from": 0, "to": 4, "rate": 15},
			{"from": 4, "to": 8, "rate": 25},
			{"from": 8, "to": 999, "rate": 35}
		]}`,
	}
	if err := store.SaveRole(ctx, record); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	roles, err := store.GetRoles(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(roles) != 1 {
		t.Fatalf("expected 1 role, got %d", len(roles))
	}
	if roles[0].Name != "Starter" || len(roles[0].Rates) != 3 {
		t.Errorf("unexpected role: %+v", roles[0])
	}
}

func TestListAssignments_JoinsOfficialName(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.SaveOfficial(ctx, tariff.Official{ID: "off-1", Name: "Anna Keller"}); err != nil {
		t.Fatalf("save official failed: %v", err)
	}
	a := tariff.Assignment{
		ID:            "as-1",
		CompetitionID: "comp-1",
		OfficialID:    "off-1",
		Role:          "Starter",
		Hours:         6,
		Kilometers:    10,
	}
	if err := store.SaveAssignment(ctx, a); err != nil {
		t.Fatalf("save assignment failed: %v", err)
	}

	assignments, err := store.ListAssignments(ctx, "comp-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(assignments) != 1 {
		t.Fatalf("expected 1 assignment, got %d", len(assignments))
	}
	if assignments[0].OfficialName != "Anna Keller" {
		t.Errorf("expected joined official name, got %q", assignments[0].OfficialName)
	}
}

func TestPaymentAmount_RoundTripsFullPrecision(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	amount := decimal.RequireFromString("28.705")
	payment := tariff.Payment{
		ID:            "pay-1",
		OfficialID:    "off-1",
		CompetitionID: "comp-1",
		Amount:        amount,
		Date:          time.Now().UTC(),
		Status:        tariff.StatusOwed,
	}
	if _, err := store.CreatePayment(ctx, payment); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	reloaded, err := store.GetPayment(ctx, "pay-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reloaded.Amount.Equal(amount) {
		t.Errorf("amount must round-trip without rounding: %v vs %v", reloaded.Amount, amount)
	}
}
