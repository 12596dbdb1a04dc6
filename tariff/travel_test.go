package tariff_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/courtside/tariff-engine/tariff"
)

func TestTravelCost_Linear(t *testing.T) {
	ratePerKm := decimal.RequireFromString("0.37")

	cost10 := tariff.TravelCost(10, ratePerKm)
	if cost10.StringFixed(2) != "3.70" {
		t.Errorf("10km at 0.37: expected 3.70, got %v", cost10)
	}

	// travelCost(2k) == 2 * travelCost(k)
	cost20 := tariff.TravelCost(20, ratePerKm)
	if !cost20.Equal(cost10.Mul(decimal.NewFromInt(2))) {
		t.Errorf("travel cost must be linear: %v vs 2*%v", cost20, cost10)
	}
}

func TestTravelCost_NoCostForZeroOrNegative(t *testing.T) {
	ratePerKm := decimal.RequireFromString("0.37")

	if !tariff.TravelCost(0, ratePerKm).IsZero() {
		t.Error("0km must cost nothing")
	}
	if !tariff.TravelCost(-12, ratePerKm).IsZero() {
		t.Error("negative distance must cost nothing")
	}
}
