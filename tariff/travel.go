package tariff

import "github.com/shopspring/decimal"

// =============================================================================
// TRAVEL COST - Linear per-kilometer reimbursement
// =============================================================================

// TravelCost returns kilometers * ratePerKm. No cost accrues for zero or
// negative distances.
func TravelCost(kilometers float64, ratePerKm decimal.Decimal) decimal.Decimal {
	if kilometers <= 0 {
		return decimal.Zero
	}
	return ratePerKm.Mul(decimal.NewFromFloat(kilometers))
}
