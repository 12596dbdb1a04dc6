/*
Package factory provides JSON to Go role/rate-table conversion.

PURPOSE:
  Converts JSON role definitions into tariff.Role values. This enables rate
  configuration without code changes - an association admin can define
  tariffs in JSON, and the factory creates the proper Go structs.

JSON SCHEMA:
  {
    "name": "Starter",
    "rates": [
      {"from": 0, "to": 4, "rate": 15},
      {"from": 4, "to": 8, "rate": 25},
      {"from": 8, "to": 999, "rate": 35}
    ]
  }

  or the legacy hourly fallback:

  {
    "name": "Helper",
    "hourly_rate": 18
  }

  A "to" of 999 or more marks the open-ended top tier. Non-empty "rates"
  take precedence over "hourly_rate".

VALIDATION:
  ParseRole rejects overlapping tiers, inverted bounds, and negative rates
  up front, so first-match resolution is never order-dependent for stored
  configurations.

USAGE:
  f := factory.NewRateFactory()
  role, err := f.ParseRole(configJSON)

SEE ALSO:
  - tariff/types.go: Role and Tier definitions
  - tariff/validate.go: Tier validation rules applied here
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/courtside/tariff-engine/tariff"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// RoleJSON is the JSON representation of a role's rate configuration.
type RoleJSON struct {
	ID         string          `json:"id,omitempty"`
	Name       string          `json:"name"`
	Rates      []TierJSON      `json:"rates,omitempty"`
	HourlyRate decimal.Decimal `json:"hourly_rate,omitempty"`
}

// TierJSON represents one rate tier.
type TierJSON struct {
	From float64         `json:"from"`
	To   float64         `json:"to"`
	Rate decimal.Decimal `json:"rate"`
}

// =============================================================================
// FACTORY
// =============================================================================

type RateFactory struct{}

func NewRateFactory() *RateFactory {
	return &RateFactory{}
}

// ParseRole converts a JSON role definition into a tariff.Role, validating
// the rate table. Validation errors unwrap to tariff.ErrInvalidRateTable.
func (f *RateFactory) ParseRole(configJSON string) (tariff.Role, error) {
	var rj RoleJSON
	if err := json.Unmarshal([]byte(configJSON), &rj); err != nil {
		return tariff.Role{}, fmt.Errorf("invalid role config: %w", err)
	}
	return f.FromJSON(rj)
}

// FromJSON converts an already-decoded RoleJSON into a tariff.Role.
func (f *RateFactory) FromJSON(rj RoleJSON) (tariff.Role, error) {
	if rj.Name == "" {
		return tariff.Role{}, fmt.Errorf("role config: name is required")
	}

	role := tariff.Role{
		ID:         tariff.RoleID(rj.ID),
		Name:       rj.Name,
		HourlyRate: rj.HourlyRate,
	}
	for _, t := range rj.Rates {
		role.Rates = append(role.Rates, tariff.Tier{From: t.From, To: t.To, Rate: t.Rate})
	}

	if err := tariff.ValidateTiers(role.Rates); err != nil {
		return tariff.Role{}, fmt.Errorf("role %q: %w", rj.Name, err)
	}
	return role, nil
}

// ToJSON renders a role back into its JSON configuration form.
func (f *RateFactory) ToJSON(role tariff.Role) RoleJSON {
	rj := RoleJSON{
		ID:         string(role.ID),
		Name:       role.Name,
		HourlyRate: role.HourlyRate,
	}
	for _, t := range role.Rates {
		rj.Rates = append(rj.Rates, TierJSON{From: t.From, To: t.To, Rate: t.Rate})
	}
	return rj
}
