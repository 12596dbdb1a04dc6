/*
generator.go - Payment generation over a competition's roster

PURPOSE:
  Orchestrates one generation run: load the competition, snapshot roles and
  settings once, then walk the assignments sequentially - resolve the
  tariff, add travel cost, apply the duplicate guard, persist one payment
  per official with status "owed".

PARTIAL-FAILURE SEMANTICS:
  One bad assignment never aborts the batch. Every per-assignment failure
  (unknown role, no tier match, duplicate, persistence error) is appended
  to the returned error list with the official's name and processing
  continues. Only a missing competition ends the call immediately. There is
  no cross-batch rollback: each payment is an independent unit of work.

  Assignment outcome states:
    Pending -> Resolved -> Created
    Pending -> Resolved -> Skipped (duplicate)
    Pending -> Unresolved -> Error

SNAPSHOT RULE:
  Roles and settings are loaded once at the start of a run and never
  re-read mid-loop, so an admin edit during a long batch cannot produce a
  mixed-rate result.

SEE ALSO:
  - resolver.go: Per-assignment amount + breakdown
  - store.go: Collaborator contracts, including the duplicate guard
*/
package tariff

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Result is the complete outcome of one generation run: how many payments
// were created plus one message per skipped assignment, suitable for
// displaying to the user verbatim.
type Result struct {
	Created int
	Errors  []string
}

// Generator produces payment records for a competition's assigned
// officials. Safe for sequential use; two concurrent runs for the same
// competition are serialized only by the store's uniqueness constraint.
type Generator struct {
	store Store
}

func NewGenerator(store Store) *Generator {
	return &Generator{store: store}
}

// Generate creates one payment per assigned official for the competition.
// A missing competition yields Result{Errors: ["competition not found"]};
// a non-nil error is returned only for storage failures loading the run's
// inputs.
func (g *Generator) Generate(ctx context.Context, competitionID CompetitionID) (Result, error) {
	var result Result

	competition, err := g.store.GetCompetition(ctx, competitionID)
	if err != nil {
		return result, fmt.Errorf("load competition: %w", err)
	}
	if competition == nil {
		result.Errors = append(result.Errors, ErrCompetitionNotFound.Error())
		return result, nil
	}

	assignments, err := g.store.ListAssignments(ctx, competitionID)
	if err != nil {
		return result, fmt.Errorf("load assignments: %w", err)
	}

	roles, err := g.store.GetRoles(ctx)
	if err != nil {
		return result, fmt.Errorf("load roles: %w", err)
	}
	index := make(map[string]Role, len(roles))
	for _, r := range roles {
		index[r.Name] = r
	}

	settings, err := g.loadSettings(ctx)
	if err != nil {
		return result, fmt.Errorf("load settings: %w", err)
	}

	for _, a := range assignments {
		name := officialLabel(a)

		role, ok := index[a.Role]
		if !ok {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: role %q not found", name, a.Role))
			continue
		}

		resolution, err := Resolve(&role, a.Hours, settings.Currency)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", name, err))
			continue
		}

		amount := resolution.Amount
		notes := a.Role + ": " + resolution.Breakdown
		if a.Kilometers > 0 {
			travel := TravelCost(a.Kilometers, settings.TravelRatePerKm)
			amount = amount.Add(travel)
			notes += fmt.Sprintf(", %skm × %s%s = %s%s",
				formatQty(a.Kilometers), settings.Currency, FormatMoney(settings.TravelRatePerKm),
				settings.Currency, FormatMoney(travel))
		}

		exists, err := g.store.PaymentExists(ctx, competitionID, a.OfficialID)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: duplicate check failed: %v", name, err))
			continue
		}
		if exists {
			result.Errors = append(result.Errors, fmt.Sprintf("payment already exists for %s", name))
			continue
		}

		payment := Payment{
			ID:            PaymentID(uuid.NewString()),
			OfficialID:    a.OfficialID,
			CompetitionID: competitionID,
			Amount:        amount,
			Date:          competition.Date,
			Method:        settings.DefaultPaymentMethod,
			Status:        StatusOwed,
			Notes:         notes,
		}
		if _, err := g.store.CreatePayment(ctx, payment); err != nil {
			if errors.Is(err, ErrDuplicatePayment) {
				// Constraint caught a concurrent run between the existence
				// check and the insert.
				result.Errors = append(result.Errors, fmt.Sprintf("payment already exists for %s", name))
			} else {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: failed to create payment: %v", name, err))
			}
			continue
		}
		result.Created++
	}

	return result, nil
}

// loadSettings builds the immutable per-run snapshot, applying defaults
// for unset keys.
func (g *Generator) loadSettings(ctx context.Context) (Settings, error) {
	travelRate, err := g.store.GetSetting(ctx, SettingTravelRatePerKm)
	if err != nil {
		return Settings{}, err
	}
	if travelRate == "" {
		travelRate = DefaultTravelRatePerKm
	}

	method, err := g.store.GetSetting(ctx, SettingDefaultPaymentMethod)
	if err != nil {
		return Settings{}, err
	}
	if method == "" {
		method = DefaultPaymentMethod
	}

	currency, err := g.store.GetSetting(ctx, SettingCurrency)
	if err != nil {
		return Settings{}, err
	}
	if currency == "" {
		currency = DefaultCurrency
	}

	return Settings{
		TravelRatePerKm:      MustParseDecimal(travelRate),
		DefaultPaymentMethod: method,
		Currency:             currency,
	}, nil
}

func officialLabel(a Assignment) string {
	if a.OfficialName != "" {
		return a.OfficialName
	}
	return string(a.OfficialID)
}
