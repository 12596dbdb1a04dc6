/*
demo.go - Demo data seeding

PURPOSE:
  Loads a small, self-consistent data set: tiered and hourly roles,
  settings, a handful of officials, and one competition with a full
  roster. Useful for manual testing the generate-payments flow without
  clicking through the CRUD endpoints first.
*/
package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/courtside/tariff-engine/store/sqlite"
	"github.com/courtside/tariff-engine/tariff"
)

// LoadDemo seeds demo officials, roles, settings, and one competition
// with assignments. Idempotent for roles and settings; officials and the
// competition are created fresh each call.
func (h *Handler) LoadDemo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	roleConfigs := []string{
		`{"name": "Starter", "rates": [
			{"from": 0, "to": 4, "rate": 15},
			{"from": 4, "to": 8, "rate": 25},
			{"from": 8, "to": 999, "rate": 35}
		]}`,
		`{"name": "Referee", "rates": [
			{"from": 0, "to": 4, "rate": 20},
			{"from": 4, "to": 8, "rate": 35},
			{"from": 8, "to": 999, "rate": 50}
		]}`,
		`{"name": "Timekeeper", "hourly_rate": 18}`,
	}
	for _, cfg := range roleConfigs {
		role, err := h.rates.ParseRole(cfg)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to parse demo role", err)
			return
		}
		record := sqlite.RoleRecord{ID: uuid.NewString(), Name: role.Name, ConfigJSON: cfg}
		if err := h.Store.SaveRole(ctx, record); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save demo role", err)
			return
		}
	}

	settings := map[string]string{
		tariff.SettingTravelRatePerKm:      "0.37",
		tariff.SettingDefaultPaymentMethod: "transfer",
		tariff.SettingCurrency:             "€",
	}
	for key, value := range settings {
		if err := h.Store.SetSetting(ctx, key, value); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save demo setting", err)
			return
		}
	}

	officials := []tariff.Official{
		{ID: tariff.OfficialID(uuid.NewString()), Name: "Anna Keller", Email: "anna@example.com"},
		{ID: tariff.OfficialID(uuid.NewString()), Name: "Jonas Weber", Email: "jonas@example.com"},
		{ID: tariff.OfficialID(uuid.NewString()), Name: "Mara Voss", Email: "mara@example.com"},
	}
	for _, o := range officials {
		if err := h.Store.SaveOfficial(ctx, o); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save demo official", err)
			return
		}
	}

	competition := tariff.Competition{
		ID:    tariff.CompetitionID(uuid.NewString()),
		Name:  "Regional Championships",
		Date:  demoDate(),
		Venue: "City Stadium",
	}
	if err := h.Store.SaveCompetition(ctx, competition); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save demo competition", err)
		return
	}

	assignments := []tariff.Assignment{
		{OfficialID: officials[0].ID, Role: "Starter", Hours: 6, Kilometers: 10, Discipline: "sprints"},
		{OfficialID: officials[1].ID, Role: "Referee", Hours: 9, Kilometers: 42},
		{OfficialID: officials[2].ID, Role: "Timekeeper", Hours: 5},
	}
	for _, a := range assignments {
		a.ID = tariff.AssignmentID(uuid.NewString())
		a.CompetitionID = competition.ID
		if err := h.Store.SaveAssignment(ctx, a); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save demo assignment", err)
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"competition_id": string(competition.ID),
		"status":         "demo data loaded",
	})
}

// demoDate is next Saturday, so the demo competition is upcoming.
func demoDate() time.Time {
	d := time.Now().UTC().Truncate(24 * time.Hour)
	for d.Weekday() != time.Saturday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}
