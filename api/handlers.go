/*
handlers.go - HTTP API handlers for the officials payment system

PURPOSE:
  Exposes the tariff engine and its CRUD surface via REST API. Handles
  HTTP request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Officials:
    GET    /api/officials                    List all officials
    POST   /api/officials                    Create official
    GET    /api/officials/{id}               Get official
    DELETE /api/officials/{id}               Delete official

  Competitions:
    GET    /api/competitions                 List competitions
    POST   /api/competitions                 Create competition
    GET    /api/competitions/{id}            Get competition
    DELETE /api/competitions/{id}            Delete competition
    GET    /api/competitions/{id}/assignments  List roster
    POST   /api/competitions/{id}/assignments  Assign official
    GET    /api/competitions/{id}/payments     List payments
    POST   /api/competitions/{id}/payments/generate  Generate payments

  Assignments:
    DELETE /api/assignments/{id}             Remove roster entry

  Roles:
    GET    /api/roles                        List rate configurations
    POST   /api/roles                        Create/update role (validated)
    DELETE /api/roles/{id}                   Delete role

  Payments:
    GET    /api/payments                     List all payments
    POST   /api/payments/{id}/paid           Mark payment paid

  Settings:
    GET    /api/settings                     All settings
    PUT    /api/settings                     Update settings

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input (incl. overlapping tiers)
  - 404: Resource not found
  - 500: Internal errors

  Payment generation never fails per-assignment: the result carries the
  created count plus one message per skipped official, surfaced verbatim.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - tariff/generator.go: The generation semantics behind the POST endpoint
*/
package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/courtside/tariff-engine/factory"
	"github.com/courtside/tariff-engine/store/sqlite"
	"github.com/courtside/tariff-engine/tariff"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store     *sqlite.Store
	Generator *tariff.Generator

	rates *factory.RateFactory
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{
		Store:     store,
		Generator: tariff.NewGenerator(store),
		rates:     factory.NewRateFactory(),
	}
}

// =============================================================================
// OFFICIAL HANDLERS
// =============================================================================

func (h *Handler) ListOfficials(w http.ResponseWriter, r *http.Request) {
	officials, err := h.Store.ListOfficials(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list officials", err)
		return
	}

	dtos := make([]OfficialDTO, len(officials))
	for i, o := range officials {
		dtos[i] = toOfficialDTO(o)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateOfficial(w http.ResponseWriter, r *http.Request) {
	var req CreateOfficialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required", nil)
		return
	}

	official := tariff.Official{
		ID:      tariff.OfficialID(uuid.NewString()),
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
	}
	if err := h.Store.SaveOfficial(r.Context(), official); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create official", err)
		return
	}
	writeJSON(w, http.StatusCreated, toOfficialDTO(official))
}

func (h *Handler) GetOfficial(w http.ResponseWriter, r *http.Request) {
	id := tariff.OfficialID(chi.URLParam(r, "id"))
	official, err := h.Store.GetOfficial(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get official", err)
		return
	}
	if official == nil {
		writeError(w, http.StatusNotFound, "Official not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toOfficialDTO(*official))
}

func (h *Handler) DeleteOfficial(w http.ResponseWriter, r *http.Request) {
	id := tariff.OfficialID(chi.URLParam(r, "id"))
	if err := h.Store.DeleteOfficial(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete official", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// COMPETITION HANDLERS
// =============================================================================

func (h *Handler) ListCompetitions(w http.ResponseWriter, r *http.Request) {
	competitions, err := h.Store.ListCompetitions(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list competitions", err)
		return
	}

	dtos := make([]CompetitionDTO, len(competitions))
	for i, c := range competitions {
		dtos[i] = toCompetitionDTO(c)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateCompetition(w http.ResponseWriter, r *http.Request) {
	var req CreateCompetitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required", nil)
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD", err)
		return
	}

	competition := tariff.Competition{
		ID:    tariff.CompetitionID(uuid.NewString()),
		Name:  req.Name,
		Date:  date,
		Venue: req.Venue,
		Notes: req.Notes,
	}
	if err := h.Store.SaveCompetition(r.Context(), competition); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create competition", err)
		return
	}
	writeJSON(w, http.StatusCreated, toCompetitionDTO(competition))
}

func (h *Handler) GetCompetition(w http.ResponseWriter, r *http.Request) {
	id := tariff.CompetitionID(chi.URLParam(r, "id"))
	competition, err := h.Store.GetCompetition(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get competition", err)
		return
	}
	if competition == nil {
		writeError(w, http.StatusNotFound, "Competition not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toCompetitionDTO(*competition))
}

func (h *Handler) DeleteCompetition(w http.ResponseWriter, r *http.Request) {
	id := tariff.CompetitionID(chi.URLParam(r, "id"))
	if err := h.Store.DeleteCompetition(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete competition", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// ASSIGNMENT HANDLERS
// =============================================================================

func (h *Handler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	competitionID := tariff.CompetitionID(chi.URLParam(r, "id"))
	assignments, err := h.Store.ListAssignments(r.Context(), competitionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list assignments", err)
		return
	}

	dtos := make([]AssignmentDTO, len(assignments))
	for i, a := range assignments {
		dtos[i] = toAssignmentDTO(a)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	competitionID := tariff.CompetitionID(chi.URLParam(r, "id"))

	var req CreateAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.OfficialID == "" || req.Role == "" {
		writeError(w, http.StatusBadRequest, "official_id and role are required", nil)
		return
	}
	if req.Hours < 0 || req.Kilometers < 0 {
		writeError(w, http.StatusBadRequest, "hours and kilometers must be non-negative", nil)
		return
	}

	competition, err := h.Store.GetCompetition(r.Context(), competitionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get competition", err)
		return
	}
	if competition == nil {
		writeError(w, http.StatusNotFound, "Competition not found", nil)
		return
	}

	assignment := tariff.Assignment{
		ID:            tariff.AssignmentID(uuid.NewString()),
		CompetitionID: competitionID,
		OfficialID:    tariff.OfficialID(req.OfficialID),
		Role:          req.Role,
		Hours:         req.Hours,
		Kilometers:    req.Kilometers,
		Discipline:    req.Discipline,
		Notes:         req.Notes,
	}
	if err := h.Store.SaveAssignment(r.Context(), assignment); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create assignment", err)
		return
	}
	writeJSON(w, http.StatusCreated, toAssignmentDTO(assignment))
}

func (h *Handler) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	id := tariff.AssignmentID(chi.URLParam(r, "id"))
	if err := h.Store.DeleteAssignment(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete assignment", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// ROLE HANDLERS - Rate configuration
// =============================================================================

func (h *Handler) ListRoles(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.ListRoleRecords(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list roles", err)
		return
	}

	dtos := make([]RoleDTO, 0, len(records))
	for _, rec := range records {
		role, err := h.rates.ParseRole(rec.ConfigJSON)
		if err != nil {
			continue
		}
		role.ID = tariff.RoleID(rec.ID)
		dtos = append(dtos, RoleDTO{RoleJSON: h.rates.ToJSON(role)})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateRole validates the rate table before storing it: overlapping
// tiers, inverted bounds, and negative rates are rejected with 400.
func (h *Handler) CreateRole(w http.ResponseWriter, r *http.Request) {
	var req factory.RoleJSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	role, err := h.rates.FromJSON(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid role configuration", err)
		return
	}

	configJSON, err := json.Marshal(req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to encode role", err)
		return
	}
	record := sqlite.RoleRecord{ID: req.ID, Name: role.Name, ConfigJSON: string(configJSON)}
	if err := h.Store.SaveRole(r.Context(), record); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save role", err)
		return
	}
	writeJSON(w, http.StatusCreated, RoleDTO{RoleJSON: req})
}

func (h *Handler) DeleteRole(w http.ResponseWriter, r *http.Request) {
	id := tariff.RoleID(chi.URLParam(r, "id"))
	if err := h.Store.DeleteRole(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete role", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// PAYMENT HANDLERS
// =============================================================================

// GeneratePayments runs the tariff engine for a competition and returns
// {created, errors} verbatim.
func (h *Handler) GeneratePayments(w http.ResponseWriter, r *http.Request) {
	competitionID := tariff.CompetitionID(chi.URLParam(r, "id"))

	result, err := h.Generator.Generate(r.Context(), competitionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Payment generation failed", err)
		return
	}

	paymentsGenerated.Add(float64(result.Created))
	generationErrors.Add(float64(len(result.Errors)))

	dto := GenerateResultDTO{Created: result.Created, Errors: result.Errors}
	if dto.Errors == nil {
		dto.Errors = []string{}
	}
	writeJSON(w, http.StatusOK, dto)
}

func (h *Handler) ListCompetitionPayments(w http.ResponseWriter, r *http.Request) {
	competitionID := tariff.CompetitionID(chi.URLParam(r, "id"))
	payments, err := h.Store.ListPaymentsByCompetition(r.Context(), competitionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list payments", err)
		return
	}

	dtos := make([]PaymentDTO, len(payments))
	for i, p := range payments {
		dtos[i] = toPaymentDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.Store.ListPayments(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list payments", err)
		return
	}

	dtos := make([]PaymentDTO, len(payments))
	for i, p := range payments {
		dtos[i] = toPaymentDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) MarkPaymentPaid(w http.ResponseWriter, r *http.Request) {
	id := tariff.PaymentID(chi.URLParam(r, "id"))
	if err := h.Store.MarkPaymentPaid(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "Payment not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update payment", err)
		return
	}

	payment, err := h.Store.GetPayment(r.Context(), id)
	if err != nil || payment == nil {
		writeError(w, http.StatusInternalServerError, "Failed to reload payment", err)
		return
	}
	writeJSON(w, http.StatusOK, toPaymentDTO(*payment))
}

// =============================================================================
// SETTINGS HANDLERS
// =============================================================================

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Store.ListSettings(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load settings", err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var updates map[string]string
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	for key, value := range updates {
		if err := h.Store.SetSetting(r.Context(), key, value); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save setting", err)
			return
		}
	}

	settings, err := h.Store.ListSettings(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reload settings", err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
