/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

MONEY:
  Amounts are rendered as strings rounded to 2 decimals. Internal values
  keep full precision; rounding is presentation-only.

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/rates.go: RoleJSON type reused as the role API shape
*/
package api

import (
	"time"

	"github.com/courtside/tariff-engine/factory"
	"github.com/courtside/tariff-engine/tariff"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// OfficialDTO represents an official in API responses.
type OfficialDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

type CreateOfficialRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// CompetitionDTO represents a competition in API responses.
type CompetitionDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Date  string `json:"date"` // YYYY-MM-DD
	Venue string `json:"venue,omitempty"`
	Notes string `json:"notes,omitempty"`
}

type CreateCompetitionRequest struct {
	Name  string `json:"name"`
	Date  string `json:"date"` // YYYY-MM-DD
	Venue string `json:"venue"`
	Notes string `json:"notes"`
}

// AssignmentDTO represents a roster entry in API responses.
type AssignmentDTO struct {
	ID            string  `json:"id"`
	CompetitionID string  `json:"competition_id"`
	OfficialID    string  `json:"official_id"`
	OfficialName  string  `json:"official_name,omitempty"`
	Role          string  `json:"role"`
	Hours         float64 `json:"hours"`
	Kilometers    float64 `json:"kilometers"`
	Discipline    string  `json:"discipline,omitempty"`
	Notes         string  `json:"notes,omitempty"`
}

type CreateAssignmentRequest struct {
	OfficialID string  `json:"official_id"`
	Role       string  `json:"role"`
	Hours      float64 `json:"hours"`
	Kilometers float64 `json:"kilometers"`
	Discipline string  `json:"discipline"`
	Notes      string  `json:"notes"`
}

// RoleDTO wraps the factory's JSON role schema.
type RoleDTO struct {
	factory.RoleJSON
}

// PaymentDTO represents a generated payment in API responses.
type PaymentDTO struct {
	ID            string `json:"id"`
	OfficialID    string `json:"official_id"`
	CompetitionID string `json:"competition_id"`
	Amount        string `json:"amount"` // rounded to 2 decimals
	Date          string `json:"date"`   // YYYY-MM-DD
	Method        string `json:"method,omitempty"`
	Status        string `json:"status"`
	Notes         string `json:"notes,omitempty"`
}

// GenerateResultDTO is the outcome of a payment generation run, surfaced
// verbatim to the caller: created count plus one message per skipped
// assignment.
type GenerateResultDTO struct {
	Created int      `json:"created"`
	Errors  []string `json:"errors"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toOfficialDTO(o tariff.Official) OfficialDTO {
	return OfficialDTO{
		ID:      string(o.ID),
		Name:    o.Name,
		Email:   o.Email,
		Address: o.Address,
	}
}

func toCompetitionDTO(c tariff.Competition) CompetitionDTO {
	return CompetitionDTO{
		ID:    string(c.ID),
		Name:  c.Name,
		Date:  c.Date.Format("2006-01-02"),
		Venue: c.Venue,
		Notes: c.Notes,
	}
}

func toAssignmentDTO(a tariff.Assignment) AssignmentDTO {
	return AssignmentDTO{
		ID:            string(a.ID),
		CompetitionID: string(a.CompetitionID),
		OfficialID:    string(a.OfficialID),
		OfficialName:  a.OfficialName,
		Role:          a.Role,
		Hours:         a.Hours,
		Kilometers:    a.Kilometers,
		Discipline:    a.Discipline,
		Notes:         a.Notes,
	}
}

func toPaymentDTO(p tariff.Payment) PaymentDTO {
	return PaymentDTO{
		ID:            string(p.ID),
		OfficialID:    string(p.OfficialID),
		CompetitionID: string(p.CompetitionID),
		Amount:        tariff.FormatMoney(p.Amount),
		Date:          p.Date.Format("2006-01-02"),
		Method:        p.Method,
		Status:        string(p.Status),
		Notes:         p.Notes,
	}
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
