// Package store provides an in-memory tariff.Store implementation for
// testing and development.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/courtside/tariff-engine/tariff"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu           sync.RWMutex
	competitions map[tariff.CompetitionID]tariff.Competition
	assignments  map[tariff.CompetitionID][]tariff.Assignment
	roles        []tariff.Role
	settings     map[string]string
	payments     map[paymentKey]tariff.Payment
}

type paymentKey struct {
	CompetitionID tariff.CompetitionID
	OfficialID    tariff.OfficialID
}

func NewMemory() *Memory {
	return &Memory{
		competitions: make(map[tariff.CompetitionID]tariff.Competition),
		assignments:  make(map[tariff.CompetitionID][]tariff.Assignment),
		settings:     make(map[string]string),
		payments:     make(map[paymentKey]tariff.Payment),
	}
}

// =============================================================================
// SEEDING - Test/dev setup helpers
// =============================================================================

func (m *Memory) SaveCompetition(c tariff.Competition) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.competitions[c.ID] = c
}

func (m *Memory) AddAssignment(a tariff.Assignment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assignments[a.CompetitionID] = append(m.assignments[a.CompetitionID], a)
}

func (m *Memory) SaveRole(r tariff.Role) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.roles {
		if existing.Name == r.Name {
			m.roles[i] = r
			return
		}
	}
	m.roles = append(m.roles, r)
}

func (m *Memory) SetSetting(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings[key] = value
}

// =============================================================================
// tariff.Store IMPLEMENTATION
// =============================================================================

func (m *Memory) GetCompetition(_ context.Context, id tariff.CompetitionID) (*tariff.Competition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.competitions[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m *Memory) ListAssignments(_ context.Context, competitionID tariff.CompetitionID) ([]tariff.Assignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]tariff.Assignment, len(m.assignments[competitionID]))
	copy(out, m.assignments[competitionID])
	return out, nil
}

func (m *Memory) GetRoles(_ context.Context) ([]tariff.Role, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]tariff.Role, len(m.roles))
	copy(out, m.roles)
	return out, nil
}

func (m *Memory) GetSetting(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings[key], nil
}

func (m *Memory) PaymentExists(_ context.Context, competitionID tariff.CompetitionID, officialID tariff.OfficialID) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.payments[paymentKey{CompetitionID: competitionID, OfficialID: officialID}]
	return ok, nil
}

// CreatePayment enforces the (competition, official) uniqueness the same
// way the sqlite store's unique index does.
func (m *Memory) CreatePayment(_ context.Context, p tariff.Payment) (tariff.PaymentID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := paymentKey{CompetitionID: p.CompetitionID, OfficialID: p.OfficialID}
	if _, ok := m.payments[k]; ok {
		return "", tariff.ErrDuplicatePayment
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	m.payments[k] = p
	return p.ID, nil
}

// ListPayments returns all stored payments, for test assertions.
func (m *Memory) ListPayments() []tariff.Payment {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]tariff.Payment, 0, len(m.payments))
	for _, p := range m.payments {
		out = append(out, p)
	}
	return out
}
