package models

import (
	"errors"
	"fmt"
	"sync"

	"contractor-leads/internal/idgen"
)

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrUnknownField    = errors.New("unknown lead field")
	ErrLeadNotFound    = errors.New("lead not found")
)

// LeadStore is the authoritative ordered collection of leads. Position is the
// row index; ID is the stable handle that survives removals.
type LeadStore struct {
	mu    sync.RWMutex
	order []string
	leads map[string]*Lead
}

// NewLeadStore creates an empty store
func NewLeadStore() *LeadStore {
	return &LeadStore{
		order: make([]string, 0),
		leads: make(map[string]*Lead),
	}
}

// NewLeadStoreFrom creates a store holding leads in the given order
func NewLeadStoreFrom(leads []Lead) *LeadStore {
	s := NewLeadStore()
	for _, lead := range leads {
		s.Append(lead)
	}
	return s
}

// Append adds a lead at the end, assigning an ID and the default status when missing.
func (s *LeadStore) Append(lead Lead) Lead {
	s.mu.Lock()
	defer s.mu.Unlock()

	if lead.ID == "" || s.leads[lead.ID] != nil {
		lead.ID = idgen.MustGenerate()
	}
	lead.Normalize()

	stored := lead
	s.leads[lead.ID] = &stored
	s.order = append(s.order, lead.ID)
	return lead
}

// UpdateField overwrites one field of the lead at index.
func (s *LeadStore) UpdateField(index int, field Field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.order) {
		return fmt.Errorf("update %q at %d: %w", field, index, ErrIndexOutOfRange)
	}
	return s.leads[s.order[index]].Set(field, value)
}

// UpdateFieldByID overwrites one field of the lead with the given ID.
func (s *LeadStore) UpdateFieldByID(id string, field Field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lead, ok := s.leads[id]
	if !ok {
		return fmt.Errorf("update %q of %s: %w", field, id, ErrLeadNotFound)
	}
	return lead.Set(field, value)
}

// Remove deletes the lead at index; every later lead moves up one position.
func (s *LeadStore) Remove(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.order) {
		return fmt.Errorf("remove at %d: %w", index, ErrIndexOutOfRange)
	}
	s.removeAt(index)
	return nil
}

// RemoveByID deletes the lead with the given ID.
func (s *LeadStore) RemoveByID(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.indexOf(id)
	if index < 0 {
		return fmt.Errorf("remove %s: %w", id, ErrLeadNotFound)
	}
	s.removeAt(index)
	return nil
}

func (s *LeadStore) removeAt(index int) {
	delete(s.leads, s.order[index])
	s.order = append(s.order[:index], s.order[index+1:]...)
}

// IndexOf resolves an ID to its current position.
func (s *LeadStore) IndexOf(id string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	index := s.indexOf(id)
	return index, index >= 0
}

func (s *LeadStore) indexOf(id string) int {
	for i, candidate := range s.order {
		if candidate == id {
			return i
		}
	}
	return -1
}

// Get returns a copy of the lead at index.
func (s *LeadStore) Get(index int) (Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if index < 0 || index >= len(s.order) {
		return Lead{}, fmt.Errorf("get at %d: %w", index, ErrIndexOutOfRange)
	}
	return *s.leads[s.order[index]], nil
}

// GetByID returns a copy of the lead with the given ID.
func (s *LeadStore) GetByID(id string) (Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lead, ok := s.leads[id]
	if !ok {
		return Lead{}, fmt.Errorf("get %s: %w", id, ErrLeadNotFound)
	}
	return *lead, nil
}

// All returns the current ordered sequence. Each call observes every mutation
// made before it.
func (s *LeadStore) All() []Lead {
	s.mu.RLock()
	defer s.mu.RUnlock()

	leads := make([]Lead, len(s.order))
	for i, id := range s.order {
		leads[i] = *s.leads[id]
	}
	return leads
}

// Len returns the number of stored leads
func (s *LeadStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Reader is the read-only face of the store handed to exporters and views.
type Reader interface {
	All() []Lead
	Len() int
}

var _ Reader = (*LeadStore)(nil)
