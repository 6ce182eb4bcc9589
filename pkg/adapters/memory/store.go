package memory

import (
	"context"
	"sync"

	"github.com/aretw0/canvass/pkg/domain"
)

type slots struct {
	stepIndex *int
	responses []byte
}

// Store implements ports.ResumeStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*slots
	mu   sync.RWMutex
}

// NewStore creates a new in-memory resume store.
func NewStore() *Store {
	return &Store{data: make(map[string]*slots)}
}

func (s *Store) session(sessionID string) *slots {
	entry, ok := s.data[sessionID]
	if !ok {
		entry = &slots{}
		s.data[sessionID] = entry
	}
	return entry
}

// SaveStepIndex persists the step index slot.
func (s *Store) SaveStepIndex(ctx context.Context, sessionID string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := index
	s.session(sessionID).stepIndex = &idx
	return nil
}

// LoadStepIndex retrieves the step index slot.
func (s *Store) LoadStepIndex(ctx context.Context, sessionID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.data[sessionID]
	if !ok || entry.stepIndex == nil {
		return 0, domain.ErrNoResumeState
	}
	return *entry.stepIndex, nil
}

// SaveResponses persists the serialized response map slot.
func (s *Store) SaveResponses(ctx context.Context, sessionID string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Copy so the caller can't mutate stored bytes by reference.
	buf := make([]byte, len(data))
	copy(buf, data)
	s.session(sessionID).responses = buf
	return nil
}

// LoadResponses retrieves the serialized response map slot.
func (s *Store) LoadResponses(ctx context.Context, sessionID string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.data[sessionID]
	if !ok || entry.responses == nil {
		return nil, domain.ErrNoResumeState
	}

	buf := make([]byte, len(entry.responses))
	copy(buf, entry.responses)
	return buf, nil
}

// Clear removes both slots for the session.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}
