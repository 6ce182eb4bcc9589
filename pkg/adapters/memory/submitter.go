package memory

import (
	"context"
	"sync"

	"github.com/aretw0/canvass/pkg/domain"
)

// Submitter implements ports.Submitter by recording submissions in
// memory. Useful for tests and local demos. Setting Fail makes every
// Submit call return that error, for exercising failure paths.
type Submitter struct {
	Fail error

	mu       sync.Mutex
	received []*domain.Submission
}

// NewSubmitter creates a recording submitter.
func NewSubmitter() *Submitter {
	return &Submitter{}
}

// Submit records the submission, or returns Fail if set.
func (s *Submitter) Submit(ctx context.Context, submission *domain.Submission) error {
	if s.Fail != nil {
		return s.Fail
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.received = append(s.received, submission)
	return nil
}

// Received returns the submissions recorded so far.
func (s *Submitter) Received() []*domain.Submission {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Submission, len(s.received))
	copy(out, s.received)
	return out
}
