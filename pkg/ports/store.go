package ports

import "context"

// ResumeStore persists the two independent resume slots for a session:
// the current step index and the serialized response map. Keeping the
// slots independent lets a reload resume even when only one of them was
// ever written. Implementations return domain.ErrNoResumeState for an
// absent slot; the engine treats a corrupt responses payload as a fresh
// session, so stores do not need to validate the bytes they hold.
type ResumeStore interface {
	// SaveStepIndex persists the current step index slot.
	SaveStepIndex(ctx context.Context, sessionID string, index int) error

	// LoadStepIndex retrieves the step index slot.
	LoadStepIndex(ctx context.Context, sessionID string) (int, error)

	// SaveResponses persists the serialized response map slot.
	SaveResponses(ctx context.Context, sessionID string, data []byte) error

	// LoadResponses retrieves the serialized response map slot.
	LoadResponses(ctx context.Context, sessionID string) ([]byte, error)

	// Clear removes both slots for the session.
	Clear(ctx context.Context, sessionID string) error
}
