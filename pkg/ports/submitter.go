package ports

import (
	"context"

	"github.com/aretw0/canvass/pkg/domain"
)

// Submitter is the external persistence collaborator that receives the
// final submission payload. Any error is surfaced uniformly to the
// caller as a domain.SubmitError; the engine never retries.
type Submitter interface {
	Submit(ctx context.Context, submission *domain.Submission) error
}

// IdentityProvider exposes optional identity claims for submissions.
// A nil claims result (with nil error) means "anonymous".
type IdentityProvider interface {
	Claims(ctx context.Context) (*domain.IdentityClaims, error)
}
