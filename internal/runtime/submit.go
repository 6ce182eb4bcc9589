package runtime

import (
	"context"
	"errors"

	"github.com/aretw0/canvass/pkg/domain"
	"github.com/aretw0/canvass/pkg/observability"
	"github.com/google/uuid"
)

// Submit assembles the final payload from the response snapshot and
// hands it to the persistence collaborator. It requires a loaded survey
// and at least one recorded response; otherwise domain.ErrEmptySubmission.
// A collaborator failure surfaces as *domain.SubmitError; the engine does
// not retry, and the response set is left intact so the caller can.
func (s *Session) Submit(ctx context.Context) (*domain.Submission, error) {
	if s.survey == nil || len(s.responses) == 0 {
		return nil, domain.ErrEmptySubmission
	}
	if s.submitter == nil {
		return nil, &domain.SubmitError{Err: errors.New("no submitter configured")}
	}

	submission := &domain.Submission{
		ID:          uuid.NewString(),
		SurveyID:    s.survey.ID,
		SurveyTitle: s.survey.Title,
		Identity:    s.identityDisplay(ctx),
		CompletedAt: s.now(),
		Responses:   s.responses.Clone(),
	}

	if err := s.submitter.Submit(ctx, submission); err != nil {
		s.metrics.Submission(observability.OutcomeError)
		return nil, &domain.SubmitError{Err: err}
	}

	s.metrics.Submission(observability.OutcomeOK)
	s.logger.Info("survey submitted",
		"session", s.id,
		"survey", s.survey.ID,
		"submission", submission.ID,
		"answers", len(submission.Responses))
	return submission, nil
}

// identityDisplay resolves the submitter identity, falling back to
// "unknown" when the collaborator is absent, errors, or has no claims.
func (s *Session) identityDisplay(ctx context.Context) string {
	if s.identity == nil {
		return domain.AnonymousIdentity
	}

	claims, err := s.identity.Claims(ctx)
	if err != nil {
		s.logger.Debug("identity lookup failed, submitting as unknown", "err", err)
		return domain.AnonymousIdentity
	}
	return claims.Display()
}
