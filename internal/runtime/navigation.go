package runtime

import (
	"context"

	"github.com/aretw0/canvass/pkg/domain"
	"github.com/aretw0/canvass/pkg/observability"
)

// CurrentStepIndex returns the index of the displayed step.
func (s *Session) CurrentStepIndex() int {
	return s.stepIndex
}

// CurrentStep returns the displayed step, or nil when no survey is loaded.
func (s *Session) CurrentStep() *domain.Step {
	if s.survey == nil || len(s.survey.Steps) == 0 {
		return nil
	}
	return &s.survey.Steps[s.stepIndex]
}

// Steps returns all steps of the loaded survey.
func (s *Session) Steps() []domain.Step {
	if s.survey == nil {
		return nil
	}
	return s.survey.Steps
}

// GoToStep moves to the given step index. Out-of-bounds indexes are
// silently rejected (returns false, state unchanged) so the call is safe
// to make speculatively, e.g. from a progress-bar click handler.
func (s *Session) GoToStep(ctx context.Context, index int) bool {
	if s.survey == nil || index < 0 || index >= len(s.survey.Steps) {
		s.metrics.Navigation(observability.OutcomeRejected)
		return false
	}

	s.stepIndex = index
	s.persistStepIndex(ctx)
	s.metrics.Navigation(observability.OutcomeOK)
	s.logger.Debug("navigated", "session", s.id, "step", index)
	return true
}

// NextStep advances to the following step after the validation gate:
// every required question on the current step that is visible under the
// current conditions must be answered. A hidden required question cannot
// be answered, so hidden questions never block. Returns false, leaving
// the state unchanged, when the gate fails or the survey is already on
// the last step.
func (s *Session) NextStep(ctx context.Context) bool {
	if s.survey == nil {
		return false
	}
	if len(s.MissingRequired()) > 0 {
		s.metrics.Navigation(observability.OutcomeBlocked)
		return false
	}
	return s.GoToStep(ctx, s.stepIndex+1)
}

// PrevStep moves back one step. Going back is never gated.
func (s *Session) PrevStep(ctx context.Context) bool {
	if s.survey == nil {
		return false
	}
	return s.GoToStep(ctx, s.stepIndex-1)
}

// HasNextStep reports whether a later step exists.
func (s *Session) HasNextStep() bool {
	return s.survey != nil && s.stepIndex < len(s.survey.Steps)-1
}

// HasPrevStep reports whether an earlier step exists.
func (s *Session) HasPrevStep() bool {
	return s.survey != nil && s.stepIndex > 0
}

// HasVisitedStep reports whether the step at index has been reached.
// Visiting is monotonic: going back does not un-visit later steps, so
// any index at or before the current one counts as visited.
func (s *Session) HasVisitedStep(index int) bool {
	return s.survey != nil && index >= 0 && index <= s.stepIndex
}

// MissingRequired returns the ids of required questions on the current
// step that are visible under current conditions but not yet answered.
// An empty result means the step passes the validation gate.
func (s *Session) MissingRequired() []string {
	step := s.CurrentStep()
	if step == nil {
		return nil
	}

	var missing []string
	for i := range step.Questions {
		q := &step.Questions[i]
		if !q.Required || !s.ShouldShowQuestion(q) {
			continue
		}
		if !s.responses.Answered(q.ID) {
			missing = append(missing, q.ID)
		}
	}
	return missing
}
