package runtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoToStepBounds(t *testing.T) {
	s := newLoadedSession(t)
	ctx := context.Background()

	assert.False(t, s.GoToStep(ctx, -1))
	assert.Equal(t, 0, s.CurrentStepIndex())

	assert.False(t, s.GoToStep(ctx, len(s.Steps())))
	assert.Equal(t, 0, s.CurrentStepIndex())

	assert.True(t, s.GoToStep(ctx, 2))
	assert.Equal(t, 2, s.CurrentStepIndex())
}

func TestNavigationWithoutSurvey(t *testing.T) {
	s := NewSession(nil)
	ctx := context.Background()

	assert.False(t, s.GoToStep(ctx, 0))
	assert.False(t, s.NextStep(ctx))
	assert.False(t, s.PrevStep(ctx))
	assert.False(t, s.HasNextStep())
	assert.False(t, s.HasPrevStep())
	assert.False(t, s.HasVisitedStep(0))
	assert.Nil(t, s.CurrentStep())
}

func TestNextStepValidationGate(t *testing.T) {
	s := newLoadedSession(t)
	ctx := context.Background()

	// Required "role" on the first step is unanswered.
	assert.False(t, s.NextStep(ctx))
	assert.Equal(t, 0, s.CurrentStepIndex())
	assert.Equal(t, []string{"role"}, s.MissingRequired())

	require.True(t, s.SaveResponse(ctx, "role", "dev", ""))
	assert.True(t, s.NextStep(ctx))
	assert.Equal(t, 1, s.CurrentStepIndex())
}

func TestNextStepGateFromMiddleStep(t *testing.T) {
	// 3-step survey, step index 1 has a required question with no saved
	// response: NextStep fails and the index stays put; once answered it
	// advances.
	s := newLoadedSession(t)
	ctx := context.Background()

	require.True(t, s.SaveResponse(ctx, "role", "dev", ""))
	require.True(t, s.NextStep(ctx))
	require.Equal(t, 1, s.CurrentStepIndex())

	assert.False(t, s.NextStep(ctx))
	assert.Equal(t, 1, s.CurrentStepIndex())

	require.True(t, s.SaveResponse(ctx, "editor", "emacs", ""))
	assert.True(t, s.NextStep(ctx))
	assert.Equal(t, 2, s.CurrentStepIndex())
}

func TestHiddenRequiredQuestionDoesNotBlock(t *testing.T) {
	s := newLoadedSession(t)
	ctx := context.Background()

	require.True(t, s.SaveResponse(ctx, "role", "dev", ""))
	require.True(t, s.GoToStep(ctx, 1))

	// "why-vim" is only visible when editor == vim; while hidden it must
	// not appear in the gate even if marked required.
	survey := s.Survey()
	survey.Steps[1].Questions[1].Required = true

	require.True(t, s.SaveResponse(ctx, "editor", "emacs", ""))
	assert.Empty(t, s.MissingRequired())
	assert.True(t, s.NextStep(ctx))

	// Back on the step with editor=vim, the question is visible and blocks.
	require.True(t, s.GoToStep(ctx, 1))
	require.True(t, s.SaveResponse(ctx, "editor", "vim", ""))
	assert.Equal(t, []string{"why-vim"}, s.MissingRequired())
	assert.False(t, s.NextStep(ctx))
}

func TestPrevStepIsNotGated(t *testing.T) {
	s := newLoadedSession(t)
	ctx := context.Background()

	require.True(t, s.GoToStep(ctx, 1))
	assert.True(t, s.PrevStep(ctx))
	assert.Equal(t, 0, s.CurrentStepIndex())

	assert.False(t, s.PrevStep(ctx), "already on the first step")
}

func TestHasVisitedStep(t *testing.T) {
	s := newLoadedSession(t)
	ctx := context.Background()

	require.True(t, s.GoToStep(ctx, 1))

	assert.True(t, s.HasVisitedStep(0))
	assert.True(t, s.HasVisitedStep(1))
	assert.False(t, s.HasVisitedStep(2))
	assert.False(t, s.HasVisitedStep(-1))
}

func TestHasNextPrevStep(t *testing.T) {
	s := newLoadedSession(t)
	ctx := context.Background()

	assert.True(t, s.HasNextStep())
	assert.False(t, s.HasPrevStep())

	require.True(t, s.GoToStep(ctx, 2))
	assert.False(t, s.HasNextStep())
	assert.True(t, s.HasPrevStep())
}
