package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/canvass/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunResumeStoreContract runs a suite of tests to verify that a
// ResumeStore implementation adheres to the interface contract.
func RunResumeStoreContract(t *testing.T, store ResumeStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Step Index Round Trip", func(t *testing.T) {
		require.NoError(t, store.SaveStepIndex(ctx, sessionID, 3))

		idx, err := store.LoadStepIndex(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, 3, idx)

		// Overwrite
		require.NoError(t, store.SaveStepIndex(ctx, sessionID, 0))
		idx, err = store.LoadStepIndex(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, 0, idx)
	})

	t.Run("Responses Round Trip", func(t *testing.T) {
		payload := []byte(`{"q1":{"value":"yes"}}`)
		require.NoError(t, store.SaveResponses(ctx, sessionID, payload))

		data, err := store.LoadResponses(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, payload, data)
	})

	t.Run("Slots Are Independent", func(t *testing.T) {
		other := sessionID + "-solo-step"
		require.NoError(t, store.SaveStepIndex(ctx, other, 1))
		defer func() { _ = store.Clear(ctx, other) }()

		_, err := store.LoadResponses(ctx, other)
		assert.ErrorIs(t, err, domain.ErrNoResumeState,
			"writing the step slot must not materialize the responses slot")
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		missing := "non-existent-" + sessionID

		_, err := store.LoadStepIndex(ctx, missing)
		assert.ErrorIs(t, err, domain.ErrNoResumeState)

		_, err = store.LoadResponses(ctx, missing)
		assert.ErrorIs(t, err, domain.ErrNoResumeState)
	})

	t.Run("Clear", func(t *testing.T) {
		require.NoError(t, store.SaveStepIndex(ctx, sessionID, 2))
		require.NoError(t, store.SaveResponses(ctx, sessionID, []byte(`{}`)))

		require.NoError(t, store.Clear(ctx, sessionID))

		_, err := store.LoadStepIndex(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrNoResumeState)
		_, err = store.LoadResponses(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrNoResumeState)

		// Clearing again is a no-op, not an error.
		assert.NoError(t, store.Clear(ctx, sessionID))
	})
}
