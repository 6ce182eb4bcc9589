package runtime

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/canvass/pkg/adapters/memory"
	"github.com/aretw0/canvass/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticIdentity struct {
	claims *domain.IdentityClaims
	err    error
}

func (p staticIdentity) Claims(ctx context.Context) (*domain.IdentityClaims, error) {
	return p.claims, p.err
}

func TestSubmitEmpty(t *testing.T) {
	ctx := context.Background()

	// No survey loaded.
	s := NewSession(memory.NewSource(nil), WithSubmitter(memory.NewSubmitter()))
	_, err := s.Submit(ctx)
	assert.ErrorIs(t, err, domain.ErrEmptySubmission)

	// Loaded but no responses.
	s = newLoadedSession(t, WithSubmitter(memory.NewSubmitter()))
	_, err = s.Submit(ctx)
	assert.ErrorIs(t, err, domain.ErrEmptySubmission)
}

func TestSubmitPayload(t *testing.T) {
	now := time.Date(2026, 8, 30, 9, 30, 0, 0, time.UTC)
	submitter := memory.NewSubmitter()
	s := newLoadedSession(t,
		WithSubmitter(submitter),
		WithIdentity(staticIdentity{claims: &domain.IdentityClaims{Email: "dev@example.com"}}),
		WithClock(func() time.Time { return now }),
	)
	ctx := context.Background()

	require.True(t, s.SaveResponse(ctx, "role", "dev", ""))
	require.True(t, s.SaveResponse(ctx, "feedback", "nice", "keep going"))

	sub, err := s.Submit(ctx)
	require.NoError(t, err)
	require.NotNil(t, sub)

	assert.NotEmpty(t, sub.ID)
	assert.Equal(t, "demo", sub.SurveyID)
	assert.Equal(t, "Developer Survey", sub.SurveyTitle)
	assert.Equal(t, "dev@example.com", sub.Identity)
	assert.Equal(t, now, sub.CompletedAt)
	assert.Len(t, sub.Responses, 2)

	received := submitter.Received()
	require.Len(t, received, 1)
	assert.Equal(t, sub.ID, received[0].ID)

	// Responses stay intact after a successful submit.
	assert.Len(t, s.Responses(), 2)
}

func TestSubmitIdentityFallback(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name     string
		identity staticIdentity
		want     string
	}{
		{"no provider claims", staticIdentity{}, "unknown"},
		{"lookup error", staticIdentity{err: errors.New("token expired")}, "unknown"},
		{"preferred name wins", staticIdentity{claims: &domain.IdentityClaims{
			PreferredName: "Sam", Email: "s@example.com", Name: "Sam Example",
		}}, "Sam"},
		{"name as last resort", staticIdentity{claims: &domain.IdentityClaims{Name: "Sam Example"}}, "Sam Example"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			submitter := memory.NewSubmitter()
			s := newLoadedSession(t, WithSubmitter(submitter), WithIdentity(tc.identity))
			require.True(t, s.SaveResponse(ctx, "role", "dev", ""))

			sub, err := s.Submit(ctx)
			require.NoError(t, err)
			assert.Equal(t, tc.want, sub.Identity)
		})
	}
}

func TestSubmitNoIdentityProvider(t *testing.T) {
	s := newLoadedSession(t, WithSubmitter(memory.NewSubmitter()))
	ctx := context.Background()
	require.True(t, s.SaveResponse(ctx, "role", "dev", ""))

	sub, err := s.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, "unknown", sub.Identity)
}

func TestSubmitTransportFailure(t *testing.T) {
	submitter := memory.NewSubmitter()
	submitter.Fail = errors.New("503 from collector")

	s := newLoadedSession(t, WithSubmitter(submitter))
	ctx := context.Background()
	require.True(t, s.SaveResponse(ctx, "role", "dev", ""))

	_, err := s.Submit(ctx)
	var submitErr *domain.SubmitError
	require.ErrorAs(t, err, &submitErr)
	assert.ErrorIs(t, err, submitter.Fail)

	// The caller may retry: responses are untouched.
	assert.Len(t, s.Responses(), 1)

	submitter.Fail = nil
	_, err = s.Submit(ctx)
	assert.NoError(t, err)
}

func TestSubmitWithoutSubmitter(t *testing.T) {
	s := newLoadedSession(t)
	ctx := context.Background()
	require.True(t, s.SaveResponse(ctx, "role", "dev", ""))

	_, err := s.Submit(ctx)
	var submitErr *domain.SubmitError
	assert.ErrorAs(t, err, &submitErr)
}
