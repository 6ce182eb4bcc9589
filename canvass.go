package canvass

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/canvass/internal/runtime"
	"github.com/aretw0/canvass/pkg/domain"
	"github.com/aretw0/canvass/pkg/observability"
	"github.com/aretw0/canvass/pkg/ports"
)

// Session is the high-level entry point for the Canvass library.
// It wraps the internal runtime and exposes the renderer-facing
// contract: response access, conditional visibility, step navigation,
// and submission. Construct one Session per survey session; there is no
// shared global state, so tests and hosts can run sessions side by side.
type Session struct {
	rt *runtime.Session
}

// Option defines a functional option for configuring a Session.
type Option func(*config)

type config struct {
	opts []runtime.Option
}

// WithSessionID sets the identifier under which resume state is keyed.
// Defaults to "default".
func WithSessionID(id string) Option {
	return func(c *config) { c.opts = append(c.opts, runtime.WithID(id)) }
}

// WithStore enables durable resume persistence. Without a store the
// session lives purely in memory and a reload starts fresh.
func WithStore(store ports.ResumeStore) Option {
	return func(c *config) { c.opts = append(c.opts, runtime.WithStore(store)) }
}

// WithSubmitter sets the external persistence collaborator that receives
// the final submission payload.
func WithSubmitter(submitter ports.Submitter) Option {
	return func(c *config) { c.opts = append(c.opts, runtime.WithSubmitter(submitter)) }
}

// WithIdentity sets the identity collaborator used to attribute
// submissions. Absent, submissions are attributed to "unknown".
func WithIdentity(provider ports.IdentityProvider) Option {
	return func(c *config) { c.opts = append(c.opts, runtime.WithIdentity(provider)) }
}

// WithMetrics attaches Prometheus instrumentation to engine operations.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *config) { c.opts = append(c.opts, runtime.WithMetrics(m)) }
}

// WithLogger sets a custom structured logger for the session.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.opts = append(c.opts, runtime.WithLogger(logger)) }
}

// WithClock overrides the timestamp source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *config) { c.opts = append(c.opts, runtime.WithClock(now)) }
}

// New creates a Session that reads survey definitions from source.
// Call Load before using any other operation.
func New(source ports.DefinitionSource, opts ...Option) *Session {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Session{rt: runtime.NewSession(source, cfg.opts...)}
}

// Load fetches and parses the survey definition at ref. On success it
// replaces any previously loaded definition, resets navigation to step 0
// and, when a store is configured, resumes any valid persisted state for
// this session id. Fails with *domain.LoadError.
func (s *Session) Load(ctx context.Context, ref string) error {
	return s.rt.Load(ctx, ref)
}

// Survey returns the loaded definition, or nil. The definition is
// immutable for the lifetime of the session; treat it as read-only.
func (s *Session) Survey() *domain.Survey {
	return s.rt.Survey()
}

// SaveResponse records the answer for a question, overwriting any prior
// response (comment included) and stamping the current time. Pass an
// empty comment for "no comment". Returns false when no survey is
// loaded; it never panics or throws, so renderers can call it blindly.
func (s *Session) SaveResponse(ctx context.Context, questionID string, value any, comment string) bool {
	return s.rt.SaveResponse(ctx, questionID, value, comment)
}

// GetResponse returns a copy of the recorded response for the question,
// or nil when none exists.
func (s *Session) GetResponse(questionID string) *domain.Response {
	return s.rt.Response(questionID)
}

// AllResponses returns a read-only snapshot of every recorded response.
func (s *Session) AllResponses() domain.ResponseSet {
	return s.rt.Responses()
}

// ClearResponses empties the response set, resets navigation to step 0,
// and clears persisted resume state ("start over"). Idempotent.
func (s *Session) ClearResponses(ctx context.Context) {
	s.rt.ClearResponses(ctx)
}

// ShouldShowQuestion decides whether a question is visible under the
// current responses. Evaluation is stateless per call; re-invoke after
// every relevant response change. Dependents reports which questions are
// relevant to which.
func (s *Session) ShouldShowQuestion(q *domain.Question) bool {
	return s.rt.ShouldShowQuestion(q)
}

// Dependents maps each question id to the questions whose visibility
// depends on its answer, derived from the loaded definition's condition
// rules. Returns nil when no survey is loaded.
func (s *Session) Dependents() map[string][]string {
	if s.rt.Survey() == nil {
		return nil
	}
	return runtime.Dependents(s.rt.Survey())
}

// AreRequiredQuestionsAnswered reports whether every required question
// on the given step is answered, regardless of visibility. Navigation's
// own gate skips hidden questions; use MissingRequired for that view.
func (s *Session) AreRequiredQuestionsAnswered(stepID string) bool {
	return s.rt.AreRequiredQuestionsAnswered(stepID)
}

// MissingRequired returns the ids of visible required questions on the
// current step that still lack an answer.
func (s *Session) MissingRequired() []string {
	return s.rt.MissingRequired()
}

// CurrentStep returns the displayed step, or nil when nothing is loaded.
func (s *Session) CurrentStep() *domain.Step {
	return s.rt.CurrentStep()
}

// CurrentStepIndex returns the index of the displayed step.
func (s *Session) CurrentStepIndex() int {
	return s.rt.CurrentStepIndex()
}

// Steps returns all steps of the loaded survey.
func (s *Session) Steps() []domain.Step {
	return s.rt.Steps()
}

// GoToStep moves to the given step index; out-of-bounds requests return
// false and leave the state unchanged.
func (s *Session) GoToStep(ctx context.Context, index int) bool {
	return s.rt.GoToStep(ctx, index)
}

// NextStep advances one step if every visible required question on the
// current step is answered; otherwise returns false and stays put.
func (s *Session) NextStep(ctx context.Context) bool {
	return s.rt.NextStep(ctx)
}

// PrevStep moves back one step; going back is never gated.
func (s *Session) PrevStep(ctx context.Context) bool {
	return s.rt.PrevStep(ctx)
}

// HasNextStep reports whether a later step exists.
func (s *Session) HasNextStep() bool { return s.rt.HasNextStep() }

// HasPrevStep reports whether an earlier step exists.
func (s *Session) HasPrevStep() bool { return s.rt.HasPrevStep() }

// HasVisitedStep reports whether the step at index has been reached.
func (s *Session) HasVisitedStep(index int) bool { return s.rt.HasVisitedStep(index) }

// Submit assembles the final payload and hands it to the submitter.
// Fails with domain.ErrEmptySubmission when there is nothing to submit,
// or *domain.SubmitError when the collaborator rejects it; responses are
// kept either way so the caller can retry.
func (s *Session) Submit(ctx context.Context) (*domain.Submission, error) {
	return s.rt.Submit(ctx)
}
