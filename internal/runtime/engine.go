package runtime

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/canvass/internal/logging"
	"github.com/aretw0/canvass/pkg/domain"
	"github.com/aretw0/canvass/pkg/observability"
	"github.com/aretw0/canvass/pkg/ports"
)

// Session is the core survey engine: it owns the loaded definition, the
// response set, and the navigation state for one survey session.
//
// A Session is single-threaded by design: all operations are expected to
// run from one goroutine (the event/UI loop). Concurrent sessions get
// separate Session instances. Edits from multiple processes against the
// same resume slots are not coordinated; the last writer wins.
type Session struct {
	id        string
	source    ports.DefinitionSource
	store     ports.ResumeStore
	submitter ports.Submitter
	identity  ports.IdentityProvider
	metrics   *observability.Metrics
	logger    *slog.Logger
	now       func() time.Time

	survey    *domain.Survey
	responses domain.ResponseSet
	stepIndex int
}

// Option configures a Session.
type Option func(*Session)

// WithID sets the session id used for resume-slot keys.
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

// WithStore enables durable resume persistence.
func WithStore(store ports.ResumeStore) Option {
	return func(s *Session) { s.store = store }
}

// WithSubmitter sets the persistence collaborator for final submissions.
func WithSubmitter(submitter ports.Submitter) Option {
	return func(s *Session) { s.submitter = submitter }
}

// WithIdentity sets the identity collaborator.
func WithIdentity(provider ports.IdentityProvider) Option {
	return func(s *Session) { s.identity = provider }
}

// WithMetrics attaches Prometheus instrumentation.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Session) { s.metrics = m }
}

// WithLogger sets a structured logger for the session.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// NewSession creates an engine session reading definitions from source.
func NewSession(source ports.DefinitionSource, opts ...Option) *Session {
	s := &Session{
		id:        "default",
		source:    source,
		responses: make(domain.ResponseSet),
		logger:    logging.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Loaded reports whether a survey definition is held.
func (s *Session) Loaded() bool {
	return s.survey != nil
}

// Survey returns the loaded definition, or nil.
func (s *Session) Survey() *domain.Survey {
	return s.survey
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// Load fetches and parses the survey definition at ref, replacing any
// previously loaded one. Navigation resets to step 0 and responses to
// empty unless valid persisted resume state exists for this session.
// Loading does not trigger any rendering; it only updates engine state.
func (s *Session) Load(ctx context.Context, ref string) error {
	raw, err := s.source.Fetch(ctx, ref)
	if err != nil {
		s.metrics.DefinitionLoad(observability.OutcomeError)
		var loadErr *domain.LoadError
		if errors.As(err, &loadErr) {
			return err
		}
		return &domain.LoadError{Reason: domain.LoadTransportFailure, Ref: ref, Err: err}
	}

	var survey domain.Survey
	if err := json.Unmarshal(raw, &survey); err != nil {
		s.metrics.DefinitionLoad(observability.OutcomeError)
		return &domain.LoadError{Reason: domain.LoadMalformed, Ref: ref, Err: err}
	}
	if survey.Steps == nil {
		s.metrics.DefinitionLoad(observability.OutcomeError)
		return &domain.LoadError{
			Reason: domain.LoadMalformed,
			Ref:    ref,
			Err:    errors.New("definition has no steps array"),
		}
	}

	s.survey = &survey
	s.responses = make(domain.ResponseSet)
	s.stepIndex = 0
	s.restore(ctx)

	s.metrics.DefinitionLoad(observability.OutcomeOK)
	s.logger.Debug("survey loaded", "survey", survey.ID, "steps", len(survey.Steps))
	return nil
}

// restore reads the two resume slots. Corrupt responses degrade to a
// fresh session (empty responses, step 0); a restored step index is only
// honored when it is in bounds for the current definition.
func (s *Session) restore(ctx context.Context) {
	if s.store == nil {
		return
	}

	if raw, err := s.store.LoadResponses(ctx, s.id); err == nil {
		var restored domain.ResponseSet
		if jsonErr := json.Unmarshal(raw, &restored); jsonErr != nil {
			s.logger.Warn("discarding corrupt resume responses", "session", s.id, "err", jsonErr)
			return
		}
		s.responses = restored
	} else if !errors.Is(err, domain.ErrNoResumeState) {
		s.logger.Warn("failed to read resume responses", "session", s.id, "err", err)
	}

	if idx, err := s.store.LoadStepIndex(ctx, s.id); err == nil {
		if idx >= 0 && idx < len(s.survey.Steps) {
			s.stepIndex = idx
		} else {
			s.logger.Warn("restored step index out of bounds, starting at 0",
				"session", s.id, "index", idx)
		}
	} else if !errors.Is(err, domain.ErrNoResumeState) {
		s.logger.Warn("failed to read resume step index", "session", s.id, "err", err)
	}
}

// SaveResponse records the answer for a question, stamping it with the
// current time. It always overwrites the previous response, comment
// included; a blank comment means "no comment". Returns false when no
// survey is loaded.
func (s *Session) SaveResponse(ctx context.Context, questionID string, value any, comment string) bool {
	if s.survey == nil {
		return false
	}

	s.responses[questionID] = domain.Response{
		Value:     value,
		Comment:   normalizeComment(comment),
		Timestamp: s.now(),
	}

	s.persistResponses(ctx)
	s.metrics.ResponseSaved()
	return true
}

// Response returns a copy of the recorded response, or nil.
func (s *Session) Response(questionID string) *domain.Response {
	r, ok := s.responses[questionID]
	if !ok {
		return nil
	}
	return &r
}

// Responses returns a read-only snapshot of all recorded responses.
func (s *Session) Responses() domain.ResponseSet {
	return s.responses.Clone()
}

// ClearResponses empties the response set and resets navigation to step
// 0, for "start over". Calling it repeatedly is idempotent.
func (s *Session) ClearResponses(ctx context.Context) {
	s.responses = make(domain.ResponseSet)
	s.stepIndex = 0

	if s.store != nil {
		if err := s.store.Clear(ctx, s.id); err != nil {
			s.logger.Warn("failed to clear resume state", "session", s.id, "err", err)
		}
	}
}

// AreRequiredQuestionsAnswered reports whether every required question
// on the step has a usable response. It deliberately does not filter by
// visibility; navigation applies the visibility filter on top (see
// MissingRequired).
func (s *Session) AreRequiredQuestionsAnswered(stepID string) bool {
	if s.survey == nil {
		return false
	}
	step := s.survey.StepByID(stepID)
	if step == nil {
		return false
	}

	for _, q := range step.Questions {
		if q.Required && !s.responses.Answered(q.ID) {
			return false
		}
	}
	return true
}

func (s *Session) persistResponses(ctx context.Context) {
	if s.store == nil {
		return
	}

	raw, err := json.Marshal(s.responses)
	if err != nil {
		s.logger.Warn("failed to serialize responses", "session", s.id, "err", err)
		return
	}
	if err := s.store.SaveResponses(ctx, s.id, raw); err != nil {
		s.logger.Warn("failed to persist responses", "session", s.id, "err", err)
	}
}

func (s *Session) persistStepIndex(ctx context.Context) {
	if s.store == nil {
		return
	}
	if err := s.store.SaveStepIndex(ctx, s.id, s.stepIndex); err != nil {
		s.logger.Warn("failed to persist step index", "session", s.id, "err", err)
	}
}

// normalizeComment trims whitespace; a whitespace-only comment is
// recorded as no comment at all.
func normalizeComment(comment string) string {
	return strings.TrimSpace(comment)
}
