// Package httpapi exposes the survey engine as a stateless JSON API.
//
// Every request rebuilds the session from the resume store, applies one
// operation, and persists back, so the server itself holds no session
// state and can be restarted or scaled freely.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aretw0/canvass"
	"github.com/aretw0/canvass/internal/logging"
	"github.com/aretw0/canvass/pkg/domain"
	"github.com/aretw0/canvass/pkg/observability"
	"github.com/aretw0/canvass/pkg/ports"
	"github.com/go-chi/chi/v5"
)

// Config wires the collaborators for a survey server.
type Config struct {
	// Source and Ref locate the survey definition to serve.
	Source ports.DefinitionSource
	Ref    string

	// Store holds per-session resume state. Required: a stateless
	// server without a store would forget everything between requests.
	Store ports.ResumeStore

	Submitter ports.Submitter
	Identity  ports.IdentityProvider
	Metrics   *observability.Metrics
	Logger    *slog.Logger
}

// Server handles the survey API routes.
type Server struct {
	cfg Config
}

// NewHandler creates the HTTP handler for the survey API.
func NewHandler(cfg Config) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNop()
	}
	s := &Server{cfg: cfg}

	r := chi.NewRouter()
	r.Get("/survey", s.getSurvey)
	r.Route("/sessions/{sessionID}", func(r chi.Router) {
		r.Get("/state", s.getState)
		r.Get("/step", s.getStep)
		r.Put("/responses/{questionID}", s.putResponse)
		r.Delete("/responses", s.deleteResponses)
		r.Post("/navigate", s.navigate)
		r.Post("/submit", s.submit)
	})
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	}

	return r
}

// session restores the caller's session from the resume store.
func (s *Server) session(r *http.Request) (*canvass.Session, error) {
	sess := canvass.New(s.cfg.Source,
		canvass.WithSessionID(chi.URLParam(r, "sessionID")),
		canvass.WithStore(s.cfg.Store),
		canvass.WithSubmitter(s.cfg.Submitter),
		canvass.WithIdentity(s.cfg.Identity),
		canvass.WithMetrics(s.cfg.Metrics),
		canvass.WithLogger(s.cfg.Logger),
	)
	if err := sess.Load(r.Context(), s.cfg.Ref); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *Server) withSession(w http.ResponseWriter, r *http.Request, fn func(sess *canvass.Session)) {
	sess, err := s.session(r)
	if err != nil {
		s.cfg.Logger.Error("failed to load survey definition", "err", err)
		writeError(w, http.StatusBadGateway, "survey definition unavailable")
		return
	}
	fn(sess)
}

func (s *Server) getSurvey(w http.ResponseWriter, r *http.Request) {
	raw, err := s.cfg.Source.Fetch(r.Context(), s.cfg.Ref)
	if err != nil {
		s.cfg.Logger.Error("failed to fetch survey definition", "err", err)
		writeError(w, http.StatusBadGateway, "survey definition unavailable")
		return
	}

	var survey domain.Survey
	if err := json.Unmarshal(raw, &survey); err != nil {
		writeError(w, http.StatusBadGateway, "survey definition malformed")
		return
	}
	writeJSON(w, http.StatusOK, survey)
}

// stateResponse is the persisted view of a session.
type stateResponse struct {
	CurrentStepIndex int                `json:"currentStepIndex"`
	Responses        domain.ResponseSet `json:"responses"`
}

func (s *Server) getState(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *canvass.Session) {
		writeJSON(w, http.StatusOK, stateResponse{
			CurrentStepIndex: sess.CurrentStepIndex(),
			Responses:        sess.AllResponses(),
		})
	})
}

// stepResponse is the render-ready view of the current step.
type stepResponse struct {
	Index            int          `json:"index"`
	Step             *domain.Step `json:"step"`
	VisibleQuestions []string     `json:"visibleQuestions"`
	MissingRequired  []string     `json:"missingRequired,omitempty"`
	HasNext          bool         `json:"hasNext"`
	HasPrev          bool         `json:"hasPrev"`
}

func (s *Server) getStep(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *canvass.Session) {
		step := sess.CurrentStep()
		if step == nil {
			writeError(w, http.StatusNotFound, "survey has no steps")
			return
		}

		visible := make([]string, 0, len(step.Questions))
		for i := range step.Questions {
			if sess.ShouldShowQuestion(&step.Questions[i]) {
				visible = append(visible, step.Questions[i].ID)
			}
		}

		writeJSON(w, http.StatusOK, stepResponse{
			Index:            sess.CurrentStepIndex(),
			Step:             step,
			VisibleQuestions: visible,
			MissingRequired:  sess.MissingRequired(),
			HasNext:          sess.HasNextStep(),
			HasPrev:          sess.HasPrevStep(),
		})
	})
}

type saveRequest struct {
	Value   any    `json:"value"`
	Comment string `json:"comment,omitempty"`
}

func (s *Server) putResponse(w http.ResponseWriter, r *http.Request) {
	var body saveRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.withSession(w, r, func(sess *canvass.Session) {
		if !sess.SaveResponse(r.Context(), chi.URLParam(r, "questionID"), body.Value, body.Comment) {
			writeError(w, http.StatusConflict, "no survey loaded")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func (s *Server) deleteResponses(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *canvass.Session) {
		sess.ClearResponses(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
}

type navigateRequest struct {
	Action string `json:"action"`         // "next", "prev", or "goto"
	Step   int    `json:"step,omitempty"` // target index for "goto"
}

type navigateResponse struct {
	Moved            bool     `json:"moved"`
	CurrentStepIndex int      `json:"currentStepIndex"`
	MissingRequired  []string `json:"missingRequired,omitempty"`
}

func (s *Server) navigate(w http.ResponseWriter, r *http.Request) {
	var body navigateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.withSession(w, r, func(sess *canvass.Session) {
		var moved bool
		switch body.Action {
		case "next":
			moved = sess.NextStep(r.Context())
		case "prev":
			moved = sess.PrevStep(r.Context())
		case "goto":
			moved = sess.GoToStep(r.Context(), body.Step)
		default:
			writeError(w, http.StatusBadRequest, "unknown action")
			return
		}

		resp := navigateResponse{
			Moved:            moved,
			CurrentStepIndex: sess.CurrentStepIndex(),
		}
		if !moved {
			resp.MissingRequired = sess.MissingRequired()
		}
		writeJSON(w, http.StatusOK, resp)
	})
}

func (s *Server) submit(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *canvass.Session) {
		sub, err := sess.Submit(r.Context())
		switch {
		case errors.Is(err, domain.ErrEmptySubmission):
			writeError(w, http.StatusBadRequest, "nothing to submit")
		case err != nil:
			s.cfg.Logger.Error("submission failed", "err", err)
			writeError(w, http.StatusBadGateway, "submission failed")
		default:
			writeJSON(w, http.StatusCreated, sub)
		}
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
