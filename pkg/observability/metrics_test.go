package observability

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsRecordNothing(t *testing.T) {
	var m *Metrics
	m.ResponseSaved()
	m.Navigation(OutcomeBlocked)
	m.Submission(OutcomeError)
	m.DefinitionLoad(OutcomeOK)
}

func TestHandlerExposesCounters(t *testing.T) {
	m := New()
	m.ResponseSaved()
	m.ResponseSaved()
	m.Navigation(OutcomeOK)
	m.Submission(OutcomeError)
	m.DefinitionLoad(OutcomeOK)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "canvass_responses_saved_total 2")
	assert.Contains(t, body, `canvass_navigations_total{outcome="ok"} 1`)
	assert.Contains(t, body, `canvass_submissions_total{outcome="error"} 1`)
	assert.Contains(t, body, `canvass_definition_loads_total{outcome="ok"} 1`)
}

func TestRegistriesAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.ResponseSaved()

	rec := httptest.NewRecorder()
	b.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Contains(t, rec.Body.String(), "canvass_responses_saved_total 0")
}
