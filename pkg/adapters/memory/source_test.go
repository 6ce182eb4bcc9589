package memory_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/canvass/pkg/adapters/memory"
	"github.com/aretw0/canvass/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceFetch(t *testing.T) {
	src := memory.NewSource(map[string]string{
		"s1": `{"id":"s1","title":"Demo","steps":[]}`,
	})

	raw, err := src.Fetch(context.Background(), "s1")
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"id":"s1"`)
}

func TestSourceFetchNotFound(t *testing.T) {
	src := memory.NewSource(nil)

	_, err := src.Fetch(context.Background(), "missing")
	require.Error(t, err)

	var loadErr *domain.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, domain.LoadNotFound, loadErr.Reason)
}

func TestNewFromSurveys(t *testing.T) {
	src, err := memory.NewFromSurveys(domain.Survey{
		ID:    "s1",
		Title: "Demo",
		Steps: []domain.Step{{ID: "step-1", Questions: []domain.Question{{ID: "q1"}}}},
	})
	require.NoError(t, err)

	raw, err := src.Fetch(context.Background(), "s1")
	require.NoError(t, err)

	var back domain.Survey
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, "step-1", back.Steps[0].ID)
}

func TestNewFromSurveysRequiresID(t *testing.T) {
	_, err := memory.NewFromSurveys(domain.Survey{Title: "anonymous"})
	assert.Error(t, err)
}
