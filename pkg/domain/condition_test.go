package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/canvass/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConditionRuleUnmarshalScalarOptionID(t *testing.T) {
	raw := `{"questionId":"q1","type":"optionChecked","optionId":"opt-a"}`

	var rule domain.ConditionRule
	require.NoError(t, json.Unmarshal([]byte(raw), &rule))

	assert.Equal(t, "q1", rule.QuestionID)
	assert.Equal(t, domain.RuleOptionChecked, rule.Type)
	assert.Equal(t, []string{"opt-a"}, rule.OptionIDs)
}

func TestConditionRuleUnmarshalArrayOptionID(t *testing.T) {
	raw := `{"questionId":"q1","type":"optionChecked","optionId":["opt-a","opt-b"]}`

	var rule domain.ConditionRule
	require.NoError(t, json.Unmarshal([]byte(raw), &rule))

	assert.Equal(t, []string{"opt-a", "opt-b"}, rule.OptionIDs)
}

func TestConditionRuleUnmarshalBadOptionID(t *testing.T) {
	raw := `{"questionId":"q1","type":"optionChecked","optionId":42}`

	var rule domain.ConditionRule
	assert.Error(t, json.Unmarshal([]byte(raw), &rule))
}

func TestConditionRuleMarshalRoundTrip(t *testing.T) {
	threshold := 3.0
	rule := domain.ConditionRule{
		QuestionID: "q2",
		Type:       domain.RuleGreaterThan,
		Threshold:  &threshold,
	}

	data, err := json.Marshal(rule)
	require.NoError(t, err)

	var back domain.ConditionRule
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, rule, back)
}

func TestConditionRuleMarshalSingleOptionStaysScalar(t *testing.T) {
	rule := domain.ConditionRule{
		QuestionID: "q1",
		Type:       domain.RuleTopRanked,
		OptionIDs:  []string{"opt-a"},
	}

	data, err := json.Marshal(rule)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"optionId":"opt-a"`)
}

func TestSurveyLookups(t *testing.T) {
	survey := domain.Survey{
		ID: "s1",
		Steps: []domain.Step{
			{ID: "step-1", Questions: []domain.Question{{ID: "q1"}}},
			{ID: "step-2", Questions: []domain.Question{{ID: "q2"}, {ID: "q3"}}},
		},
	}

	require.NotNil(t, survey.StepByID("step-2"))
	assert.Nil(t, survey.StepByID("nope"))

	q := survey.QuestionByID("q3")
	require.NotNil(t, q)
	assert.Equal(t, "q3", q.ID)
	assert.Nil(t, survey.QuestionByID("nope"))
}
