package domain

import (
	"encoding/json"
	"fmt"
)

// Operator combines the outcomes of a group's rules.
type Operator string

const (
	OperatorAnd Operator = "AND"
	OperatorOr  Operator = "OR"
)

// RuleType identifies how a single rule inspects the referenced answer.
type RuleType string

const (
	RuleAnswered      RuleType = "answered"
	RuleEquals        RuleType = "equals"
	RuleNotEquals     RuleType = "notEquals"
	RuleContains      RuleType = "contains"
	RuleGreaterThan   RuleType = "greaterThan"
	RuleLessThan      RuleType = "lessThan"
	RuleTopRanked     RuleType = "topRanked"
	RuleOptionChecked RuleType = "optionChecked"
)

// ConditionGroup gates a question's visibility on other questions' answers.
type ConditionGroup struct {
	Operator Operator        `json:"operator" yaml:"operator"`
	Rules    []ConditionRule `json:"rules" yaml:"rules"`
}

// ConditionRule is one predicate over the response of another question.
type ConditionRule struct {
	// QuestionID references the question whose response is inspected.
	QuestionID string `json:"questionId" yaml:"questionId"`

	Type RuleType `json:"type" yaml:"type"`

	// Value is compared against the response for equals/notEquals/contains.
	Value any `json:"value,omitempty" yaml:"value,omitempty"`

	// Threshold is required for greaterThan/lessThan.
	Threshold *float64 `json:"threshold,omitempty" yaml:"threshold,omitempty"`

	// OptionIDs holds the acceptable option ids for topRanked and
	// optionChecked. The wire field "optionId" accepts either a single
	// string or an array of strings; both normalize to this slice.
	OptionIDs []string `json:"-" yaml:"-"`
}

// conditionRuleWire is the JSON shape of a rule, with optionId left raw
// so it can be either a scalar or an array.
type conditionRuleWire struct {
	QuestionID string          `json:"questionId"`
	Type       RuleType        `json:"type"`
	Value      any             `json:"value,omitempty"`
	Threshold  *float64        `json:"threshold,omitempty"`
	OptionID   json.RawMessage `json:"optionId,omitempty"`
}

// UnmarshalJSON normalizes the "optionId" field (string or string array)
// into OptionIDs.
func (r *ConditionRule) UnmarshalJSON(data []byte) error {
	var wire conditionRuleWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	r.QuestionID = wire.QuestionID
	r.Type = wire.Type
	r.Value = wire.Value
	r.Threshold = wire.Threshold
	r.OptionIDs = nil

	if len(wire.OptionID) == 0 {
		return nil
	}

	var one string
	if err := json.Unmarshal(wire.OptionID, &one); err == nil {
		r.OptionIDs = []string{one}
		return nil
	}

	var many []string
	if err := json.Unmarshal(wire.OptionID, &many); err != nil {
		return fmt.Errorf("rule %s: optionId must be a string or an array of strings", r.QuestionID)
	}
	r.OptionIDs = many
	return nil
}

// MarshalJSON keeps the compact scalar form when a single option id is set.
func (r ConditionRule) MarshalJSON() ([]byte, error) {
	wire := conditionRuleWire{
		QuestionID: r.QuestionID,
		Type:       r.Type,
		Value:      r.Value,
		Threshold:  r.Threshold,
	}

	switch len(r.OptionIDs) {
	case 0:
	case 1:
		raw, err := json.Marshal(r.OptionIDs[0])
		if err != nil {
			return nil, err
		}
		wire.OptionID = raw
	default:
		raw, err := json.Marshal(r.OptionIDs)
		if err != nil {
			return nil, err
		}
		wire.OptionID = raw
	}

	return json.Marshal(wire)
}
