package runtime

import (
	"slices"
	"strconv"

	"github.com/aretw0/canvass/pkg/domain"
)

// ShouldShowQuestion decides whether a question is visible given the
// current responses. A question without conditions is always visible.
// Evaluation is stateless: it is a pure read of the response set at call
// time, so callers must re-invoke after every relevant response change.
func (s *Session) ShouldShowQuestion(q *domain.Question) bool {
	return Evaluate(q.Conditions, s.responses)
}

// Evaluate applies a condition group against a response set.
// An unknown operator evaluates to true (fail-open): an author typo in
// the operator should never permanently hide a question.
func Evaluate(group *domain.ConditionGroup, responses domain.ResponseSet) bool {
	if group == nil || len(group.Rules) == 0 {
		return true
	}

	switch group.Operator {
	case domain.OperatorAnd:
		for i := range group.Rules {
			if !EvaluateRule(&group.Rules[i], responses) {
				return false
			}
		}
		return true
	case domain.OperatorOr:
		for i := range group.Rules {
			if EvaluateRule(&group.Rules[i], responses) {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// EvaluateRule applies a single rule against a response set.
// For every type except "answered", a missing response for the
// referenced question evaluates to false: conditions referencing
// unanswered questions never trigger visibility. An unknown rule type
// also evaluates to false; fail-open applies only at the operator level.
func EvaluateRule(rule *domain.ConditionRule, responses domain.ResponseSet) bool {
	resp, ok := responses[rule.QuestionID]

	if rule.Type == domain.RuleAnswered {
		return ok && resp.Answered()
	}
	if !ok {
		return false
	}

	switch rule.Type {
	case domain.RuleEquals:
		return looseEqual(resp.Value, rule.Value)
	case domain.RuleNotEquals:
		return !looseEqual(resp.Value, rule.Value)
	case domain.RuleContains:
		return contains(resp.Value, rule.Value)
	case domain.RuleGreaterThan:
		return compareNumeric(resp.Value, rule.Threshold, func(v, t float64) bool { return v > t })
	case domain.RuleLessThan:
		return compareNumeric(resp.Value, rule.Threshold, func(v, t float64) bool { return v < t })
	case domain.RuleTopRanked:
		return topRanked(resp.Value, rule.OptionIDs)
	case domain.RuleOptionChecked:
		return optionChecked(resp.Value, rule.OptionIDs)
	default:
		return false
	}
}

// Dependents maps each question id to the ids of questions whose
// visibility depends on its answer. Renderers use it to know which
// conditional questions to re-evaluate after a save; the engine itself
// caches nothing.
func Dependents(survey *domain.Survey) map[string][]string {
	deps := make(map[string][]string)
	for _, step := range survey.Steps {
		for _, q := range step.Questions {
			if q.Conditions == nil {
				continue
			}
			for _, rule := range q.Conditions.Rules {
				if !slices.Contains(deps[rule.QuestionID], q.ID) {
					deps[rule.QuestionID] = append(deps[rule.QuestionID], q.ID)
				}
			}
		}
	}
	return deps
}

// looseEqual compares a response value against a rule value with strict
// cross-type semantics: numbers compare numerically, strings and bools
// compare directly, and a composite response (object or array, e.g. an
// "other" answer) never equals a plain value.
func looseEqual(value, ruleValue any) bool {
	if value == nil || ruleValue == nil {
		return value == nil && ruleValue == nil
	}
	if isComposite(value) || isComposite(ruleValue) {
		return false
	}

	if vn, ok := asNumberStrict(value); ok {
		tn, ok := asNumberStrict(ruleValue)
		return ok && vn == tn
	}

	switch v := value.(type) {
	case string:
		rv, ok := ruleValue.(string)
		return ok && v == rv
	case bool:
		rv, ok := ruleValue.(bool)
		return ok && v == rv
	}
	return value == ruleValue
}

func contains(value, ruleValue any) bool {
	switch v := value.(type) {
	case []any:
		for _, elem := range v {
			if looseEqual(elem, ruleValue) {
				return true
			}
		}
		return false
	case map[string]any:
		key, ok := ruleValue.(string)
		if !ok {
			return false
		}
		return truthy(v[key])
	default:
		return false
	}
}

func compareNumeric(value any, threshold *float64, cmp func(v, t float64) bool) bool {
	if threshold == nil {
		return false
	}
	v, ok := asNumber(value)
	if !ok {
		return false
	}
	return cmp(v, *threshold)
}

// topRanked checks a position mapping (optionId -> numeric position):
// the entry holding the maximum position must be one of the rule's
// option ids. Ties break toward the lexicographically smaller id so the
// outcome is deterministic.
func topRanked(value any, optionIDs []string) bool {
	if len(optionIDs) == 0 {
		return false
	}
	positions, ok := value.(map[string]any)
	if !ok || len(positions) == 0 {
		return false
	}

	var topID string
	var topPos float64
	found := false
	for id, raw := range positions {
		pos, ok := asNumber(raw)
		if !ok {
			continue
		}
		if !found || pos > topPos || (pos == topPos && id < topID) {
			topID, topPos, found = id, pos, true
		}
	}

	return found && slices.Contains(optionIDs, topID)
}

// optionChecked accepts the two canonical selection shapes: an object of
// optionId -> truthy flag, or a scalar holding the selected option id.
func optionChecked(value any, optionIDs []string) bool {
	if len(optionIDs) == 0 {
		return false
	}
	switch v := value.(type) {
	case map[string]any:
		for _, id := range optionIDs {
			if truthy(v[id]) {
				return true
			}
		}
		return false
	case string:
		return slices.Contains(optionIDs, v)
	default:
		return false
	}
}

func isComposite(v any) bool {
	switch v.(type) {
	case map[string]any, []any, []string, []float64:
		return true
	}
	return false
}

// asNumber converts numeric types and numeric strings to float64.
func asNumber(v any) (float64, bool) {
	if f, ok := asNumberStrict(v); ok {
		return f, true
	}
	if s, ok := v.(string); ok {
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	}
	return 0, false
}

// asNumberStrict converts only genuine numeric types.
func asNumberStrict(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// truthy mirrors the loose flag semantics of checkbox-style responses.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	default:
		if n, ok := asNumberStrict(v); ok {
			return n != 0
		}
		return true
	}
}
