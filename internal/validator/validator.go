// Package validator lints survey definitions before they are served:
// duplicate ids, dangling condition references, and rule configurations
// that can never evaluate true.
package validator

import (
	"fmt"

	"github.com/aretw0/canvass/pkg/domain"
)

// Severity classifies a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Problem is a single finding about a definition.
type Problem struct {
	Severity Severity
	Message  string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s", p.Severity, p.Message)
}

// Check inspects a survey definition and returns all findings.
// Errors indicate a definition the engine cannot run meaningfully;
// warnings indicate constructs that run but probably not as intended
// (e.g. an unknown operator, which evaluates fail-open).
func Check(survey *domain.Survey) []Problem {
	var problems []Problem

	report := func(sev Severity, format string, args ...any) {
		problems = append(problems, Problem{Severity: sev, Message: fmt.Sprintf(format, args...)})
	}

	if survey.ID == "" {
		report(SeverityWarning, "survey has no id")
	}
	if len(survey.Steps) == 0 {
		report(SeverityError, "survey has no steps")
	}

	seen := make(map[string]bool)
	for si, step := range survey.Steps {
		if step.ID == "" {
			report(SeverityError, "step %d has no id", si)
		}
		for _, q := range step.Questions {
			if q.ID == "" {
				report(SeverityError, "step %q contains a question with no id", step.ID)
				continue
			}
			if seen[q.ID] {
				report(SeverityError, "duplicate question id %q", q.ID)
			}
			seen[q.ID] = true
		}
	}

	for _, step := range survey.Steps {
		for _, q := range step.Questions {
			if q.Conditions != nil {
				checkConditions(report, &q, seen)
			}
		}
	}

	return problems
}

// Errors filters the findings down to hard errors.
func Errors(problems []Problem) []Problem {
	var out []Problem
	for _, p := range problems {
		if p.Severity == SeverityError {
			out = append(out, p)
		}
	}
	return out
}

func checkConditions(report func(Severity, string, ...any), q *domain.Question, known map[string]bool) {
	group := q.Conditions

	switch group.Operator {
	case domain.OperatorAnd, domain.OperatorOr:
	default:
		report(SeverityWarning,
			"question %q: unknown operator %q evaluates fail-open (always visible)", q.ID, group.Operator)
	}

	if len(group.Rules) == 0 {
		report(SeverityWarning, "question %q: empty rule list, conditions have no effect", q.ID)
	}

	for _, rule := range group.Rules {
		if rule.QuestionID == "" {
			report(SeverityError, "question %q: rule missing questionId", q.ID)
			continue
		}
		if !known[rule.QuestionID] {
			report(SeverityError, "question %q: rule references unknown question %q", q.ID, rule.QuestionID)
		}
		if rule.QuestionID == q.ID {
			report(SeverityError, "question %q: rule references the question itself", q.ID)
		}

		switch rule.Type {
		case domain.RuleAnswered, domain.RuleEquals, domain.RuleNotEquals, domain.RuleContains:
		case domain.RuleGreaterThan, domain.RuleLessThan:
			if rule.Threshold == nil {
				report(SeverityError, "question %q: %s rule on %q has no threshold, it can never match",
					q.ID, rule.Type, rule.QuestionID)
			}
		case domain.RuleTopRanked, domain.RuleOptionChecked:
			if len(rule.OptionIDs) == 0 {
				report(SeverityError, "question %q: %s rule on %q has no optionId, it can never match",
					q.ID, rule.Type, rule.QuestionID)
			}
		default:
			report(SeverityWarning, "question %q: unknown rule type %q evaluates to false", q.ID, rule.Type)
		}
	}
}
