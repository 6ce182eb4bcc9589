package domain

// Survey is the full definition of a multi-step survey.
// It is immutable once loaded; all mutable state lives in the engine's
// response set and navigation state, never in the definition.
type Survey struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Steps are ordered; order defines the navigation sequence.
	Steps []Step `json:"steps" yaml:"steps"`
}

// Step is one ordered page of the survey grouping one or more questions.
type Step struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// BackgroundImage is a decoration hint for renderers; the engine ignores it.
	BackgroundImage string `json:"backgroundImage,omitempty" yaml:"backgroundImage,omitempty"`

	Questions []Question `json:"questions" yaml:"questions"`
}

// Question is a single prompt. The engine only reads the envelope fields
// (ID, Required, Conditions, AllowComment); Type and Config are opaque
// hints for the renderer, which owns all type-specific behavior.
type Question struct {
	// ID is unique within the survey. It is the join key used by
	// responses and by conditions referencing other questions.
	ID string `json:"id" yaml:"id"`

	Type        string `json:"type" yaml:"type"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	Required     bool `json:"required,omitempty" yaml:"required,omitempty"`
	AllowComment bool `json:"allowComment,omitempty" yaml:"allowComment,omitempty"`

	// Conditions controls visibility. A nil Conditions means the
	// question is always visible.
	Conditions *ConditionGroup `json:"conditions,omitempty" yaml:"conditions,omitempty"`

	// Config holds type-specific settings (choice options, scale
	// bounds, ...). Opaque to the engine.
	Config map[string]any `json:"config,omitempty" yaml:"config,omitempty"`
}

// StepByID returns the step with the given id, or nil if absent.
func (s *Survey) StepByID(id string) *Step {
	for i := range s.Steps {
		if s.Steps[i].ID == id {
			return &s.Steps[i]
		}
	}
	return nil
}

// QuestionByID scans all steps for a question, or nil if absent.
func (s *Survey) QuestionByID(id string) *Question {
	for i := range s.Steps {
		for j := range s.Steps[i].Questions {
			if s.Steps[i].Questions[j].ID == id {
				return &s.Steps[i].Questions[j]
			}
		}
	}
	return nil
}
