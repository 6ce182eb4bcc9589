package cli

import (
	"github.com/aretw0/canvass/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// ChoiceOption is one selectable entry of a choice, checkbox or ranking
// question.
type ChoiceOption struct {
	ID    string `mapstructure:"id"`
	Label string `mapstructure:"label"`
}

// ChoiceConfig configures choice, checkbox and ranking questions.
type ChoiceConfig struct {
	Options []ChoiceOption `mapstructure:"options"`
}

// ScaleConfig configures numeric scale questions. Zero values fall back
// to a 1..5 scale.
type ScaleConfig struct {
	Min      int    `mapstructure:"min"`
	Max      int    `mapstructure:"max"`
	MinLabel string `mapstructure:"minLabel"`
	MaxLabel string `mapstructure:"maxLabel"`
}

func decodeChoice(q *domain.Question) (ChoiceConfig, error) {
	var cfg ChoiceConfig
	err := mapstructure.Decode(q.Config, &cfg)
	return cfg, err
}

func decodeScale(q *domain.Question) (ScaleConfig, error) {
	var cfg ScaleConfig
	if err := mapstructure.Decode(q.Config, &cfg); err != nil {
		return cfg, err
	}
	if cfg.Min == 0 && cfg.Max == 0 {
		cfg.Min, cfg.Max = 1, 5
	}
	return cfg, nil
}

// label returns the display text for an option, falling back to its id.
func (o ChoiceOption) label() string {
	if o.Label != "" {
		return o.Label
	}
	return o.ID
}
