package memory

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aretw0/canvass/pkg/domain"
)

// Source implements ports.DefinitionSource using an in-memory map of raw
// survey definitions.
type Source struct {
	surveys map[string][]byte
}

// NewSource creates a Source from raw JSON definitions keyed by ref.
func NewSource(data map[string]string) *Source {
	surveys := make(map[string][]byte, len(data))
	for ref, raw := range data {
		surveys[ref] = []byte(raw)
	}
	return &Source{surveys: surveys}
}

// NewFromSurveys creates a Source from domain objects, keyed by survey ID.
// This handles serialization automatically, improving DX for tests.
func NewFromSurveys(surveys ...domain.Survey) (*Source, error) {
	data := make(map[string][]byte, len(surveys))
	for _, s := range surveys {
		if s.ID == "" {
			return nil, fmt.Errorf("survey missing ID")
		}
		raw, err := json.Marshal(s)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal survey %s: %w", s.ID, err)
		}
		data[s.ID] = raw
	}
	return &Source{surveys: data}, nil
}

// Fetch retrieves the raw definition by ref.
func (s *Source) Fetch(ctx context.Context, ref string) ([]byte, error) {
	raw, ok := s.surveys[ref]
	if !ok {
		return nil, &domain.LoadError{Reason: domain.LoadNotFound, Ref: ref}
	}
	return raw, nil
}
