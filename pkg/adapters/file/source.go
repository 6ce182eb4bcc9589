package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/canvass/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Source implements ports.DefinitionSource for survey definitions stored
// on disk. Definitions may be authored in JSON or YAML; YAML documents
// are normalized to JSON so the loader has a single parse path.
type Source struct{}

// NewSource creates a filesystem definition source.
func NewSource() *Source {
	return &Source{}
}

// Fetch reads the definition at the given path.
func (s *Source) Fetch(ctx context.Context, ref string) ([]byte, error) {
	data, err := os.ReadFile(ref)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &domain.LoadError{Reason: domain.LoadNotFound, Ref: ref, Err: err}
		}
		return nil, &domain.LoadError{Reason: domain.LoadTransportFailure, Ref: ref, Err: err}
	}

	switch strings.ToLower(filepath.Ext(ref)) {
	case ".yaml", ".yml":
		return yamlToJSON(ref, data)
	default:
		return data, nil
	}
}

// yamlToJSON re-encodes a YAML document as JSON.
func yamlToJSON(ref string, data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &domain.LoadError{
			Reason: domain.LoadMalformed,
			Ref:    ref,
			Err:    fmt.Errorf("invalid yaml: %w", err),
		}
	}

	out, err := json.Marshal(doc)
	if err != nil {
		return nil, &domain.LoadError{Reason: domain.LoadMalformed, Ref: ref, Err: err}
	}
	return out, nil
}
