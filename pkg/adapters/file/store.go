package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aretw0/canvass/pkg/domain"
)

// Store implements ports.ResumeStore on the local filesystem.
// Each session gets two files in the base directory, one per slot:
// <id>.step holds the stringified step index, <id>.responses.json holds
// the serialized response map.
type Store struct {
	BasePath string
}

// NewStore creates a Store rooted at basePath.
// If basePath is empty, it defaults to ".canvass/sessions".
func NewStore(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".canvass", "sessions")
	}
	return &Store{BasePath: basePath}
}

func (s *Store) stepPath(sessionID string) string {
	return filepath.Join(s.BasePath, sessionID+".step")
}

func (s *Store) responsesPath(sessionID string) string {
	return filepath.Join(s.BasePath, sessionID+".responses.json")
}

func (s *Store) write(path string, data []byte) error {
	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure session directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

func (s *Store) read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNoResumeState
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}
	return data, nil
}

// SaveStepIndex persists the step index slot.
func (s *Store) SaveStepIndex(ctx context.Context, sessionID string, index int) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID cannot be empty")
	}
	return s.write(s.stepPath(sessionID), []byte(strconv.Itoa(index)))
}

// LoadStepIndex retrieves the step index slot.
func (s *Store) LoadStepIndex(ctx context.Context, sessionID string) (int, error) {
	data, err := s.read(s.stepPath(sessionID))
	if err != nil {
		return 0, err
	}

	idx, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		// A mangled slot is indistinguishable from an absent one for
		// resume purposes.
		return 0, domain.ErrNoResumeState
	}
	return idx, nil
}

// SaveResponses persists the serialized response map slot.
func (s *Store) SaveResponses(ctx context.Context, sessionID string, data []byte) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID cannot be empty")
	}
	return s.write(s.responsesPath(sessionID), data)
}

// LoadResponses retrieves the serialized response map slot.
func (s *Store) LoadResponses(ctx context.Context, sessionID string) ([]byte, error) {
	return s.read(s.responsesPath(sessionID))
}

// Clear removes both slot files for the session.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	for _, path := range []string{s.stepPath(sessionID), s.responsesPath(sessionID)} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove session file: %w", err)
		}
	}
	return nil
}
