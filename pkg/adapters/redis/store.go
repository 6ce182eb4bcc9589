package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aretw0/canvass/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Store implements ports.ResumeStore using Redis.
// Each session occupies two plain string keys, one per resume slot, so
// the slots stay independently writable and expirable.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for resume slots.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for sessions.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "canvass:session:",
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) stepKey(sessionID string) string {
	return s.prefix + sessionID + ":step"
}

func (s *Store) responsesKey(sessionID string) string {
	return s.prefix + sessionID + ":responses"
}

// SaveStepIndex persists the step index slot.
func (s *Store) SaveStepIndex(ctx context.Context, sessionID string, index int) error {
	err := s.client.Set(ctx, s.stepKey(sessionID), strconv.Itoa(index), s.ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to save step index to redis: %w", err)
	}
	return nil
}

// LoadStepIndex retrieves the step index slot.
func (s *Store) LoadStepIndex(ctx context.Context, sessionID string) (int, error) {
	val, err := s.client.Get(ctx, s.stepKey(sessionID)).Result()
	if err != nil {
		if err == backend.Nil {
			return 0, domain.ErrNoResumeState
		}
		return 0, fmt.Errorf("failed to get step index from redis: %w", err)
	}

	idx, err := strconv.Atoi(val)
	if err != nil {
		return 0, domain.ErrNoResumeState
	}
	return idx, nil
}

// SaveResponses persists the serialized response map slot.
func (s *Store) SaveResponses(ctx context.Context, sessionID string, data []byte) error {
	err := s.client.Set(ctx, s.responsesKey(sessionID), data, s.ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to save responses to redis: %w", err)
	}
	return nil
}

// LoadResponses retrieves the serialized response map slot.
func (s *Store) LoadResponses(ctx context.Context, sessionID string) ([]byte, error) {
	val, err := s.client.Get(ctx, s.responsesKey(sessionID)).Bytes()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrNoResumeState
		}
		return nil, fmt.Errorf("failed to get responses from redis: %w", err)
	}
	return val, nil
}

// Clear removes both slots for the session.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	err := s.client.Del(ctx, s.stepKey(sessionID), s.responsesKey(sessionID)).Err()
	if err != nil {
		return fmt.Errorf("failed to clear session in redis: %w", err)
	}
	return nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
