// Package httpsource implements ports.DefinitionSource over HTTP.
package httpsource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aretw0/canvass/pkg/domain"
)

// Source fetches survey definitions from a remote HTTP endpoint.
type Source struct {
	client *http.Client
}

type Option func(*Source)

// WithClient injects a custom HTTP client (timeouts, transports, auth).
func WithClient(client *http.Client) Option {
	return func(s *Source) {
		s.client = client
	}
}

// New creates an HTTP definition source.
func New(opts ...Option) *Source {
	src := &Source{
		client: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(src)
	}
	return src
}

// Fetch retrieves the definition at the given URL.
// A 404 maps to LoadNotFound; any other non-2xx status or network
// failure maps to LoadTransportFailure.
func (s *Source) Fetch(ctx context.Context, ref string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, &domain.LoadError{Reason: domain.LoadTransportFailure, Ref: ref, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &domain.LoadError{Reason: domain.LoadTransportFailure, Ref: ref, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &domain.LoadError{Reason: domain.LoadNotFound, Ref: ref}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &domain.LoadError{
			Reason: domain.LoadTransportFailure,
			Ref:    ref,
			Err:    fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.LoadError{Reason: domain.LoadTransportFailure, Ref: ref, Err: err}
	}
	return data, nil
}
