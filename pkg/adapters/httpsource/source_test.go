package httpsource_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/canvass/pkg/adapters/httpsource"
	"github.com/aretw0/canvass/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"s1","steps":[]}`))
	}))
	defer srv.Close()

	src := httpsource.New(httpsource.WithClient(srv.Client()))
	raw, err := src.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"s1","steps":[]}`, string(raw))
}

func TestFetchNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	src := httpsource.New(httpsource.WithClient(srv.Client()))
	_, err := src.Fetch(context.Background(), srv.URL)

	var loadErr *domain.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, domain.LoadNotFound, loadErr.Reason)
}

func TestFetchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	src := httpsource.New(httpsource.WithClient(srv.Client()))
	_, err := src.Fetch(context.Background(), srv.URL)

	var loadErr *domain.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, domain.LoadTransportFailure, loadErr.Reason)
}

func TestFetchConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	src := httpsource.New()
	_, err := src.Fetch(context.Background(), url)

	var loadErr *domain.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, domain.LoadTransportFailure, loadErr.Reason)
}
