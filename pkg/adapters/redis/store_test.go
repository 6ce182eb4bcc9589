package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redisstore "github.com/aretw0/canvass/pkg/adapters/redis"
	"github.com/aretw0/canvass/pkg/domain"
	"github.com/aretw0/canvass/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, opts ...redisstore.Option) (*redisstore.Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	store := redisstore.NewFromClient(client, opts...)
	t.Cleanup(func() { _ = store.Close() })

	return store, mr
}

func TestRedisStore_Contract(t *testing.T) {
	store, _ := newTestStore(t)
	ports.RunResumeStoreContract(t, store)
}

func TestRedisStoreTTL(t *testing.T) {
	store, mr := newTestStore(t, redisstore.WithTTL(time.Minute))
	ctx := context.Background()

	require.NoError(t, store.SaveStepIndex(ctx, "sid", 2))
	require.NoError(t, store.SaveResponses(ctx, "sid", []byte(`{}`)))

	mr.FastForward(2 * time.Minute)

	_, err := store.LoadStepIndex(ctx, "sid")
	assert.ErrorIs(t, err, domain.ErrNoResumeState)
	_, err = store.LoadResponses(ctx, "sid")
	assert.ErrorIs(t, err, domain.ErrNoResumeState)
}

func TestRedisStorePrefixIsolation(t *testing.T) {
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})

	a := redisstore.NewFromClient(client, redisstore.WithPrefix("a:"))
	b := redisstore.NewFromClient(client, redisstore.WithPrefix("b:"))
	ctx := context.Background()

	require.NoError(t, a.SaveStepIndex(ctx, "sid", 1))

	_, err := b.LoadStepIndex(ctx, "sid")
	assert.ErrorIs(t, err, domain.ErrNoResumeState)
}
