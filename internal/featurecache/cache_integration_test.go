package featurecache_test

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"plantgen-backend/internal/featurecache"
	"plantgen-backend/internal/features"
)

// TestCache_Integration exercises Get/Set against a real Redis instance
// rather than miniredis, catching anything the in-memory fake papers over
// (TTL expiry, actual wire serialization).
func TestCache_Integration(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	}
	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skip("Docker not available for integration test")
	}
	defer redisContainer.Terminate(ctx)

	host, err := redisContainer.Host(ctx)
	require.NoError(t, err)
	port, err := redisContainer.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: host + ":" + port.Port()})
	defer client.Close()
	require.NoError(t, client.Ping(ctx).Err())

	cache := featurecache.New(client)

	want := features.Transformed{UserID: "garden-user-1", Objective: "ornamental", Region: 2}
	want.Numeric[0] = 0.75

	cache.Set(ctx, want)

	got, ok := cache.Get(ctx, "garden-user-1")
	require.True(t, ok)
	assert.Equal(t, want, got)

	_, ok = cache.Get(ctx, "never-cached")
	assert.False(t, ok)

	require.NoError(t, client.FlushAll(ctx).Err())
	_, ok = cache.Get(ctx, "garden-user-1")
	assert.False(t, ok)
}
