package cache

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/tsawler/litsense"
	"github.com/tsawler/litsense/internal/domain"
)

var testRedisURL string

func TestMain(m *testing.M) {
	flag.Parse()

	if testing.Short() {
		os.Exit(m.Run())
	}

	ctx := context.Background()
	container, err := redis.Run(ctx, "redis:7-alpine")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start redis container: %v\n", err)
		os.Exit(1)
	}

	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to get redis endpoint: %v\n", err)
		os.Exit(1)
	}
	testRedisURL = "redis://" + endpoint

	code := m.Run()
	if err := container.Terminate(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to terminate redis container: %v\n", err)
	}
	os.Exit(code)
}

func setupTestClient(t *testing.T) *goredis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	client, err := NewClient(ctx, testRedisURL)
	require.NoError(t, err)
	require.NoError(t, client.FlushAll(ctx).Err())

	t.Cleanup(func() {
		_ = client.Close()
	})
	return client
}

func TestCacheRoundTrip(t *testing.T) {
	rdb := setupTestClient(t)
	c := New(rdb, time.Minute)
	ctx := context.Background()

	hash := domain.TextHash(litsense.Poem, "Roses are red")
	_, ok, err := c.Get(ctx, hash)
	require.NoError(t, err)
	assert.False(t, ok)

	record := &domain.Record{
		ID:        uuid.New(),
		CreatedAt: time.Date(2024, time.March, 3, 12, 0, 0, 0, time.UTC),
		TextType:  litsense.Poem,
		TextHash:  hash,
		Result: &litsense.AnalysisResult{
			Metadata:  litsense.Metadata{TextType: litsense.Poem, TextLength: 13},
			Sentiment: litsense.DocumentSentiment{OverallSentiment: litsense.Positive},
		},
		Summary: "summary",
	}
	require.NoError(t, c.Set(ctx, hash, record))

	got, ok, err := c.Get(ctx, hash)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, got.Cached)
	assert.Equal(t, record.ID, got.ID)
	assert.Equal(t, litsense.Positive, got.Result.Sentiment.OverallSentiment)

	ttl, err := rdb.TTL(ctx, Key(hash)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}

func TestCacheCorruptEntryIsMiss(t *testing.T) {
	rdb := setupTestClient(t)
	c := New(rdb, time.Minute)
	ctx := context.Background()

	require.NoError(t, rdb.Set(ctx, Key("broken"), "{not json", time.Minute).Err())

	record, ok, err := c.Get(ctx, "broken")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, record)
}
