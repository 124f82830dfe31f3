package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/edumentor/edumentor-api/internal/models"
	appErrors "github.com/edumentor/edumentor-api/pkg/errors"
)

func newCacheRepo(t *testing.T) (*CacheRepository, *miniredis.Miniredis) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCacheRepository(client, zap.NewNop()), srv
}

func TestCacheRepositoryRoundTrip(t *testing.T) {
	repo, _ := newCacheRepo(t)
	ctx := context.Background()

	jobs := []models.JobView{
		{JobPosting: models.JobPosting{ID: 4, Title: "Math Teacher", Status: models.JobStatusActive}, SchoolName: "Hilltop"},
	}
	require.NoError(t, repo.Set(ctx, "jobs:active", jobs, time.Minute))

	var cached []models.JobView
	require.NoError(t, repo.Get(ctx, "jobs:active", &cached))
	require.Len(t, cached, 1)
	assert.Equal(t, "Hilltop", cached[0].SchoolName)
	assert.Equal(t, int64(4), cached[0].ID)
}

func TestCacheRepositoryMiss(t *testing.T) {
	repo, _ := newCacheRepo(t)

	var dest []models.JobView
	err := repo.Get(context.Background(), "jobs:active", &dest)
	assert.ErrorIs(t, err, appErrors.ErrCacheMiss)
}

func TestCacheRepositoryDeleteByPattern(t *testing.T) {
	repo, srv := newCacheRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "jobs:active", []int{1}, time.Minute))
	require.NoError(t, repo.Set(ctx, "jobs:school:3", []int{2}, time.Minute))
	require.NoError(t, repo.Set(ctx, "other:key", []int{3}, time.Minute))

	require.NoError(t, repo.DeleteByPattern(ctx, "jobs:*"))

	assert.False(t, srv.Exists("jobs:active"))
	assert.False(t, srv.Exists("jobs:school:3"))
	assert.True(t, srv.Exists("other:key"))
}

func TestCacheRepositoryNilClient(t *testing.T) {
	repo := NewCacheRepository(nil, zap.NewNop())
	ctx := context.Background()

	var dest []models.JobView
	assert.ErrorIs(t, repo.Get(ctx, "jobs:active", &dest), appErrors.ErrCacheMiss)
	assert.NoError(t, repo.Set(ctx, "jobs:active", dest, time.Minute))
	assert.NoError(t, repo.DeleteByPattern(ctx, "jobs:*"))
}
