package student

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/officemates/antigravity/internal/plan"
	"github.com/officemates/antigravity/internal/signals"
)

func newRedisRepo(t *testing.T, cfg RedisConfig) (*RedisRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisRepository(client, cfg), mr
}

func TestRedisRepositoryLoadMissing(t *testing.T) {
	repo, _ := newRedisRepo(t, RedisConfig{})

	m, ok, err := repo.Load(context.Background(), "ghost")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, m)
}

func TestRedisRepositoryRoundTrip(t *testing.T) {
	repo, _ := newRedisRepo(t, RedisConfig{})
	ctx := context.Background()

	m := NewModel("u1", t0)
	m.DistractionCount = 4
	m.LastDistractionStatus = true
	m.LastInterventionType = signals.DistractionLookingAway
	m.StatusHistory = []signals.FrameState{
		{IsDistracted: true, Type: signals.DistractionLookingAway, FacePresent: false},
	}
	p := plan.Generate("u1", 25, plan.GenerateStats{}, t0)
	m.CurrentPlan = &p

	require.NoError(t, repo.Save(ctx, m))

	got, ok, err := repo.Load(ctx, "u1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 4, got.DistractionCount)
	assert.True(t, got.LastDistractionStatus)
	assert.Equal(t, signals.DistractionLookingAway, got.LastInterventionType)
	require.Len(t, got.StatusHistory, 1)
	assert.False(t, got.StatusHistory[0].FacePresent)
	require.NotNil(t, got.CurrentPlan)
	assert.Equal(t, 25, got.CurrentPlan.RecommendedDurationMinutes)
}

func TestRedisRepositoryKeyPrefix(t *testing.T) {
	repo, mr := newRedisRepo(t, RedisConfig{Prefix: "focus"})
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, NewModel("u1", t0)))
	assert.True(t, mr.Exists("focus:u1"))
}

func TestRedisRepositoryTTL(t *testing.T) {
	repo, mr := newRedisRepo(t, RedisConfig{TTL: time.Minute})
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, NewModel("u1", t0)))
	assert.Equal(t, time.Minute, mr.TTL("student:u1"))
}
