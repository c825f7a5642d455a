package student

// #region imports
import (
	"context"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// #endregion

// #region redis-repository

// RedisRepository stores models as JSON values in Redis so multiple server
// processes can share student state. Keys are namespaced "student:{user_id}".
type RedisRepository struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration // 0 = no expiry
}

// RedisConfig configures the Redis-backed repository.
type RedisConfig struct {
	Prefix string        // key prefix, default "student"
	TTL    time.Duration // per-model expiry, refreshed on save
}

// NewRedisRepository creates a repository over an existing Redis client.
func NewRedisRepository(client redis.UniversalClient, cfg RedisConfig) *RedisRepository {
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "student"
	}
	return &RedisRepository{client: client, prefix: prefix, ttl: cfg.TTL}
}

func (r *RedisRepository) key(userID string) string {
	return fmt.Sprintf("%s:%s", r.prefix, userID)
}

// Load fetches and decodes the model, reporting absence without error.
func (r *RedisRepository) Load(ctx context.Context, userID string) (*Model, bool, error) {
	raw, err := r.client.Get(ctx, r.key(userID)).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load student %s: %w", userID, err)
	}

	var m Model
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, false, fmt.Errorf("decode student %s: %w", userID, err)
	}
	return &m, true, nil
}

// Save encodes and stores the model, refreshing the TTL if one is set.
func (r *RedisRepository) Save(ctx context.Context, m *Model) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode student %s: %w", m.UserID, err)
	}
	if err := r.client.Set(ctx, r.key(m.UserID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("save student %s: %w", m.UserID, err)
	}
	return nil
}

// #endregion redis-repository
