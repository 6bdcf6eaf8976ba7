package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/preston-bernstein/team-matches-service/internal/domain/matches"
)

// RedisOptions configures the Redis backend.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

// RedisBackend stores history as one hash: field = match id, value = JSON entry.
type RedisBackend struct {
	client *redis.Client
	key    string
}

// NewRedisBackend connects lazily; the first Load or Save surfaces connection errors.
func NewRedisBackend(opts RedisOptions) *RedisBackend {
	return &RedisBackend{
		client: redis.NewClient(&redis.Options{
			Addr:     opts.Addr,
			Password: opts.Password,
			DB:       opts.DB,
		}),
		key: opts.Key,
	}
}

func (b *RedisBackend) Name() string { return "redis" }

func (b *RedisBackend) Load(ctx context.Context) (map[string]matches.HistoryEntry, error) {
	raw, err := b.client.HGetAll(ctx, b.key).Result()
	if err != nil {
		return nil, err
	}
	entries := make(map[string]matches.HistoryEntry, len(raw))
	for id, payload := range raw {
		var entry matches.HistoryEntry
		if err := json.Unmarshal([]byte(payload), &entry); err != nil {
			return nil, fmt.Errorf("decode %s: %w", id, err)
		}
		entries[id] = entry
	}
	return entries, nil
}

// Save replaces the hash inside a MULTI/EXEC block.
func (b *RedisBackend) Save(ctx context.Context, entries map[string]matches.HistoryEntry) error {
	fields := make(map[string]interface{}, len(entries))
	for id, entry := range entries {
		payload, err := json.Marshal(entry)
		if err != nil {
			return err
		}
		fields[id] = string(payload)
	}

	pipe := b.client.TxPipeline()
	pipe.Del(ctx, b.key)
	if len(fields) > 0 {
		pipe.HSet(ctx, b.key, fields)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (b *RedisBackend) Close() error {
	return b.client.Close()
}
