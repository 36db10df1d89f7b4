package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements EventStore on a Redis list per session. Events are
// stored newest-first with LPUSH and capped with LTRIM, so the eviction
// semantics match MemoryStore without a separate cleanup pass.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore connects to the Redis instance described by url
// (redis://host:port/db) and verifies the connection.
func NewRedisStore(ctx context.Context, url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisStore{client: client, prefix: "sentinel:events:"}, nil
}

// NewRedisStoreFromClient wraps an existing client. Used by tests.
func NewRedisStoreFromClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: "sentinel:events:"}
}

func (s *RedisStore) key(sessionID string) string {
	return s.prefix + sessionID
}

func (s *RedisStore) AppendEvent(ctx context.Context, event CrisisEvent) error {
	if event.SessionID == "" {
		return fmt.Errorf("session ID is required")
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	key := s.key(event.SessionID)
	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, key, payload)
	pipe.LTrim(ctx, key, 0, MaxEvents-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	return nil
}

func (s *RedisStore) RecentEvents(ctx context.Context, sessionID string, n int) ([]CrisisEvent, error) {
	stop := int64(MaxEvents - 1)
	if n > 0 && n < MaxEvents {
		stop = int64(n - 1)
	}

	raw, err := s.client.LRange(ctx, s.key(sessionID), 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}

	// LRANGE returns newest-first; reverse into chronological order.
	events := make([]CrisisEvent, 0, len(raw))
	for i := len(raw) - 1; i >= 0; i-- {
		var ev CrisisEvent
		if err := json.Unmarshal([]byte(raw[i]), &ev); err != nil {
			return nil, fmt.Errorf("decode event: %w", err)
		}
		events = append(events, ev)
	}
	return events, nil
}

func (s *RedisStore) EventCount(ctx context.Context, sessionID string) (int, error) {
	count, err := s.client.LLen(ctx, s.key(sessionID)).Result()
	if err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return int(count), nil
}

func (s *RedisStore) EndSession(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ EventStore = (*RedisStore)(nil)
