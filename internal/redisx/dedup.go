package redisx

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyDedup = "dedup:payments:%s"

// TTLDedup bounds how long a settled event identifier stays in the fast path.
// The durable processed-event table remains authoritative.
var TTLDedup = 48 * time.Hour

// New creates a redis client for the duplicate-event cache.
func New(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}

// Dedup is a best-effort duplicate filter consulted before the durable
// idempotency claim. Answers are advisory: a miss is always safe and an error
// degrades to a miss.
type Dedup interface {
	Seen(ctx context.Context, eventID string) bool
	Mark(ctx context.Context, eventID string)
}

// RedisDedup implements Dedup over redis.
type RedisDedup struct {
	client *redis.Client
	logger *slog.Logger
}

// NewDedup constructs RedisDedup.
func NewDedup(client *redis.Client, logger *slog.Logger) *RedisDedup {
	return &RedisDedup{client: client, logger: logger}
}

// Seen reports whether the event identifier was settled recently.
func (d *RedisDedup) Seen(ctx context.Context, eventID string) bool {
	n, err := d.client.Exists(ctx, fmt.Sprintf(keyDedup, eventID)).Result()
	if err != nil {
		d.logger.Debug("dedup lookup failed", slog.String("event_id", eventID), slog.String("error", err.Error()))
		return false
	}
	return n > 0
}

// Mark records a settled event identifier. Call only after the reconciliation
// transaction committed.
func (d *RedisDedup) Mark(ctx context.Context, eventID string) {
	if err := d.client.Set(ctx, fmt.Sprintf(keyDedup, eventID), "1", TTLDedup).Err(); err != nil {
		d.logger.Debug("dedup mark failed", slog.String("event_id", eventID), slog.String("error", err.Error()))
	}
}

// Close releases the underlying client.
func (d *RedisDedup) Close() error {
	return d.client.Close()
}

// NoopDedup is used when no redis address is configured.
type NoopDedup struct{}

func (NoopDedup) Seen(context.Context, string) bool { return false }
func (NoopDedup) Mark(context.Context, string)      {}
