package redisx

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/maisonforma/storefront/internal/config"
)

// Module wires the duplicate-event cache. Without REDIS_ADDR the no-op
// implementation is used and every duplicate check falls through to the
// durable claim.
var Module = fx.Provide(newDedup)

type dedupParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newDedup(p dedupParams) Dedup {
	if p.Config.RedisAddr == "" {
		return NoopDedup{}
	}

	dedup := NewDedup(New(p.Config.RedisAddr), p.Logger)
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return dedup.Close()
		},
	})
	return dedup
}
