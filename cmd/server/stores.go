package main

import (
	"context"
	"fmt"
	"log/slog"

	"greenpass/internal/platform/config"
	"greenpass/internal/revocation"
	"greenpass/migrations"
	"greenpass/pkg/platform/circuit"
)

func (in *infra) revocationStore(ctx context.Context, backend string, log *slog.Logger) (revocation.Store, error) {
	switch backend {
	case config.BackendRedis:
		if in.redis == nil {
			return nil, fmt.Errorf("redis revocation backend selected but redis is not configured")
		}
		return revocation.NewGuardedStore(revocation.NewRedisStore(in.redis.Client), circuit.New(backend), log), nil
	case config.BackendPostgres:
		if in.db == nil {
			return nil, fmt.Errorf("postgres revocation backend selected but database is not configured")
		}
		if err := migrations.Up(ctx, in.db.DB()); err != nil {
			return nil, fmt.Errorf("migrate database: %w", err)
		}
		return revocation.NewGuardedStore(revocation.NewPostgresStore(in.db.DB()), circuit.New(backend), log), nil
	default:
		return revocation.NewInMemoryStore(), nil
	}
}
