package revocation

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"greenpass/pkg/platform/circuit"
	"greenpass/pkg/platform/sentinel"
)

// GuardedStore fails fast with sentinel.ErrUnavailable while the backing
// store's circuit is open.
type GuardedStore struct {
	store   Store
	breaker *circuit.Breaker
	logger  *slog.Logger
}

// NewGuardedStore wraps store with breaker. A nil logger discards.
func NewGuardedStore(store Store, breaker *circuit.Breaker, logger *slog.Logger) *GuardedStore {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &GuardedStore{store: store, breaker: breaker, logger: logger}
}

func (g *GuardedStore) Apply(ctx context.Context, revoked, deleted []string) error {
	if err := g.allow(); err != nil {
		return err
	}
	return g.record(ctx, g.store.Apply(ctx, revoked, deleted))
}

func (g *GuardedStore) IsRevoked(ctx context.Context, uvci string) (bool, error) {
	if err := g.allow(); err != nil {
		return false, err
	}
	revoked, err := g.store.IsRevoked(ctx, uvci)
	return revoked, g.record(ctx, err)
}

func (g *GuardedStore) Clean(ctx context.Context) error {
	if err := g.allow(); err != nil {
		return err
	}
	return g.record(ctx, g.store.Clean(ctx))
}

func (g *GuardedStore) allow() error {
	if !g.breaker.Allow() {
		return fmt.Errorf("revocation store %s circuit open: %w", g.breaker.Name(), sentinel.ErrUnavailable)
	}
	return nil
}

func (g *GuardedStore) record(ctx context.Context, err error) error {
	if err != nil {
		if _, change := g.breaker.RecordFailure(); change.Opened {
			g.logger.ErrorContext(ctx, "revocation store circuit opened",
				"store", g.breaker.Name(),
				"error", err,
			)
		}
		return err
	}
	if _, change := g.breaker.RecordSuccess(); change.Closed {
		g.logger.InfoContext(ctx, "revocation store circuit closed", "store", g.breaker.Name())
	}
	return nil
}
