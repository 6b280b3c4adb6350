package revocation

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the set holding revoked UVCIs.
const DefaultRedisKey = "greenpass:crl:revoked"

// RedisStore keeps revoked UVCIs in a single Redis set so every instance
// shares the same CRL.
type RedisStore struct {
	client redis.UniversalClient
	key    string
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithRedisKey overrides the set key.
func WithRedisKey(key string) RedisStoreOption {
	return func(s *RedisStore) {
		if key != "" {
			s.key = key
		}
	}
}

// NewRedisStore constructs a Redis-backed revocation store.
func NewRedisStore(client redis.UniversalClient, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{client: client, key: DefaultRedisKey}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Apply adds and removes members in one MULTI/EXEC round trip.
func (s *RedisStore) Apply(ctx context.Context, revoked, deleted []string) error {
	revoked, deleted = normalize(revoked), normalize(deleted)
	if len(revoked) == 0 && len(deleted) == 0 {
		return nil
	}

	pipe := s.client.TxPipeline()
	if len(revoked) > 0 {
		pipe.SAdd(ctx, s.key, toAny(revoked)...)
	}
	if len(deleted) > 0 {
		pipe.SRem(ctx, s.key, toAny(deleted)...)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("apply crl update: %w", err)
	}
	recordApply(len(revoked), len(deleted))
	return nil
}

func (s *RedisStore) IsRevoked(ctx context.Context, uvci string) (bool, error) {
	uvci = strings.TrimSpace(uvci)
	if uvci == "" {
		return false, nil
	}
	ok, err := s.client.SIsMember(ctx, s.key, uvci).Result()
	if err != nil {
		return false, fmt.Errorf("check uvci revocation: %w", err)
	}
	return ok, nil
}

func (s *RedisStore) Clean(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("clean crl: %w", err)
	}
	recordClean()
	return nil
}

func toAny(ids []string) []any {
	out := make([]any, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return out
}
