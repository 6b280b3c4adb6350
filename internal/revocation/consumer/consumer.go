// Package consumer applies CRL deltas published on a Kafka topic to a
// revocation store.
package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	dErrors "greenpass/pkg/domain-errors"
)

// Update is the message body of a CRL delta.
type Update struct {
	Revoked []string `json:"revoked"`
	Deleted []string `json:"deleted"`
	// Clean empties the store before applying the delta.
	Clean bool `json:"clean,omitempty"`
}

// Target receives decoded updates. revocation.Store satisfies it.
type Target interface {
	Apply(ctx context.Context, revoked, deleted []string) error
	Clean(ctx context.Context) error
}

const defaultRetryBackoff = time.Second

// Config holds consumer configuration.
type Config struct {
	Brokers string
	GroupID string
	Topic   string
	// RetryBackoff is the pause after a store failure before the failed
	// record is fetched again. Zero means one second.
	RetryBackoff time.Duration
}

// Consumer polls CRL deltas and commits offsets only after the store accepted
// them.
type Consumer struct {
	client  *kgo.Client
	target  Target
	logger  *slog.Logger
	backoff time.Duration

	mu     sync.Mutex
	closed bool
}

// New creates a consumer joined to cfg.GroupID.
func New(cfg Config, target Target, logger *slog.Logger) (*Consumer, error) {
	if cfg.Brokers == "" {
		return nil, fmt.Errorf("kafka brokers not configured")
	}
	if cfg.GroupID == "" {
		return nil, fmt.Errorf("kafka consumer group ID not configured")
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("kafka crl topic not configured")
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(strings.Split(cfg.Brokers, ",")...),
		kgo.ConsumerGroup(cfg.GroupID),
		kgo.ConsumeTopics(cfg.Topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
		kgo.DisableAutoCommit(),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka consumer: %w", err)
	}
	c := newWithClient(client, target, logger)
	if cfg.RetryBackoff > 0 {
		c.backoff = cfg.RetryBackoff
	}
	return c, nil
}

func newWithClient(client *kgo.Client, target Target, logger *slog.Logger) *Consumer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Consumer{client: client, target: target, logger: logger, backoff: defaultRetryBackoff}
}

// Run polls until ctx is cancelled or the client is closed.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		fetches := c.client.PollFetches(ctx)
		if fetches.IsClientClosed() {
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}
		fetches.EachError(func(topic string, partition int32, err error) {
			c.logger.ErrorContext(ctx, "kafka fetch error",
				"topic", topic,
				"partition", partition,
				"error", err,
			)
		})

		b := c.process(ctx, fetches)
		if len(b.commit) > 0 {
			if err := c.client.CommitRecords(ctx, b.commit...); err != nil && !errors.Is(err, context.Canceled) {
				c.logger.ErrorContext(ctx, "failed to commit offsets", "error", err)
			}
		}
		if len(b.rewind) == 0 {
			continue
		}
		c.client.SetOffsets(b.rewind)
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(c.backoff):
		}
	}
}

// batch is the outcome of one poll: the records safe to commit and, for each
// partition that hit a store failure, the offset to fetch again from.
type batch struct {
	commit []*kgo.Record
	rewind map[string]map[int32]kgo.EpochOffset
}

// process handles records partition by partition. A store failure stops its
// partition at the failed record; later records of that partition are neither
// applied nor committed. Malformed messages are committed and skipped.
func (c *Consumer) process(ctx context.Context, fetches kgo.Fetches) batch {
	var b batch
	fetches.EachPartition(func(p kgo.FetchTopicPartition) {
		for _, r := range p.Records {
			err := c.Handle(ctx, r.Value)
			if err == nil {
				b.commit = append(b.commit, r)
				continue
			}
			if dErrors.HasCode(err, dErrors.CodeBadRequest) {
				c.logger.WarnContext(ctx, "skipping malformed crl update",
					"topic", r.Topic,
					"partition", r.Partition,
					"offset", r.Offset,
					"error", err,
				)
				b.commit = append(b.commit, r)
				continue
			}
			c.logger.ErrorContext(ctx, "failed to apply crl update, will retry",
				"topic", r.Topic,
				"partition", r.Partition,
				"offset", r.Offset,
				"error", err,
			)
			if b.rewind == nil {
				b.rewind = make(map[string]map[int32]kgo.EpochOffset)
			}
			if b.rewind[r.Topic] == nil {
				b.rewind[r.Topic] = make(map[int32]kgo.EpochOffset)
			}
			b.rewind[r.Topic][r.Partition] = kgo.EpochOffset{Epoch: r.LeaderEpoch, Offset: r.Offset}
			return
		}
	})
	return b
}

// Handle decodes one message value and applies it to the target. Malformed
// payloads return a bad_request error.
func (c *Consumer) Handle(ctx context.Context, value []byte) error {
	var u Update
	if err := json.Unmarshal(value, &u); err != nil {
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "decode crl update")
	}
	if u.Clean {
		if err := c.target.Clean(ctx); err != nil {
			return err
		}
	}
	if len(u.Revoked) == 0 && len(u.Deleted) == 0 {
		return nil
	}
	if err := c.target.Apply(ctx, u.Revoked, u.Deleted); err != nil {
		return err
	}
	c.logger.InfoContext(ctx, "crl update applied",
		"revoked", len(u.Revoked),
		"deleted", len(u.Deleted),
		"clean", u.Clean,
	)
	return nil
}

// Close leaves the group and closes the client.
func (c *Consumer) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.client.Close()
}
