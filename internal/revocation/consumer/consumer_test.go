package consumer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"greenpass/internal/revocation"
	dErrors "greenpass/pkg/domain-errors"
)

type failingTarget struct{ err error }

func (f failingTarget) Apply(context.Context, []string, []string) error { return f.err }
func (f failingTarget) Clean(context.Context) error                     { return f.err }

// refusingTarget fails any delta that revokes one of the refused ids and
// forwards the rest to the wrapped store.
type refusingTarget struct {
	*revocation.InMemoryStore
	refuse []string
}

func (r refusingTarget) Apply(ctx context.Context, revoked, deleted []string) error {
	for _, id := range revoked {
		if slices.Contains(r.refuse, id) {
			return errors.New("store unavailable")
		}
	}
	return r.InMemoryStore.Apply(ctx, revoked, deleted)
}

func record(partition int32, offset int64, value string) *kgo.Record {
	return &kgo.Record{Topic: "crl", Partition: partition, Offset: offset, LeaderEpoch: 3, Value: []byte(value)}
}

func fetchesOf(partitions ...kgo.FetchPartition) kgo.Fetches {
	return kgo.Fetches{{Topics: []kgo.FetchTopic{{Topic: "crl", Partitions: partitions}}}}
}

func newTestConsumer(target Target) *Consumer {
	return newWithClient(nil, target, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHandle(t *testing.T) {
	ctx := context.Background()

	t.Run("applies revoked and deleted", func(t *testing.T) {
		store := revocation.NewInMemoryStore()
		require.NoError(t, store.Apply(ctx, []string{"OLD"}, nil))
		c := newTestConsumer(store)

		require.NoError(t, c.Handle(ctx, []byte(`{"revoked":["A","B"],"deleted":["OLD"]}`)))

		for id, want := range map[string]bool{"A": true, "B": true, "OLD": false} {
			got, err := store.IsRevoked(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, want, got, id)
		}
	})

	t.Run("clean resets before applying", func(t *testing.T) {
		store := revocation.NewInMemoryStore()
		require.NoError(t, store.Apply(ctx, []string{"STALE"}, nil))
		c := newTestConsumer(store)

		require.NoError(t, c.Handle(ctx, []byte(`{"clean":true,"revoked":["FRESH"]}`)))
		assert.Equal(t, 1, store.Len())
	})

	t.Run("malformed payload is bad request", func(t *testing.T) {
		c := newTestConsumer(revocation.NewInMemoryStore())
		err := c.Handle(ctx, []byte(`not json`))
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("store failure is returned unchanged", func(t *testing.T) {
		boom := errors.New("redis down")
		c := newTestConsumer(failingTarget{err: boom})
		err := c.Handle(ctx, []byte(`{"revoked":["A"]}`))
		require.ErrorIs(t, err, boom)
		assert.False(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}

func TestNewRequiresConfig(t *testing.T) {
	_, err := New(Config{}, revocation.NewInMemoryStore(), nil)
	assert.Error(t, err)
	_, err = New(Config{Brokers: "localhost:9092"}, revocation.NewInMemoryStore(), nil)
	assert.Error(t, err)
	_, err = New(Config{Brokers: "localhost:9092", GroupID: "g"}, revocation.NewInMemoryStore(), nil)
	assert.Error(t, err)
}

func TestProcessStopsPartitionAtStoreFailure(t *testing.T) {
	ctx := context.Background()
	store := revocation.NewInMemoryStore()
	c := newTestConsumer(refusingTarget{InMemoryStore: store, refuse: []string{"B"}})

	fetches := fetchesOf(
		kgo.FetchPartition{Partition: 0, Records: []*kgo.Record{
			record(0, 10, `{"revoked":["A"]}`),
			record(0, 11, `garbage`),
			record(0, 12, `{"revoked":["B"]}`),
			record(0, 13, `{"revoked":["C"]}`),
		}},
		kgo.FetchPartition{Partition: 1, Records: []*kgo.Record{
			record(1, 5, `{"revoked":["D"]}`),
		}},
	)

	b := c.process(ctx, fetches)

	var committed []int64
	for _, r := range b.commit {
		committed = append(committed, int64(r.Partition)*100+r.Offset)
	}
	assert.ElementsMatch(t, []int64{10, 11, 105}, committed, "nothing at or after the failed record is committed")
	assert.Equal(t, map[string]map[int32]kgo.EpochOffset{
		"crl": {0: {Epoch: 3, Offset: 12}},
	}, b.rewind)

	for id, want := range map[string]bool{"A": true, "B": false, "C": false, "D": true} {
		got, err := store.IsRevoked(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, want, got, id)
	}
}

func TestProcessRetriesFailedRecordOnNextPoll(t *testing.T) {
	ctx := context.Background()
	store := revocation.NewInMemoryStore()
	target := &refusingTarget{InMemoryStore: store, refuse: []string{"A"}}
	c := newTestConsumer(target)

	first := c.process(ctx, fetchesOf(kgo.FetchPartition{Partition: 0, Records: []*kgo.Record{
		record(0, 0, `{"revoked":["A"]}`),
	}}))
	require.Empty(t, first.commit)
	require.Equal(t, int64(0), first.rewind["crl"][0].Offset)

	target.refuse = nil
	second := c.process(ctx, fetchesOf(kgo.FetchPartition{Partition: 0, Records: []*kgo.Record{
		record(0, 0, `{"revoked":["A"]}`),
		record(0, 1, `{"revoked":["B"]}`),
	}}))
	assert.Len(t, second.commit, 2)
	assert.Empty(t, second.rewind)

	for _, id := range []string{"A", "B"} {
		got, err := store.IsRevoked(ctx, id)
		require.NoError(t, err)
		assert.True(t, got, id)
	}
}
