package pressurequeue

import (
	"context"
	"iter"

	"github.com/redis/go-redis/v9"

	"github.com/psobot/pressurequeue/internal/core"
	"github.com/psobot/pressurequeue/internal/redisstore"
)

// Compile-time interface satisfaction check.
var _ Queue = (*queueWrapper)(nil)

// queueWrapper wraps core.Queue to implement the Queue interface.
//
// The core.Queue is stored as a named (unexported) field rather than
// embedded to prevent callers from using type assertions to reach
// internal methods that are not part of the public Queue interface.
type queueWrapper struct {
	q *core.Queue
}

// NewQueue returns a Queue bound to name, using rdb (a *redis.Client,
// *redis.ClusterClient, or *redis.Ring) as the backing store. It does not
// itself touch the store; call Create for a new queue, or any other
// method to attach to one another client already created.
func NewQueue(rdb redis.Cmdable, name string, opts ...QueueOption) Queue {
	var cfg core.Config
	for _, opt := range opts {
		opt(&cfg)
	}
	return &queueWrapper{q: core.NewQueue(redisstore.New(rdb), name, cfg)}
}

func (w *queueWrapper) Name() string { return w.q.Name() }

func (w *queueWrapper) Create(ctx context.Context, bound *int64) error {
	return w.q.Create(ctx, bound)
}

func (w *queueWrapper) Exists(ctx context.Context) (bool, error) {
	return w.q.Exists(ctx)
}

func (w *queueWrapper) QSize(ctx context.Context) (int64, error) {
	return w.q.QSize(ctx)
}

func (w *queueWrapper) Closed(ctx context.Context) (bool, error) {
	return w.q.Closed(ctx)
}

func (w *queueWrapper) Put(ctx context.Context, payload []byte, opts ...PutOption) error {
	return w.q.Put(ctx, payload, opts...)
}

func (w *queueWrapper) PutNowait(ctx context.Context, payload []byte, allowOverfilling bool) error {
	return w.q.PutNowait(ctx, payload, allowOverfilling)
}

func (w *queueWrapper) Get(ctx context.Context, opts ...GetOption) ([]byte, error) {
	return w.q.Get(ctx, opts...)
}

func (w *queueWrapper) GetNowait(ctx context.Context) ([]byte, error) {
	return w.q.GetNowait(ctx)
}

func (w *queueWrapper) PeekReverseNowait(ctx context.Context) ([]byte, bool, error) {
	return w.q.PeekReverseNowait(ctx)
}

func (w *queueWrapper) Close(ctx context.Context) error {
	return w.q.Close(ctx)
}

func (w *queueWrapper) Delete(ctx context.Context) error {
	return w.q.Delete(ctx)
}

func (w *queueWrapper) Unblock() {
	w.q.Unblock()
}

func (w *queueWrapper) Messages(ctx context.Context) iter.Seq2[[]byte, error] {
	return w.q.Messages(ctx)
}
