package pressurequeue

import (
	"context"
	"iter"

	"github.com/redis/go-redis/v9"

	"github.com/psobot/pressurequeue/internal/core"
	"github.com/psobot/pressurequeue/internal/redisstore"
)

// ReliableQueue is a Queue whose Get keeps each dequeued message visible
// until Confirm is called, so a crash between Get and whatever processing
// the caller does with the message does not lose it: the next Get (on any
// client) replays the same element instead of advancing.
type ReliableQueue interface {
	Queue

	// Confirm acknowledges that element has been fully processed, allowing
	// the next Get to advance past it.
	Confirm(ctx context.Context, element []byte) error
}

// Compile-time interface satisfaction check.
var _ ReliableQueue = (*reliableQueueWrapper)(nil)

// reliableQueueWrapper wraps core.ReliableQueue to implement ReliableQueue,
// for the same reason queueWrapper wraps core.Queue: it keeps callers from
// reaching internal methods through a type assertion.
type reliableQueueWrapper struct {
	q *core.ReliableQueue
}

// NewReliableQueue returns a ReliableQueue bound to name, using rdb as the
// backing store.
func NewReliableQueue(rdb redis.Cmdable, name string, opts ...QueueOption) ReliableQueue {
	var cfg core.Config
	for _, opt := range opts {
		opt(&cfg)
	}
	inner := core.NewQueue(redisstore.New(rdb), name, cfg)
	return &reliableQueueWrapper{q: core.NewReliableQueue(inner)}
}

func (w *reliableQueueWrapper) Name() string { return w.q.Name() }

func (w *reliableQueueWrapper) Create(ctx context.Context, bound *int64) error {
	return w.q.Create(ctx, bound)
}

func (w *reliableQueueWrapper) Exists(ctx context.Context) (bool, error) {
	return w.q.Exists(ctx)
}

func (w *reliableQueueWrapper) QSize(ctx context.Context) (int64, error) {
	return w.q.QSize(ctx)
}

func (w *reliableQueueWrapper) Closed(ctx context.Context) (bool, error) {
	return w.q.Closed(ctx)
}

func (w *reliableQueueWrapper) Put(ctx context.Context, payload []byte, opts ...PutOption) error {
	return w.q.Put(ctx, payload, opts...)
}

func (w *reliableQueueWrapper) PutNowait(ctx context.Context, payload []byte, allowOverfilling bool) error {
	return w.q.PutNowait(ctx, payload, allowOverfilling)
}

func (w *reliableQueueWrapper) Get(ctx context.Context, opts ...GetOption) ([]byte, error) {
	return w.q.Get(ctx, opts...)
}

func (w *reliableQueueWrapper) GetNowait(ctx context.Context) ([]byte, error) {
	return w.q.GetNowait(ctx)
}

func (w *reliableQueueWrapper) PeekReverseNowait(ctx context.Context) ([]byte, bool, error) {
	return w.q.PeekReverseNowait(ctx)
}

func (w *reliableQueueWrapper) Close(ctx context.Context) error {
	return w.q.Close(ctx)
}

func (w *reliableQueueWrapper) Delete(ctx context.Context) error {
	return w.q.Delete(ctx)
}

func (w *reliableQueueWrapper) Unblock() {
	w.q.Unblock()
}

func (w *reliableQueueWrapper) Messages(ctx context.Context) iter.Seq2[[]byte, error] {
	return w.q.Messages(ctx)
}

func (w *reliableQueueWrapper) Confirm(ctx context.Context, element []byte) error {
	return w.q.Confirm(ctx, element)
}
