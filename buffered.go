package pressurequeue

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/psobot/pressurequeue/internal/core"
)

// BufferedQueue prefetches messages from an underlying Queue onto a local
// bounded channel, so Get returns immediately whenever a message is
// already buffered instead of making a store round-trip on every call.
//
// It is built only against the public Queue interface — it has no access
// to the underlying coordination keys and reaches every bit of its
// behavior through Get like any other consumer of that Queue.
type BufferedQueue struct {
	raw    Queue
	buffer chan []byte
	cancel context.CancelFunc
	group  *errgroup.Group
}

// NewBufferedQueue starts a background goroutine that repeatedly calls
// q.Get and feeds the result into a channel of the given capacity. The
// goroutine runs until ctx is canceled, q closes, Close is called, or Get
// returns an error other than ErrClosed (at which point the channel is
// closed and that error is surfaced from a subsequent Get).
func NewBufferedQueue(ctx context.Context, q Queue, bufferSize int) *BufferedQueue {
	listenCtx, cancel := context.WithCancel(ctx)
	g, gCtx := errgroup.WithContext(listenCtx)

	b := &BufferedQueue{
		raw:    q,
		buffer: make(chan []byte, bufferSize),
		cancel: cancel,
		group:  g,
	}

	g.Go(func() error {
		defer close(b.buffer)
		for {
			msg, err := q.Get(gCtx, WithGetAllowUnblocking(true))
			if err != nil {
				if errors.Is(err, ErrClosed) {
					core.Logger().Debug("buffered queue prefetch goroutine exiting: queue closed")
					return nil
				}
				if gCtx.Err() != nil {
					core.Logger().Debug("buffered queue prefetch goroutine exiting: context done", "error", gCtx.Err())
					return nil
				}
				core.Logger().Warn("buffered queue prefetch goroutine exiting on store error", "error", err)
				return err
			}
			select {
			case b.buffer <- msg:
			case <-gCtx.Done():
				core.Logger().Debug("buffered queue prefetch goroutine exiting: context done", "error", gCtx.Err())
				return nil
			}
		}
	})

	return b
}

// Get returns the next buffered message, blocking until one arrives or ctx
// is done. Once the prefetch goroutine has stopped and the buffer has
// drained, Get returns its terminal error, or ErrClosed if it stopped
// without one (the underlying queue closed, or ctx or Close stopped it).
func (b *BufferedQueue) Get(ctx context.Context) ([]byte, error) {
	select {
	case msg, ok := <-b.buffer:
		if !ok {
			if err := b.group.Wait(); err != nil {
				return nil, err
			}
			return nil, ErrClosed
		}
		return msg, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// QSize returns the underlying queue's reported size plus whatever is
// currently sitting in the local buffer.
func (b *BufferedQueue) QSize(ctx context.Context) (int64, error) {
	raw, err := b.raw.QSize(ctx)
	if err != nil {
		return 0, err
	}
	return raw + int64(len(b.buffer)), nil
}

// Close stops the prefetch goroutine and waits for it to exit. It does not
// close or delete the underlying Queue.
func (b *BufferedQueue) Close() error {
	b.cancel()
	return b.group.Wait()
}
