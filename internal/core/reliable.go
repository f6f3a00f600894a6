package core

import (
	"context"
	"errors"
	"fmt"
	"iter"
)

// ReliableQueue wraps Queue so that each consumed message stays visible, in
// a sidecar ":processing" list, until the caller explicitly Confirms it.
// A crash between Get and Confirm does not lose the message: the next Get
// on any client replays it from the processing list before looking at the
// main queue. It embeds *Queue and reuses its role locks and bookkeeping
// directly rather than re-implementing them; the only substantive change
// is that the consume step atomically moves the message into the
// processing list instead of discarding it, and not_full is re-asserted
// at Confirm time rather than at Get time.
type ReliableQueue struct {
	*Queue
}

// NewReliableQueue wraps q for at-least-once, crash-safe consumption.
func NewReliableQueue(q *Queue) *ReliableQueue {
	return &ReliableQueue{Queue: q}
}

// QSize returns the number of messages still owed: queued plus any
// in-flight, unconfirmed message.
func (r *ReliableQueue) QSize(ctx context.Context) (int64, error) {
	if err := r.requireExists(ctx); err != nil {
		return 0, err
	}
	queued, err := r.store.LLen(ctx, r.keys.queue)
	if err != nil {
		return 0, err
	}
	processing, err := r.store.LLen(ctx, r.keys.processingKey())
	if err != nil {
		return 0, err
	}
	return queued + processing, nil
}

// Get returns the processing list's existing element if one is still
// outstanding from a prior, unconfirmed Get (crash-recovery replay).
// Otherwise it blocks like Queue.Get, but atomically moves the dequeued
// message into the processing list instead of dropping it.
func (r *ReliableQueue) Get(ctx context.Context, opts ...GetOption) ([]byte, error) {
	if err := r.requireExists(ctx); err != nil {
		return nil, err
	}

	var cfg getConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	allowUnblocking := r.resolveAllowUnblocking(cfg.allowUnblocking)

	waitCtx, cancel := withOptionalDeadline(ctx, cfg.timeout)
	defer cancel()

	if err := r.acquireConsumerRole(waitCtx, allowUnblocking); err != nil {
		return nil, err
	}
	defer r.releaseConsumerRole(context.WithoutCancel(ctx))

	if pending, ok, err := r.store.RPop(ctx, r.keys.processingKey()); err != nil {
		return nil, err
	} else if ok {
		if _, err := r.store.LPush(ctx, r.keys.processingKey(), pending); err != nil {
			return nil, err
		}
		return pending, nil
	}

	closed, err := r.store.Exists(ctx, r.keys.closed)
	if err != nil {
		return nil, err
	}
	if closed {
		r.cachedClosed.Store(true)
		empty, err := r.queueEmpty(ctx)
		if err != nil {
			return nil, err
		}
		if empty {
			return nil, ErrClosed
		}
	}

	return r.waitAndMove(waitCtx, allowUnblocking)
}

// waitAndMove blocks until an element can be atomically moved from the
// main queue to the processing list, or the queue closes. Unlike
// Queue.getBlocking, it cannot wait on the queue and closed keys in a
// single call (BRPopLPush only multiplexes one source key), so it polls at
// unblockPollInterval granularity and checks closed between polls
// regardless of whether allowUnblocking is set.
func (r *ReliableQueue) waitAndMove(ctx context.Context, allowUnblocking bool) ([]byte, error) {
	for {
		if allowUnblocking && r.unblock.Load() {
			r.log.Debug("unblock latch fired, abandoning wait", "key", r.keys.queue)
			return nil, ErrUnblocked
		}
		if err := ctx.Err(); err != nil {
			r.log.Debug("context done, abandoning wait", "key", r.keys.queue, "error", err)
			return nil, fmt.Errorf("pressurequeue: waiting on %s: %w", r.keys.queue, err)
		}

		value, ok, err := r.store.BRPopLPush(ctx, r.keys.queue, r.keys.processingKey(), r.unblockPollInterval)
		if err != nil {
			r.log.Warn("store error while waiting", "key", r.keys.queue, "error", err)
			return nil, err
		}
		if ok {
			return value, nil
		}

		closed, err := r.store.Exists(ctx, r.keys.closed)
		if err != nil {
			return nil, err
		}
		if closed {
			r.cachedClosed.Store(true)
			return nil, ErrClosed
		}
		r.log.Debug("poll slice elapsed, retrying wait", "key", r.keys.queue, "poll_interval", r.unblockPollInterval)
	}
}

// GetNowait dequeues without blocking, moving the popped element into the
// processing list exactly as Get does.
func (r *ReliableQueue) GetNowait(ctx context.Context) ([]byte, error) {
	if err := r.requireExists(ctx); err != nil {
		return nil, err
	}

	_, ok, err := r.store.RPop(ctx, r.keys.consumerFree)
	if err != nil {
		return nil, err
	}
	if !ok {
		user, _, _ := r.store.Get(ctx, r.keys.consumer)
		r.log.Warn("consumer role held by another client", "holder", user)
		return nil, &InUseError{Name: r.name, User: user, Role: "consumer"}
	}
	defer r.releaseConsumerRole(context.WithoutCancel(ctx))

	if err := r.store.Set(ctx, r.keys.consumer, r.clientUID); err != nil {
		return nil, fmt.Errorf("pressurequeue: recording consumer uid: %w", err)
	}

	if pending, ok, err := r.store.RPop(ctx, r.keys.processingKey()); err != nil {
		return nil, err
	} else if ok {
		if _, err := r.store.LPush(ctx, r.keys.processingKey(), pending); err != nil {
			return nil, err
		}
		return pending, nil
	}

	value, ok, err := r.store.RPop(ctx, r.keys.queue)
	if err != nil {
		return nil, err
	}
	if !ok {
		closed, err := r.store.Exists(ctx, r.keys.closed)
		if err != nil {
			return nil, err
		}
		if closed {
			r.cachedClosed.Store(true)
			return nil, ErrClosed
		}
		return nil, nil
	}

	if _, err := r.store.LPush(ctx, r.keys.processingKey(), value); err != nil {
		return nil, err
	}
	return value, nil
}

// Confirm acknowledges that element has been fully processed, removing it
// from the processing list so a crash no longer replays it. If the queue
// is bounded and now has slack, not_full is re-asserted here rather than
// at Get time, since occupancy (queue + processing) only actually drops on
// confirmation.
func (r *ReliableQueue) Confirm(ctx context.Context, element []byte) error {
	if err := r.requireExists(ctx); err != nil {
		return err
	}
	if err := r.store.LRem(ctx, r.keys.processingKey(), element); err != nil {
		return fmt.Errorf("pressurequeue: confirming element: %w", err)
	}

	bound, err := r.loadBound(ctx)
	if err != nil {
		return err
	}
	if bound == nil {
		return nil
	}

	size, err := r.QSize(ctx)
	if err != nil {
		return err
	}
	if size < *bound {
		return r.assertNotFull(ctx)
	}
	return nil
}

// Messages returns an iterator that yields messages, automatically
// confirming each one as soon as the loop requests the next. If the loop
// breaks early, the last yielded message is left unconfirmed, so the next
// Get replays it. This mirrors the at-least-once contract of an
// auto-advancing generator built on top of Get/Confirm.
func (r *ReliableQueue) Messages(ctx context.Context) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		var pending []byte
		havePending := false

		confirmPending := func() error {
			if !havePending {
				return nil
			}
			err := r.Confirm(ctx, pending)
			havePending, pending = false, nil
			return err
		}

		for {
			if err := confirmPending(); err != nil {
				yield(nil, err)
				return
			}

			msg, err := r.Get(ctx, WithGetAllowUnblocking(true))
			if err != nil {
				if errors.Is(err, ErrClosed) {
					return
				}
				yield(nil, err)
				return
			}
			pending, havePending = msg, true
			if !yield(msg, nil) {
				return
			}
		}
	}
}
