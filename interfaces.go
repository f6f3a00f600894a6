package pressurequeue

import (
	"context"
	"iter"
)

// Queue is a bounded, single-producer/single-consumer message queue
// coordinated through a remote store. All state lives in the store; a
// Queue value is a lightweight handle onto it, safe for concurrent use by
// multiple goroutines (though the store only ever grants the producer or
// consumer role to one of them at a time).
//
// Callers must follow this lifecycle ordering for a given (prefix, name):
//
//	NewQueue → Create (once, by any one client) → Put/Get (repeatable) → Close → Delete
//
// Every method except Create, Exists, and Unblock returns ErrDoesNotExist
// if the queue has not been created (or has since been deleted).
type Queue interface {
	// Name returns the queue's name, as passed to NewQueue.
	Name() string

	// Create establishes the queue with the given capacity (Unbounded()
	// for no limit, or Bound(n) for a fixed size). Returns ErrAlreadyExists
	// if another client already created this (prefix, name).
	Create(ctx context.Context, bound *int64) error

	// Exists reports whether the queue currently exists. Always re-reads
	// the store.
	Exists(ctx context.Context) (bool, error)

	// QSize returns the number of messages currently enqueued.
	QSize(ctx context.Context) (int64, error)

	// Closed reports whether the queue has been closed.
	Closed(ctx context.Context) (bool, error)

	// Put enqueues payload, blocking until the producer role is free, the
	// queue is not closed, and (on a bounded queue) there is room. Returns
	// ErrClosed if the queue was closed by the time the role was acquired.
	Put(ctx context.Context, payload []byte, opts ...PutOption) error

	// PutNowait enqueues payload without blocking. Returns *InUseError if
	// another client holds the producer role, ErrClosed if the queue is
	// closed, or ErrFull if the queue is bounded, full, and allowOverfilling
	// is false.
	PutNowait(ctx context.Context, payload []byte, allowOverfilling bool) error

	// Get dequeues and returns the oldest message, blocking until one is
	// available. On a closed queue, Get drains whatever remains before
	// returning ErrClosed once empty.
	Get(ctx context.Context, opts ...GetOption) ([]byte, error)

	// GetNowait dequeues without blocking. Returns (nil, nil) if the queue
	// is empty and not closed, *InUseError if another client holds the
	// consumer role, or ErrClosed if the queue is empty and closed.
	GetNowait(ctx context.Context) ([]byte, error)

	// PeekReverseNowait returns the most-recently-enqueued message (the
	// head of the underlying list, the opposite end from where Get/GetNowait
	// deliver) without removing it. ok is false if the queue is empty and
	// not closed.
	PeekReverseNowait(ctx context.Context) (value []byte, ok bool, err error)

	// Close marks the queue closed: no further Put succeeds, and Get
	// drains whatever remains before returning ErrClosed.
	Close(ctx context.Context) error

	// Delete tears down every key belonging to the queue, waking any
	// client currently blocked on it.
	Delete(ctx context.Context) error

	// Unblock interrupts any outstanding (or next) blocking call on this
	// Queue value that was issued with unblocking enabled, causing it to
	// return ErrUnblocked. It has no effect on other clients.
	Unblock()

	// Messages returns an iterator over consumed messages (Get called
	// with unblocking enabled on every iteration), ending cleanly when the
	// queue closes.
	Messages(ctx context.Context) iter.Seq2[[]byte, error]
}
