package core

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"strconv"
	"sync/atomic"
	"time"
)

// zeroElem is the payload pushed onto the role-lock, not_full, and closed
// lists. Its content is never read back; only presence and list length
// carry meaning for those keys.
var zeroElem = []byte{}

// Config configures a Queue. The zero value is valid: Prefix falls back to
// DefaultPrefix, ClientUID to a generated host/pid/uuid string, and
// UnblockPollInterval to DefaultUnblockPollInterval.
type Config struct {
	Prefix              string
	ClientUID           string
	AllowUnblocking     bool
	UnblockPollInterval time.Duration
}

// Queue implements the PressureQueue coordination protocol against a Store.
// See doc.go for the key layout and invariants it maintains.
type Queue struct {
	store Store
	name  string
	keys  queueKeys

	clientUID           string
	allowUnblocking     bool
	unblockPollInterval time.Duration

	log *slog.Logger

	// unblock is the local interrupt latch set by Unblock. It only affects
	// waits issued by this Queue value; it is not visible to other clients.
	unblock atomic.Bool

	// cachedClosed caches a true observation of the closed sentinel; once true it
	// never reverts without the Queue being reconstructed. A false/unset
	// value always falls through to a live store check.
	cachedClosed atomic.Bool

	// bound caches the queue's capacity, read once from the store and valid
	// for the life of the queue (bound is immutable after Create). boundSet
	// gates whether boundVal/boundUnbounded have been populated yet.
	boundSet       atomic.Bool
	boundUnbounded atomic.Bool
	boundVal       atomic.Int64
}

// NewQueue returns a Queue bound to name within store, using cfg to
// configure identity and wait behavior. It does not itself touch the
// store; call Create (for a new queue) or any other operation (to attach
// to an existing one).
func NewQueue(store Store, name string, cfg Config) *Queue {
	if store == nil {
		panic("pressurequeue: store must not be nil")
	}
	if name == "" {
		panic("pressurequeue: queue name must not be empty")
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	pollInterval := cfg.UnblockPollInterval
	if pollInterval <= 0 {
		pollInterval = DefaultUnblockPollInterval
	}
	clientUID := cfg.ClientUID
	if clientUID == "" {
		clientUID = defaultClientUID()
	}

	return &Queue{
		store:               store,
		name:                name,
		keys:                newQueueKeys(prefix, name),
		clientUID:           clientUID,
		allowUnblocking:     cfg.AllowUnblocking,
		unblockPollInterval: pollInterval,
		log:                 Logger().With("queue", name),
	}
}

// Name returns the queue's name, as passed to NewQueue.
func (q *Queue) Name() string { return q.name }

// Create establishes the queue: sets the bound marker (SetNX, so a
// concurrent racing Create loses) and primes both role locks and the
// not_full permit. bound of nil means unbounded.
func (q *Queue) Create(ctx context.Context, bound *int64) error {
	var n int64
	if bound != nil {
		n = *bound
	}

	set, err := q.store.SetNX(ctx, q.keys.bound, strconv.FormatInt(n, 10))
	if err != nil {
		return fmt.Errorf("pressurequeue: setting bound: %w", err)
	}
	if !set {
		return ErrAlreadyExists
	}

	if bound != nil && n != 0 {
		q.boundVal.Store(n)
	} else {
		q.boundUnbounded.Store(true)
	}
	q.boundSet.Store(true)

	if _, err := q.store.LPush(ctx, q.keys.producerFree, zeroElem); err != nil {
		return fmt.Errorf("pressurequeue: initializing producer lock: %w", err)
	}
	if _, err := q.store.LPush(ctx, q.keys.consumerFree, zeroElem); err != nil {
		return fmt.Errorf("pressurequeue: initializing consumer lock: %w", err)
	}
	if _, err := q.store.LPush(ctx, q.keys.notFull, zeroElem); err != nil {
		return fmt.Errorf("pressurequeue: initializing not_full permit: %w", err)
	}
	return nil
}

// Exists reports whether the queue currently exists. It always re-reads
// the store; unlike Closed, this is not cached, since a queue that exists
// now may be deleted by another client at any time.
func (q *Queue) Exists(ctx context.Context) (bool, error) {
	return q.store.Exists(ctx, q.keys.bound)
}

func (q *Queue) requireExists(ctx context.Context) error {
	ok, err := q.Exists(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return ErrDoesNotExist
	}
	return nil
}

// QSize returns the number of messages currently enqueued.
func (q *Queue) QSize(ctx context.Context) (int64, error) {
	if err := q.requireExists(ctx); err != nil {
		return 0, err
	}
	return q.store.LLen(ctx, q.keys.queue)
}

// Closed reports whether the queue has been closed. A true observation is
// cached for the life of this Queue value; a false result always reflects
// a fresh store read.
func (q *Queue) Closed(ctx context.Context) (bool, error) {
	if err := q.requireExists(ctx); err != nil {
		return false, err
	}
	if q.cachedClosed.Load() {
		return true, nil
	}
	closed, err := q.store.Exists(ctx, q.keys.closed)
	if err != nil {
		return false, err
	}
	if closed {
		q.cachedClosed.Store(true)
	}
	return closed, nil
}

// Unblock interrupts any wait this Queue value is currently (or next)
// blocked on, causing it to return ErrUnblocked instead of continuing to
// wait. It only takes effect when the wait was issued with allowUnblocking
// true; it has no effect on other clients or other Queue values.
func (q *Queue) Unblock() {
	q.unblock.Store(true)
}

// loadBound returns the queue's cached capacity, reading it from the store
// on first use. A nil result means unbounded. bound is immutable for the
// life of a created queue, so once read it is cached permanently.
func (q *Queue) loadBound(ctx context.Context) (*int64, error) {
	if q.boundSet.Load() {
		if q.boundUnbounded.Load() {
			return nil, nil
		}
		v := q.boundVal.Load()
		return &v, nil
	}

	raw, ok, err := q.store.Get(ctx, q.keys.bound)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrDoesNotExist
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("pressurequeue: parsing bound %q: %w", raw, err)
	}
	if n == 0 {
		q.boundUnbounded.Store(true)
		q.boundSet.Store(true)
		return nil, nil
	}
	q.boundVal.Store(n)
	q.boundSet.Store(true)
	return &n, nil
}

// assertNotFull idempotently re-asserts the not_full permit: push one
// element, then trim to length 1 so repeated calls never grow the list
// past a single permit.
func (q *Queue) assertNotFull(ctx context.Context) error {
	if _, err := q.store.LPush(ctx, q.keys.notFull, zeroElem); err != nil {
		return err
	}
	return q.store.LTrim(ctx, q.keys.notFull, 0, 0)
}

// withOptionalDeadline derives a context bounded by timeout, or returns ctx
// unchanged (with a no-op cancel) when timeout<=0.
func withOptionalDeadline(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// unblockableBRPop behaves like store.BRPop, except that when
// allowUnblocking is true the wait is chopped into unblockPollInterval
// slices so that Unblock and ctx cancellation are noticed promptly instead
// of only at the next natural wakeup. timeout<=0 means wait indefinitely
// (subject to ctx and the unblock latch).
func (q *Queue) unblockableBRPop(ctx context.Context, timeout time.Duration, allowUnblocking bool, keys ...string) (wokeKey string, value []byte, ok bool, err error) {
	if !allowUnblocking {
		return q.store.BRPop(ctx, timeout, keys...)
	}

	var deadline time.Time
	hasDeadline := timeout > 0
	if hasDeadline {
		deadline = time.Now().Add(timeout)
	}

	for {
		if q.unblock.Load() {
			q.log.Debug("unblock latch fired, abandoning wait", "keys", keys)
			return "", nil, false, ErrUnblocked
		}
		if err := ctx.Err(); err != nil {
			q.log.Debug("context done, abandoning wait", "keys", keys, "error", err)
			return "", nil, false, fmt.Errorf("pressurequeue: waiting on %v: %w", keys, err)
		}

		pollTimeout := q.unblockPollInterval
		if hasDeadline {
			remaining := time.Until(deadline)
			if remaining <= 0 {
				q.log.Debug("deadline elapsed, abandoning wait", "keys", keys)
				return "", nil, false, nil
			}
			if remaining < pollTimeout {
				pollTimeout = remaining
			}
		}

		wokeKey, value, ok, err = q.store.BRPop(ctx, pollTimeout, keys...)
		if err != nil {
			q.log.Warn("store error while waiting", "keys", keys, "error", err)
			return "", nil, false, err
		}
		if ok {
			return wokeKey, value, true, nil
		}
		// Poll slice elapsed with nothing to pop; loop to recheck the
		// unblock latch, ctx, and deadline.
		q.log.Debug("poll slice elapsed, retrying wait", "keys", keys, "poll_interval", pollTimeout)
	}
}

func (q *Queue) resolveAllowUnblocking(override *bool) bool {
	if override != nil {
		return *override
	}
	return q.allowUnblocking
}

func (q *Queue) acquireProducerRole(ctx context.Context, allowUnblocking bool) error {
	if _, _, _, err := q.unblockableBRPop(ctx, 0, allowUnblocking, q.keys.producerFree); err != nil {
		return err
	}
	if err := q.store.Set(context.WithoutCancel(ctx), q.keys.producer, q.clientUID); err != nil {
		q.releaseProducerRole(context.WithoutCancel(ctx))
		return fmt.Errorf("pressurequeue: recording producer uid: %w", err)
	}
	return nil
}

func (q *Queue) releaseProducerRole(ctx context.Context) {
	if _, err := q.store.LPush(ctx, q.keys.producerFree, zeroElem); err != nil {
		q.log.Warn("failed to release producer role", "error", err)
	}
}

func (q *Queue) acquireConsumerRole(ctx context.Context, allowUnblocking bool) error {
	if _, _, _, err := q.unblockableBRPop(ctx, 0, allowUnblocking, q.keys.consumerFree); err != nil {
		return err
	}
	if err := q.store.Set(context.WithoutCancel(ctx), q.keys.consumer, q.clientUID); err != nil {
		q.releaseConsumerRole(context.WithoutCancel(ctx))
		return fmt.Errorf("pressurequeue: recording consumer uid: %w", err)
	}
	return nil
}

func (q *Queue) releaseConsumerRole(ctx context.Context) {
	if _, err := q.store.LPush(ctx, q.keys.consumerFree, zeroElem); err != nil {
		q.log.Warn("failed to release consumer role", "error", err)
	}
}

// PutOption configures a single call to Put.
type PutOption func(*putConfig)

type putConfig struct {
	timeout          time.Duration
	allowUnblocking  *bool
	allowOverfilling bool
}

// WithPutTimeout bounds how long Put waits for the producer role and, on a
// bounded queue, for backpressure to clear. Honored precisely: Put returns
// a non-nil error other than ErrUnblocked once the deadline passes, even
// when allowUnblocking is false.
func WithPutTimeout(d time.Duration) PutOption {
	return func(c *putConfig) { c.timeout = d }
}

// WithPutAllowUnblocking overrides the queue's default AllowUnblocking
// setting for this call.
func WithPutAllowUnblocking(v bool) PutOption {
	return func(c *putConfig) { c.allowUnblocking = &v }
}

// WithPutAllowOverfilling skips the not_full wait on a bounded queue,
// allowing this Put to push past the configured bound.
func WithPutAllowOverfilling(v bool) PutOption {
	return func(c *putConfig) { c.allowOverfilling = v }
}

// Put enqueues payload, blocking until the producer role is free, the
// queue is not closed, and (on a bounded queue, unless
// WithPutAllowOverfilling is set) there is room. Returns ErrClosed if the
// queue was closed by the time the role was acquired.
func (q *Queue) Put(ctx context.Context, payload []byte, opts ...PutOption) error {
	var cfg putConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := q.requireExists(ctx); err != nil {
		return err
	}
	return q.putBlocking(ctx, payload, cfg.timeout, q.resolveAllowUnblocking(cfg.allowUnblocking), cfg.allowOverfilling)
}

func (q *Queue) putBlocking(ctx context.Context, payload []byte, timeout time.Duration, allowUnblocking, allowOverfilling bool) error {
	waitCtx, cancel := withOptionalDeadline(ctx, timeout)
	defer cancel()

	if err := q.acquireProducerRole(waitCtx, allowUnblocking); err != nil {
		return err
	}
	defer q.releaseProducerRole(context.WithoutCancel(ctx))

	closed, err := q.store.Exists(ctx, q.keys.closed)
	if err != nil {
		return err
	}
	if closed {
		q.cachedClosed.Store(true)
		return ErrClosed
	}

	bound, err := q.loadBound(ctx)
	if err != nil {
		return err
	}

	if bound != nil && !allowOverfilling {
		if _, _, _, err := q.unblockableBRPop(waitCtx, 0, allowUnblocking, q.keys.notFull); err != nil {
			return err
		}
	}

	newLength, err := q.store.LPush(ctx, q.keys.queue, payload)
	if err != nil {
		return err
	}
	if bound != nil && newLength < *bound {
		if err := q.assertNotFull(ctx); err != nil {
			return err
		}
	}

	if _, err := q.store.IncrBy(ctx, q.keys.statsProducedMessages, 1); err != nil {
		return err
	}
	if _, err := q.store.IncrBy(ctx, q.keys.statsProducedBytes, int64(len(payload))); err != nil {
		return err
	}
	return nil
}

// PutNowait enqueues payload without blocking. It returns an *InUseError if
// the producer role is currently held by another client, ErrClosed if the
// queue is closed, and ErrFull if the queue is bounded, at capacity, and
// allowOverfilling is false.
func (q *Queue) PutNowait(ctx context.Context, payload []byte, allowOverfilling bool) error {
	if err := q.requireExists(ctx); err != nil {
		return err
	}

	_, ok, err := q.store.RPop(ctx, q.keys.producerFree)
	if err != nil {
		return err
	}
	if !ok {
		user, _, _ := q.store.Get(ctx, q.keys.producer)
		q.log.Warn("producer role held by another client", "holder", user)
		return &InUseError{Name: q.name, User: user, Role: "producer"}
	}
	defer q.releaseProducerRole(context.WithoutCancel(ctx))

	if err := q.store.Set(ctx, q.keys.producer, q.clientUID); err != nil {
		return fmt.Errorf("pressurequeue: recording producer uid: %w", err)
	}

	closed, err := q.store.Exists(ctx, q.keys.closed)
	if err != nil {
		return err
	}
	if closed {
		q.cachedClosed.Store(true)
		return ErrClosed
	}

	bound, err := q.loadBound(ctx)
	if err != nil {
		return err
	}

	if bound != nil && !allowOverfilling {
		_, ok, err := q.store.RPop(ctx, q.keys.notFull)
		if err != nil {
			return err
		}
		if !ok {
			return ErrFull
		}
	}

	newLength, err := q.store.LPush(ctx, q.keys.queue, payload)
	if err != nil {
		return err
	}
	if bound != nil && newLength < *bound {
		if err := q.assertNotFull(ctx); err != nil {
			return err
		}
	}

	if _, err := q.store.IncrBy(ctx, q.keys.statsProducedMessages, 1); err != nil {
		return err
	}
	if _, err := q.store.IncrBy(ctx, q.keys.statsProducedBytes, int64(len(payload))); err != nil {
		return err
	}
	return nil
}

// GetOption configures a single call to Get.
type GetOption func(*getConfig)

type getConfig struct {
	timeout         time.Duration
	allowUnblocking *bool
}

// WithGetTimeout bounds how long Get waits for the consumer role and for a
// message to arrive.
func WithGetTimeout(d time.Duration) GetOption {
	return func(c *getConfig) { c.timeout = d }
}

// WithGetAllowUnblocking overrides the queue's default AllowUnblocking
// setting for this call.
func WithGetAllowUnblocking(v bool) GetOption {
	return func(c *getConfig) { c.allowUnblocking = &v }
}

// Get dequeues and returns the oldest message, blocking until one is
// available. If the queue is closed, Get drains whatever remains (without
// updating not_full or the consumed counters for that drained message)
// before returning ErrClosed once empty.
func (q *Queue) Get(ctx context.Context, opts ...GetOption) ([]byte, error) {
	var cfg getConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := q.requireExists(ctx); err != nil {
		return nil, err
	}
	return q.getBlocking(ctx, cfg.timeout, q.resolveAllowUnblocking(cfg.allowUnblocking))
}

func (q *Queue) getBlocking(ctx context.Context, timeout time.Duration, allowUnblocking bool) ([]byte, error) {
	waitCtx, cancel := withOptionalDeadline(ctx, timeout)
	defer cancel()

	if err := q.acquireConsumerRole(waitCtx, allowUnblocking); err != nil {
		return nil, err
	}
	defer q.releaseConsumerRole(context.WithoutCancel(ctx))

	closed, err := q.store.Exists(ctx, q.keys.closed)
	if err != nil {
		return nil, err
	}

	if closed {
		q.cachedClosed.Store(true)
		empty, err := q.queueEmpty(ctx)
		if err != nil {
			return nil, err
		}
		if empty {
			return nil, ErrClosed
		}
		// Drain-after-close: pop directly, without touching not_full or
		// the consumed counters. Preserved as documented behavior, not a
		// bug: the accounting keys only track steady-state flow.
		_, value, ok, err := q.unblockableBRPop(waitCtx, 0, allowUnblocking, q.keys.queue)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrClosed
		}
		return value, nil
	}

	wokeKey, value, ok, err := q.unblockableBRPop(waitCtx, 0, allowUnblocking, q.keys.queue, q.keys.closed)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("pressurequeue: timed out waiting for a message")
	}
	if wokeKey == q.keys.closed {
		q.cachedClosed.Store(true)
		return nil, ErrClosed
	}

	if err := q.assertNotFull(ctx); err != nil {
		return nil, err
	}
	if _, err := q.store.IncrBy(ctx, q.keys.statsConsumedMessages, 1); err != nil {
		return nil, err
	}
	if _, err := q.store.IncrBy(ctx, q.keys.statsConsumedBytes, int64(len(value))); err != nil {
		return nil, err
	}
	return value, nil
}

func (q *Queue) queueEmpty(ctx context.Context) (bool, error) {
	n, err := q.store.LLen(ctx, q.keys.queue)
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

// GetNowait dequeues without blocking. It returns (nil, nil) if the queue
// is empty and not closed, an *InUseError if the consumer role is held by
// another client, and ErrClosed if the queue is empty and closed.
func (q *Queue) GetNowait(ctx context.Context) ([]byte, error) {
	if err := q.requireExists(ctx); err != nil {
		return nil, err
	}

	_, ok, err := q.store.RPop(ctx, q.keys.consumerFree)
	if err != nil {
		return nil, err
	}
	if !ok {
		user, _, _ := q.store.Get(ctx, q.keys.consumer)
		q.log.Warn("consumer role held by another client", "holder", user)
		return nil, &InUseError{Name: q.name, User: user, Role: "consumer"}
	}
	defer q.releaseConsumerRole(context.WithoutCancel(ctx))

	if err := q.store.Set(ctx, q.keys.consumer, q.clientUID); err != nil {
		return nil, fmt.Errorf("pressurequeue: recording consumer uid: %w", err)
	}

	value, ok, err := q.store.RPop(ctx, q.keys.queue)
	if err != nil {
		return nil, err
	}

	// not_full is re-asserted unconditionally here, even on a pop that
	// found nothing: a harmless quirk preserved rather than special-cased
	// away, since an idle not_full permit never causes incorrect blocking.
	if err := q.assertNotFull(ctx); err != nil {
		return nil, err
	}

	if ok {
		if _, err := q.store.IncrBy(ctx, q.keys.statsConsumedMessages, 1); err != nil {
			return nil, err
		}
		if _, err := q.store.IncrBy(ctx, q.keys.statsConsumedBytes, int64(len(value))); err != nil {
			return nil, err
		}
		return value, nil
	}

	closed, err := q.store.Exists(ctx, q.keys.closed)
	if err != nil {
		return nil, err
	}
	if closed {
		q.cachedClosed.Store(true)
		return nil, ErrClosed
	}
	return nil, nil
}

// PeekReverseNowait returns the head element of the queue (the
// most-recently-pushed message, i.e. the one a FIFO consumer would see
// last) without removing it. "Reverse" refers to this looking at the
// opposite end from normal FIFO delivery order (Get/GetNowait pop from the
// tail). ok is false when the queue is empty and not closed.
func (q *Queue) PeekReverseNowait(ctx context.Context) (value []byte, ok bool, err error) {
	if err := q.requireExists(ctx); err != nil {
		return nil, false, err
	}

	_, ok, err = q.store.RPop(ctx, q.keys.consumerFree)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		user, _, _ := q.store.Get(ctx, q.keys.consumer)
		q.log.Warn("consumer role held by another client", "holder", user)
		return nil, false, &InUseError{Name: q.name, User: user, Role: "consumer"}
	}
	defer q.releaseConsumerRole(context.WithoutCancel(ctx))

	if err := q.store.Set(ctx, q.keys.consumer, q.clientUID); err != nil {
		return nil, false, fmt.Errorf("pressurequeue: recording consumer uid: %w", err)
	}

	items, err := q.store.LRange(ctx, q.keys.queue, 0, 0)
	if err != nil {
		return nil, false, err
	}
	if len(items) == 0 {
		closed, err := q.store.Exists(ctx, q.keys.closed)
		if err != nil {
			return nil, false, err
		}
		if closed {
			q.cachedClosed.Store(true)
			return nil, false, ErrClosed
		}
		return nil, false, nil
	}
	return items[0], true, nil
}

// Close marks the queue closed: no further Put succeeds, and Get drains
// whatever remains before returning ErrClosed. Close takes the producer
// role for the duration of the call.
func (q *Queue) Close(ctx context.Context) error {
	if err := q.requireExists(ctx); err != nil {
		return err
	}
	if err := q.acquireProducerRole(ctx, false); err != nil {
		return err
	}
	defer q.releaseProducerRole(context.WithoutCancel(ctx))

	closed, err := q.store.Exists(ctx, q.keys.closed)
	if err != nil {
		return err
	}
	if closed {
		q.cachedClosed.Store(true)
		return ErrClosed
	}

	// Two zero-length pushes: one is consumed by a single blocked
	// brpop([queue, closed]) waiter, the other remains so a later
	// existence check on closed still finds the key present. Never trim
	// this list to length 1 — that would break the wake-one-waiter
	// property.
	if _, err := q.store.LPush(ctx, q.keys.closed, zeroElem, zeroElem); err != nil {
		return fmt.Errorf("pressurequeue: asserting closed: %w", err)
	}
	q.cachedClosed.Store(true)
	return nil
}

// Delete tears down every key belonging to the queue. It removes bound
// first, then asserts not_full and the closed sentinel so that a client
// blocked on backpressure or on the message list wakes rather than hanging
// forever. It then takes each role lock in turn, waiting for any in-flight
// Put or Get to release it, before deleting the role keys and the rest
// (including ReliableQueue's processing list).
func (q *Queue) Delete(ctx context.Context) error {
	if err := q.requireExists(ctx); err != nil {
		return err
	}

	if err := q.store.Del(ctx, q.keys.bound); err != nil {
		return fmt.Errorf("pressurequeue: deleting bound: %w", err)
	}
	q.cachedClosed.Store(true)

	if err := q.assertNotFull(ctx); err != nil {
		return fmt.Errorf("pressurequeue: waking not_full waiters: %w", err)
	}
	if _, err := q.store.LPush(ctx, q.keys.closed, zeroElem, zeroElem); err != nil {
		return fmt.Errorf("pressurequeue: waking closed waiters: %w", err)
	}

	if _, _, _, err := q.store.BRPop(ctx, 0, q.keys.producerFree); err != nil {
		return fmt.Errorf("pressurequeue: draining producer lock: %w", err)
	}
	if err := q.store.Del(ctx, q.keys.producer, q.keys.producerFree); err != nil {
		return fmt.Errorf("pressurequeue: deleting producer keys: %w", err)
	}

	if _, _, _, err := q.store.BRPop(ctx, 0, q.keys.consumerFree); err != nil {
		return fmt.Errorf("pressurequeue: draining consumer lock: %w", err)
	}
	if err := q.store.Del(ctx, q.keys.consumer, q.keys.consumerFree); err != nil {
		return fmt.Errorf("pressurequeue: deleting consumer keys: %w", err)
	}

	return q.store.Del(ctx,
		q.keys.notFull,
		q.keys.closed,
		q.keys.statsProducedMessages,
		q.keys.statsProducedBytes,
		q.keys.statsConsumedMessages,
		q.keys.statsConsumedBytes,
		q.keys.queue,
		q.keys.processingKey(),
	)
}

// Messages returns an iterator that yields every message consumed via Get
// (with unblocking enabled) until the queue closes, an error occurs, or
// the consumer stops ranging early. A closed queue ends iteration cleanly
// (no error yielded); any other error is yielded once and ends iteration.
func (q *Queue) Messages(ctx context.Context) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		allowUnblocking := true
		for {
			msg, err := q.Get(ctx, WithGetAllowUnblocking(allowUnblocking))
			if err != nil {
				if errors.Is(err, ErrClosed) {
					return
				}
				yield(nil, err)
				return
			}
			if !yield(msg, nil) {
				return
			}
		}
	}
}
