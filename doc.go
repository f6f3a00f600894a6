// Package pressurequeue implements a bounded, single-producer/
// single-consumer message queue coordinated entirely through a remote
// key-value store (Redis or anything speaking the same atomic list/string
// commands). Every byte of queue state — the messages, both role locks,
// the backpressure permit, the closed sentinel, and the throughput
// counters — lives in the store; a Queue value holds only a client
// identity and a couple of immutable caches.
//
// This makes a queue a coordination point between independent processes:
// any client holding the same (prefix, name) pair talks to the same
// queue, with at most one active producer and one active consumer
// enforced by the store itself rather than by in-process locks.
//
// # Basic usage
//
//	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//
//	q := pressurequeue.NewQueue(rdb, "jobs")
//	if err := q.Create(ctx, pressurequeue.Bound(100)); err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := q.Put(ctx, []byte("payload")); err != nil {
//	    log.Fatal(err)
//	}
//
//	msg, err := q.Get(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Backpressure and closing
//
// A bounded queue's Put blocks once the queue is full until a consumer
// makes room. Close stops new Put calls (they return ErrClosed) while
// letting Get drain whatever is still enqueued before it, too, starts
// returning ErrClosed.
//
// # Wrappers
//
// BufferedQueue prefetches messages onto a local bounded channel so Get
// returns immediately when data is already buffered. ReliableQueue keeps a
// consumed-but-unconfirmed message visible until the caller calls Confirm,
// so a crash between Get and processing does not lose it.
package pressurequeue
