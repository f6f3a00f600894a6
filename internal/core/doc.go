// Package core implements the PressureQueue distributed coordination
// protocol: a bounded, single-producer/single-consumer message queue built
// entirely out of single-key atomic operations against a remote key-value
// store (see the Store interface in store.go).
//
// A queue is identified by (prefix, name). Twelve keys are derived from
// that pair (see keys.go); every byte of mutable state lives in the store,
// never in this process. Clients hold only caches (bound, closed) and a
// client identity string used for diagnostics.
//
// Per-queue keys:
//
//	(no suffix)              list     the message list: head-push, tail-pop, FIFO
//	bound                    string   capacity marker; "0" means unbounded. Existence
//	                                  of this key is the canonical "queue exists" signal.
//	producer                 string   last producer-role holder's client uid (diagnostic)
//	consumer                 string   last consumer-role holder's client uid (diagnostic)
//	producer_free            list     1-permit semaphore: the producer-role mutex
//	consumer_free            list     1-permit semaphore: the consumer-role mutex
//	not_full                 list     1-permit condition variable: "queue has slack"
//	closed                   list     existence denotes the terminal closed state
//	stats:produced_messages  counter  monotonic successful-Put count
//	stats:produced_bytes     counter  sum of produced payload lengths
//	stats:consumed_messages  counter  monotonic successful-Get count
//	stats:consumed_bytes     counter  sum of consumed payload lengths
//
// Invariants:
//
//	I1 (existence): bound exists iff the queue exists from the client's
//	  perspective; its absence from a previously created queue signals
//	  deletion by another party.
//	I2 (role mutex): len(producer_free) is always 0 or 1; the holder of the
//	  1->0 decrement owns the producer role until releasing.
//	I3: same for consumer_free.
//	I4 (capacity signal): while the queue holds fewer than bound messages
//	  (bounded queues only), not_full has length 1; at or above bound,
//	  producers drain not_full to 0 before pushing.
//	I5 (closed absorbs): once closed exists it is never removed except by
//	  Delete. Closed queues accept no new items; Get drains what remains,
//	  then fails.
//	I6 (counters monotone): the four counters are strictly non-decreasing
//	  over the queue's lifetime.
//
// Create is the sole operation that establishes I1-I4. Delete is the sole
// operation permitted to remove the queue; it forces both semaphores and
// the closed flag so that any blocked peer observes termination.
package core
