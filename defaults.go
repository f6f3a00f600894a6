package pressurequeue

import "github.com/psobot/pressurequeue/internal/core"

// Default configuration values for NewQueue.
// These constants are exported so callers can reference the defaults
// when building custom configurations relative to them (e.g.,
// 2 * DefaultUnblockPollInterval).
const (
	// DefaultPrefix namespaces a queue's keys in the store when no
	// WithPrefix option is given.
	DefaultPrefix = core.DefaultPrefix

	// DefaultUnblockPollInterval is the longest a single wait sits inside
	// the store before resurfacing to check Unblock and the caller's
	// context, when WithAllowUnblocking(true) is set.
	DefaultUnblockPollInterval = core.DefaultUnblockPollInterval
)

// Unbounded configures a queue with no capacity limit, for use with
// Create: q.Create(ctx, pressurequeue.Unbounded()).
func Unbounded() *int64 { return nil }

// Bound configures a queue with a fixed capacity, for use with Create:
// q.Create(ctx, pressurequeue.Bound(100)).
func Bound(n int64) *int64 { return &n }
