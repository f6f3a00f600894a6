package pressurequeue

import (
	"fmt"
	"time"

	"github.com/psobot/pressurequeue/internal/core"
)

// requirePositive panics if v <= 0 with a descriptive message.
// It intentionally rejects zero; do not use for values where zero
// has special meaning.
func requirePositive[T int | time.Duration](name string, v T) {
	if v <= 0 {
		panic(fmt.Sprintf("pressurequeue: %s must be greater than 0, got %v", name, v))
	}
}

// requireNonEmpty panics if s is empty with a descriptive message.
func requireNonEmpty(name, s string) {
	if s == "" {
		panic(fmt.Sprintf("pressurequeue: %s must not be empty", name))
	}
}

// QueueOption configures a Queue during construction via NewQueue. Each
// With* function returns a QueueOption that sets a specific field.
//
// Several With* functions panic on invalid input (empty strings,
// non-positive durations). These panics are intentional: option values
// are typically compile-time constants, so an invalid value indicates a
// programmer error rather than a runtime condition, mirroring the
// [regexp.MustCompile] pattern of failing fast at construction.
type QueueOption func(*core.Config)

// WithPrefix sets the key prefix used to namespace this queue's keys in
// the store. Two Queue values only coordinate with each other when they
// share both prefix and name.
//
// Default: DefaultPrefix.
//
// Panics if prefix is empty.
func WithPrefix(prefix string) QueueOption {
	requireNonEmpty("prefix", prefix)
	return func(c *core.Config) {
		c.Prefix = prefix
	}
}

// WithClientUID overrides the identity string this Queue records as the
// current role-lock holder, reported back to other clients via
// *InUseError. Useful for giving test output or logs a stable, readable
// identity instead of the generated host/pid/uuid default.
//
// Panics if uid is empty.
func WithClientUID(uid string) QueueOption {
	requireNonEmpty("client UID", uid)
	return func(c *core.Config) {
		c.ClientUID = uid
	}
}

// WithAllowUnblocking sets the queue-wide default for whether blocking
// Put/Get calls respond to Unblock. Individual calls can still override
// this with WithPutAllowUnblocking / WithGetAllowUnblocking.
//
// Default: false.
func WithAllowUnblocking(allow bool) QueueOption {
	return func(c *core.Config) {
		c.AllowUnblocking = allow
	}
}

// WithUnblockPollInterval sets how long an unblockable wait sits inside a
// single store call before resurfacing to check Unblock and the caller's
// context.
//
// Default: DefaultUnblockPollInterval.
//
// Panics if d <= 0.
func WithUnblockPollInterval(d time.Duration) QueueOption {
	requirePositive("unblock poll interval", d)
	return func(c *core.Config) {
		c.UnblockPollInterval = d
	}
}
