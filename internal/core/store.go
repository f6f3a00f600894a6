package core

import (
	"context"
	"time"
)

// Store is the capability surface Queue needs from a remote key-value
// store: single-key atomic set/get/counter operations, atomic list
// operations, and blocking pops. It exists so Queue never imports a
// concrete client library — internal/redisstore supplies the production
// implementation over a *redis.Client, and tests can substitute a fake.
//
// All methods take a context.Context; a canceled context must abort the
// call and return ctx.Err() (wrapped), including mid-block for BRPop and
// BRPopLPush.
//
// "ok=false, err=nil" means "value absent"/"permit unavailable"/"list
// empty" — the idiomatic replacement for the sentinel nil/None values the
// backing Python implementation relied on.
type Store interface {
	// SetNX sets key to value only if key does not already exist, reporting
	// whether the set happened (true) or the key was already present (false).
	SetNX(ctx context.Context, key, value string) (set bool, err error)

	// Get returns the string value stored at key. ok is false if the key
	// does not exist.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set unconditionally sets key to value, overwriting any prior value.
	Set(ctx context.Context, key, value string) error

	// Exists reports whether all of the given keys are present.
	Exists(ctx context.Context, keys ...string) (bool, error)

	// Del deletes the given keys. Deleting an absent key is not an error.
	Del(ctx context.Context, keys ...string) error

	// IncrBy atomically increments key by delta (creating it at 0 first if
	// absent) and returns the new value.
	IncrBy(ctx context.Context, key string, delta int64) (int64, error)

	// LPush head-pushes values onto key's list (left push) and returns the
	// list's new length.
	LPush(ctx context.Context, key string, values ...[]byte) (length int64, err error)

	// RPop tail-pops (right pop) one value from key's list. ok is false if
	// the list is empty or absent.
	RPop(ctx context.Context, key string) (value []byte, ok bool, err error)

	// LLen returns the length of key's list (0 if absent).
	LLen(ctx context.Context, key string) (int64, error)

	// LRange returns the elements of key's list between start and stop
	// (inclusive, zero-indexed from the head), using Redis's negative-index
	// convention (-1 is the last element).
	LRange(ctx context.Context, key string, start, stop int64) ([][]byte, error)

	// LTrim trims key's list to the elements between start and stop
	// (inclusive), in place.
	LTrim(ctx context.Context, key string, start, stop int64) error

	// LRem removes the first occurrence of value from key's list (scanning
	// head to tail).
	LRem(ctx context.Context, key string, value []byte) error

	// BRPop blocks until one of keys has an element to tail-pop, the
	// timeout elapses (timeout<=0 means block indefinitely), or ctx is
	// canceled. wokeKey reports which key yielded the value. ok is false
	// (with a nil error) on timeout.
	BRPop(ctx context.Context, timeout time.Duration, keys ...string) (wokeKey string, value []byte, ok bool, err error)

	// BRPopLPush atomically tail-pops from src and head-pushes the popped
	// value onto dst, blocking on src under the same rules as BRPop. ok is
	// false (with a nil error) on timeout.
	BRPopLPush(ctx context.Context, src, dst string, timeout time.Duration) (value []byte, ok bool, err error)
}
