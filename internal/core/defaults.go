package core

import "time"

const (
	// DefaultPrefix namespaces queue keys in the store when a caller does
	// not supply one.
	DefaultPrefix = "__pressure__"

	// DefaultUnblockPollInterval bounds how long an unblockable wait sits
	// inside a single BRPop call before resurfacing to check the local
	// unblock latch and the caller's context.
	DefaultUnblockPollInterval = 1 * time.Second
)
