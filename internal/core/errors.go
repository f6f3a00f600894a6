package core

import (
	"fmt"
	"strings"

	"github.com/psobot/pressurequeue/internal/sentinel"
)

// Sentinel errors for error inspection with errors.Is. These use the
// sentinel.Error const pattern instead of errors.New vars: Error is a
// string type implementing error, so it can be declared const and compared
// through wrapped chains via the default == comparison errors.Is relies on.
const (
	// ErrAlreadyExists is returned by Create when the queue's bound key is
	// already set.
	ErrAlreadyExists = sentinel.Error("queue already exists")

	// ErrDoesNotExist is returned by every operation except Create, Exists,
	// and Unblock when the queue's bound key is absent.
	ErrDoesNotExist = sentinel.Error("queue does not exist")

	// ErrClosed is returned when a producer finds the queue closed, or a
	// consumer finds the queue empty and closed (or wakes on the closed
	// sentinel).
	ErrClosed = sentinel.Error("queue is closed")

	// ErrFull is returned by the non-blocking Put variant on a bounded
	// queue whose not_full permit is drained.
	ErrFull = sentinel.Error("queue is full")

	// ErrUnblocked is returned when the local unblock latch fires while an
	// unblockable wait is outstanding.
	ErrUnblocked = sentinel.Error("operation unblocked")
)

// InUseError is returned by the non-blocking Put/Get variants when the
// respective role lock is held by another client. Unlike the other errors
// in this package it carries data (the last holder's uid), so it cannot be
// a sentinel.Error constant.
type InUseError struct {
	Name string // queue name
	User string // last holder's client uid, as recorded in the store
	Role string // "producer" or "consumer"
}

func (e *InUseError) Error() string {
	role := e.Role
	if role != "" {
		role = strings.ToUpper(role[:1]) + role[1:]
	}
	return fmt.Sprintf("%s %q has a lock on queue %q", role, e.User, e.Name)
}
