package pressurequeue

import "github.com/psobot/pressurequeue/internal/core"

// Sentinel errors for error inspection with errors.Is.
//
// These use the sentinel.Error const pattern instead of errors.New vars.
// sentinel.Error is a string type implementing error, allowing errors to be
// declared as const. This prevents accidental reassignment and enables
// compile-time immutability, while remaining compatible with errors.Is
// through Go's default == comparison on comparable types.
const (
	// ErrAlreadyExists is returned by Create when the queue's bound key is
	// already set by a previous Create.
	ErrAlreadyExists = core.ErrAlreadyExists

	// ErrDoesNotExist is returned by every operation except Create, Exists,
	// and Unblock when the queue has not been created (or has since been
	// deleted).
	ErrDoesNotExist = core.ErrDoesNotExist

	// ErrClosed is returned by Put once the queue has been closed, and by
	// Get once a closed queue has been fully drained.
	ErrClosed = core.ErrClosed

	// ErrFull is returned by PutNowait on a bounded queue that is at
	// capacity and not configured to allow overfilling.
	ErrFull = core.ErrFull

	// ErrUnblocked is returned when Unblock interrupts an outstanding
	// blocking call.
	ErrUnblocked = core.ErrUnblocked
)

// InUseError is returned by the non-blocking Put/Get variants when the
// respective role lock is held by another client.
type InUseError = core.InUseError
