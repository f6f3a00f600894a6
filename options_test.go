package pressurequeue_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/psobot/pressurequeue"
)

type panicTestCase struct {
	name     string
	panics   bool
	panicMsg string
	fn       func()
}

func requirePanics(t *testing.T, shouldPanic bool, wantMsg string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		switch {
		case shouldPanic && r == nil:
			t.Fatal("expected panic but didn't get one")
		case !shouldPanic && r != nil:
			t.Fatalf("unexpected panic: %v", r)
		case shouldPanic:
			if msg := fmt.Sprint(r); msg != wantMsg {
				t.Fatalf("expected panic message %q, got %q", wantMsg, msg)
			}
		}
	}()
	fn()
}

func runPanicTests(t *testing.T, tests []panicTestCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			requirePanics(t, tt.panics, tt.panicMsg, tt.fn)
		})
	}
}

func TestWithPrefixPanicsOnEmpty(t *testing.T) {
	t.Parallel()
	runPanicTests(t, []panicTestCase{
		{
			name:     "empty",
			panics:   true,
			panicMsg: "pressurequeue: prefix must not be empty",
			fn:       func() { pressurequeue.WithPrefix("") },
		},
		{name: "valid", fn: func() { pressurequeue.WithPrefix("myapp") }},
	})
}

func TestWithClientUIDPanicsOnEmpty(t *testing.T) {
	t.Parallel()
	runPanicTests(t, []panicTestCase{
		{
			name:     "empty",
			panics:   true,
			panicMsg: "pressurequeue: client UID must not be empty",
			fn:       func() { pressurequeue.WithClientUID("") },
		},
		{name: "valid", fn: func() { pressurequeue.WithClientUID("worker-1") }},
	})
}

func TestWithUnblockPollIntervalPanicsOnInvalid(t *testing.T) {
	t.Parallel()
	runPanicTests(t, []panicTestCase{
		{
			name:     "zero",
			panics:   true,
			panicMsg: "pressurequeue: unblock poll interval must be greater than 0, got 0s",
			fn:       func() { pressurequeue.WithUnblockPollInterval(0) },
		},
		{
			name:     "negative",
			panics:   true,
			panicMsg: "pressurequeue: unblock poll interval must be greater than 0, got -1s",
			fn:       func() { pressurequeue.WithUnblockPollInterval(-1 * time.Second) },
		},
		{name: "valid", fn: func() { pressurequeue.WithUnblockPollInterval(500 * time.Millisecond) }},
	})
}

func TestWithAllowUnblockingDoesNotPanic(t *testing.T) {
	t.Parallel()
	runPanicTests(t, []panicTestCase{
		{name: "true", fn: func() { pressurequeue.WithAllowUnblocking(true) }},
		{name: "false", fn: func() { pressurequeue.WithAllowUnblocking(false) }},
	})
}
