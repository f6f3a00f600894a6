package pressurequeue

import (
	"log/slog"

	"github.com/psobot/pressurequeue/internal/core"
)

// SetLogger replaces the package-level logger used by pressurequeue. This
// allows applications to integrate pressurequeue logging with their own
// logging infrastructure. The provided logger should already have any
// desired attributes; the only attribute pressurequeue adds is "queue"
// (the queue name), on the logger each Queue derives when it is
// constructed. A Queue keeps that derived logger, so SetLogger affects
// queues constructed after the call.
//
// If l is nil, the logger resets to the default: slog.Default() with a
// "component" attribute, re-derived on the next call and then cached.
// Call SetLogger(nil) after slog.SetDefault() to pick up changes.
//
// SetLogger is safe to call concurrently with other pressurequeue
// operations.
func SetLogger(l *slog.Logger) {
	core.SetLogger(l)
}
