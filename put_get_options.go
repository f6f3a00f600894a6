package pressurequeue

import (
	"time"

	"github.com/psobot/pressurequeue/internal/core"
)

// PutOption configures a single call to Queue.Put.
type PutOption = core.PutOption

// WithPutTimeout bounds how long Put waits for the producer role and, on a
// bounded queue, for backpressure to clear.
func WithPutTimeout(d time.Duration) PutOption { return core.WithPutTimeout(d) }

// WithPutAllowUnblocking overrides the queue's WithAllowUnblocking default
// for this call.
func WithPutAllowUnblocking(v bool) PutOption { return core.WithPutAllowUnblocking(v) }

// WithPutAllowOverfilling skips the not_full wait on a bounded queue,
// allowing this Put to push past the configured bound.
func WithPutAllowOverfilling(v bool) PutOption { return core.WithPutAllowOverfilling(v) }

// GetOption configures a single call to Queue.Get.
type GetOption = core.GetOption

// WithGetTimeout bounds how long Get waits for the consumer role and for a
// message to arrive.
func WithGetTimeout(d time.Duration) GetOption { return core.WithGetTimeout(d) }

// WithGetAllowUnblocking overrides the queue's WithAllowUnblocking default
// for this call.
func WithGetAllowUnblocking(v bool) GetOption { return core.WithGetAllowUnblocking(v) }
