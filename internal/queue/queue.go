// Package queue carries small job payloads between the API process and the
// worker process. Delivery is at-least-once: consumers must tolerate seeing
// the same payload more than once.
package queue

import "context"

// HandlerFunc processes one delivered payload. A non-nil error hands the job
// back to the queue's retry policy.
type HandlerFunc func(ctx context.Context, key string, value []byte) error

// Producer enqueues payloads. Enqueue is fire-and-forget with respect to job
// completion and must not fail merely because no consumer is running.
type Producer interface {
	Enqueue(ctx context.Context, key string, v any) error
	Close() error
}

// Consumer drains one named queue with a single logical consumer loop.
type Consumer interface {
	Run(ctx context.Context, h HandlerFunc) error
	Close() error
}
