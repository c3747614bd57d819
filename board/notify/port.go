package notify

import (
	"context"
	"time"
)

// MailQueue buffers application emails between the request path and the
// mail worker. Implementations: Redis-backed and in-memory.
type MailQueue interface {
	// Enqueue adds an email to the ready queue
	Enqueue(ctx context.Context, email *ApplicationEmail) error

	// Dequeue gets the next raw payload, blocking up to timeout.
	// Returns nil bytes when nothing is available.
	Dequeue(ctx context.Context, timeout time.Duration) ([]byte, error)

	// EnqueueDelayed schedules an email for later delivery (for retries)
	EnqueueDelayed(ctx context.Context, email *ApplicationEmail, delay time.Duration) error

	// MoveDelayedToReady moves due delayed emails to the ready queue
	MoveDelayedToReady(ctx context.Context) (int, error)

	// Size returns the number of ready emails
	Size(ctx context.Context) (int64, error)

	// Ping checks queue backend liveness
	Ping(ctx context.Context) error
}

// Mailer delivers a single email
type Mailer interface {
	Send(ctx context.Context, email *ApplicationEmail) error
}
