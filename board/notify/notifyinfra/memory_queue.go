package notifyinfra

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/easilyhq/easily/board/notify"
)

// MemoryMailQueue implements MailQueue on a buffered channel. Used when no
// Redis is configured; delayed retries live in a slice until due.
type MemoryMailQueue struct {
	ready chan []byte

	mu      sync.Mutex
	delayed []delayedEmail
}

type delayedEmail struct {
	payload []byte
	due     time.Time
}

// NewMemoryMailQueue creates an in-process mail queue
func NewMemoryMailQueue(capacity int) *MemoryMailQueue {
	if capacity < 1 {
		capacity = 256
	}
	return &MemoryMailQueue{
		ready: make(chan []byte, capacity),
	}
}

// Enqueue adds an email to the ready queue
func (q *MemoryMailQueue) Enqueue(ctx context.Context, email *notify.ApplicationEmail) error {
	data, err := json.Marshal(email)
	if err != nil {
		return fmt.Errorf("marshal email for %s: %w", email.To, err)
	}

	select {
	case q.ready <- data:
		return nil
	default:
		return fmt.Errorf("mail queue full, dropping email for %s", email.To)
	}
}

// Dequeue gets the next email payload, blocking up to timeout
func (q *MemoryMailQueue) Dequeue(ctx context.Context, timeout time.Duration) ([]byte, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
		return nil, nil
	case data := <-q.ready:
		return data, nil
	}
}

// EnqueueDelayed schedules an email for later delivery
func (q *MemoryMailQueue) EnqueueDelayed(ctx context.Context, email *notify.ApplicationEmail, delay time.Duration) error {
	data, err := json.Marshal(email)
	if err != nil {
		return fmt.Errorf("marshal delayed email for %s: %w", email.To, err)
	}

	q.mu.Lock()
	q.delayed = append(q.delayed, delayedEmail{payload: data, due: time.Now().Add(delay)})
	q.mu.Unlock()
	return nil
}

// MoveDelayedToReady moves due delayed emails to the ready queue
func (q *MemoryMailQueue) MoveDelayedToReady(ctx context.Context) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := time.Now()
	moved := 0
	remaining := q.delayed[:0]
	for _, d := range q.delayed {
		if d.due.After(now) {
			remaining = append(remaining, d)
			continue
		}
		select {
		case q.ready <- d.payload:
			moved++
		default:
			// Ready queue full; keep the email delayed until next tick.
			remaining = append(remaining, d)
		}
	}
	q.delayed = remaining
	return moved, nil
}

// Size returns the number of ready emails
func (q *MemoryMailQueue) Size(ctx context.Context) (int64, error) {
	return int64(len(q.ready)), nil
}

// Ping always succeeds for the in-process queue
func (q *MemoryMailQueue) Ping(ctx context.Context) error {
	return nil
}

var _ notify.MailQueue = (*MemoryMailQueue)(nil)
