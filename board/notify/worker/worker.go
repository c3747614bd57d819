package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/easilyhq/easily/board/notify"
	"github.com/easilyhq/easily/pkg/logx"
)

// MailWorker drains the mail queue and hands emails to the mailer. Failures
// go back to the delayed queue until the attempt limit is reached.
type MailWorker struct {
	queue   notify.MailQueue
	mailer  notify.Mailer
	workers int
}

func NewMailWorker(queue notify.MailQueue, mailer notify.Mailer, workers int) *MailWorker {
	if workers < 1 {
		workers = 1
	}
	return &MailWorker{
		queue:   queue,
		mailer:  mailer,
		workers: workers,
	}
}

func (w *MailWorker) Start(ctx context.Context) {
	logx.Infof("Starting %d mail workers", w.workers)

	// Start delayed email mover
	go w.moveDelayed(ctx)

	// Start worker pool
	for i := 0; i < w.workers; i++ {
		go w.processEmails(ctx, i)
	}
}

func (w *MailWorker) processEmails(ctx context.Context, workerID int) {
	logx.Infof("Mail worker %d started", workerID)

	for {
		select {
		case <-ctx.Done():
			logx.Infof("Mail worker %d stopping", workerID)
			return
		default:
			data, err := w.queue.Dequeue(ctx, 5*time.Second)
			if err != nil {
				if ctx.Err() == nil {
					logx.Errorf("Mail worker %d dequeue error: %v", workerID, err)
				}
				continue
			}
			if len(data) == 0 {
				continue
			}

			var email notify.ApplicationEmail
			if err := json.Unmarshal(data, &email); err != nil {
				logx.Errorf("Mail worker %d unmarshal error: %v (data: %s)", workerID, err, string(data))
				continue
			}

			if err := w.mailer.Send(ctx, &email); err != nil {
				w.retry(ctx, workerID, &email, err)
				continue
			}
			logx.Infof("Mail worker %d sent application email to %s", workerID, email.To)
		}
	}
}

func (w *MailWorker) retry(ctx context.Context, workerID int, email *notify.ApplicationEmail, sendErr error) {
	email.Attempts++
	if email.Attempts >= notify.MaxSendAttempts {
		logx.Errorf("Mail worker %d dropping email to %s after %d attempts: %v", workerID, email.To, email.Attempts, sendErr)
		return
	}

	delay := time.Duration(notify.RetryDelaySeconds) * time.Second
	if err := w.queue.EnqueueDelayed(ctx, email, delay); err != nil {
		logx.Errorf("Mail worker %d failed to requeue email to %s: %v", workerID, email.To, err)
		return
	}
	logx.Warnf("Mail worker %d send to %s failed (attempt %d), retrying in %s: %v", workerID, email.To, email.Attempts, delay, sendErr)
}

func (w *MailWorker) moveDelayed(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := w.queue.MoveDelayedToReady(ctx)
			if err != nil {
				logx.Errorf("Failed to move delayed emails: %v", err)
			} else if count > 0 {
				logx.Infof("Moved %d delayed emails to ready queue", count)
			}
		}
	}
}
