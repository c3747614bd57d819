package notifyinfra

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/easilyhq/easily/board/notify"
)

// RedisMailQueue implements MailQueue on a Redis list plus a sorted set
// holding delayed retries.
type RedisMailQueue struct {
	client    *redis.Client
	queueName string
}

// NewRedisMailQueue creates a Redis-backed mail queue
func NewRedisMailQueue(client *redis.Client, queueName string) notify.MailQueue {
	return &RedisMailQueue{
		client:    client,
		queueName: queueName,
	}
}

// Enqueue adds an email to the ready queue
func (q *RedisMailQueue) Enqueue(ctx context.Context, email *notify.ApplicationEmail) error {
	data, err := json.Marshal(email)
	if err != nil {
		return fmt.Errorf("marshal email for %s: %w", email.To, err)
	}

	if err := q.client.LPush(ctx, q.queueName, data).Err(); err != nil {
		return fmt.Errorf("enqueue email for %s: %w", email.To, err)
	}

	return nil
}

// Dequeue gets the next email payload (blocking with timeout)
func (q *RedisMailQueue) Dequeue(ctx context.Context, timeout time.Duration) ([]byte, error) {
	result, err := q.client.BRPop(ctx, timeout, q.queueName).Result()
	if err != nil {
		// redis.Nil is returned when the timeout elapses
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("dequeue email: %w", err)
	}

	if len(result) < 2 {
		return nil, fmt.Errorf("invalid result from queue: expected 2 elements, got %d", len(result))
	}

	return []byte(result[1]), nil
}

// EnqueueDelayed schedules an email for later delivery (for retries)
func (q *RedisMailQueue) EnqueueDelayed(ctx context.Context, email *notify.ApplicationEmail, delay time.Duration) error {
	data, err := json.Marshal(email)
	if err != nil {
		return fmt.Errorf("marshal delayed email for %s: %w", email.To, err)
	}

	score := float64(time.Now().Add(delay).Unix())

	if err := q.client.ZAdd(ctx, q.delayedName(), &redis.Z{
		Score:  score,
		Member: data,
	}).Err(); err != nil {
		return fmt.Errorf("enqueue delayed email for %s: %w", email.To, err)
	}

	return nil
}

// MoveDelayedToReady moves due delayed emails to the ready queue
func (q *RedisMailQueue) MoveDelayedToReady(ctx context.Context) (int, error) {
	now := float64(time.Now().Unix())

	due, err := q.client.ZRangeByScore(ctx, q.delayedName(), &redis.ZRangeBy{
		Min: "-inf",
		Max: fmt.Sprintf("%f", now),
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("get delayed emails: %w", err)
	}

	if len(due) == 0 {
		return 0, nil
	}

	pipe := q.client.Pipeline()
	for _, payload := range due {
		pipe.LPush(ctx, q.queueName, payload)
		pipe.ZRem(ctx, q.delayedName(), payload)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("move delayed emails to ready: %w", err)
	}

	return len(due), nil
}

// Size returns the number of ready emails
func (q *RedisMailQueue) Size(ctx context.Context) (int64, error) {
	size, err := q.client.LLen(ctx, q.queueName).Result()
	if err != nil {
		return 0, fmt.Errorf("get queue size: %w", err)
	}
	return size, nil
}

// Ping checks if the Redis connection is alive
func (q *RedisMailQueue) Ping(ctx context.Context) error {
	return q.client.Ping(ctx).Err()
}

func (q *RedisMailQueue) delayedName() string {
	return q.queueName + ":delayed"
}
