package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Callmevbdu/alx-files-manager/internal/domain"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	keyPrefix    = "files_manager:queue:"
	pollInterval = 2 * time.Second
)

// RedisQueue is a durable work queue on a pair of Redis lists. Enqueue
// pushes onto the pending list and returns once Redis acknowledges the
// write. Consumers move a task to the processing list before handling it,
// so a consumer crash leaves the task recoverable rather than lost.
type RedisQueue struct {
	client     *redis.Client
	pending    string
	processing string
	name       string
}

type RedisQueueDependencies struct {
	Client *redis.Client
	Name   string
}

func NewRedisQueue(deps RedisQueueDependencies) *RedisQueue {
	return &RedisQueue{
		client:     deps.Client,
		pending:    keyPrefix + deps.Name + ":pending",
		processing: keyPrefix + deps.Name + ":processing",
		name:       deps.Name,
	}
}

func (q *RedisQueue) Enqueue(ctx context.Context, task any) error {
	raw, err := newEnvelope(task)
	if err != nil {
		return err
	}

	if err := q.client.LPush(ctx, q.pending, raw).Err(); err != nil {
		return fmt.Errorf("failed to enqueue task on %s: %w", q.name, err)
	}

	return nil
}

// Consume drains the queue until ctx is cancelled. Each task is moved to
// the processing list, handled, and then removed. Retryable failures push
// the task back onto the pending list, so delivery is at-least-once.
func (q *RedisQueue) Consume(ctx context.Context, handler domain.TaskHandler) error {
	log.Info().Str("queue", q.name).Msg("Consuming queue")

	if err := q.reclaim(ctx); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		raw, err := q.client.BLMove(ctx, q.pending, q.processing, "RIGHT", "LEFT", pollInterval).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Error().Err(err).Str("queue", q.name).Msg("Failed to fetch task")
			time.Sleep(pollInterval)
			continue
		}

		q.handle(ctx, handler, raw)
	}
}

func (q *RedisQueue) handle(ctx context.Context, handler domain.TaskHandler, raw string) {
	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		log.Error().Err(err).Str("queue", q.name).Msg("Dropping undecodable task")
		q.remove(ctx, raw)
		return
	}

	err := handler(ctx, env.Payload)

	switch {
	case err == nil:
		q.remove(ctx, raw)
	case IsFatal(err):
		log.Error().Err(err).Str("queue", q.name).Str("task_id", env.ID).Msg("Task failed fatally")
		q.remove(ctx, raw)
	default:
		log.Warn().Err(err).Str("queue", q.name).Str("task_id", env.ID).Msg("Task failed, requeueing")
		pipe := q.client.TxPipeline()
		pipe.LRem(ctx, q.processing, 1, raw)
		pipe.LPush(ctx, q.pending, raw)
		if _, pipeErr := pipe.Exec(ctx); pipeErr != nil {
			// The task stays on the processing list and can be
			// recovered by an operator or a future sweep.
			log.Error().Err(pipeErr).Str("queue", q.name).Str("task_id", env.ID).Msg("Failed to requeue task")
		}
	}
}

// reclaim moves every task left on the processing list back onto the
// pending list. A consumer that crashed mid-handle never removes its
// task, so a starting consumer sweeps the list to get those tasks
// delivered again. A task in flight on another live consumer may be
// swept too; that is a duplicate delivery, which at-least-once permits
// and the idempotent handlers absorb.
func (q *RedisQueue) reclaim(ctx context.Context) error {
	moved := 0

	for {
		_, err := q.client.LMove(ctx, q.processing, q.pending, "RIGHT", "RIGHT").Result()
		if errors.Is(err, redis.Nil) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to reclaim tasks on %s: %w", q.name, err)
		}
		moved++
	}

	if moved > 0 {
		log.Info().Str("queue", q.name).Int("count", moved).Msg("Requeued unacknowledged tasks")
	}

	return nil
}

func (q *RedisQueue) remove(ctx context.Context, raw string) {
	if err := q.client.LRem(ctx, q.processing, 1, raw).Err(); err != nil {
		log.Error().Err(err).Str("queue", q.name).Msg("Failed to acknowledge task")
	}
}
