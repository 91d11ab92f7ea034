package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Callmevbdu/alx-files-manager/internal/domain"

	"github.com/rs/zerolog/log"
)

// MemoryQueue is a channel-backed queue with the same delivery contract
// as RedisQueue: retryable failures are requeued, fatal failures are
// dropped. Used by tests and single-process local runs.
type MemoryQueue struct {
	name  string
	tasks chan []byte
}

func NewMemoryQueue(name string) *MemoryQueue {
	return &MemoryQueue{
		name:  name,
		tasks: make(chan []byte, 1024),
	}
}

func (q *MemoryQueue) Enqueue(_ context.Context, task any) error {
	raw, err := newEnvelope(task)
	if err != nil {
		return err
	}

	select {
	case q.tasks <- raw:
		return nil
	default:
		return fmt.Errorf("queue %s is full", q.name)
	}
}

func (q *MemoryQueue) Consume(ctx context.Context, handler domain.TaskHandler) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case raw := <-q.tasks:
			var env envelope
			if err := json.Unmarshal(raw, &env); err != nil {
				log.Error().Err(err).Str("queue", q.name).Msg("Dropping undecodable task")
				continue
			}

			err := handler(ctx, env.Payload)
			if err == nil {
				continue
			}
			if IsFatal(err) {
				log.Error().Err(err).Str("queue", q.name).Str("task_id", env.ID).Msg("Task failed fatally")
				continue
			}

			log.Warn().Err(err).Str("queue", q.name).Str("task_id", env.ID).Msg("Task failed, requeueing")
			select {
			case q.tasks <- raw:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

// Len reports the number of queued tasks. Test helper.
func (q *MemoryQueue) Len() int {
	return len(q.tasks)
}
