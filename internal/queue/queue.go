// Package queue provides the durable, at-least-once task queues that
// decouple uploads from thumbnail generation and registration from
// welcome-email delivery. Producers and consumers address a queue by its
// family name.
package queue

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/xid"
)

// envelope wraps a task payload with a delivery identifier for logging
// and processing-list bookkeeping.
type envelope struct {
	ID      string          `json:"id"`
	Payload json.RawMessage `json:"payload"`
}

func newEnvelope(task any) ([]byte, error) {
	payload, err := json.Marshal(task)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal task: %w", err)
	}

	raw, err := json.Marshal(envelope{
		ID:      xid.New().String(),
		Payload: payload,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal task envelope: %w", err)
	}

	return raw, nil
}

type fatalError struct {
	err error
}

func (e fatalError) Error() string {
	return e.err.Error()
}

func (e fatalError) Unwrap() error {
	return e.err
}

// Fatal marks a handler error as non-retryable: the task is dropped after
// the failure is logged. Retrying a fatal error cannot succeed because the
// task's inputs will not change.
func Fatal(err error) error {
	if err == nil {
		return nil
	}
	return fatalError{err: err}
}

// IsFatal reports whether err was marked with Fatal.
func IsFatal(err error) bool {
	var fe fatalError
	return errors.As(err, &fe)
}
