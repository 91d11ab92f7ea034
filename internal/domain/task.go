package domain

import "context"

// Queue family names shared by producers and consumers.
const (
	QueueThumbnails = "thumbnails"
	QueueWelcome    = "welcome"
)

// GenerateThumbnailsTask asks a worker to produce the scaled derivatives
// for an uploaded image.
type GenerateThumbnailsTask struct {
	FileID string `json:"fileId"`
	UserID string `json:"userId"`
}

// SendWelcomeTask asks a worker to deliver the post-registration email.
type SendWelcomeTask struct {
	UserID string `json:"userId"`
}

// TaskQueue is the producer side of a durable, at-least-once work queue.
// Enqueue returns once the task is durably recorded.
type TaskQueue interface {
	Enqueue(ctx context.Context, task any) error
}

// TaskHandler processes one delivered task payload. A nil return
// acknowledges the task. Errors wrapped by queue.Fatal drop the task
// without retry; any other error makes it eligible for redelivery.
type TaskHandler func(ctx context.Context, payload []byte) error

// TaskConsumer drains a queue until the context is cancelled. Each task
// is delivered to exactly one consumer at a time but may be redelivered
// after a retryable failure.
type TaskConsumer interface {
	Consume(ctx context.Context, handler TaskHandler) error
}

// MailSender is the outbound notification sink. Delivery failures are
// retryable from the worker's point of view.
type MailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}
