package workers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Callmevbdu/alx-files-manager/internal/domain"
	"github.com/Callmevbdu/alx-files-manager/internal/imaging"
	"github.com/Callmevbdu/alx-files-manager/internal/queue"

	"github.com/rs/zerolog/log"
)

// ThumbnailWorker consumes GenerateThumbnails tasks and writes the three
// scaled derivatives for an image. It is idempotent under redelivery:
// derivative locations are deterministic, so a retry overwrites the same
// files with the same bytes.
type ThumbnailWorker struct {
	files   domain.FileStore
	content domain.ContentStore
}

type ThumbnailWorkerDependencies struct {
	Files   domain.FileStore
	Content domain.ContentStore
}

func NewThumbnailWorker(deps ThumbnailWorkerDependencies) *ThumbnailWorker {
	return &ThumbnailWorker{
		files:   deps.Files,
		content: deps.Content,
	}
}

// Handle processes one task delivery. Fatal errors (missing fields, an
// unknown file) drop the task; anything else leaves it retryable. The
// task is acknowledged only after all three derivatives are written.
func (w *ThumbnailWorker) Handle(ctx context.Context, payload []byte) error {
	var task domain.GenerateThumbnailsTask
	if err := json.Unmarshal(payload, &task); err != nil {
		return queue.Fatal(fmt.Errorf("failed to decode thumbnail task: %w", err))
	}

	if task.FileID == "" {
		return queue.Fatal(errors.New("Missing fileId"))
	}
	if task.UserID == "" {
		return queue.Fatal(errors.New("Missing userId"))
	}

	file, err := w.files.GetOwned(ctx, task.FileID, task.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		// The identity pair will not change, so retrying cannot help.
		return queue.Fatal(errors.New("File not found"))
	}
	if err != nil {
		return fmt.Errorf("failed to look up file %s: %w", task.FileID, err)
	}

	if file.Type != domain.FileTypeImage {
		return queue.Fatal(fmt.Errorf("file %s is not an image", file.ID))
	}

	original, err := w.content.Get(ctx, file.ContentRef, 0)
	if err != nil {
		return fmt.Errorf("failed to read original content %s: %w", file.ContentRef, err)
	}

	for _, width := range domain.ThumbnailWidths {
		scaled, err := imaging.Scale(original, width)
		if err != nil {
			// Undecodable bytes stay undecodable on retry.
			return queue.Fatal(fmt.Errorf("failed to scale %s to %d: %w", file.ID, width, err))
		}

		if err := w.content.PutDerivative(ctx, file.ContentRef, width, scaled); err != nil {
			return fmt.Errorf("failed to write derivative %s_%d: %w", file.ContentRef, width, err)
		}
	}

	log.Info().
		Str("file_id", file.ID).
		Str("content_ref", file.ContentRef).
		Msg("Generated thumbnails")

	return nil
}
