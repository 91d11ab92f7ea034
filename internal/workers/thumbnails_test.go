package workers

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/Callmevbdu/alx-files-manager/internal/content"
	"github.com/Callmevbdu/alx-files-manager/internal/domain"
	"github.com/Callmevbdu/alx-files-manager/internal/queue"
	"github.com/Callmevbdu/alx-files-manager/internal/storage/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: uint8(x % 256), B: uint8(y % 256), A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return buf.Bytes()
}

type thumbnailFixture struct {
	worker  *ThumbnailWorker
	files   *memory.FileStore
	content *content.DiskStore
}

func newThumbnailFixture(t *testing.T) thumbnailFixture {
	t.Helper()

	files := memory.NewFileStore()
	store, err := content.NewDiskStore(content.DiskStoreDependencies{Root: t.TempDir()})
	require.NoError(t, err)

	return thumbnailFixture{
		worker: NewThumbnailWorker(ThumbnailWorkerDependencies{
			Files:   files,
			Content: store,
		}),
		files:   files,
		content: store,
	}
}

func (f thumbnailFixture) uploadImage(t *testing.T, userID string, data []byte) domain.File {
	t.Helper()

	ctx := context.Background()

	ref, err := f.content.Put(ctx, data)
	require.NoError(t, err)

	file, err := f.files.Insert(ctx, domain.File{
		UserID:     userID,
		Name:       "photo.png",
		Type:       domain.FileTypeImage,
		ContentRef: ref,
	})
	require.NoError(t, err)

	return file
}

func taskPayload(t *testing.T, task any) []byte {
	t.Helper()

	raw, err := json.Marshal(task)
	require.NoError(t, err)

	return raw
}

func TestThumbnailWorker_ProducesAllDerivatives(t *testing.T) {
	ctx := context.Background()
	f := newThumbnailFixture(t)

	file := f.uploadImage(t, "u1", pngBytes(t, 800, 400))

	payload := taskPayload(t, domain.GenerateThumbnailsTask{FileID: file.ID, UserID: "u1"})
	require.NoError(t, f.worker.Handle(ctx, payload))

	for _, width := range domain.ThumbnailWidths {
		data, err := f.content.Get(ctx, file.ContentRef, width)
		require.NoError(t, err, "derivative %d must exist", width)

		img, _, err := image.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, width, img.Bounds().Dx())
	}
}

func TestThumbnailWorker_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newThumbnailFixture(t)

	file := f.uploadImage(t, "u1", pngBytes(t, 640, 480))
	payload := taskPayload(t, domain.GenerateThumbnailsTask{FileID: file.ID, UserID: "u1"})

	require.NoError(t, f.worker.Handle(ctx, payload))

	first := make(map[int][]byte)
	for _, width := range domain.ThumbnailWidths {
		data, err := f.content.Get(ctx, file.ContentRef, width)
		require.NoError(t, err)
		first[width] = data
	}

	// Redelivery of the same task must leave identical final bytes.
	require.NoError(t, f.worker.Handle(ctx, payload))

	for _, width := range domain.ThumbnailWidths {
		data, err := f.content.Get(ctx, file.ContentRef, width)
		require.NoError(t, err)
		assert.Equal(t, first[width], data)
	}
}

func TestThumbnailWorker_MissingFields(t *testing.T) {
	ctx := context.Background()
	f := newThumbnailFixture(t)

	err := f.worker.Handle(ctx, taskPayload(t, domain.GenerateThumbnailsTask{UserID: "u1"}))
	require.Error(t, err)
	assert.True(t, queue.IsFatal(err), "missing fileId is a fatal job error")

	err = f.worker.Handle(ctx, taskPayload(t, domain.GenerateThumbnailsTask{FileID: "abc"}))
	require.Error(t, err)
	assert.True(t, queue.IsFatal(err), "missing userId is a fatal job error")
}

func TestThumbnailWorker_UnknownFile(t *testing.T) {
	ctx := context.Background()
	f := newThumbnailFixture(t)

	payload := taskPayload(t, domain.GenerateThumbnailsTask{
		FileID: "5f1e7d35c7ba06511e683b21",
		UserID: "u1",
	})

	err := f.worker.Handle(ctx, payload)
	require.Error(t, err)
	assert.True(t, queue.IsFatal(err), "an unknown file cannot succeed on retry")
}

func TestThumbnailWorker_WrongOwnerIsNotFound(t *testing.T) {
	ctx := context.Background()
	f := newThumbnailFixture(t)

	file := f.uploadImage(t, "u1", pngBytes(t, 100, 100))

	payload := taskPayload(t, domain.GenerateThumbnailsTask{FileID: file.ID, UserID: "u2"})

	err := f.worker.Handle(ctx, payload)
	require.Error(t, err)
	assert.True(t, queue.IsFatal(err))
}

func TestThumbnailWorker_UndecodableContentIsFatal(t *testing.T) {
	ctx := context.Background()
	f := newThumbnailFixture(t)

	file := f.uploadImage(t, "u1", []byte("definitely not an image"))

	payload := taskPayload(t, domain.GenerateThumbnailsTask{FileID: file.ID, UserID: "u1"})

	err := f.worker.Handle(ctx, payload)
	require.Error(t, err)
	assert.True(t, queue.IsFatal(err))
}

func TestThumbnailWorker_MissingOriginalIsRetryable(t *testing.T) {
	ctx := context.Background()
	f := newThumbnailFixture(t)

	file, err := f.files.Insert(ctx, domain.File{
		UserID:     "u1",
		Name:       "photo.png",
		Type:       domain.FileTypeImage,
		ContentRef: "never-written",
	})
	require.NoError(t, err)

	payload := taskPayload(t, domain.GenerateThumbnailsTask{FileID: file.ID, UserID: "u1"})

	err = f.worker.Handle(ctx, payload)
	require.Error(t, err)
	assert.False(t, queue.IsFatal(err), "I/O failures leave the task retryable")
}
