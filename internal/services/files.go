package services

import (
	"context"
	"errors"

	"github.com/Callmevbdu/alx-files-manager/internal/domain"

	"github.com/rs/zerolog/log"
)

// FileService implements the file-metadata operations: creation with the
// write-then-persist content sequence, access-resolved reads, paginated
// listing, visibility changes, and content retrieval.
type FileService struct {
	files      domain.FileStore
	content    domain.ContentStore
	thumbnails domain.TaskQueue
}

type FileServiceDependencies struct {
	Files          domain.FileStore
	Content        domain.ContentStore
	ThumbnailQueue domain.TaskQueue
}

func NewFileService(deps FileServiceDependencies) *FileService {
	return &FileService{
		files:      deps.Files,
		content:    deps.Content,
		thumbnails: deps.ThumbnailQueue,
	}
}

type CreateFileParams struct {
	UserID   string
	Name     string
	Type     domain.FileType
	Parent   domain.ParentRef
	IsPublic bool
	Data     []byte
}

// Create validates and persists a new folder, file, or image. For
// non-folders the raw bytes are written to the content store first;
// metadata is persisted only after a successful write, and the blob is
// removed again if the metadata insert fails.
func (s *FileService) Create(ctx context.Context, p CreateFileParams) (domain.File, error) {
	if p.Name == "" {
		return domain.File{}, domain.NewValidationError("name")
	}
	if !p.Type.Valid() {
		return domain.File{}, domain.NewValidationError("type")
	}
	if p.Type != domain.FileTypeFolder && len(p.Data) == 0 {
		return domain.File{}, domain.NewValidationError("data")
	}

	if !p.Parent.IsRoot() {
		parent, err := s.files.Get(ctx, p.Parent.ID())
		if errors.Is(err, domain.ErrNotFound) {
			return domain.File{}, domain.ErrParentNotFound
		}
		if err != nil {
			return domain.File{}, err
		}
		if parent.Type != domain.FileTypeFolder {
			return domain.File{}, domain.ErrParentNotAFolder
		}
	}

	record := domain.File{
		UserID:   p.UserID,
		Name:     p.Name,
		Type:     p.Type,
		IsPublic: p.IsPublic,
		Parent:   p.Parent,
	}

	if p.Type == domain.FileTypeFolder {
		return s.files.Insert(ctx, record)
	}

	ref, err := s.content.Put(ctx, p.Data)
	if err != nil {
		return domain.File{}, err
	}

	record.ContentRef = ref

	file, err := s.files.Insert(ctx, record)
	if err != nil {
		// Roll back the content write so no half-created record leaks a
		// referenced blob. A leftover blob after a failed delete is
		// inert: nothing references it.
		if delErr := s.content.Delete(ctx, ref); delErr != nil {
			log.Error().Err(delErr).Str("content_ref", ref).Msg("Failed to roll back content write")
		}
		return domain.File{}, err
	}

	if p.Type == domain.FileTypeImage {
		task := domain.GenerateThumbnailsTask{FileID: file.ID, UserID: p.UserID}
		if err := s.thumbnails.Enqueue(ctx, task); err != nil {
			// The record is already persisted; missing derivatives are a
			// normal, reportable state.
			log.Error().Err(err).Str("file_id", file.ID).Msg("Failed to enqueue thumbnail task")
		}
	}

	return file, nil
}

// Get returns a file record if the requester may read it. requesterID is
// empty for anonymous callers. Unreadable records report not-found so
// existence is not leaked.
func (s *FileService) Get(ctx context.Context, requesterID, fileID string) (domain.File, error) {
	file, err := s.files.Get(ctx, fileID)
	if err != nil {
		return domain.File{}, err
	}

	if !domain.CanRead(requesterID, file) {
		return domain.File{}, domain.ErrNotFound
	}

	return file, nil
}

func (s *FileService) List(ctx context.Context, userID string, parent domain.ParentRef, page int) ([]domain.File, error) {
	return s.files.ListChildren(ctx, userID, parent, page)
}

// SetVisibility publishes or unpublishes a file. Only the owner may do
// this; a mismatch reports not-found.
func (s *FileService) SetVisibility(ctx context.Context, userID, fileID string, isPublic bool) (domain.File, error) {
	return s.files.SetPublic(ctx, fileID, userID, isPublic)
}

type FileData struct {
	Name string
	Data []byte
}

// Data returns a file's raw bytes or a derivative. A size outside the
// supported widths falls back to the original. Folders have no content
// and report a domain error rather than a missing-content one.
func (s *FileService) Data(ctx context.Context, requesterID, fileID string, size int) (FileData, error) {
	file, err := s.files.Get(ctx, fileID)
	if err != nil {
		return FileData{}, err
	}

	if file.Type == domain.FileTypeFolder {
		return FileData{}, domain.ErrFolderHasNoContent
	}

	if !domain.CanRead(requesterID, file) {
		return FileData{}, domain.ErrNotFound
	}

	width := 0
	for _, w := range domain.ThumbnailWidths {
		if size == w {
			width = w
			break
		}
	}

	data, err := s.content.Get(ctx, file.ContentRef, width)
	if err != nil {
		return FileData{}, err
	}

	return FileData{Name: file.Name, Data: data}, nil
}
