package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Callmevbdu/alx-files-manager/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FileStore keeps file metadata in process memory while mirroring the
// Mongo store's semantics: monotonically assigned 24-hex identifiers,
// descending-identifier listing, owner-scoped visibility updates.
type FileStore struct {
	mu    sync.RWMutex
	files map[string]domain.File
}

func NewFileStore() *FileStore {
	return &FileStore{
		files: make(map[string]domain.File),
	}
}

func (s *FileStore) Insert(_ context.Context, f domain.File) (domain.File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f.ID = primitive.NewObjectID().Hex()
	s.files[f.ID] = f

	return f, nil
}

func (s *FileStore) Get(_ context.Context, id string) (domain.File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.files[id]
	if !ok {
		return domain.File{}, domain.ErrNotFound
	}

	return f, nil
}

func (s *FileStore) GetOwned(_ context.Context, id, userID string) (domain.File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.files[id]
	if !ok || f.UserID != userID {
		return domain.File{}, domain.ErrNotFound
	}

	return f, nil
}

func (s *FileStore) ListChildren(_ context.Context, userID string, parent domain.ParentRef, page int) ([]domain.File, error) {
	if page < 0 {
		return []domain.File{}, nil
	}

	s.mu.RLock()
	matched := make([]domain.File, 0)
	for _, f := range s.files {
		if f.UserID == userID && f.Parent.Key() == parent.Key() {
			matched = append(matched, f)
		}
	}
	s.mu.RUnlock()

	// Newest first. Hex object ids compare in assignment order.
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].ID > matched[j].ID
	})

	start := page * domain.ListPageSize
	if start >= len(matched) {
		return []domain.File{}, nil
	}

	end := start + domain.ListPageSize
	if end > len(matched) {
		end = len(matched)
	}

	return matched[start:end], nil
}

func (s *FileStore) SetPublic(_ context.Context, id, userID string, isPublic bool) (domain.File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.files[id]
	if !ok || f.UserID != userID {
		return domain.File{}, domain.ErrNotFound
	}

	f.IsPublic = isPublic
	s.files[id] = f

	return f, nil
}

func (s *FileStore) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.files)), nil
}
