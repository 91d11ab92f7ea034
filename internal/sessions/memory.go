package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/Callmevbdu/alx-files-manager/internal/domain"

	"github.com/google/uuid"
)

type memoryEntry struct {
	userID    string
	expiresAt time.Time
}

// memorySessionStore keeps sessions in process memory. It is used by
// tests and local single-process runs.
type memorySessionStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemorySessionStore(ttl time.Duration) domain.SessionStore {
	if ttl == 0 {
		ttl = DefaultTTL
	}

	return &memorySessionStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *memorySessionStore) Create(_ context.Context, userID string) (string, error) {
	token := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[token] = memoryEntry{
		userID:    userID,
		expiresAt: s.now().Add(s.ttl),
	}

	return token, nil
}

func (s *memorySessionStore) Resolve(_ context.Context, token string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[token]
	if !ok {
		return "", false, nil
	}
	if s.now().After(entry.expiresAt) {
		delete(s.entries, token)
		return "", false, nil
	}

	return entry.userID, true, nil
}

func (s *memorySessionStore) Revoke(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, token)

	return nil
}
