package memory

import (
	"context"
	"sync"

	"github.com/Callmevbdu/alx-files-manager/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserStore keeps users in process memory with the same uniqueness
// guarantee the Mongo store enforces through its email index.
type UserStore struct {
	mu      sync.RWMutex
	users   map[string]domain.User
	byEmail map[string]string
}

func NewUserStore() *UserStore {
	return &UserStore{
		users:   make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

func (s *UserStore) Create(_ context.Context, email string, passwordHash []byte) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[email]; exists {
		return domain.User{}, domain.ErrEmailTaken
	}

	user := domain.User{
		ID:           primitive.NewObjectID().Hex(),
		Email:        email,
		PasswordHash: passwordHash,
	}

	s.users[user.ID] = user
	s.byEmail[email] = user.ID

	return user, nil
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}

	return s.users[id], nil
}

func (s *UserStore) GetByID(_ context.Context, id string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}

	return user, nil
}

func (s *UserStore) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.users)), nil
}
