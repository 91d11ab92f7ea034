package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Callmevbdu/alx-files-manager/internal/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "auth_"

// DefaultTTL is the session validity window measured from creation.
const DefaultTTL = 24 * time.Hour

type redisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisSessionStoreDependencies struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisSessionStore(deps RedisSessionStoreDependencies) domain.SessionStore {
	ttl := deps.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	return &redisSessionStore{
		client: deps.Client,
		ttl:    ttl,
	}
}

func (s *redisSessionStore) Create(ctx context.Context, userID string) (string, error) {
	token := uuid.NewString()

	if err := s.client.Set(ctx, keyPrefix+token, userID, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	return token, nil
}

func (s *redisSessionStore) Resolve(ctx context.Context, token string) (string, bool, error) {
	userID, err := s.client.Get(ctx, keyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve session: %w", err)
	}

	return userID, true, nil
}

func (s *redisSessionStore) Revoke(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	return nil
}
