package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Callmevbdu/alx-files-manager/internal/domain"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, login, and session resolution.
type AuthService struct {
	users    domain.UserStore
	sessions domain.SessionStore
	welcome  domain.TaskQueue
}

type AuthServiceDependencies struct {
	Users        domain.UserStore
	Sessions     domain.SessionStore
	WelcomeQueue domain.TaskQueue
}

func NewAuthService(deps AuthServiceDependencies) *AuthService {
	return &AuthService{
		users:    deps.Users,
		sessions: deps.Sessions,
		welcome:  deps.WelcomeQueue,
	}
}

func (s *AuthService) Register(ctx context.Context, email, password string) (domain.User, error) {
	if email == "" {
		return domain.User{}, domain.NewValidationError("email")
	}
	if password == "" {
		return domain.User{}, domain.NewValidationError("password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.Create(ctx, email, hash)
	if err != nil {
		return domain.User{}, err
	}

	// The welcome email is a fire-and-forget notification; a queue outage
	// must not fail the registration itself.
	if err := s.welcome.Enqueue(ctx, domain.SendWelcomeTask{UserID: user.ID}); err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to enqueue welcome email")
	}

	return user, nil
}

// Connect verifies credentials and issues a session token.
func (s *AuthService) Connect(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return "", domain.ErrUnauthorized
	}
	if err != nil {
		return "", err
	}

	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return "", domain.ErrUnauthorized
	}

	return s.sessions.Create(ctx, user.ID)
}

// Disconnect revokes a session. A token that was never valid reports
// unauthorized even though the store-level revoke is a no-op.
func (s *AuthService) Disconnect(ctx context.Context, token string) error {
	_, ok, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrUnauthorized
	}

	return s.sessions.Revoke(ctx, token)
}

func (s *AuthService) CurrentUser(ctx context.Context, token string) (domain.User, error) {
	userID, ok, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		return domain.User{}, err
	}
	if !ok {
		return domain.User{}, domain.ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, domain.ErrUnauthorized
	}
	if err != nil {
		return domain.User{}, err
	}

	return user, nil
}
