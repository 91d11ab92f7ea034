package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/Callmevbdu/alx-files-manager/internal/domain"
	"github.com/Callmevbdu/alx-files-manager/internal/queue"
	"github.com/Callmevbdu/alx-files-manager/internal/sessions"
	"github.com/Callmevbdu/alx-files-manager/internal/storage/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	service *AuthService
	users   *memory.UserStore
	queue   *queue.MemoryQueue
}

func newAuthFixture(t *testing.T) authFixture {
	t.Helper()

	users := memory.NewUserStore()
	q := queue.NewMemoryQueue(domain.QueueWelcome)

	return authFixture{
		service: NewAuthService(AuthServiceDependencies{
			Users:        users,
			Sessions:     sessions.NewMemorySessionStore(time.Hour),
			WelcomeQueue: q,
		}),
		users: users,
		queue: q,
	}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	user, err := f.service.Register(ctx, "bob@dylan.com", "toto1234!")
	require.NoError(t, err)
	assert.Equal(t, "bob@dylan.com", user.Email)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, []byte("toto1234!"), user.PasswordHash, "passwords are stored one-way hashed")

	require.Equal(t, 1, f.queue.Len(), "registration enqueues the welcome task")
}

func TestAuthService_RegisterValidation(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	_, err := f.service.Register(ctx, "", "pw")
	assert.True(t, domain.IsValidationError(err))

	_, err = f.service.Register(ctx, "bob@dylan.com", "")
	assert.True(t, domain.IsValidationError(err))
}

func TestAuthService_RegisterDuplicate(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	_, err := f.service.Register(ctx, "bob@dylan.com", "pw")
	require.NoError(t, err)

	_, err = f.service.Register(ctx, "bob@dylan.com", "pw")
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestAuthService_ConnectAndCurrentUser(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	registered, err := f.service.Register(ctx, "bob@dylan.com", "toto1234!")
	require.NoError(t, err)

	token, err := f.service.Connect(ctx, "bob@dylan.com", "toto1234!")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	user, err := f.service.CurrentUser(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
}

func TestAuthService_ConnectRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	_, err := f.service.Register(ctx, "bob@dylan.com", "toto1234!")
	require.NoError(t, err)

	_, err = f.service.Connect(ctx, "bob@dylan.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = f.service.Connect(ctx, "nobody@dylan.com", "toto1234!")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_Disconnect(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	_, err := f.service.Register(ctx, "bob@dylan.com", "toto1234!")
	require.NoError(t, err)

	token, err := f.service.Connect(ctx, "bob@dylan.com", "toto1234!")
	require.NoError(t, err)

	require.NoError(t, f.service.Disconnect(ctx, token))

	// A revoked token no longer authenticates.
	_, err = f.service.CurrentUser(ctx, token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// And disconnecting it again reports unauthorized.
	err = f.service.Disconnect(ctx, token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_WelcomeTaskCarriesUserID(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	user, err := f.service.Register(ctx, "bob@dylan.com", "pw")
	require.NoError(t, err)

	delivered := make(chan domain.SendWelcomeTask, 1)
	consumeCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		_ = f.queue.Consume(consumeCtx, func(_ context.Context, payload []byte) error {
			var task domain.SendWelcomeTask
			if err := json.Unmarshal(payload, &task); err != nil {
				return queue.Fatal(err)
			}
			delivered <- task
			cancel()
			return nil
		})
	}()

	select {
	case task := <-delivered:
		assert.Equal(t, user.ID, task.UserID)
	case <-time.After(time.Second):
		t.Fatal("welcome task was not delivered")
	}
}
