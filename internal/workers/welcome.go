package workers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Callmevbdu/alx-files-manager/internal/domain"
	"github.com/Callmevbdu/alx-files-manager/internal/queue"

	"github.com/rs/zerolog/log"
)

const welcomeSubject = "Welcome to Files Manager"

// WelcomeWorker consumes SendWelcome tasks and hands the greeting to the
// notification sink. Sink failures are retryable; an unknown user is not.
type WelcomeWorker struct {
	users domain.UserStore
	mail  domain.MailSender
}

type WelcomeWorkerDependencies struct {
	Users domain.UserStore
	Mail  domain.MailSender
}

func NewWelcomeWorker(deps WelcomeWorkerDependencies) *WelcomeWorker {
	return &WelcomeWorker{
		users: deps.Users,
		mail:  deps.Mail,
	}
}

func (w *WelcomeWorker) Handle(ctx context.Context, payload []byte) error {
	var task domain.SendWelcomeTask
	if err := json.Unmarshal(payload, &task); err != nil {
		return queue.Fatal(fmt.Errorf("failed to decode welcome task: %w", err))
	}

	if task.UserID == "" {
		return queue.Fatal(errors.New("Missing userId"))
	}

	user, err := w.users.GetByID(ctx, task.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return queue.Fatal(errors.New("User not found"))
	}
	if err != nil {
		return fmt.Errorf("failed to look up user %s: %w", task.UserID, err)
	}

	body := fmt.Sprintf("Welcome %s!", user.Email)

	if err := w.mail.Send(ctx, user.Email, welcomeSubject, body); err != nil {
		return fmt.Errorf("failed to send welcome email to %s: %w", user.Email, err)
	}

	log.Info().Str("user_id", user.ID).Msg("Sent welcome email")

	return nil
}
