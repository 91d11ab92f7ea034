package cli

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/Callmevbdu/alx-files-manager/internal/config"
	"github.com/Callmevbdu/alx-files-manager/internal/domain"
	"github.com/Callmevbdu/alx-files-manager/internal/mail"
	"github.com/Callmevbdu/alx-files-manager/internal/workers"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func NewWorkerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Start the background queue workers",
		Long:  `Start the thumbnail and welcome-email workers. They draw from the same durable queues as the API server, so multiple worker processes may run concurrently.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorker()
		},
	}
}

func runWorker() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	deps, err := BuildDependencies(ctx, cfg)
	if err != nil {
		return err
	}
	defer deps.Close(context.Background())

	var sender domain.MailSender
	if cfg.ResendAPIKey != "" {
		sender = mail.NewResendSender(mail.ResendSenderDependencies{
			APIKey: cfg.ResendAPIKey,
			From:   cfg.MailFrom,
		})
	} else {
		log.Warn().Msg("RESEND_API_KEY not set, welcome emails will only be logged")
		sender = mail.NewLogSender()
	}

	thumbnailWorker := workers.NewThumbnailWorker(workers.ThumbnailWorkerDependencies{
		Files:   deps.Files,
		Content: deps.Content,
	})

	welcomeWorker := workers.NewWelcomeWorker(workers.WelcomeWorkerDependencies{
		Users: deps.Users,
		Mail:  sender,
	})

	log.Info().Msg("Starting queue workers")

	var wg sync.WaitGroup

	wg.Add(2)

	go func() {
		defer wg.Done()
		if err := deps.ThumbnailQueue.Consume(ctx, thumbnailWorker.Handle); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Msg("Thumbnail consumer stopped")
		}
	}()

	go func() {
		defer wg.Done()
		if err := deps.WelcomeQueue.Consume(ctx, welcomeWorker.Handle); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Msg("Welcome consumer stopped")
		}
	}()

	wg.Wait()

	log.Info().Msg("Queue workers stopped")

	return nil
}
