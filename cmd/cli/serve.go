package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Callmevbdu/alx-files-manager/internal/config"
	"github.com/Callmevbdu/alx-files-manager/internal/controllers"
	"github.com/Callmevbdu/alx-files-manager/internal/server"
	"github.com/Callmevbdu/alx-files-manager/internal/services"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
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

	authService := services.NewAuthService(services.AuthServiceDependencies{
		Users:        deps.Users,
		Sessions:     deps.Sessions,
		WelcomeQueue: deps.WelcomeQueue,
	})

	fileService := services.NewFileService(services.FileServiceDependencies{
		Files:          deps.Files,
		Content:        deps.Content,
		ThumbnailQueue: deps.ThumbnailQueue,
	})

	app := server.NewHTTPServer(server.HTTPServerDependencies{
		AppController: controllers.NewAppController(controllers.AppControllerDependencies{
			Users: deps.Users,
			Files: deps.Files,
			RedisPing: func(ctx context.Context) error {
				return deps.RedisClient.Ping(ctx).Err()
			},
			MongoPing: func(ctx context.Context) error {
				return deps.MongoClient.Ping(ctx, readpref.Primary())
			},
		}),
		AuthController: controllers.NewAuthController(controllers.AuthControllerDependencies{
			Auth: authService,
		}),
		FilesController: controllers.NewFilesController(controllers.FilesControllerDependencies{
			Files:    fileService,
			Sessions: deps.Sessions,
		}),
		Sessions: deps.Sessions,
	})

	log.Info().Str("address", cfg.HTTPAddress).Msg("Starting HTTP server")

	if err := app.Listen(cfg.HTTPAddress, fiber.ListenConfig{
		GracefulContext:       ctx,
		DisableStartupMessage: true,
	}); err != nil {
		log.Error().Err(err).Msg("HTTP server failed")
		return err
	}

	log.Info().Msg("HTTP server stopped")

	return nil
}
