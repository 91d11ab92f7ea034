package server

import (
	"time"

	"github.com/Callmevbdu/alx-files-manager/internal/controllers"
	"github.com/Callmevbdu/alx-files-manager/internal/domain"
	"github.com/Callmevbdu/alx-files-manager/internal/middlewares"
	"github.com/Callmevbdu/alx-files-manager/internal/version"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
)

type HTTPServerDependencies struct {
	AppController   *controllers.AppController
	AuthController  *controllers.AuthController
	FilesController *controllers.FilesController
	Sessions        domain.SessionStore
}

// NewHTTPServer wires the routes onto a fiber app. The routing layer is a
// thin dispatcher: handlers translate HTTP to service calls and back.
func NewHTTPServer(deps HTTPServerDependencies) *fiber.App {
	router := fiber.New(fiber.Config{
		AppName: "files-manager",
	})

	router.Use(cors.New())
	router.Use(logger.New())

	router.Get("/health", func(c fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":    "healthy",
			"service":   "files-manager",
			"version":   version.GetVersion(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	router.Get("/status", deps.AppController.GetStatus)
	router.Get("/stats", deps.AppController.GetStats)

	router.Post("/users", deps.AuthController.PostNew)
	router.Get("/connect", deps.AuthController.GetConnect)

	// Content retrieval allows anonymous access to public files, so it
	// stays outside the session-guarded group.
	router.Get("/files/:id/data", deps.FilesController.GetFile)

	authed := router.Group("")
	authed.Use(middlewares.RequireSession(deps.Sessions))

	authed.Get("/disconnect", deps.AuthController.GetDisconnect)
	authed.Get("/users/me", deps.AuthController.GetMe)

	authed.Post("/files", deps.FilesController.PostUpload)
	authed.Get("/files", deps.FilesController.GetIndex)
	authed.Get("/files/:id", deps.FilesController.GetShow)
	authed.Put("/files/:id/publish", deps.FilesController.PutPublish)
	authed.Put("/files/:id/unpublish", deps.FilesController.PutUnpublish)

	return router
}
