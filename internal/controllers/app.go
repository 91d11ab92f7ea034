package controllers

import (
	"context"

	"github.com/Callmevbdu/alx-files-manager/internal/domain"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
)

// AppController serves the service-level status and stats endpoints.
type AppController struct {
	users     domain.UserStore
	files     domain.FileStore
	redisPing func(context.Context) error
	mongoPing func(context.Context) error
}

type AppControllerDependencies struct {
	Users     domain.UserStore
	Files     domain.FileStore
	RedisPing func(context.Context) error
	MongoPing func(context.Context) error
}

func NewAppController(deps AppControllerDependencies) *AppController {
	return &AppController{
		users:     deps.Users,
		files:     deps.Files,
		redisPing: deps.RedisPing,
		mongoPing: deps.MongoPing,
	}
}

func (ctrl *AppController) GetStatus(c fiber.Ctx) error {
	ctx := c.RequestCtx()

	return c.JSON(fiber.Map{
		"redis": ctrl.redisPing(ctx) == nil,
		"db":    ctrl.mongoPing(ctx) == nil,
	})
}

func (ctrl *AppController) GetStats(c fiber.Ctx) error {
	ctx := c.RequestCtx()

	users, err := ctrl.users.Count(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to count users")
		return writeError(c, err)
	}

	files, err := ctrl.files.Count(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to count files")
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{
		"users": users,
		"files": files,
	})
}
