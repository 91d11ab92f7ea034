package controllers

import (
	"errors"

	"github.com/Callmevbdu/alx-files-manager/internal/domain"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
)

// writeError maps domain errors onto the HTTP status taxonomy: input and
// domain errors are 400, auth failures 401, unknown identifiers 404,
// everything else 500. Every rejection carries a single-field error body.
func writeError(c fiber.Ctx, err error) error {
	switch {
	case domain.IsValidationError(err):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrEmailTaken):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Already exist"})
	case errors.Is(err, domain.ErrParentNotFound):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Parent not found"})
	case errors.Is(err, domain.ErrParentNotAFolder):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Parent is not a folder"})
	case errors.Is(err, domain.ErrFolderHasNoContent):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "A folder doesn't have content"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrContentNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	default:
		log.Error().Err(err).Msg("Request failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}
