package controllers

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/Callmevbdu/alx-files-manager/internal/domain"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError_StatusAndMessage(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"missing field", domain.NewValidationError("name"), fiber.StatusBadRequest, `{"error":"Missing name"}`},
		{"email taken", domain.ErrEmailTaken, fiber.StatusBadRequest, `{"error":"Already exist"}`},
		{"parent not found", domain.ErrParentNotFound, fiber.StatusBadRequest, `{"error":"Parent not found"}`},
		{"parent not a folder", domain.ErrParentNotAFolder, fiber.StatusBadRequest, `{"error":"Parent is not a folder"}`},
		{"folder has no content", domain.ErrFolderHasNoContent, fiber.StatusBadRequest, `{"error":"A folder doesn't have content"}`},
		{"unauthorized", domain.ErrUnauthorized, fiber.StatusUnauthorized, `{"error":"Unauthorized"}`},
		{"not found", domain.ErrNotFound, fiber.StatusNotFound, `{"error":"Not found"}`},
		{"content not found", domain.ErrContentNotFound, fiber.StatusNotFound, `{"error":"Not found"}`},
		{"unknown", errors.New("boom"), fiber.StatusInternalServerError, `{"error":"Internal server error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c fiber.Ctx) error {
				return writeError(c, tt.err)
			})

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			assert.Equal(t, tt.status, resp.StatusCode)
			assert.JSONEq(t, tt.body, string(body))
		})
	}
}
