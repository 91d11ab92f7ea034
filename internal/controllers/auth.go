package controllers

import (
	"encoding/base64"
	"strings"

	"github.com/Callmevbdu/alx-files-manager/internal/middlewares"
	"github.com/Callmevbdu/alx-files-manager/internal/services"

	"github.com/gofiber/fiber/v3"
)

// AuthController handles registration and session lifecycle requests.
type AuthController struct {
	auth *services.AuthService
}

type AuthControllerDependencies struct {
	Auth *services.AuthService
}

func NewAuthController(deps AuthControllerDependencies) *AuthController {
	return &AuthController{
		auth: deps.Auth,
	}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (ctrl *AuthController) PostNew(c fiber.Ctx) error {
	var req registerRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	user, err := ctrl.auth.Register(c.RequestCtx(), req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":    user.ID,
		"email": user.Email,
	})
}

// GetConnect exchanges Basic credentials for a session token.
func (ctrl *AuthController) GetConnect(c fiber.Ctx) error {
	email, password, ok := parseBasicAuth(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	token, err := ctrl.auth.Connect(c.RequestCtx(), email, password)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{"token": token})
}

func (ctrl *AuthController) GetDisconnect(c fiber.Ctx) error {
	token, _ := c.Locals(middlewares.LocalToken).(string)

	if err := ctrl.auth.Disconnect(c.RequestCtx(), token); err != nil {
		return writeError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (ctrl *AuthController) GetMe(c fiber.Ctx) error {
	token := c.Get(middlewares.TokenHeader)

	user, err := ctrl.auth.CurrentUser(c.RequestCtx(), token)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{
		"id":    user.ID,
		"email": user.Email,
	})
}

func parseBasicAuth(header string) (email, password string, ok bool) {
	const prefix = "Basic "

	if !strings.HasPrefix(header, prefix) {
		return "", "", false
	}

	decoded, err := base64.StdEncoding.DecodeString(header[len(prefix):])
	if err != nil {
		return "", "", false
	}

	email, password, found := strings.Cut(string(decoded), ":")
	if !found || email == "" {
		return "", "", false
	}

	return email, password, true
}
