package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk/internal/api/dto"
	apperrors "github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

// SessionHandler logs accounts in and out of the caller's workspace.
type SessionHandler struct{}

// NewSessionHandler constructs handler.
func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

// Login handles POST /api/session.
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	ws, err := currentWorkspace(c)
	if err != nil {
		return err
	}
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if _, err := ws.Directory.Login(c.UserContext(), req.Email, req.Password); err != nil {
		return err
	}
	session, _ := ws.Directory.Current()
	return c.JSON(fiber.Map{
		"data": dto.SessionResponse{Account: accountResponse(session.Account), StartedAt: session.StartedAt},
	})
}

// Logout handles DELETE /api/session.
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	ws, err := currentWorkspace(c)
	if err != nil {
		return err
	}
	ws.Directory.Logout(c.UserContext())
	return c.SendStatus(http.StatusNoContent)
}

// Current handles GET /api/session.
func (h *SessionHandler) Current(c *fiber.Ctx) error {
	ws, err := currentWorkspace(c)
	if err != nil {
		return err
	}
	session, ok := ws.Directory.Current()
	if !ok {
		return apperrors.NewUnauthorized("login required")
	}
	return c.JSON(fiber.Map{
		"data": dto.SessionResponse{Account: accountResponse(session.Account), StartedAt: session.StartedAt},
	})
}
