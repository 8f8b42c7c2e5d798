package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk/internal/api/dto"
	"github.com/spec-kit/helpdesk/internal/auth"
	"github.com/spec-kit/helpdesk/internal/workspace"
)

// WorkspaceHandler opens and discards workspaces.
type WorkspaceHandler struct {
	registry *workspace.Registry
	tokens   *auth.TokenManager
}

// NewWorkspaceHandler constructs handler.
func NewWorkspaceHandler(registry *workspace.Registry, tokens *auth.TokenManager) *WorkspaceHandler {
	return &WorkspaceHandler{registry: registry, tokens: tokens}
}

// Create handles POST /api/workspaces.
func (h *WorkspaceHandler) Create(c *fiber.Ctx) error {
	ws, err := h.registry.Create(c.UserContext())
	if err != nil {
		return err
	}
	token, exp, err := h.tokens.GenerateToken(ws.ID)
	if err != nil {
		h.registry.Remove(ws.ID)
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.WorkspaceResponse{
			ID:        ws.ID,
			Token:     token,
			ExpiresAt: exp,
			CreatedAt: ws.CreatedAt,
		},
	})
}

// RefreshToken handles POST /api/workspaces/current/token. A client that keeps its
// workspace busy past the token lifetime swaps its token here before it expires.
func (h *WorkspaceHandler) RefreshToken(c *fiber.Ctx) error {
	ws, err := currentWorkspace(c)
	if err != nil {
		return err
	}
	token, exp, err := h.tokens.GenerateToken(ws.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": dto.WorkspaceResponse{
			ID:        ws.ID,
			Token:     token,
			ExpiresAt: exp,
			CreatedAt: ws.CreatedAt,
		},
	})
}

// Discard handles DELETE /api/workspaces/current.
func (h *WorkspaceHandler) Discard(c *fiber.Ctx) error {
	ws, err := currentWorkspace(c)
	if err != nil {
		return err
	}
	h.registry.Remove(ws.ID)
	return c.SendStatus(http.StatusNoContent)
}
