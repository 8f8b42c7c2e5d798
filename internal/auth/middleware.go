package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk/internal/workspace"
	apperrors "github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

const (
	workspaceKey = "workspace"
	// WorkspaceIDKey holds the resolved workspace id for request logging.
	WorkspaceIDKey = "workspace_id"
)

// WorkspaceResolver finds live workspaces by id.
type WorkspaceResolver interface {
	Get(id string) (*workspace.Workspace, error)
}

// WorkspaceMiddleware validates bearer tokens and loads the workspace they are bound to.
type WorkspaceMiddleware struct {
	tokens     *TokenManager
	workspaces WorkspaceResolver
}

// NewWorkspaceMiddleware constructs middleware.
func NewWorkspaceMiddleware(tokens *TokenManager, workspaces WorkspaceResolver) *WorkspaceMiddleware {
	return &WorkspaceMiddleware{tokens: tokens, workspaces: workspaces}
}

// Handle enforces a workspace token on protected routes.
func (m *WorkspaceMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(strings.TrimSpace(parts[1]))
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	ws, err := m.workspaces.Get(claims.WorkspaceID)
	if err != nil {
		return err
	}

	c.Locals(workspaceKey, ws)
	c.Locals(WorkspaceIDKey, ws.ID)
	return c.Next()
}

// WorkspaceFromContext retrieves the workspace resolved for this request.
func WorkspaceFromContext(c *fiber.Ctx) (*workspace.Workspace, bool) {
	val := c.Locals(workspaceKey)
	if val == nil {
		return nil, false
	}
	ws, ok := val.(*workspace.Workspace)
	return ws, ok
}
