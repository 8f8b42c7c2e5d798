package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk/internal/domain"
	apperrors "github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

// RequireSession ensures the workspace has someone logged in.
func RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ws, ok := WorkspaceFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("workspace required")
		}
		if _, ok := ws.Directory.Current(); !ok {
			return apperrors.NewUnauthorized("login required")
		}
		return c.Next()
	}
}

// RequireRole ensures the workspace session holds one of the allowed roles. With no roles
// any session passes.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ws, ok := WorkspaceFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("workspace required")
		}
		session, ok := ws.Directory.Current()
		if !ok {
			return apperrors.NewUnauthorized("login required")
		}
		if len(allowed) > 0 && !session.HasRole(allowed...) {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
