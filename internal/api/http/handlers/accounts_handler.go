package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk/internal/api/dto"
	"github.com/spec-kit/helpdesk/internal/security"
	"github.com/spec-kit/helpdesk/internal/service"
	apperrors "github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

// AccountsHandler manages the workspace roster.
type AccountsHandler struct {
	sanitizer security.TextSanitizer
}

// NewAccountsHandler constructs handler.
func NewAccountsHandler(sanitizer security.TextSanitizer) *AccountsHandler {
	return &AccountsHandler{sanitizer: sanitizer}
}

// List handles GET /api/accounts.
func (h *AccountsHandler) List(c *fiber.Ctx) error {
	ws, err := currentWorkspace(c)
	if err != nil {
		return err
	}
	accounts, err := ws.Directory.ListAccounts(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		items = append(items, accountResponse(account))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Create handles POST /api/accounts.
func (h *AccountsHandler) Create(c *fiber.Ctx) error {
	ws, err := currentWorkspace(c)
	if err != nil {
		return err
	}
	var req dto.CreateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	account, err := ws.Directory.AddAccount(c.UserContext(), service.AccountInput{
		Name:   h.sanitizer.Clean(req.Name),
		Email:  req.Email,
		Role:   req.Role,
		Active: active,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": accountResponse(account)})
}

// Update handles PATCH /api/accounts/:id.
func (h *AccountsHandler) Update(c *fiber.Ctx) error {
	ws, err := currentWorkspace(c)
	if err != nil {
		return err
	}
	var req dto.UpdateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name != nil {
		name := h.sanitizer.Clean(*req.Name)
		req.Name = &name
	}

	account, err := ws.Directory.UpdateAccount(c.UserContext(), c.Params("id"), service.AccountPatch{
		Name:   req.Name,
		Email:  req.Email,
		Role:   req.Role,
		Active: req.Active,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": accountResponse(account)})
}

// Delete handles DELETE /api/accounts/:id.
func (h *AccountsHandler) Delete(c *fiber.Ctx) error {
	ws, err := currentWorkspace(c)
	if err != nil {
		return err
	}
	if err := ws.Directory.DeleteAccount(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
