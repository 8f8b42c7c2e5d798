package service

import (
	"net/http"

	apperrors "github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

var (
	// ErrInvalidCredentials is the only failure login can produce.
	ErrInvalidCredentials = apperrors.NewDomainError("INVALID_CREDENTIALS", "invalid credentials", http.StatusUnauthorized, nil)
	// ErrNotAuthenticated means the workspace has no active session.
	ErrNotAuthenticated = apperrors.NewUnauthorized("login required")
	// ErrStatusChangeForbidden means the session role may not change ticket status.
	ErrStatusChangeForbidden = apperrors.NewForbidden("only admin or technician accounts may change ticket status")
	ErrTicketNotFound        = apperrors.NewNotFound("ticket", nil)
	ErrAccountNotFound       = apperrors.NewNotFound("account", nil)
	ErrInvalidStatus         = apperrors.NewValidationError("invalid ticket status", nil)
	ErrInvalidTicket         = apperrors.NewValidationError("invalid ticket", nil)
	ErrInvalidAccount        = apperrors.NewValidationError("invalid account", nil)
	ErrEmptyComment          = apperrors.NewValidationError("comment content required", nil)
)
