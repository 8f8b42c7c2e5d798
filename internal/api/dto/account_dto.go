package dto

import "github.com/spec-kit/helpdesk/internal/domain"

// AccountResponse is the public view of an account. Credentials never appear here.
type AccountResponse struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
	Active bool        `json:"active"`
}

// CreateAccountRequest payload. Active defaults to true when omitted.
type CreateAccountRequest struct {
	Name   string      `json:"name"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
	Active *bool       `json:"active"`
}

// UpdateAccountRequest payload; omitted fields are left unchanged.
type UpdateAccountRequest struct {
	Name   *string      `json:"name"`
	Email  *string      `json:"email"`
	Role   *domain.Role `json:"role"`
	Active *bool        `json:"active"`
}
