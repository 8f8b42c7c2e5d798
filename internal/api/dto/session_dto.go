package dto

import "time"

// WorkspaceResponse is returned when a workspace is opened.
type WorkspaceResponse struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse describes who is logged in to a workspace.
type SessionResponse struct {
	Account   AccountResponse `json:"account"`
	StartedAt time.Time       `json:"started_at"`
}
