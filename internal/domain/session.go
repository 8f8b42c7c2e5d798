package domain

import "time"

// Session is the single authentication context of a workspace.
type Session struct {
	Account   Account
	StartedAt time.Time
}

// HasRole reports whether the session account holds one of the given roles.
func (s Session) HasRole(roles ...Role) bool {
	for _, role := range roles {
		if s.Account.Role == role {
			return true
		}
	}
	return false
}
