package domain

// Role gates what an account may do inside a workspace.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleTechnician Role = "technician"
	RoleCustomer   Role = "customer"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTechnician, RoleCustomer:
		return true
	}
	return false
}

// Account is a directory entry as seen by consumers. The credential lives only in the
// repository's internal record.
type Account struct {
	ID     string
	Name   string
	Email  string
	Role   Role
	Active bool
}
