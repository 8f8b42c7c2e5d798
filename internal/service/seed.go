package service

import (
	"time"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// DefaultCredential is assigned to every account created through AddAccount.
const DefaultCredential = "password123"

// SeedAccount describes a boot-time roster entry.
type SeedAccount struct {
	Name       string
	Email      string
	Credential string
	Role       domain.Role
	Active     bool
}

// DefaultSeedAccounts returns the roster every workspace starts with.
func DefaultSeedAccounts() []SeedAccount {
	return []SeedAccount{
		{Name: "Administrator", Email: "admin@helpdesk.com", Credential: "admin123", Role: domain.RoleAdmin, Active: true},
		{Name: "Technician", Email: "technician@helpdesk.com", Credential: "technician123", Role: domain.RoleTechnician, Active: true},
		{Name: "Customer", Email: "customer@helpdesk.com", Credential: "customer123", Role: domain.RoleCustomer, Active: true},
	}
}

// DefaultSeedTickets returns the example tickets every workspace starts with, newest first.
func DefaultSeedTickets() []domain.Ticket {
	return []domain.Ticket{
		{
			Title:       "Air conditioning not working",
			Description: "The air conditioning on the third floor is not cooling properly",
			Status:      domain.TicketStatusOpen,
			Priority:    domain.TicketPriorityHigh,
			Category:    domain.TicketCategoryProblem,
			CreatedAt:   seedDate(2024, time.March, 15),
		},
		{
			Title:       "Replace hallway light fixtures",
			Description: "The lights in the main hallway need to be replaced",
			Status:      domain.TicketStatusInProgress,
			Priority:    domain.TicketPriorityMedium,
			Category:    domain.TicketCategoryTask,
			CreatedAt:   seedDate(2024, time.March, 14),
		},
		{
			Title:       "Water leak in restroom",
			Description: "There is a water leak in the first floor restroom",
			Status:      domain.TicketStatusResolved,
			Priority:    domain.TicketPriorityHigh,
			Category:    domain.TicketCategoryIncident,
			CreatedAt:   seedDate(2024, time.March, 13),
		},
	}
}

func seedDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
