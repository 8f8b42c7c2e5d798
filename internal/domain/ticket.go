package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
)

// Valid reports whether s is a known status.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved:
		return true
	}
	return false
}

// TicketPriority enumerates urgency.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
)

// Valid reports whether p is a known priority.
func (p TicketPriority) Valid() bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh:
		return true
	}
	return false
}

// TicketCategory classifies the request.
type TicketCategory string

const (
	TicketCategoryProblem  TicketCategory = "problem"
	TicketCategoryTask     TicketCategory = "task"
	TicketCategoryIncident TicketCategory = "incident"
)

// Valid reports whether c is a known category.
func (c TicketCategory) Valid() bool {
	switch c {
	case TicketCategoryProblem, TicketCategoryTask, TicketCategoryIncident:
		return true
	}
	return false
}

// DateLayout renders a ticket creation date.
const DateLayout = "2006-01-02"

// Ticket is the aggregate for help-desk requests. CreatedAt carries a calendar date
// (midnight UTC); Comments are kept in insertion order.
type Ticket struct {
	ID          string
	Title       string
	Description string
	Status      TicketStatus
	Priority    TicketPriority
	Category    TicketCategory
	CreatedAt   time.Time
	Comments    []Comment
}

// Clone returns a copy that shares no comment storage with t.
func (t Ticket) Clone() Ticket {
	out := t
	out.Comments = make([]Comment, len(t.Comments))
	copy(out.Comments, t.Comments)
	return out
}

// CalendarDate truncates ts to its UTC calendar date.
func CalendarDate(ts time.Time) time.Time {
	y, m, d := ts.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
