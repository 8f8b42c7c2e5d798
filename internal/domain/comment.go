package domain

import "time"

// Comment is an immutable note on a ticket. AuthorID and AuthorName are snapshots taken
// when the comment was written.
type Comment struct {
	ID         string
	TicketID   string
	AuthorID   string
	AuthorName string
	Content    string
	CreatedAt  time.Time
}
