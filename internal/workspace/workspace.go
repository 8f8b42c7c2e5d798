// Package workspace keeps isolated help-desk instances in memory. Each workspace owns one
// account directory with its session and one ticket store, seeded when it is created.
package workspace

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/spec-kit/helpdesk/internal/service"
)

// Workspace is one self-contained help desk.
type Workspace struct {
	ID        string
	CreatedAt time.Time
	Directory *service.DirectoryService
	Tickets   *service.TicketService

	limiter *rate.Limiter

	mu       sync.Mutex
	lastSeen time.Time
}

// Allow consumes one request token from the workspace's bucket.
func (w *Workspace) Allow() bool {
	if w.limiter == nil {
		return true
	}
	return w.limiter.Allow()
}

// LastSeen returns when the workspace was last resolved.
func (w *Workspace) LastSeen() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastSeen
}

func (w *Workspace) touch(now time.Time) {
	w.mu.Lock()
	w.lastSeen = now
	w.mu.Unlock()
}

func (w *Workspace) idleSince(now time.Time) time.Duration {
	return now.Sub(w.LastSeen())
}
