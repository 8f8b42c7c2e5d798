package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/events"
)

func publishEvent(ctx context.Context, dispatcher events.Dispatcher, clock func() time.Time, event events.Event) {
	if dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = clock()
	}
	_ = dispatcher.Publish(ctx, event)
}

func sessionActor(session domain.Session) *events.Actor {
	return &events.Actor{
		AccountID: session.Account.ID,
		Name:      session.Account.Name,
		Role:      session.Account.Role,
	}
}

func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if utf8.RuneCountInString(body) <= max {
		return body
	}
	runes := []rune(body)
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

func defaultClock(clock func() time.Time) func() time.Time {
	if clock == nil {
		return time.Now
	}
	return clock
}

func defaultIDs(newID func() string) func() string {
	if newID == nil {
		return uuid.NewString
	}
	return newID
}
