package notification

import (
	"context"
	"time"
)

// NoteEvent describes a saved table note for notification delivery.
type NoteEvent struct {
	Table   string
	Author  string
	Text    string
	SavedAt time.Time
}

// Notifier delivers a summary of a saved note. Implementations should be
// safe for concurrent use; delivery failures are the caller's to swallow.
type Notifier interface {
	NotifyNoteSaved(ctx context.Context, event NoteEvent) error
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, event NoteEvent) error

func (f NotifierFunc) NotifyNoteSaved(ctx context.Context, event NoteEvent) error {
	return f(ctx, event)
}

// Nop is the notifier used when no delivery channel is configured.
type Nop struct{}

func (Nop) NotifyNoteSaved(context.Context, NoteEvent) error { return nil }
