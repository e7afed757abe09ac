package events

import (
	"context"
	"errors"
	"testing"
)

func TestDispatcher_PublishesToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher(nil)

	var got []EventType
	d.Subscribe(EventLoginFailed, func(_ context.Context, e Event) error {
		got = append(got, e.Type)
		return errors.New("first handler fails")
	})
	d.Subscribe(EventLoginFailed, func(_ context.Context, e Event) error {
		got = append(got, e.Type)
		return nil
	})
	d.Subscribe(EventLogout, func(_ context.Context, e Event) error {
		t.Error("logout handler should not run")
		return nil
	})

	event := NewEvent(EventLoginFailed, Actor{Email: "a@example.com"}, LoginFailedPayload{Reason: "invalid_credentials"})
	if err := d.Publish(context.Background(), event); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected both handlers to run, got %d", len(got))
	}
}

func TestNewEvent(t *testing.T) {
	a := NewEvent(EventLogout, Actor{UserID: 1}, nil)
	b := NewEvent(EventLogout, Actor{UserID: 1}, nil)
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("expected distinct non-empty ids, got %q and %q", a.ID, b.ID)
	}
	if a.Timestamp.IsZero() {
		t.Error("expected timestamp")
	}
}
