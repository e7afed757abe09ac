package service

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/pos-backoffice/internal/domain"
	"github.com/spec-kit/pos-backoffice/internal/events"
)

type fakeUsers struct {
	byEmail map[string]*domain.User
	err     error
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return u, nil
}

type fakeThrottle struct {
	allow      bool
	retryAfter time.Duration
	resets     int
}

func (f *fakeThrottle) Allow(context.Context, string, string) (bool, time.Duration) {
	return f.allow, f.retryAfter
}

func (f *fakeThrottle) Reset(context.Context, string, string) { f.resets++ }

type outcomeLog struct{ outcomes []string }

func (o *outcomeLog) RecordLogin(outcome string) { o.outcomes = append(o.outcomes, outcome) }

type eventLog struct {
	mu     sync.Mutex
	events []events.Event
}

func (e *eventLog) Publish(_ context.Context, event events.Event) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
	return nil
}

func (e *eventLog) Subscribe(events.EventType, events.EventHandler) {}

func (e *eventLog) types() []events.EventType {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]events.EventType, 0, len(e.events))
	for _, ev := range e.events {
		out = append(out, ev.Type)
	}
	return out
}

type fakeOutlets struct {
	memberships []domain.UserOutlet
	err         error
}

func (f *fakeOutlets) ListActiveForUser(_ context.Context, userID int64) ([]domain.UserOutlet, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.UserOutlet
	for _, m := range f.memberships {
		if m.UserID == userID && m.Outlet.IsActive {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeOutlets) GetMembership(_ context.Context, userID, outletID int64) (*domain.UserOutlet, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, m := range f.memberships {
		if m.UserID == userID && m.OutletID == outletID && m.Outlet.IsActive {
			m := m
			return &m, nil
		}
	}
	return nil, pgx.ErrNoRows
}
