package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/postqode/nexus-console/internal/core/domain"
	"github.com/postqode/nexus-console/internal/core/ports"
)

// Optimistic is a two-phase optimistic value: a tentative state is applied
// immediately and tagged as pending, then either confirmed by the server's
// response or rolled back to the prior confirmed state on failure. Readers
// can always tell the two apart.
type Optimistic[T any] struct {
	mu        sync.Mutex
	confirmed T
	tentative T
	pending   bool
}

func NewOptimistic[T any](confirmed T) *Optimistic[T] {
	return &Optimistic[T]{confirmed: confirmed}
}

// Value returns the state to display and whether it is still pending.
func (o *Optimistic[T]) Value() (T, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.pending {
		return o.tentative, true
	}
	return o.confirmed, false
}

// Confirmed returns the last server-confirmed state.
func (o *Optimistic[T]) Confirmed() T {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.confirmed
}

// Apply runs one optimistic update: tentative becomes visible (pending)
// before commit is called; the commit result replaces the confirmed state
// on success, and a failure drops the tentative state entirely.
func (o *Optimistic[T]) Apply(ctx context.Context, tentative T, commit func(ctx context.Context) (T, error)) error {
	o.mu.Lock()
	o.tentative = tentative
	o.pending = true
	o.mu.Unlock()

	confirmed, err := commit(ctx)

	o.mu.Lock()
	defer o.mu.Unlock()
	o.pending = false
	if err != nil {
		return err
	}
	o.confirmed = confirmed
	return nil
}

// UserToggle drives the enabled switch on a user row: flipping it shows the
// new state immediately as pending, then settles on whatever the server
// confirms.
type UserToggle struct {
	api    ports.UserAPI
	notify Notifier
	log    zerolog.Logger
	userID string
	state  *Optimistic[bool]
}

func NewUserToggle(api ports.UserAPI, user domain.User, notify Notifier, log zerolog.Logger) *UserToggle {
	return &UserToggle{
		api:    api,
		notify: notify,
		log:    log,
		userID: user.ID,
		state:  NewOptimistic(user.Enabled),
	}
}

// Set flips the switch to enabled.
func (t *UserToggle) Set(ctx context.Context, enabled bool) error {
	err := t.state.Apply(ctx, enabled, func(ctx context.Context) (bool, error) {
		u, err := t.api.SetEnabled(ctx, t.userID, enabled)
		if err != nil {
			return false, err
		}
		return u.Enabled, nil
	})
	if err != nil {
		t.log.Debug().Err(err).Str("user_id", t.userID).Bool("enabled", enabled).Msg("toggle rolled back")
		t.notify.Error(domain.UserMessage(err, "Failed to update user status"))
		return err
	}
	if enabled {
		t.notify.Success("User enabled")
	} else {
		t.notify.Success("User disabled")
	}
	return nil
}

// Enabled returns the state to display and whether it is still pending.
func (t *UserToggle) Enabled() (bool, bool) {
	return t.state.Value()
}
