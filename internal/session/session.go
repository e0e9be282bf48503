// Package session scopes one form registry to one logical screen.
// Components collaborating on a screen share the session by reference;
// unrelated screens get unrelated sessions, so form state never bleeds
// between them. There is deliberately no package-level default session.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/formdeck/formdeck/internal/log"
	"github.com/formdeck/formdeck/internal/registry"
)

// Session owns one registry for the lifetime of a logical screen.
type Session struct {
	id      uuid.UUID
	reg     *registry.Registry
	created time.Time
	ctx     context.Context
	cancel  context.CancelFunc
}

// New creates a session with a fresh, empty registry.
func New() *Session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		id:      uuid.New(),
		reg:     registry.New(),
		created: time.Now(),
		ctx:     ctx,
		cancel:  cancel,
	}
	log.Debug(log.CatSession, "session created", "id", s.id)
	return s
}

// ID returns the session's unique identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// Registry returns the session's registry. Callers on the owning
// goroutine use it directly; it is never swapped out.
func (s *Session) Registry() *registry.Registry { return s.reg }

// CreatedAt returns when the session was created.
func (s *Session) CreatedAt() time.Time { return s.created }

// Context is canceled when the session closes. Session-scoped
// listeners (log tails, trace recorders) tie their lifetime to it.
func (s *Session) Context() context.Context { return s.ctx }

// Close ends the session and cancels its context. Closing twice is
// harmless. The registry itself needs no teardown; it simply becomes
// garbage with the session.
func (s *Session) Close() {
	s.cancel()
	log.Debug(log.CatSession, "session closed", "id", s.id)
}
