// Package event dispatches audit events to registered listeners.
package event

import (
	"context"
	"log/slog"
	"sync"

	"github.com/gymstack/gymcore/pkg/logger"
)

// Audit event names.
const (
	LoginSucceeded   = "auth.login"
	LoginFailed      = "auth.login_failed"
	PlansAssigned    = "member.plans_assigned"
	GymDeleted       = "gym.deleted"
	MemberRoleChange = "member.role_changed"
)

// Event is one audited action. GymID is the tenant it concerns and ActorID
// the principal that caused it, when known.
type Event struct {
	Name    string
	GymID   uint
	ActorID uint
	Attrs   map[string]any
}

// Listener receives events. ctx is the context of the request that fired it.
type Listener func(ctx context.Context, e Event)

// Bus fans events out to listeners. The zero value is ready to use and a nil
// *Bus drops every event.
type Bus struct {
	mu        sync.RWMutex
	listeners map[string][]Listener
	any       []Listener
}

func NewBus() *Bus { return &Bus{} }

// Listen registers l for the named event.
func (b *Bus) Listen(name string, l Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.listeners == nil {
		b.listeners = map[string][]Listener{}
	}
	b.listeners[name] = append(b.listeners[name], l)
}

// ListenAll registers l for every event.
func (b *Bus) ListenAll(l Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.any = append(b.any, l)
}

// Fire calls every matching listener synchronously, in registration order.
func (b *Bus) Fire(ctx context.Context, e Event) {
	if b == nil {
		return
	}
	b.mu.RLock()
	hs := append([]Listener(nil), b.listeners[e.Name]...)
	hs = append(hs, b.any...)
	b.mu.RUnlock()

	for _, h := range hs {
		h(ctx, e)
	}
}

// AuditLog writes e through the request logger as an "audit" record, which
// the Mongo audit sink persists when configured.
func AuditLog(ctx context.Context, e Event) {
	args := []any{"event", e.Name}
	if e.GymID != 0 {
		args = append(args, "gym_id", e.GymID)
	}
	if e.ActorID != 0 {
		args = append(args, "actor_id", e.ActorID)
	}
	for k, v := range e.Attrs {
		args = append(args, k, v)
	}
	logger.WithCtx(ctx).Log(ctx, slog.LevelInfo, logger.AuditMessage, args...)
}
