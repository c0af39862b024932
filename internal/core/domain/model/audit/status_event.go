// Package audit models the append-only status event log.
package audit

import (
	"fmt"
	"time"

	"aidmatch/internal/core/domain/model/event"
	"aidmatch/internal/core/domain/model/kernel"
)

// StatusEvent records one committed transition. Entries are never updated.
type StatusEvent struct {
	EntityID   kernel.UUID
	EntityType kernel.EntityType
	FromStatus string
	ToStatus   string
	ActorID    kernel.UUID
	OccurredAt time.Time
	Extra      map[string]any
}

// Key identifies a transition. Appending an event whose key already exists
// is a no-op, which makes a replayed dispatch harmless.
type Key struct {
	EntityID   kernel.UUID
	FromStatus string
	ToStatus   string
	OccurredAt time.Time
}

func (k Key) String() string {
	return fmt.Sprintf("%s:%s->%s@%s", k.EntityID, k.FromStatus, k.ToStatus, k.OccurredAt.UTC().Format(time.RFC3339Nano))
}

func (e StatusEvent) Key() Key {
	return Key{EntityID: e.EntityID, FromStatus: e.FromStatus, ToStatus: e.ToStatus, OccurredAt: e.OccurredAt.UTC()}
}

// FromEvent builds the audit entry for a committed event.
func FromEvent(ev event.Event, extra map[string]any) StatusEvent {
	h := ev.Header()
	if extra == nil {
		extra = map[string]any{}
	}
	return StatusEvent{
		EntityID:   h.EntityID,
		EntityType: h.EntityType,
		FromStatus: h.From,
		ToStatus:   h.To,
		ActorID:    h.ActorID,
		OccurredAt: h.OccurredAt.UTC(),
		Extra:      extra,
	}
}
