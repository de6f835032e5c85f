// AngelaMos | 2026
// recorder.go

package audit

import (
	"context"
	"sync"
)

// Recorder keeps events in memory. Used by tests across packages.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Log(ctx context.Context, event Event) {
	if event.ActorID == "" {
		event.ActorID = ActorFromContext(ctx)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Types returns the recorded event types in order.
func (r *Recorder) Types() []EventType {
	events := r.Events()
	types := make([]EventType, 0, len(events))
	for _, e := range events {
		types = append(types, e.Type)
	}
	return types
}
