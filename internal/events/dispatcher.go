package events

import (
	"context"
	"sync"
)

// EventHandler reacts to a published event.
type EventHandler func(context.Context, Event) error

// Dispatcher fans events out to subscribed handlers.
type Dispatcher interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType EventType, handler EventHandler)
}

// memoryDispatcher delivers events in-process, synchronously, in
// subscription order. It is safe for concurrent use.
type memoryDispatcher struct {
	mu   sync.RWMutex
	subs map[EventType][]EventHandler
}

// NewInMemoryDispatcher creates a dispatcher backed by process memory.
func NewInMemoryDispatcher() Dispatcher {
	return &memoryDispatcher{subs: make(map[EventType][]EventHandler)}
}

// Publish invokes every handler subscribed to the event's type. A failing
// handler does not prevent delivery to the rest; delivery stops early only
// when the context is cancelled.
func (d *memoryDispatcher) Publish(ctx context.Context, event Event) error {
	d.mu.RLock()
	handlers := make([]EventHandler, len(d.subs[event.Type]))
	copy(handlers, d.subs[event.Type])
	d.mu.RUnlock()

	for _, handle := range handlers {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		_ = handle(ctx, event)
	}
	return nil
}

func (d *memoryDispatcher) Subscribe(eventType EventType, handler EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.subs[eventType] = append(d.subs[eventType], handler)
}
