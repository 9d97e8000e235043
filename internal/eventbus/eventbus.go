package eventbus

import (
	"runtime/debug"
	"sync"

	"github.com/charmbracelet/log"

	"suggestable/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventShow          = domain.EventShow
	EventHide          = domain.EventHide
	EventItemSelect    = domain.EventItemSelect
	EventItemUnselect  = domain.EventItemUnselect
	EventSelectionMade = domain.EventSelectionMade
	EventFetchFailed   = domain.EventFetchFailed
)

// Re-export domain event types
type ShowEvent = domain.ShowEvent
type HideEvent = domain.HideEvent
type ItemSelectEvent = domain.ItemSelectEvent
type ItemUnselectEvent = domain.ItemUnselectEvent
type SelectionMadeEvent = domain.SelectionMadeEvent
type FetchFailedEvent = domain.FetchFailedEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus delivers events synchronously on the publisher's goroutine.
// Handlers may publish further events; they are delivered depth first.
type bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]subscription
	nextID   uint64
	logger   *log.Logger
}

// New creates a new event bus
func New() EventBus {
	return NewWithLogger(log.Default().WithPrefix("eventbus"))
}

// NewWithLogger creates a new event bus that reports through logger
func NewWithLogger(logger *log.Logger) EventBus {
	return &bus{
		handlers: make(map[EventType][]subscription),
		logger:   logger,
	}
}

// Publish publishes an event to all subscribers
func (b *bus) Publish(event DomainEvent) {
	// Hover traffic is too chatty for the debug log
	switch event.Type() {
	case EventItemSelect, EventItemUnselect:
	default:
		b.logger.Debug("publishing event", "type", event.Type(), "source", event.Origin())
	}

	b.mu.RLock()
	subs := b.handlers[event.Type()]
	// Copy so handlers can subscribe or unsubscribe while we iterate
	handlersCopy := make([]subscription, len(subs))
	copy(handlersCopy, subs)
	b.mu.RUnlock()

	for _, sub := range handlersCopy {
		b.call(sub.handler, event)
	}
}

func (b *bus) call(h EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panic", "type", event.Type(), "panic", r, "stack", string(debug.Stack()))
		}
	}()
	h(event)
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()

			subs := b.handlers[eventType]
			for i, s := range subs {
				if s.id == id {
					b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
					break
				}
			}
		})
	}
}
