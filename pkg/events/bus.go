// Package events delivers typed change notifications for the word
// collection to interested listeners.
package events

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Kind identifies what happened to the collection.
type Kind string

const (
	EntryAdded      Kind = "entry_added"
	EntryUpdated    Kind = "entry_updated"
	EntryRemoved    Kind = "entry_removed"
	EntriesImported Kind = "entries_imported"
	EntriesExported Kind = "entries_exported"
	TagCreated      Kind = "tag_created"
	TagDeleted      Kind = "tag_deleted"
)

// Event describes a single change. EntryID is set for single-entry kinds,
// Count for bulk kinds. Tag kinds carry the catalog tag; for TagDeleted,
// Count is the number of entries that lost the tag.
type Event struct {
	Kind    Kind
	EntryID uuid.UUID
	TagID   uuid.UUID
	Tag     string
	Count   int
}

// Handler receives published events.
type Handler func(Event)

// Bus fans events out to subscribers synchronously, in subscription order.
type Bus struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[int]Handler
	order    []int
	logger   *slog.Logger
}

// NewBus creates an empty bus. A nil logger uses slog.Default.
func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		handlers: make(map[int]Handler),
		logger:   logger,
	}
}

// Subscribe registers h and returns a function that removes it.
func (b *Bus) Subscribe(h Handler) (unsubscribe func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.handlers[id] = h
	b.order = append(b.order, id)
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.handlers, id)
			for i, v := range b.order {
				if v == id {
					b.order = append(b.order[:i], b.order[i+1:]...)
					break
				}
			}
		})
	}
}

// Publish calls every subscriber with ev. A panicking handler is logged
// and does not stop delivery to the others.
func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.order))
	for _, id := range b.order {
		handlers = append(handlers, b.handlers[id])
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		b.deliver(h, ev)
	}
}

func (b *Bus) deliver(h Handler, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panicked",
				slog.String("kind", string(ev.Kind)),
				slog.Any("panic", r))
		}
	}()
	h(ev)
}
