package events

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBus_DeliversInOrder(t *testing.T) {
	bus := NewBus(nil)
	var got []string
	bus.Subscribe(func(ev Event) { got = append(got, "a:"+string(ev.Kind)) })
	bus.Subscribe(func(ev Event) { got = append(got, "b:"+string(ev.Kind)) })

	bus.Publish(Event{Kind: EntryAdded, EntryID: uuid.New()})

	assert.Equal(t, []string{"a:entry_added", "b:entry_added"}, got)
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus(nil)
	calls := 0
	unsubscribe := bus.Subscribe(func(Event) { calls++ })

	bus.Publish(Event{Kind: EntryRemoved})
	unsubscribe()
	unsubscribe()
	bus.Publish(Event{Kind: EntryRemoved})

	assert.Equal(t, 1, calls)
}

func TestBus_PanickingHandlerDoesNotStopDelivery(t *testing.T) {
	bus := NewBus(nil)
	delivered := false
	bus.Subscribe(func(Event) { panic("boom") })
	bus.Subscribe(func(ev Event) { delivered = ev.Count == 3 })

	assert.NotPanics(t, func() {
		bus.Publish(Event{Kind: EntriesImported, Count: 3})
	})
	assert.True(t, delivered)
}
