package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatchOrder(t *testing.T) {
	b := NewBus()
	var got []string
	b.OnKey(func(e Event) { got = append(got, "key:"+e.Key.String()) })
	b.OnResize(func(w, h int) { got = append(got, "resize") })

	b.Push(KeyPress(KeyUp))
	b.Push(Event{Type: EventResize, Width: 400, Height: 300})
	b.Push(Event{Type: EventKeyUp, Key: KeyUp})
	b.Push(KeyPress(KeyLeft))

	assert.False(t, b.Dispatch())
	assert.Equal(t, []string{"key:up", "resize", "key:left"}, got)
	assert.True(t, b.IsKeyPressed(KeyLeft))
	assert.False(t, b.IsKeyPressed(KeyDown))
	assert.Len(t, b.Events(), 4)

	got = nil
	assert.False(t, b.Dispatch())
	assert.Empty(t, got, "events are delivered once")
}

func TestDispatchQuit(t *testing.T) {
	b := NewBus()
	calls := 0
	b.OnKey(func(Event) { calls++ })

	b.Push(Event{Type: EventQuit})
	b.Push(KeyPress(KeyUp))

	assert.True(t, b.Dispatch())
	assert.Equal(t, 0, calls)
}

func TestDetach(t *testing.T) {
	b := NewBus()
	var a, c int
	detachA := b.OnKey(func(Event) { a++ })
	b.OnKey(func(Event) { c++ })
	detachResize := b.OnResize(func(int, int) {})
	assert.Equal(t, 3, b.Listeners())

	detachA()
	detachA()
	detachResize()
	assert.Equal(t, 1, b.Listeners())

	b.Push(KeyPress(KeyRight))
	b.Dispatch()
	assert.Equal(t, 0, a)
	assert.Equal(t, 1, c)
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "right", KeyRight.String())
	assert.Equal(t, "unknown", Key(99).String())
}
