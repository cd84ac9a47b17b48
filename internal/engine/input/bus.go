package input

// KeyListener receives key-down events.
type KeyListener func(Event)

// ResizeListener receives the new viewport size.
type ResizeListener func(width, height int)

type keySub struct {
	id int
	fn KeyListener
}

type resizeSub struct {
	id int
	fn ResizeListener
}

// Bus queues host events and hands them to listeners in arrival order.
// It is not safe for concurrent use; the host fills it and drains it on the
// frame thread.
type Bus struct {
	pending []Event
	events  []Event
	keys    []keySub
	resizes []resizeSub
	nextID  int
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		pending: make([]Event, 0, 16),
		events:  make([]Event, 0, 16),
	}
}

// OnKey registers fn for key-down events and returns a func that removes it.
func (b *Bus) OnKey(fn KeyListener) (detach func()) {
	b.nextID++
	id := b.nextID
	b.keys = append(b.keys, keySub{id: id, fn: fn})
	return func() {
		for i, s := range b.keys {
			if s.id == id {
				b.keys = append(b.keys[:i], b.keys[i+1:]...)
				return
			}
		}
	}
}

// OnResize registers fn for viewport changes and returns a func that removes it.
func (b *Bus) OnResize(fn ResizeListener) (detach func()) {
	b.nextID++
	id := b.nextID
	b.resizes = append(b.resizes, resizeSub{id: id, fn: fn})
	return func() {
		for i, s := range b.resizes {
			if s.id == id {
				b.resizes = append(b.resizes[:i], b.resizes[i+1:]...)
				return
			}
		}
	}
}

// Push queues an event for the next Dispatch.
func (b *Bus) Push(e Event) {
	b.pending = append(b.pending, e)
}

// Dispatch delivers queued events to listeners and reports whether a quit
// event was seen. Events after a quit are dropped.
func (b *Bus) Dispatch() (quit bool) {
	b.events = b.events[:0]
	b.events = append(b.events, b.pending...)
	b.pending = b.pending[:0]

	for _, e := range b.events {
		switch e.Type {
		case EventQuit:
			return true
		case EventKeyDown:
			for _, s := range b.keys {
				s.fn(e)
			}
		case EventResize:
			for _, s := range b.resizes {
				s.fn(e.Width, e.Height)
			}
		}
	}
	return false
}

// Events returns the events handled by the last Dispatch.
func (b *Bus) Events() []Event {
	return b.events
}

// IsKeyPressed checks if a key went down during the last Dispatch.
func (b *Bus) IsKeyPressed(k Key) bool {
	for _, e := range b.events {
		if e.Type == EventKeyDown && e.Key == k {
			return true
		}
	}
	return false
}

// Listeners returns the number of registered listeners.
func (b *Bus) Listeners() int {
	return len(b.keys) + len(b.resizes)
}
