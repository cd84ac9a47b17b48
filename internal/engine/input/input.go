// Package input defines host-independent key codes and the event bus that
// delivers key presses and viewport changes to listeners.
package input

// Key identifies a key independently of the windowing backend.
type Key int

const (
	KeyUnknown Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyEscape
	KeySpace
	KeyP
	KeyO
	KeyF12
)

var keyNames = map[Key]string{
	KeyUnknown: "unknown",
	KeyLeft:    "left",
	KeyRight:   "right",
	KeyUp:      "up",
	KeyDown:    "down",
	KeyEscape:  "escape",
	KeySpace:   "space",
	KeyP:       "p",
	KeyO:       "o",
	KeyF12:     "f12",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "unknown"
}

// EventType classifies an Event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventResize
	EventKeyDown
	EventKeyUp
)

// Event is a processed host event.
type Event struct {
	Type   EventType
	Key    Key
	Code   int // raw backend key code, kept for diagnostics
	Width  int
	Height int
}

// KeyPress builds a key-down event.
func KeyPress(k Key) Event {
	return Event{Type: EventKeyDown, Key: k}
}
