package animation

import (
	"github.com/Faultbox/scenebox/pkg/math"
)

// DefaultLookahead is the progress offset sampled to orient path followers.
const DefaultLookahead = 0.01

// PathEntry binds a curve to the progress of one object along it.
type PathEntry struct {
	Curve    math.Curve
	Progress float32 // normalized, always in [0, 1)
}

// PathTable maps object names to their paths.
type PathTable struct {
	entries map[string]*PathEntry
	order   []string
}

// NewPathTable creates an empty table.
func NewPathTable() *PathTable {
	return &PathTable{entries: make(map[string]*PathEntry)}
}

// Register assigns a curve to name with progress 0. Registering a name
// again replaces its curve and restarts it.
func (t *PathTable) Register(name string, curve math.Curve) {
	if _, ok := t.entries[name]; !ok {
		t.order = append(t.order, name)
	}
	t.entries[name] = &PathEntry{Curve: curve}
}

// Entry returns the path registered for name.
func (t *PathTable) Entry(name string) (*PathEntry, bool) {
	e, ok := t.entries[name]
	return e, ok
}

// Names returns registered names in registration order.
func (t *PathTable) Names() []string {
	return t.order
}

// Len returns the number of registered paths.
func (t *PathTable) Len() int {
	return len(t.order)
}

// Traverse moves the named object increment further along its path and
// turns it to face the point lookahead ahead. Missing paths or objects
// leave everything untouched.
func Traverse(lookup Lookup, table *PathTable, name string, increment, lookahead float32) {
	entry, ok := table.Entry(name)
	if !ok {
		return
	}
	obj := lookup.ObjectByName(name)
	if obj == nil {
		return
	}

	curr := wrapProgress(entry.Progress + increment)
	entry.Progress = curr
	next := wrapProgress(curr + lookahead)

	obj.Position = entry.Curve.PointAt(curr)
	obj.LookAt(entry.Curve.PointAt(next))
}

// wrapProgress folds p back into [0, 1) by subtracting one lap.
// Overshoot beyond a single lap (increment > 1) is dropped and the
// path restarts at 0.
func wrapProgress(p float32) float32 {
	if p >= 1 {
		p--
		if p >= 1 {
			p = 0
		}
	}
	if p < 0 {
		p++
		// tiny negatives round up to exactly 1 in float32
		if p < 0 || p >= 1 {
			p = 0
		}
	}
	return p
}
