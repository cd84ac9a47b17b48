// Package animation advances scene object transforms once per frame.
//
// Three strategies are provided: incremental rotation (Rotate), traversal of
// a parametric path (Traverse) and keyframe clip playback (Mixer). All of them
// resolve their target by name on every call and do nothing when the object
// is not in the scene yet.
package animation

import (
	"github.com/Faultbox/scenebox/internal/engine/scene"
	"github.com/Faultbox/scenebox/pkg/math"
)

// Lookup resolves scene objects by name.
type Lookup interface {
	ObjectByName(name string) *scene.Object
}

// Rotate adds delta to the named object's rotation. Angles accumulate
// without wraparound.
func Rotate(lookup Lookup, name string, delta math.Euler) {
	obj := lookup.ObjectByName(name)
	if obj == nil {
		return
	}
	obj.Rotation = obj.Rotation.Add(delta)
}
