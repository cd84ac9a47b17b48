package scene

import (
	"github.com/Faultbox/scenebox/pkg/math"
)

var worldUp = math.Vec3{X: 0, Y: 1, Z: 0}

// Object is a node in the scene graph with a local transform.
type Object struct {
	Name     string
	Position math.Vec3
	Rotation math.Euler
	Scale    math.Vec3
	Color    [3]float32
	Visible  bool

	parent   *Object
	children []*Object
}

// NewObject creates a visible object with unit scale.
func NewObject(name string) *Object {
	return &Object{
		Name:    name,
		Scale:   math.Vec3{X: 1, Y: 1, Z: 1},
		Color:   [3]float32{0.8, 0.8, 0.8},
		Visible: true,
	}
}

// Add attaches child under o, detaching it from any previous parent.
func (o *Object) Add(child *Object) {
	if child == nil || child == o {
		return
	}
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = o
	o.children = append(o.children, child)
}

// Remove detaches child from o. Unknown children are ignored.
func (o *Object) Remove(child *Object) {
	for i, c := range o.children {
		if c == child {
			o.children = append(o.children[:i], o.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// Parent returns the parent object, or nil for roots.
func (o *Object) Parent() *Object {
	return o.parent
}

// Children returns the direct children. The slice must not be modified.
func (o *Object) Children() []*Object {
	return o.children
}

// FindByName searches o and its descendants depth-first.
func (o *Object) FindByName(name string) *Object {
	if o.Name == name {
		return o
	}
	for _, c := range o.children {
		if found := c.FindByName(name); found != nil {
			return found
		}
	}
	return nil
}

// Traverse calls fn for o and every descendant, parents before children.
func (o *Object) Traverse(fn func(*Object)) {
	fn(o)
	for _, c := range o.children {
		c.Traverse(fn)
	}
}

// LocalMatrix returns translation * rotation * scale.
func (o *Object) LocalMatrix() math.Mat4 {
	return math.Compose(o.Position, o.Rotation, o.Scale)
}

// WorldMatrix returns the local matrix composed with every ancestor.
func (o *Object) WorldMatrix() math.Mat4 {
	m := o.LocalMatrix()
	for p := o.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul(m)
	}
	return m
}

// WorldPosition returns the object origin in world space.
func (o *Object) WorldPosition() math.Vec3 {
	return o.WorldMatrix().TransformVec3(math.Vec3{})
}

// LookAt rotates the object so its local +Z axis points at a world-space
// target. Only the rotation changes; the parent chain is assumed unrotated.
func (o *Object) LookAt(target math.Vec3) {
	o.Rotation = math.EulerFromMat4(math.LookRotation(o.WorldPosition(), target, worldUp))
}
