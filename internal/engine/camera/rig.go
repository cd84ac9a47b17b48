package camera

import "errors"

// ErrNoCameras is returned when a rig is built without cameras.
var ErrNoCameras = errors.New("camera rig needs at least one camera")

// Rig is an ordered set of cameras with a cursor on the active one.
// The cursor wraps in both directions and is always a valid index.
type Rig struct {
	cameras []*Perspective
	active  int
}

// NewRig creates a rig with the first camera active.
func NewRig(cameras ...*Perspective) (*Rig, error) {
	if len(cameras) == 0 {
		return nil, ErrNoCameras
	}
	return &Rig{cameras: cameras}, nil
}

// NewRigFromConfigs builds one camera per config.
func NewRigFromConfigs(cfgs []Config) (*Rig, error) {
	cams := make([]*Perspective, 0, len(cfgs))
	for _, cfg := range cfgs {
		cams = append(cams, NewPerspective(cfg))
	}
	return NewRig(cams...)
}

// Advance selects the next camera.
func (r *Rig) Advance() {
	r.active = (r.active + 1) % len(r.cameras)
}

// Retreat selects the previous camera.
func (r *Rig) Retreat() {
	r.active = (r.active - 1 + len(r.cameras)) % len(r.cameras)
}

// Active returns the selected camera.
func (r *Rig) Active() *Perspective {
	return r.cameras[r.active]
}

// Index returns the cursor position.
func (r *Rig) Index() int {
	return r.active
}

// Len returns the number of cameras.
func (r *Rig) Len() int {
	return len(r.cameras)
}

// Camera returns the camera at i.
func (r *Rig) Camera(i int) *Perspective {
	return r.cameras[i]
}

// SyncAspect applies the viewport aspect ratio to the active camera only.
// Inactive cameras are updated when they become active. A zero-height
// viewport is ignored.
func (r *Rig) SyncAspect(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.Active().SetAspect(float32(width) / float32(height))
}
