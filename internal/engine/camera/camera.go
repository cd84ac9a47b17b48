// Package camera provides perspective cameras and the switchable camera rig.
package camera

import (
	"github.com/Faultbox/scenebox/pkg/math"
)

var up = math.Vec3{X: 0, Y: 1, Z: 0}

// Config describes a camera. FOV is the vertical field of view in degrees.
type Config struct {
	Position math.Vec3
	LookAt   *math.Vec3 // nil keeps the default orientation, looking down -Z
	FOV      float32
	Aspect   float32
	Near     float32
	Far      float32
}

// DefaultConfig returns the stock camera: 75 degrees, raised and pulled back.
func DefaultConfig() Config {
	return Config{
		Position: math.Vec3{X: 0, Y: 20, Z: 20},
		FOV:      75,
		Aspect:   1,
		Near:     0.1,
		Far:      1000,
	}
}

// Perspective is a perspective camera whose orientation is fixed at
// construction. Only the aspect ratio changes afterwards.
type Perspective struct {
	position math.Vec3
	target   math.Vec3
	hasLook  bool

	fov    float32
	aspect float32
	near   float32
	far    float32

	view       math.Mat4
	projection math.Mat4
}

// NewPerspective creates a camera from cfg.
func NewPerspective(cfg Config) *Perspective {
	c := &Perspective{
		position: cfg.Position,
		fov:      cfg.FOV,
		aspect:   cfg.Aspect,
		near:     cfg.Near,
		far:      cfg.Far,
	}
	if c.aspect <= 0 {
		c.aspect = 1
	}

	if cfg.LookAt != nil {
		c.target = *cfg.LookAt
		c.hasLook = true
	} else {
		c.target = c.position.Add(math.Vec3{Z: -1})
	}
	c.view = math.LookAt(c.position, c.target, up)
	c.updateProjection()
	return c
}

// Position returns the camera position.
func (c *Perspective) Position() math.Vec3 { return c.position }

// LookAt returns the configured target and whether one was given.
func (c *Perspective) LookAt() (math.Vec3, bool) { return c.target, c.hasLook }

// FOV returns the vertical field of view in degrees.
func (c *Perspective) FOV() float32 { return c.fov }

// Aspect returns width / height.
func (c *Perspective) Aspect() float32 { return c.aspect }

// Near returns the near clipping distance.
func (c *Perspective) Near() float32 { return c.near }

// Far returns the far clipping distance.
func (c *Perspective) Far() float32 { return c.far }

// ViewMatrix returns the world-to-camera matrix.
func (c *Perspective) ViewMatrix() math.Mat4 { return c.view }

// ProjectionMatrix returns the current projection matrix.
func (c *Perspective) ProjectionMatrix() math.Mat4 { return c.projection }

// ViewProjection returns projection * view.
func (c *Perspective) ViewProjection() math.Mat4 {
	return c.projection.Mul(c.view)
}

// SetAspect updates the aspect ratio and recomputes the projection.
// Non-positive values are ignored.
func (c *Perspective) SetAspect(aspect float32) {
	if aspect <= 0 {
		return
	}
	c.aspect = aspect
	c.updateProjection()
}

func (c *Perspective) updateProjection() {
	c.projection = math.Perspective(math.DegToRad(c.fov), c.aspect, c.near, c.far)
}
