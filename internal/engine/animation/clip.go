package animation

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/scenebox/internal/engine/scene"
	"github.com/Faultbox/scenebox/pkg/math"
)

// LoopMode controls how clip time maps past the clip's duration.
type LoopMode int

const (
	LoopRepeat LoopMode = iota
	LoopOnce
	LoopPingPong
)

// ParseLoopMode parses a manifest loop name. Empty means repeat.
func ParseLoopMode(s string) (LoopMode, error) {
	switch s {
	case "", "repeat":
		return LoopRepeat, nil
	case "once":
		return LoopOnce, nil
	case "pingpong":
		return LoopPingPong, nil
	}
	return LoopRepeat, fmt.Errorf("unknown loop mode %q", s)
}

func (m LoopMode) String() string {
	switch m {
	case LoopOnce:
		return "once"
	case LoopPingPong:
		return "pingpong"
	}
	return "repeat"
}

// TrackPath names the transform property a track drives.
type TrackPath int

const (
	PathPosition TrackPath = iota
	PathRotation
	PathScale
)

// ParseTrackPath parses a manifest property name.
func ParseTrackPath(s string) (TrackPath, error) {
	switch s {
	case "position", "translation":
		return PathPosition, nil
	case "rotation":
		return PathRotation, nil
	case "scale":
		return PathScale, nil
	}
	return PathPosition, fmt.Errorf("unknown track path %q", s)
}

// Stride is the number of floats per keyframe value.
func (p TrackPath) Stride() int {
	if p == PathRotation {
		return 4
	}
	return 3
}

func (p TrackPath) String() string {
	switch p {
	case PathRotation:
		return "rotation"
	case PathScale:
		return "scale"
	}
	return "position"
}

// Track animates one property of one node. Values are packed: xyz for
// position and scale, xyzw quaternions for rotation.
type Track struct {
	Target string // node name inside the model; empty targets the model root
	Path   TrackPath
	Times  []float32 // seconds, ascending
	Values []float32
}

// Validate checks that times are ascending and values match the stride.
func (t *Track) Validate() error {
	if len(t.Times) == 0 {
		return fmt.Errorf("track %s/%s has no keyframes", t.Target, t.Path)
	}
	if want := len(t.Times) * t.Path.Stride(); len(t.Values) != want {
		return fmt.Errorf("track %s/%s: %d values, want %d", t.Target, t.Path, len(t.Values), want)
	}
	for i := 1; i < len(t.Times); i++ {
		if t.Times[i] < t.Times[i-1] {
			return fmt.Errorf("track %s/%s: key %d time %.3f before previous", t.Target, t.Path, i, t.Times[i])
		}
	}
	return nil
}

// keys returns the keyframes surrounding time and the blend factor between them.
func (t *Track) keys(time float32) (prev, next int, f float32) {
	for i := range t.Times {
		if t.Times[i] > time {
			next = i
			break
		}
		prev = i
		next = i
	}
	if prev == next {
		return prev, next, 0
	}
	span := t.Times[next] - t.Times[prev]
	if span > 0 {
		f = (time - t.Times[prev]) / span
	}
	return prev, next, f
}

func (t *Track) vec3(i int) math.Vec3 {
	return math.Vec3{X: t.Values[i*3], Y: t.Values[i*3+1], Z: t.Values[i*3+2]}
}

func (t *Track) quat(i int) math.Quat {
	return math.Quat{X: t.Values[i*4], Y: t.Values[i*4+1], Z: t.Values[i*4+2], W: t.Values[i*4+3]}
}

// SampleVec3 interpolates a position or scale track.
func (t *Track) SampleVec3(time float32) math.Vec3 {
	prev, next, f := t.keys(time)
	return t.vec3(prev).Lerp(t.vec3(next), f)
}

// SampleQuat interpolates a rotation track.
func (t *Track) SampleQuat(time float32) math.Quat {
	prev, next, f := t.keys(time)
	if prev == next {
		return t.quat(prev).Normalize()
	}
	return t.quat(prev).Slerp(t.quat(next), f)
}

func (t *Track) apply(obj *scene.Object, time float32) {
	switch t.Path {
	case PathPosition:
		obj.Position = t.SampleVec3(time)
	case PathScale:
		obj.Scale = t.SampleVec3(time)
	case PathRotation:
		obj.Rotation = math.EulerFromQuat(t.SampleQuat(time))
	}
}

// Clip is a named set of tracks played together.
type Clip struct {
	Name     string
	Duration float32
	Loop     LoopMode
	Tracks   []Track
}

// NewClip creates a clip. A non-positive duration is derived from the
// last keyframe of the longest track.
func NewClip(name string, duration float32, loop LoopMode, tracks []Track) *Clip {
	c := &Clip{Name: name, Duration: duration, Loop: loop, Tracks: tracks}
	if c.Duration <= 0 {
		for i := range tracks {
			if n := len(tracks[i].Times); n > 0 && tracks[i].Times[n-1] > c.Duration {
				c.Duration = tracks[i].Times[n-1]
			}
		}
	}
	return c
}

// Validate checks every track.
func (c *Clip) Validate() error {
	for i := range c.Tracks {
		if err := c.Tracks[i].Validate(); err != nil {
			return fmt.Errorf("clip %s: %w", c.Name, err)
		}
	}
	return nil
}

// LocalTime maps time since the clip started onto the clip timeline.
func (c *Clip) LocalTime(t float32) float32 {
	d := c.Duration
	if d <= 0 {
		return 0
	}
	switch c.Loop {
	case LoopOnce:
		if t < 0 {
			return 0
		}
		if t > d {
			return d
		}
		return t
	case LoopPingPong:
		cycle := math32.Mod(t, 2*d)
		if cycle < 0 {
			cycle += 2 * d
		}
		if cycle > d {
			return 2*d - cycle
		}
		return cycle
	default:
		lt := math32.Mod(t, d)
		if lt < 0 {
			lt += d
		}
		return lt
	}
}

// Apply poses the model under root at clip time t. Tracks whose target is
// not in the model are skipped.
func (c *Clip) Apply(root *scene.Object, t float32) {
	lt := c.LocalTime(t)
	for i := range c.Tracks {
		tr := &c.Tracks[i]
		target := root
		if tr.Target != "" {
			target = root.FindByName(tr.Target)
		}
		if target == nil {
			continue
		}
		tr.apply(target, lt)
	}
}
