// Package assets loads model manifests into scene objects and clips.
package assets

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/scenebox/internal/engine/animation"
	"github.com/Faultbox/scenebox/internal/engine/scene"
	"github.com/Faultbox/scenebox/pkg/math"
)

// Model is a decoded manifest: a transform tree and the clips that animate it.
type Model struct {
	Name  string
	Root  *scene.Object
	Clips []*animation.Clip
}

// NodeManifest describes one node of a model. Rotation is in degrees.
type NodeManifest struct {
	Name     string         `yaml:"name"`
	Position []float32      `yaml:"position,omitempty"`
	Rotation []float32      `yaml:"rotation,omitempty"`
	Scale    []float32      `yaml:"scale,omitempty"`
	Color    []float32      `yaml:"color,omitempty"` // rgb in [0,1]
	Hidden   bool           `yaml:"hidden,omitempty"`
	Children []NodeManifest `yaml:"children,omitempty"`
}

// TrackManifest is a keyframe track. Rotation values are xyzw quaternions.
type TrackManifest struct {
	Node     string    `yaml:"node"`
	Property string    `yaml:"property"`
	Times    []float32 `yaml:"times"`
	Values   []float32 `yaml:"values"`
}

// ClipManifest is a named animation clip.
type ClipManifest struct {
	Name     string          `yaml:"name"`
	Duration float32         `yaml:"duration,omitempty"`
	Loop     string          `yaml:"loop,omitempty"`
	Tracks   []TrackManifest `yaml:"tracks"`
}

// Manifest is the on-disk model format.
type Manifest struct {
	NodeManifest `yaml:",inline"`
	Clips        []ClipManifest `yaml:"clips,omitempty"`
}

// Decode parses manifest YAML and builds the model.
func Decode(data []byte) (*Model, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return m.Build()
}

// Build converts the manifest into a scene tree and validated clips.
func (m *Manifest) Build() (*Model, error) {
	if m.Name == "" {
		return nil, errors.New("manifest has no name")
	}

	root, err := m.NodeManifest.build()
	if err != nil {
		return nil, err
	}

	model := &Model{Name: m.Name, Root: root}
	for i := range m.Clips {
		clip, err := m.Clips[i].build()
		if err != nil {
			return nil, err
		}
		model.Clips = append(model.Clips, clip)
	}
	return model, nil
}

func (n *NodeManifest) build() (*scene.Object, error) {
	obj := scene.NewObject(n.Name)
	obj.Visible = !n.Hidden

	if n.Position != nil {
		v, err := vec3(n.Name, "position", n.Position)
		if err != nil {
			return nil, err
		}
		obj.Position = v
	}
	if n.Rotation != nil {
		v, err := vec3(n.Name, "rotation", n.Rotation)
		if err != nil {
			return nil, err
		}
		obj.Rotation = math.Euler{
			X: math.DegToRad(v.X),
			Y: math.DegToRad(v.Y),
			Z: math.DegToRad(v.Z),
		}
	}
	if n.Scale != nil {
		v, err := vec3(n.Name, "scale", n.Scale)
		if err != nil {
			return nil, err
		}
		obj.Scale = v
	}
	if n.Color != nil {
		v, err := vec3(n.Name, "color", n.Color)
		if err != nil {
			return nil, err
		}
		obj.Color = v.Array()
	}

	for i := range n.Children {
		child, err := n.Children[i].build()
		if err != nil {
			return nil, err
		}
		obj.Add(child)
	}
	return obj, nil
}

func (c *ClipManifest) build() (*animation.Clip, error) {
	loop, err := animation.ParseLoopMode(c.Loop)
	if err != nil {
		return nil, fmt.Errorf("clip %s: %w", c.Name, err)
	}

	tracks := make([]animation.Track, 0, len(c.Tracks))
	for _, tm := range c.Tracks {
		path, err := animation.ParseTrackPath(tm.Property)
		if err != nil {
			return nil, fmt.Errorf("clip %s: %w", c.Name, err)
		}
		tracks = append(tracks, animation.Track{
			Target: tm.Node,
			Path:   path,
			Times:  tm.Times,
			Values: tm.Values,
		})
	}

	clip := animation.NewClip(c.Name, c.Duration, loop, tracks)
	if err := clip.Validate(); err != nil {
		return nil, err
	}
	return clip, nil
}

func vec3(node, field string, v []float32) (math.Vec3, error) {
	if len(v) != 3 {
		return math.Vec3{}, fmt.Errorf("node %s: %s needs 3 components, got %d", node, field, len(v))
	}
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}, nil
}

// Count returns the number of nodes in the model tree.
func (m *Model) Count() int {
	n := 0
	m.Root.Traverse(func(*scene.Object) { n++ })
	return n
}
