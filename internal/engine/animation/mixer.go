package animation

import (
	"github.com/Faultbox/scenebox/internal/engine/scene"
)

// Action is the playback state of one clip on one mixer.
type Action struct {
	clip      *Clip
	startedAt float64
	timeScale float32
	playing   bool
}

// Play starts the action at clock time startedAt.
func (a *Action) Play(startedAt float64) *Action {
	a.startedAt = startedAt
	a.playing = true
	return a
}

// Stop halts the action; the model keeps its last pose.
func (a *Action) Stop() {
	a.playing = false
}

// SetTimeScale changes playback speed. Negative values play backwards.
func (a *Action) SetTimeScale(scale float32) *Action {
	a.timeScale = scale
	return a
}

// IsPlaying reports whether the action is sampled on Update.
func (a *Action) IsPlaying() bool {
	return a.playing
}

// Clip returns the clip driven by this action.
func (a *Action) Clip() *Clip {
	return a.clip
}

// Time returns the clip time for clock time elapsed, before looping.
func (a *Action) Time(elapsed float64) float32 {
	return float32(elapsed-a.startedAt) * a.timeScale
}

// Mixer plays clips on one model. It has no clock of its own: Update is
// given the absolute elapsed time of the shared clock.
type Mixer struct {
	root    *scene.Object
	actions []*Action
	time    float64
}

// NewMixer creates a mixer for the model rooted at root.
func NewMixer(root *scene.Object) *Mixer {
	return &Mixer{root: root}
}

// Root returns the animated model.
func (m *Mixer) Root() *scene.Object {
	return m.root
}

// ClipAction returns the action for clip, creating a stopped one on first use.
func (m *Mixer) ClipAction(clip *Clip) *Action {
	for _, a := range m.actions {
		if a.clip == clip {
			return a
		}
	}
	a := &Action{clip: clip, timeScale: 1}
	m.actions = append(m.actions, a)
	return a
}

// Actions returns every action created on this mixer.
func (m *Mixer) Actions() []*Action {
	return m.actions
}

// Time returns the elapsed time of the last Update.
func (m *Mixer) Time() float64 {
	return m.time
}

// Update poses the model for clock time elapsed.
func (m *Mixer) Update(elapsed float64) {
	m.time = elapsed
	for _, a := range m.actions {
		if !a.playing {
			continue
		}
		a.clip.Apply(m.root, a.Time(elapsed))
	}
}

// Registry holds one mixer per loaded animated model.
type Registry struct {
	mixers []*Mixer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add registers a mixer.
func (r *Registry) Add(m *Mixer) {
	r.mixers = append(r.mixers, m)
}

// Len returns the number of mixers.
func (r *Registry) Len() int {
	return len(r.mixers)
}

// Update advances every mixer with the same elapsed time.
func (r *Registry) Update(elapsed float64) {
	for _, m := range r.mixers {
		m.Update(elapsed)
	}
}
