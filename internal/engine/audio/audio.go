// Package audio plays short feedback cues for viewer input.
package audio

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// Manager decodes cues once and mixes them onto the speaker on demand.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate
	volume      float64 // 0.0 to 1.0

	cues  map[string]*beep.Buffer
	mixer *beep.Mixer
}

// New creates a new audio manager at full volume.
func New() *Manager {
	return &Manager{
		sampleRate: DefaultSampleRate,
		volume:     1.0,
		cues:       make(map[string]*beep.Buffer),
		mixer:      &beep.Mixer{},
	}
}

// Init opens the speaker.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.mixer)

	m.initialized = true
	return nil
}

// Close stops playback and releases the speaker.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	m.initialized = false
}

// IsInitialized returns whether the speaker is open.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SetVolume sets the cue volume, clamped to [0, 1].
func (m *Manager) SetVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = clamp(vol, 0, 1)
}

// Volume returns the cue volume.
func (m *Manager) Volume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.volume
}

// Load decodes WAV data into memory under name, resampling to the speaker
// rate. Loading does not need an open speaker.
func (m *Manager) Load(name string, data []byte) error {
	streamer, format, err := wav.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	defer streamer.Close()

	var src beep.Streamer = streamer
	if format.SampleRate != m.sampleRate {
		src = beep.Resample(4, format.SampleRate, m.sampleRate, streamer)
		format.SampleRate = m.sampleRate
	}

	buf := beep.NewBuffer(format)
	buf.Append(src)

	m.mu.Lock()
	m.cues[name] = buf
	m.mu.Unlock()
	return nil
}

// Has reports whether a cue is loaded under name.
func (m *Manager) Has(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.cues[name]
	return ok
}

// Duration returns the length of a loaded cue.
func (m *Manager) Duration(name string) time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	buf, ok := m.cues[name]
	if !ok {
		return 0
	}
	return buf.Format().SampleRate.D(buf.Len())
}

// Play mixes the named cue in. Unknown names are ignored.
func (m *Manager) Play(name string) error {
	m.mu.RLock()
	initialized := m.initialized
	vol := m.volume
	buf, ok := m.cues[name]
	m.mu.RUnlock()

	if !initialized {
		return fmt.Errorf("audio not initialized")
	}
	if !ok {
		return nil
	}

	speaker.Lock()
	m.mixer.Add(&effects.Volume{
		Streamer: buf.Streamer(0, buf.Len()),
		Base:     2,
		Volume:   volumeToExp(vol),
		Silent:   vol <= 0,
	})
	speaker.Unlock()
	return nil
}

// volumeToExp maps a linear 0-1 volume onto the base-2 exponent used by
// effects.Volume: 1 is unchanged, 0.5 is one step quieter.
func volumeToExp(vol float64) float64 {
	if vol <= 0 {
		return -10
	}
	return math.Log2(vol)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
