// Package synth plays synthesised sound effects through the system
// speaker. It is the only package that links the audio device.
package synth

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/pebble-arcade/internal/audio"
)

const (
	sampleRate = beep.SampleRate(44100)

	// Repeats of one effect inside this window are dropped. The simulation
	// asks for step/hit sounds every tick while the state lasts.
	defaultCooldown = 120 * time.Millisecond
)

type wave int

const (
	waveSine wave = iota
	waveSquare
	waveSaw
	waveNoise
)

// oscillator produces a fixed-length tone, optionally sliding in pitch.
type oscillator struct {
	freq, slide float64
	phase       float64
	length, pos int
	wave        wave
	rng         *rand.Rand
}

func newOscillator(freq, slide float64, d time.Duration, w wave) *oscillator {
	return &oscillator{
		freq:   freq,
		slide:  slide,
		length: sampleRate.N(d),
		wave:   w,
		rng:    rand.New(rand.NewSource(int64(freq) + 1)),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if o.pos >= o.length {
			return i, i > 0
		}
		var v float64
		switch o.wave {
		case waveSine:
			v = math.Sin(2 * math.Pi * o.phase)
		case waveSquare:
			v = 1
			if o.phase >= 0.5 {
				v = -1
			}
		case waveSaw:
			v = 2 * (o.phase - 0.5)
		case waveNoise:
			v = o.rng.Float64()*2 - 1
		}
		samples[i][0], samples[i][1] = v, v

		f := o.freq + o.slide*float64(o.pos)/float64(o.length)
		o.phase += f / float64(sampleRate)
		o.phase -= math.Floor(o.phase)
		o.pos++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope fades a streamer in and out linearly.
type envelope struct {
	s                    beep.Streamer
	pos, attack, release int
	total                int
}

func newEnvelope(s beep.Streamer, d, attack, release time.Duration) *envelope {
	return &envelope{
		s:       s,
		attack:  sampleRate.N(attack),
		release: sampleRate.N(release),
		total:   sampleRate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.s.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.pos < e.attack {
			vol = float64(e.pos) / float64(e.attack)
		}
		if left := e.total - e.pos; left < e.release {
			vol = math.Max(0, float64(left)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.s.Err() }

func tone(freq, slide float64, d time.Duration, w wave) beep.Streamer {
	return newEnvelope(newOscillator(freq, slide, d, w), d, 5*time.Millisecond, d/2)
}

func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// effectBank builds a fresh streamer per effect id.
var effectBank = map[string]func() beep.Streamer{
	audio.EffectStep:   func() beep.Streamer { return withVolume(tone(0, 0, 30*time.Millisecond, waveNoise), 0.3) },
	audio.EffectJump:   func() beep.Streamer { return tone(330, 330, 120*time.Millisecond, waveSquare) },
	audio.EffectHit:    func() beep.Streamer { return tone(140, -40, 80*time.Millisecond, waveSaw) },
	audio.EffectThrow:  func() beep.Streamer { return withVolume(tone(0, 0, 70*time.Millisecond, waveNoise), 0.6) },
	audio.EffectHurt:   func() beep.Streamer { return tone(220, -120, 180*time.Millisecond, waveSquare) },
	audio.EffectBounce: func() beep.Streamer { return tone(520, 0, 40*time.Millisecond, waveSquare) },
	audio.EffectScore:  func() beep.Streamer { return tone(440, -220, 250*time.Millisecond, waveSine) },
	audio.EffectClear: func() beep.Streamer {
		return beep.Seq(
			tone(660, 0, 80*time.Millisecond, waveSine),
			tone(990, 0, 120*time.Millisecond, waveSine),
		)
	},
}

// Synth plays synthesised effects through the system speaker.
// It implements audio.Player.
type Synth struct {
	mu       sync.Mutex
	mixer    *beep.Mixer
	volume   float64
	cooldown time.Duration
	last     map[string]time.Time
	now      func() time.Time
	started  bool
}

// New creates a synthesiser with master volume vol (0..1).
// Nothing is audible until Start succeeds.
func New(vol float64) *Synth {
	return &Synth{
		mixer:    &beep.Mixer{},
		volume:   math.Max(0, math.Min(1, vol)),
		cooldown: defaultCooldown,
		last:     make(map[string]time.Time),
		now:      time.Now,
	}
}

// Start opens the speaker and attaches the mixer to it.
func (s *Synth) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.started = true
	return nil
}

// Play implements audio.Player.
func (s *Synth) Play(effectID string) {
	build, ok := effectBank[effectID]
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if t, ok := s.last[effectID]; ok && now.Sub(t) < s.cooldown {
		return
	}
	s.last[effectID] = now

	st := withVolume(build(), s.volume)
	if s.started {
		speaker.Lock()
		s.mixer.Add(st)
		speaker.Unlock()
		return
	}
	s.mixer.Add(st)
}

// Pending returns the number of effects still queued in the mixer.
func (s *Synth) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		speaker.Lock()
		defer speaker.Unlock()
	}
	return s.mixer.Len()
}

// Close silences every queued effect.
func (s *Synth) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		speaker.Clear()
		s.started = false
	}
	s.mixer.Clear()
}
