// Package audio provides the sound-effect capability consumed by the games.
package audio

import "sync"

// Effect identifiers understood by the synthesiser in package synth.
const (
	EffectStep  = "step"
	EffectJump  = "jump"
	EffectHit   = "hit"
	EffectThrow = "throw"
	EffectHurt  = "hurt"
	EffectClear = "clear"

	EffectBounce = "bounce"
	EffectScore  = "score"
)

// Player plays a named sound effect. Implementations must not block the
// caller; unknown effect ids are ignored.
type Player interface {
	Play(effectID string)
}

// Nop discards every effect.
type Nop struct{}

// Play implements Player.
func (Nop) Play(string) {}

// Recorder remembers every effect it was asked to play.
type Recorder struct {
	mu     sync.Mutex
	played []string
}

// Play implements Player.
func (r *Recorder) Play(effectID string) {
	r.mu.Lock()
	r.played = append(r.played, effectID)
	r.mu.Unlock()
}

// Played returns a copy of the recorded effect ids in call order.
func (r *Recorder) Played() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.played...)
}

// Count returns how many times effectID was played.
func (r *Recorder) Count(effectID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, id := range r.played {
		if id == effectID {
			n++
		}
	}
	return n
}

// Reset forgets all recorded effects.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.played = nil
	r.mu.Unlock()
}
