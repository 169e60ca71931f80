package synth

import (
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/pebble-arcade/internal/audio"
)

func drain(t *testing.T, s beep.Streamer) (n int, peak float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	for i := 0; i < 10000; i++ {
		k, ok := s.Stream(buf)
		for _, smp := range buf[:k] {
			if v := max(smp[0], -smp[0]); v > peak {
				peak = v
			}
		}
		n += k
		if !ok {
			return n, peak
		}
	}
	t.Fatal("streamer never finished")
	return n, peak
}

func TestEffectBankProducesFiniteSound(t *testing.T) {
	ids := []string{
		audio.EffectStep, audio.EffectJump, audio.EffectHit, audio.EffectThrow,
		audio.EffectHurt, audio.EffectClear, audio.EffectBounce, audio.EffectScore,
	}
	for _, id := range ids {
		t.Run(id, func(t *testing.T) {
			build, ok := effectBank[id]
			if !ok {
				t.Fatalf("no effect registered for %q", id)
			}
			n, peak := drain(t, build())
			if n == 0 {
				t.Error("effect produced no samples")
			}
			if n > sampleRate.N(time.Second) {
				t.Errorf("effect too long: %d samples", n)
			}
			if peak == 0 || peak > 1.0001 {
				t.Errorf("unexpected peak amplitude %v", peak)
			}
		})
	}
}

func TestSynthCooldown(t *testing.T) {
	s := New(0.5)
	clock := time.Unix(0, 0)
	s.now = func() time.Time { return clock }

	s.Play(audio.EffectStep)
	s.Play(audio.EffectStep)
	if got := s.Pending(); got != 1 {
		t.Errorf("repeat inside cooldown should be dropped, pending=%d", got)
	}

	s.Play(audio.EffectHit)
	if got := s.Pending(); got != 2 {
		t.Errorf("different effect should queue, pending=%d", got)
	}

	clock = clock.Add(defaultCooldown)
	s.Play(audio.EffectStep)
	if got := s.Pending(); got != 3 {
		t.Errorf("effect after cooldown should queue, pending=%d", got)
	}

	s.Play("fanfare")
	if got := s.Pending(); got != 3 {
		t.Errorf("unknown effect should be ignored, pending=%d", got)
	}

	s.Close()
	if got := s.Pending(); got != 0 {
		t.Errorf("Close should clear the mixer, pending=%d", got)
	}
}

func TestSynthImplementsPlayer(t *testing.T) {
	var p audio.Player = New(0)
	p.Play(audio.EffectBounce)
	if got := p.(*Synth).Pending(); got != 1 {
		t.Errorf("pending = %d, want 1", got)
	}
}
