package audio

import "testing"

func TestRecorder(t *testing.T) {
	var p Player = &Recorder{}
	p.Play(EffectJump)
	p.Play(EffectHit)
	p.Play(EffectJump)

	rec := p.(*Recorder)
	if rec.Count(EffectJump) != 2 || rec.Count(EffectHit) != 1 {
		t.Errorf("unexpected counts: %v", rec.Played())
	}
	rec.Reset()
	if len(rec.Played()) != 0 {
		t.Error("Reset should forget effects")
	}

	Nop{}.Play(EffectJump)
}
