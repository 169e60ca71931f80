package core

import (
	"slices"
	"testing"
)

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if !f.Empty() || f.Has(ActionJump) {
		t.Fatal("zero frame should be empty")
	}

	f.Set(ActionThrow)
	f.Set(ActionLeft)
	f.Set(ActionThrow)
	f.Set(ActionNone)

	if !f.Has(ActionLeft) || !f.Has(ActionThrow) || f.Has(ActionRight) {
		t.Errorf("Has mismatch for %v", f.Actions())
	}
	if f.Has(ActionNone) {
		t.Error("ActionNone is never raised")
	}
	if got, want := f.Actions(), []Action{ActionLeft, ActionThrow}; !slices.Equal(got, want) {
		t.Errorf("Actions() = %v, want %v", got, want)
	}

	// Frames are values.
	copied := f
	f.Clear()
	if !f.Empty() || !copied.Has(ActionLeft) {
		t.Error("Clear should only reset the receiver")
	}
}

func TestActionString(t *testing.T) {
	if ActionAttack.String() != "Attack" || ActionPause.String() != "Pause" {
		t.Errorf("got %s, %s", ActionAttack, ActionPause)
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("Action(99) = %s", Action(99))
	}
}
