package core

// Action is a game intent, independent of the key that raised it.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow - move cursor up
	ActionDown           // S, Down arrow - move cursor down / stop walking
	ActionLeft           // A, Left arrow - walk / move cursor left
	ActionRight          // D, Right arrow - walk / move cursor right
	ActionJump           // Space, W, Up - jump
	ActionAttack         // J, X - melee swing
	ActionThrow          // K, C - throw a stone
	ActionSelect         // Space, Enter - pick the gem under the cursor
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R key - restart game after game over
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P, Escape - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionJump:
		return "Jump"
	case ActionAttack:
		return "Attack"
	case ActionThrow:
		return "Throw"
	case ActionSelect:
		return "Select"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame is the set of actions raised during one tick. The zero value
// is empty and ready to use.
type InputFrame struct {
	bits uint32
}

// NewInputFrame returns an empty frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set raises a. ActionNone is ignored.
func (f *InputFrame) Set(a Action) {
	if a > ActionNone && a < 32 {
		f.bits |= 1 << a
	}
}

func (f InputFrame) Has(a Action) bool {
	return a > ActionNone && a < 32 && f.bits&(1<<a) != 0
}

// Clear drops every action.
func (f *InputFrame) Clear() {
	f.bits = 0
}

// Empty reports whether no action was raised.
func (f InputFrame) Empty() bool {
	return f.bits == 0
}

// Actions lists the raised actions in declaration order.
func (f InputFrame) Actions() []Action {
	var out []Action
	for a := ActionNone + 1; a <= ActionPause; a++ {
		if f.Has(a) {
			out = append(out, a)
		}
	}
	return out
}
