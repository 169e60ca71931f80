package sim

// AnimationTable maps each state to its frames. Tables are shared between
// actors of the same kind and must not be modified after construction.
type AnimationTable map[AnimState][]string

// Frames returns the frames for state, falling back to the idle frames.
func (t AnimationTable) Frames(state AnimState) []string {
	if f := t[state]; len(f) > 0 {
		return f
	}
	return t[AnimIdle]
}

// View is the visual side of an actor: exactly one state is shown at a time.
type View struct {
	State AnimState
	Frame int
	table AnimationTable
}

// NewView creates a view showing the idle animation.
func NewView(table AnimationTable) View {
	return View{State: AnimIdle, table: table}
}

// Enter switches the displayed state. The frame restarts only when the
// state actually changes.
func (v *View) Enter(state AnimState) {
	if v.State == state {
		return
	}
	v.State = state
	v.Frame = 0
}

// AdvanceFrame moves to the next frame of the current animation.
func (v *View) AdvanceFrame() {
	n := len(v.table.Frames(v.State))
	if n == 0 {
		return
	}
	v.Frame = (v.Frame + 1) % n
}

// Glyph returns the text of the current frame, or "?" if the table has none.
func (v View) Glyph() string {
	frames := v.table.Frames(v.State)
	if len(frames) == 0 {
		return "?"
	}
	return frames[v.Frame%len(frames)]
}
