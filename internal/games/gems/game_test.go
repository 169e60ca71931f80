package gems

import (
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/pebble-arcade/internal/audio"
	"github.com/vovakirdan/pebble-arcade/internal/combo"
	"github.com/vovakirdan/pebble-arcade/internal/core"
)

var testRuntime = core.RuntimeConfig{
	Seed:     42,
	ScreenW:  80,
	ScreenH:  24,
	TickRate: 60,
}

// letters maps board-diagram letters to gem types; '.' is empty.
var letters = map[byte]combo.TypeTag{
	'a': kinds[0].Tag,
	'b': kinds[1].Tag,
	'c': kinds[2].Tag,
	'd': kinds[3].Tag,
}

func boardFrom(t *testing.T, rows ...string) *combo.Grid {
	t.Helper()
	g := combo.NewGrid(len(rows), len(rows[0]))
	for r, row := range rows {
		for c := 0; c < len(row); c++ {
			if row[c] == '.' {
				continue
			}
			tag, ok := letters[row[c]]
			if !ok {
				t.Fatalf("unknown gem letter %q", row[c])
			}
			if err := g.Place(combo.GridElement{Pos: combo.At(r, c), Type: tag}); err != nil {
				t.Fatal(err)
			}
		}
	}
	return g
}

func diagram(g *combo.Grid) []string {
	rev := make(map[combo.TypeTag]byte, len(letters))
	for l, tag := range letters {
		rev[tag] = l
	}
	out := make([]string, g.Rows())
	for r := range g.Rows() {
		row := make([]byte, g.Cols())
		for c := range g.Cols() {
			row[c] = '.'
			if e, ok := g.Get(combo.At(r, c)); ok {
				row[c] = rev[e.Type]
			}
		}
		out[r] = string(row)
	}
	return out
}

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Cleanup(func() {
		SetConfigPath("")
		SetDifficultyPreset("")
		SetAudio(nil)
	})
}

func newTestGame(t *testing.T, rows ...string) *Game {
	t.Helper()
	isolate(t)
	g := New()
	g.Reset(testRuntime)
	if g.err != nil {
		t.Fatalf("Reset: %v", g.err)
	}
	if len(rows) > 0 {
		g.setGrid(boardFrom(t, rows...))
		g.gameOver = false
	}
	return g
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestCollapse(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "gems fall",
			in:   []string{"a.b", ".cb", "a.."},
			want: []string{"...", "a.b", "acb"},
		},
		{
			name: "empty column closes",
			in:   []string{"a.b", "a.b"},
			want: []string{"ab.", "ab."},
		},
		{
			name: "several empty columns",
			in:   []string{"..a.", "b..."},
			want: []string{"....", "ba.."},
		},
		{
			name: "already settled",
			in:   []string{"..", "ab"},
			want: []string{"..", "ab"},
		},
		{
			name: "empty board",
			in:   []string{"..", ".."},
			want: []string{"..", ".."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := collapse(boardFrom(t, tt.in...))
			if err != nil {
				t.Fatal(err)
			}
			if got := diagram(out); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("collapse(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestComboScore(t *testing.T) {
	tests := []struct{ n, want int }{
		{2, 2},
		{3, 6},
		{5, 20},
		{10, 90},
	}
	for _, tt := range tests {
		if got := comboScore(tt.n); got != tt.want {
			t.Errorf("comboScore(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestResetDealsFullBoard(t *testing.T) {
	g := newTestGame(t)
	snap := g.Snapshot()

	rows, cols := g.cfg.Board.Rows, g.cfg.Board.Cols
	if snap.Gems != rows*cols {
		t.Errorf("Gems = %d, want %d", snap.Gems, rows*cols)
	}
	seen := make(map[combo.TypeTag]bool)
	for _, row := range snap.Board {
		for _, tag := range row {
			if tag == "" {
				t.Fatal("fresh board has an empty cell")
			}
			seen[tag] = true
		}
	}
	if len(seen) > g.types {
		t.Errorf("board uses %d types, want at most %d", len(seen), g.types)
	}
}

func TestDeterminism(t *testing.T) {
	isolate(t)

	inputs := []core.InputFrame{
		press(core.ActionSelect),
		press(core.ActionRight),
		press(core.ActionDown),
		press(core.ActionSelect),
		press(core.ActionRight),
		press(core.ActionSelect),
	}

	run := func(seed int64) Snapshot {
		g := New()
		rt := testRuntime
		rt.Seed = seed
		g.Reset(rt)
		for i := 0; i < 50; i++ {
			g.Step(inputs[i%len(inputs)])
		}
		return g.Snapshot()
	}

	a, b := run(7), run(7)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed diverged:\n%+v\n%+v", a, b)
	}
	if c := run(8); reflect.DeepEqual(a.Board, c.Board) {
		t.Error("different seeds dealt identical boards")
	}
}

func TestPickClearsCombo(t *testing.T) {
	rec := &audio.Recorder{}
	isolate(t)
	SetAudio(rec)

	g := newTestGame(t,
		"aac",
		"abc",
		"bbc",
	)

	g.Step(press(core.ActionSelect))

	want := []string{
		"..c",
		".bc",
		"bbc",
	}
	if got := diagram(g.grid); !reflect.DeepEqual(got, want) {
		t.Errorf("board = %v, want %v", got, want)
	}
	if g.score != 6 {
		t.Errorf("score = %d, want 6", g.score)
	}
	if g.lastCombo != 3 {
		t.Errorf("lastCombo = %d, want 3", g.lastCombo)
	}
	if g.gameOver {
		t.Error("board still has combos, game should continue")
	}
	if n := rec.Count(audio.EffectHit); n != 1 {
		t.Errorf("hit effects = %d, want 1", n)
	}
}

func TestPickIgnoresSmallCombo(t *testing.T) {
	g := newTestGame(t,
		"ab",
		"aa",
		"ba",
	)
	g.cursor = combo.At(0, 1)
	before := diagram(g.grid)

	g.Step(press(core.ActionSelect))

	if got := diagram(g.grid); !reflect.DeepEqual(got, before) {
		t.Errorf("board changed on a single gem: %v", got)
	}
	if g.score != 0 {
		t.Errorf("score = %d, want 0", g.score)
	}
}

func TestPickEmptyCell(t *testing.T) {
	g := newTestGame(t,
		"..",
		"aa",
	)

	g.Step(press(core.ActionSelect))
	if g.err != nil || g.gameOver {
		t.Fatalf("picking an empty cell should be ignored, err=%v over=%v", g.err, g.gameOver)
	}
	if g.grid.Len() != 2 {
		t.Errorf("gems = %d, want 2", g.grid.Len())
	}
}

func TestMinComboFromConfig(t *testing.T) {
	g := newTestGame(t,
		"aab",
		"bba",
	)
	g.cfg.Scoring.MinCombo = 3

	g.Step(press(core.ActionSelect))
	if g.grid.Len() != 6 {
		t.Errorf("a pair was cleared with min combo 3")
	}
}

func TestNoMovesEndsGame(t *testing.T) {
	g := newTestGame(t,
		"aab",
		"bca",
	)

	g.Step(press(core.ActionSelect))

	want := []string{
		"..b",
		"bca",
	}
	if got := diagram(g.grid); !reflect.DeepEqual(got, want) {
		t.Errorf("board = %v, want %v", got, want)
	}
	snap := g.Snapshot()
	if snap.State != StateGameOver {
		t.Errorf("State = %s, want game_over", snap.State)
	}
	if snap.Score != 2 {
		t.Errorf("Score = %d, want 2", snap.Score)
	}
	if !g.State().GameOver {
		t.Error("State().GameOver should be true")
	}

	g.Step(press(core.ActionRight))
	if g.Snapshot().Tick != snap.Tick {
		t.Error("a finished game should not advance")
	}
}

func TestEmptyBoardDealsNewOne(t *testing.T) {
	rec := &audio.Recorder{}
	isolate(t)
	SetAudio(rec)

	g := newTestGame(t,
		"aa",
		"aa",
	)

	g.Step(press(core.ActionSelect))

	want := comboScore(4) + g.cfg.Scoring.ClearBonus
	if g.score != want {
		t.Errorf("score = %d, want %d", g.score, want)
	}
	if g.boards != 1 {
		t.Errorf("boards = %d, want 1", g.boards)
	}
	if n := g.grid.Len(); n != g.cfg.Board.Rows*g.cfg.Board.Cols {
		t.Errorf("new board has %d gems, want a full board", n)
	}
	if rec.Count(audio.EffectClear) != 1 {
		t.Errorf("clear effects = %d, want 1", rec.Count(audio.EffectClear))
	}
}

func TestCursorStaysOnBoard(t *testing.T) {
	g := newTestGame(t)

	g.Step(press(core.ActionUp))
	g.Step(press(core.ActionLeft))
	if g.cursor != combo.At(0, 0) {
		t.Errorf("cursor = %v, want (0,0)", g.cursor)
	}

	for i := 0; i < 30; i++ {
		g.Step(press(core.ActionDown, core.ActionRight))
	}
	want := combo.At(g.grid.Rows()-1, g.grid.Cols()-1)
	if g.cursor != want {
		t.Errorf("cursor = %v, want %v", g.cursor, want)
	}
}

func TestScoreCountsUp(t *testing.T) {
	g := newTestGame(t,
		"aac",
		"abc",
		"bbc",
	)

	g.Step(press(core.ActionSelect))
	if g.shown >= float32(g.score) {
		t.Fatalf("shown = %v right after a clear, want below %d", g.shown, g.score)
	}

	for i := 0; i <= countUpTicks; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.shown != float32(g.score) {
		t.Errorf("shown = %v, want %d", g.shown, g.score)
	}
}

func TestPause(t *testing.T) {
	g := newTestGame(t)

	g.Step(press(core.ActionPause))
	g.Step(press(core.ActionRight))
	if g.cursor != combo.At(0, 0) {
		t.Error("cursor moved while paused")
	}
	if !g.State().Paused {
		t.Error("State().Paused should be true")
	}

	g.Step(press(core.ActionPause))
	if g.State().Paused {
		t.Error("second Pause should resume")
	}
}

func TestMissingConfigFallsBack(t *testing.T) {
	isolate(t)
	SetConfigPath(t.TempDir() + "/missing.yaml")

	g := New()
	g.Reset(testRuntime)
	if g.err != nil {
		t.Fatalf("unexpected error: %v", g.err)
	}
	if g.grid.Rows() != 10 || g.grid.Cols() != 12 {
		t.Errorf("board = %dx%d, want default 10x12", g.grid.Rows(), g.grid.Cols())
	}
}

func TestRenderBoard(t *testing.T) {
	g := newTestGame(t)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	boardW := g.grid.Cols()*cellWidth + 2
	x0 := (80-boardW)/2 + 1
	y0 := hudHeight + 1

	if got := screen.Get(x0, y0); got != '[' {
		t.Errorf("cursor open = %q, want '['", got)
	}
	if got := screen.Get(x0+2, y0); got != ']' {
		t.Errorf("cursor close = %q, want ']'", got)
	}
	e, _ := g.grid.Get(combo.At(0, 0))
	k, _ := kindOf(e.Type)
	if got := screen.Get(x0+1, y0); got != k.Glyph {
		t.Errorf("gem = %q, want %q", got, k.Glyph)
	}
	if !strings.Contains(screen.Row(0), "Gem Combo") {
		t.Errorf("HUD = %q", screen.Row(0))
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := newTestGame(t)
	screen := core.NewScreen(20, 8)
	g.Render(screen)
	if !strings.Contains(screen.String(), "too small") {
		t.Error("expected a window-too-small message")
	}
}
