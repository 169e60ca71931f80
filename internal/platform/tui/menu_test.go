package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pebble-arcade/internal/core"
)

func TestMenuShowsBestScores(t *testing.T) {
	store := openStore(t, map[string][]int{"stub-b": {40, 90}})

	m := NewMenuModel(store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	best := make(map[string]int)
	for _, item := range m.items {
		best[item.GameID] = item.Best
	}
	if best["stub-b"] != 90 {
		t.Errorf("stub-b best = %d, want 90", best["stub-b"])
	}
	if best["stub-a"] != 0 {
		t.Errorf("stub-a best = %d, want 0", best["stub-a"])
	}
	if !strings.Contains(m.View(), "(best 90)") {
		t.Error("menu should list the best score")
	}
}

func TestMenuCursorWraps(t *testing.T) {
	var m tea.Model = NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if got := m.(MenuModel).cursor; got != 1 {
		t.Fatalf("up from the top: cursor = %d, want 1", got)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if got := m.(MenuModel).cursor; got != 0 {
		t.Fatalf("down from the bottom: cursor = %d, want 0", got)
	}
}

func TestMenuPicksByNumber(t *testing.T) {
	m := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})

	next, cmd := m.Update(runeKey('2'))
	sel := next.(MenuModel).Selected()
	if sel == nil || sel.GameID != "stub-b" {
		t.Fatalf("selected = %+v, want stub-b", sel)
	}
	if cmd == nil {
		t.Error("picking a game should end the menu")
	}

	// Out of range digits do nothing.
	next, _ = m.Update(runeKey('9'))
	if next.(MenuModel).Selected() != nil {
		t.Error("9 should not pick anything with two games")
	}
}
