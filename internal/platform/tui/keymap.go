package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pebble-arcade/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// One key may raise several actions so that each game reads the one it cares
// about: Space is Jump in the brawler and Select in the gem board.
type KeyMapper struct {
	bindings map[string][]core.Action
}

// defaultBindings is the keyboard layout shared by every game.
var defaultBindings = map[string][]core.Action{
	"w":     {core.ActionUp, core.ActionJump},
	"up":    {core.ActionUp, core.ActionJump},
	"s":     {core.ActionDown},
	"down":  {core.ActionDown},
	"a":     {core.ActionLeft},
	"left":  {core.ActionLeft},
	"d":     {core.ActionRight},
	"right": {core.ActionRight},
	" ":     {core.ActionJump, core.ActionSelect},
	"enter": {core.ActionConfirm, core.ActionSelect},
	"j":     {core.ActionAttack},
	"x":     {core.ActionAttack},
	"k":     {core.ActionThrow},
	"c":     {core.ActionThrow},
	"b":     {core.ActionBack},
	"p":     {core.ActionPause},
	"esc":   {core.ActionPause, core.ActionBack},
	"r":     {core.ActionRestart},
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{bindings: defaultBindings}
}

// MapKey translates a key message to the actions it raises.
// Returns nil for unbound keys, and isQuit for the global quit keys.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (actions []core.Action, isQuit bool) {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return []core.Action{core.ActionQuit}, true
	}

	return km.bindings[key], false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	actions, isQuit := km.MapKey(msg)
	if isQuit {
		return true
	}
	for _, a := range actions {
		frame.Set(a)
	}
	return false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
