package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pebble-arcade/internal/core"
	"github.com/vovakirdan/pebble-arcade/internal/registry"
	"github.com/vovakirdan/pebble-arcade/internal/storage"
)

type sessionView int

const (
	viewMenu sessionView = iota
	viewBoard
	viewGame
)

// SessionModel runs menu, scoreboard and games inside one program, for
// hosts that cannot start a new program per screen (SSH sessions).
//
// The standalone menu and scoreboard end their programs with tea.Quit.
// Here their exit is read from model state and that command is dropped.
type SessionModel struct {
	store    *storage.Store
	config   core.RuntimeConfig
	logger   *log.Logger
	player   string
	view     sessionView
	menu     MenuModel
	board    ScoreboardModel
	game     GameModel
	quitting bool
}

// NewSessionModel creates a session that starts at the game menu. Scores
// are saved under player.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger, player string) SessionModel {
	return SessionModel{
		store:  store,
		config: cfg,
		logger: logger,
		player: player,
		menu:   NewMenuModel(store, cfg),
	}
}

func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = ws.Width
		m.config.ScreenH = ws.Height
	}

	switch m.view {
	case viewGame:
		return m.updateGame(msg)
	case viewBoard:
		return m.updateBoard(msg)
	default:
		return m.updateMenu(msg)
	}
}

// toMenu rebuilds the menu so best scores are current.
func (m SessionModel) toMenu() (SessionModel, tea.Cmd) {
	m.view = viewMenu
	m.menu = NewMenuModel(m.store, m.config)
	return m, m.menu.Init()
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.view = viewBoard
		m.board = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		return m, nil

	case m.menu.Selected() != nil:
		id := m.menu.Selected().GameID
		game, err := registry.Create(id)
		if err != nil {
			m.logger.Warn("could not create game", "game", id, "error", err)
			return m.toMenu()
		}
		m.view = viewGame
		m.game = NewGameModel(game, m.store, m.config, m.logger)
		m.game.Model = m.game.WithPlayer(m.player)
		return m, m.game.Init()
	}

	return m, cmd
}

func (m SessionModel) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.board.Update(msg)
	m.board = next.(ScoreboardModel)

	switch {
	case m.board.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.board.IsGoingBack():
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	m.game = next.(GameModel)

	switch {
	case m.game.BackToMenu():
		return m.toMenu()
	case m.game.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.view {
	case viewGame:
		return m.game.View()
	case viewBoard:
		return m.board.View()
	default:
		return m.menu.View()
	}
}

// GameModel is a game Model that can return to the menu. Back leaves the
// game only while it is paused or over.
type GameModel struct {
	Model
	backToMenu bool
}

// NewGameModel creates a game model for an arcade session.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) GameModel {
	return GameModel{Model: NewModel(game, store, cfg, logger)}
}

func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		idle := m.gameState.GameOver || m.gameState.Paused
		if idle && m.keyMapper.MapKeyToMenuAction(km) == MenuActionBack {
			m.backToMenu = true
			return m, nil
		}
	}

	next, cmd := m.Model.Update(msg)
	m.Model = next.(Model)
	return m, cmd
}

// IsQuitting reports whether the player asked to leave the arcade.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu reports whether the player asked for the menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}
