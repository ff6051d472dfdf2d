package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breaker/internal/audio"
	"github.com/vovakirdan/tui-breaker/internal/core"
	"github.com/vovakirdan/tui-breaker/internal/games/breakout"
	"github.com/vovakirdan/tui-breaker/internal/metrics"
	"github.com/vovakirdan/tui-breaker/internal/platform/web"
	"github.com/vovakirdan/tui-breaker/internal/render"
)

// Options wires the collaborators of a game session. Every field is optional.
type Options struct {
	Audio         *audio.Player
	Metrics       *metrics.Recorder
	Feed          *web.Feed
	SessionID     string // Key under which snapshots are published to Feed
	ScreenshotDir string // Defaults to ~/.breaker/screenshots
	Logger        *log.Logger
}

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

// Model is the Bubble Tea model running one brick breaker session.
type Model struct {
	game    *breakout.Game
	config  core.RuntimeConfig
	opts    Options
	screen  *core.Screen
	view    viewport
	keys    *KeyMapper
	help    help.Model
	pending core.InputFrame     // One-shot actions since the last tick
	held    map[core.Action]int // Direction keys and their remaining hold ticks
	pointer core.Pointer
	state   core.GameState
	status  string
	quit    bool
}

// NewModel creates a Bubble Tea model for the game. The runtime config
// supplies the initial terminal size and the tick rate.
func NewModel(game *breakout.Game, cfg core.RuntimeConfig, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	world := game.Config().World

	return Model{
		game:    game,
		config:  cfg,
		opts:    opts,
		screen:  core.NewScreen(cfg.ScreenW, playfieldRows(cfg.ScreenH)),
		view:    newViewport(cfg.ScreenW, cfg.ScreenH, world.Width, world.Height),
		keys:    NewKeyMapper(DefaultKeyMap()),
		help:    help.New(),
		pending: core.NewInputFrame(),
		held:    make(map[core.Action]int),
		state:   game.State(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.pointer = core.Pointer{X: m.view.WorldX(msg.X), Valid: !m.view.tooSmall}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys.Keys()
	switch {
	case key.Matches(msg, keys.Screenshot):
		m.status = m.saveScreenshot()
		return m, nil
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	for _, action := range m.keys.MapKey(msg) {
		switch action {
		case core.ActionQuit:
			m.quit = true
			return m, tea.Quit
		case core.ActionLeft, core.ActionRight:
			// A fresh press cancels the opposite direction
			delete(m.held, opposite(action))
			m.held[action] = holdTicks(m.config.TickRate)
		default:
			m.pending.Set(action)
		}
	}

	return m, nil
}

func opposite(a core.Action) core.Action {
	if a == core.ActionLeft {
		return core.ActionRight
	}
	return core.ActionLeft
}

// handleResize processes window resize events. The world keeps its size;
// only the mapping to cells changes, so the session is never reset.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, playfieldRows(msg.Height))

	world := m.game.Config().World
	m.view = newViewport(msg.Width, msg.Height, world.Width, world.Height)
	m.help.Width = msg.Width
	return m, nil
}

// handleTick runs one simulation step and hands its output to the collaborators.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	frame := m.pending.Clone()
	for action, left := range m.held {
		frame.Set(action)
		if left <= 1 {
			delete(m.held, action)
		} else {
			m.held[action] = left - 1
		}
	}
	frame.Pointer = m.pointer

	start := time.Now()
	result := m.game.Step(frame)
	took := time.Since(start)

	m.state = result.State
	m.opts.Metrics.ObserveStep(result, took)
	m.opts.Audio.Handle(result.Events)
	m.opts.Feed.Publish(m.opts.SessionID, m.game.Snapshot())

	m.pending.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot writes the current frame as a PNG and returns a status line.
func (m Model) saveScreenshot() string {
	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "screenshot failed: no home directory"
		}
		dir = filepath.Join(home, ".breaker", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("cannot create screenshot directory", "dir", dir, "err", err)
		return "screenshot failed"
	}

	name := fmt.Sprintf("%s_%s.png", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := render.SavePNG(path, m.game.Snapshot(), render.Options{}); err != nil {
		m.opts.Logger.Warn("screenshot failed", "path", path, "err", err)
		return "screenshot failed"
	}
	m.opts.Logger.Info("screenshot saved", "path", path)
	return "saved " + path
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quit {
		return ""
	}

	drawSnapshot(m.screen, m.view, m.game.Snapshot())
	if m.view.tooSmall {
		return RenderScreen(m.screen)
	}

	footer := m.help.View(m.keys.Keys())
	if m.status != "" {
		footer = statusStyle.Render(m.status)
	}
	return RenderScreen(m.screen) + "\n" + footer
}

// playfieldRows is the height of the cell buffer; the last terminal row
// belongs to the help line.
func playfieldRows(screenH int) int {
	return max(screenH-1, 1)
}

// State returns the state after the most recent tick.
func (m Model) State() core.GameState {
	return m.state
}

// Run starts the Bubble Tea program for a local session and blocks until it exits.
func Run(game *breakout.Game, cfg core.RuntimeConfig, opts Options, mouse bool) error {
	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if mouse {
		programOpts = append(programOpts, tea.WithMouseAllMotion())
	}

	p := tea.NewProgram(NewModel(game, cfg, opts), programOpts...)
	_, err := p.Run()
	return err
}
