package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MorganGautherot/flappybird-godmod/internal/config"
	"github.com/MorganGautherot/flappybird-godmod/internal/core"
	"github.com/MorganGautherot/flappybird-godmod/internal/sim"
	"github.com/MorganGautherot/flappybird-godmod/internal/storage"
)

// Options configures an interactive game model.
type Options struct {
	Config *config.Game
	Seed   uint32 // 0 derives a time-based seed per game

	// Driver supplies the action each tick instead of keyboard input.
	// Nil means human play. DriverName labels stored records.
	Driver     sim.ActionSource
	DriverName string

	// Store persists finished sessions. Nil disables persistence.
	Store *storage.Store

	// Width and Height are the initial terminal size. The model follows
	// resize messages afterwards.
	Width  int
	Height int
}

// Model is the Bubble Tea model driving one game at a time. Each restart
// starts a fresh session under a fresh seed.
type Model struct {
	opts    Options
	session *sim.Session
	screen  *core.Screen
	keys    KeyMap
	help    help.Model

	last        sim.TickResult
	seed        uint32
	best        int
	flapPending bool
	saved       bool
	failed      error
	quitting    bool
}

// NewModel creates a game model and starts its first session.
func NewModel(opts Options) (Model, error) {
	if opts.Width <= 0 {
		opts.Width = 80
	}
	if opts.Height <= 0 {
		opts.Height = 24
	}

	// The bottom terminal row is reserved for the help bar, which is
	// styled text and bypasses the cell grid.
	m := Model{
		opts:   opts,
		screen: core.NewScreen(opts.Width, opts.Height-1),
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
	if opts.Store != nil {
		// Best-effort; play continues without a best score.
		m.best, _ = opts.Store.HighScore()
	}
	if err := m.startSession(opts.Seed); err != nil {
		return Model{}, err
	}
	return m, nil
}

// startSession builds a new session under the resolved seed.
func (m *Model) startSession(seed uint32) error {
	m.seed = core.ResolveSeed(seed)
	session, err := sim.NewSession(m.opts.Config, m.seed)
	if err != nil {
		return err
	}
	m.session = session
	m.last = sim.TickResult{Bird: session.Snapshot().Bird, Pipes: session.Snapshot().Pipes}
	m.saved = false
	m.flapPending = false
	return nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.Config.Screen.FPS)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, msg.Height-1)
		return m, nil
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Restart):
		if m.session.State() == sim.StateTerminated {
			// Always reseed; replaying the same seed goes through the
			// replay command instead.
			if err := m.startSession(0); err != nil {
				m.failed = err
				m.quitting = true
				return m, tea.Quit
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Flap):
		if m.opts.Driver == nil {
			m.flapPending = true
		}
		return m, nil
	}
	return m, nil
}

// handleTick advances the session one step and persists the record when a
// session just ended.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.session.State() == sim.StateRunning {
		action := core.NoFlap
		if m.opts.Driver != nil {
			action = m.opts.Driver.Act(m.session.Snapshot())
		} else if m.flapPending {
			action = core.Flap
		}
		m.flapPending = false

		m.last = m.session.Tick(action)
	}

	if m.session.State() == sim.StateTerminated && !m.saved {
		if rec := m.session.Record(); rec != nil && m.opts.Store != nil {
			//nolint:errcheck // Best-effort save, game continues regardless
			m.opts.Store.SaveRecord(*rec, m.opts.DriverName)
		}
		if m.last.Score > m.best {
			m.best = m.last.Score
		}
		m.saved = true
	}

	return m, tickCmd(m.opts.Config.Screen.FPS)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	drawWorld(m.screen, m.last, m.opts.Config)
	drawHUD(m.screen, m.last, m.seed, m.best)

	return RenderScreen(m.screen) + "\n" + m.help.ShortHelpView(m.keys.ShortHelp())
}

// Err returns the error that forced the model to quit, if any.
func (m Model) Err() error {
	return m.failed
}

// Run starts the Bubble Tea program with the given options and blocks
// until the player quits.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}
