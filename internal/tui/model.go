// Package tui hosts a single confirmation dialog in a bubbletea program.
//
// Mouse presses, drags and releases inside the canvas become touch events
// on the dialog's input queue. A frame tick steps the cooperative scheduler
// that polls the dialog, and the program quits once the dialog resolves.
package tui

import (
	"math"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog"

	"github.com/colonyops/touchgate/internal/core/dialog"
	"github.com/colonyops/touchgate/internal/core/geom"
	"github.com/colonyops/touchgate/internal/core/logging"
	"github.com/colonyops/touchgate/internal/core/loop"
	"github.com/colonyops/touchgate/internal/core/paint"
	"github.com/colonyops/touchgate/internal/core/styles"
	"github.com/colonyops/touchgate/internal/core/touch"
	"github.com/colonyops/touchgate/internal/display"
)

// Flow is the dialog surface the model drives. Both dialog.Confirm and
// dialog.HoldToConfirm satisfy it.
type Flow interface {
	loop.Source[dialog.Result]
	ID() string
	Input() *touch.Queue
	Content() dialog.Content
	Render(p paint.Painter)
}

// Options configures a Model.
type Options struct {
	Title         string
	Layout        dialog.Layout
	FrameInterval time.Duration
	Markdown      bool
	// Status, when set, supplies the footer text for hold signals.
	Status *Status
}

// frameMsg steps the scheduler.
type frameMsg time.Time

// Model is the bubbletea model for one dialog.
type Model struct {
	flow     Flow
	canvas   *display.Canvas
	sched    *loop.Scheduler
	interval time.Duration
	title    string
	status   *Status
	keys     keyMap
	help     help.Model
	log      zerolog.Logger

	width, height int
	origin        geom.Point
	pressed       bool

	result dialog.Result
	done   bool
}

// New creates a model hosting flow.
func New(flow Flow, opts Options) *Model {
	interval := opts.FrameInterval
	if interval <= 0 {
		interval = loop.DefaultFrameInterval
	}

	m := &Model{
		flow:     flow,
		canvas:   display.NewCanvas(opts.Layout, display.WithMarkdown(opts.Markdown)),
		sched:    loop.NewScheduler(loop.WithFrameInterval(interval)),
		interval: interval,
		title:    opts.Title,
		status:   opts.Status,
		keys:     defaultKeys(),
		help:     help.New(),
		log:      logging.Component("tui").With().Str("dialog_id", flow.ID()).Logger(),
	}
	m.origin = m.canvasOrigin()

	m.sched.Spawn("dialog", loop.TaskFunc(func() bool {
		r, ok := m.flow.Poll()
		if ok {
			m.finish(r)
		}
		return ok
	}))

	return m
}

// Result returns the dialog outcome. It is Pending until the program quits.
func (m *Model) Result() dialog.Result {
	return m.result
}

// Done reports whether the dialog resolved or was aborted.
func (m *Model) Done() bool {
	return m.done
}

// Init starts the frame ticker.
func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Update handles input, window and frame messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.origin = m.canvasOrigin()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Cancel) {
			m.log.Debug().Str("key", msg.String()).Msg("dialog aborted")
			m.finish(dialog.Cancelled)
			return m, tea.Quit
		}
		return m, nil

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case frameMsg:
		if m.done {
			return m, tea.Quit
		}
		m.sched.Step()
		if m.done {
			return m, tea.Quit
		}
		return m, m.tick()
	}

	return m, nil
}

// handleMouse converts left-button mouse messages to touch events in canvas
// coordinates. Motion without a held button is ignored.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.done {
		return
	}

	pos := geom.Point{X: msg.X - m.origin.X, Y: msg.Y - m.origin.Y}

	var kind touch.Kind
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		kind = touch.Down
		m.pressed = true
	case tea.MouseActionMotion:
		if !m.pressed {
			return
		}
		kind = touch.Move
	case tea.MouseActionRelease:
		if !m.pressed {
			return
		}
		kind = touch.Up
		m.pressed = false
	default:
		return
	}

	e := touch.Event{Kind: kind, Pos: pos}
	m.log.Debug().Stringer("event", e).Msg("touch")
	m.flow.Input().Push(e)
}

func (m *Model) finish(r dialog.Result) {
	if m.done {
		return
	}
	m.done = true
	m.result = r
}

// View renders the title, the dialog canvas and the footer.
func (m *Model) View() string {
	m.canvas.Clear()
	if c := m.flow.Content(); c != nil {
		c.Render(m.canvas)
	}
	m.flow.Render(m.canvas)

	boxWidth := m.canvas.Width() + 2
	block := lipgloss.JoinVertical(lipgloss.Left,
		styles.ResultStyle.Render(ansi.Truncate(m.title, boxWidth, "…")),
		styles.CanvasStyle.Render(m.canvas.String()),
		m.footer(boxWidth),
	)

	if m.width == 0 || m.height == 0 {
		return block
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, block)
}

func (m *Model) footer(width int) string {
	if m.done {
		return styles.ResultStyle.Render(m.result.String())
	}
	if text := m.status.Text(); text != "" {
		return styles.HelpStyle.Render(ansi.Truncate(text, width, "…"))
	}
	return ansi.Truncate(m.help.ShortHelpView(m.keys.ShortHelp()), width, "")
}

// blockSize returns the rendered size of View before placement.
func (m *Model) blockSize() (int, int) {
	// title + bordered canvas + footer
	return m.canvas.Width() + 2, m.canvas.Height() + 4
}

// canvasOrigin returns the terminal cell of canvas cell (0,0).
func (m *Model) canvasOrigin() geom.Point {
	left, top := 0, 0
	if m.width > 0 && m.height > 0 {
		w, h := m.blockSize()
		left = centerOffset(m.width, w)
		top = centerOffset(m.height, h)
	}
	return geom.Point{X: left + 1, Y: top + 2}
}

// centerOffset matches the leading gap lipgloss.Place uses for centered
// content.
func centerOffset(outer, inner int) int {
	gap := outer - inner
	if gap <= 0 {
		return 0
	}
	return int(math.Round(float64(gap) * float64(lipgloss.Center)))
}
