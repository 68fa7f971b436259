package tui

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/iburimskiy/page-indicator/internal/config"
	"github.com/iburimskiy/page-indicator/internal/indicator"
)

// headerLines is the number of terminal rows above the raster.
const headerLines = 2

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	helpStyle  = lipgloss.NewStyle().Faint(true)
)

// Options configures the terminal host.
type Options struct {
	Width, Height int // raster size in pixels

	Color   color.Color
	Circles int
	Stroke  float64

	Logger   logrus.FieldLogger
	OnChange func(int)
	// Now replaces time.Now for the widget clock.
	Now      func() time.Time
}

type frameMsg struct{}

// scheduler turns widget redraw requests into bubbletea commands.
type scheduler struct {
	immediate bool
	delay     time.Duration
	delayed   bool
}

func (s *scheduler) Invalidate() { s.immediate = true }

func (s *scheduler) InvalidateAfter(d time.Duration) {
	if !s.delayed || d < s.delay {
		s.delay = d
	}
	s.delayed = true
}

// Model is the bubbletea model hosting one indicator.
type Model struct {
	widget *indicator.Widget
	raster *Raster
	sched  *scheduler
	style  lipgloss.Style
	log    logrus.FieldLogger
	notify func(int)

	frame   string
	status  string
	ticking bool
}

func NewModel(opts Options) *Model {
	if opts.Width <= 0 {
		opts.Width = config.TerminalWidth
	}
	if opts.Height <= 0 {
		opts.Height = config.TerminalHeight
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	clr := opts.Color
	if clr == nil {
		clr = indicator.DefaultColor
	}

	m := &Model{
		raster: NewRaster(opts.Width, opts.Height),
		sched:  &scheduler{},
		style:  lipgloss.NewStyle().Foreground(lipgloss.Color(config.FormatColor(clr))),
		log:    opts.Logger,
		notify: opts.OnChange,
	}
	m.widget = indicator.New(
		indicator.WithColor(clr),
		indicator.WithCircles(opts.Circles),
		indicator.WithStrokeWidth(opts.Stroke),
		indicator.WithInvalidator(m.sched),
		indicator.WithOnChange(m.handleChange),
		indicator.WithLogger(opts.Logger),
		indicator.WithClock(opts.Now),
	)
	m.widget.SetOrigin(0, headerLines*2)
	m.widget.SetSize(float64(m.raster.Width()), float64(m.raster.Height()))
	m.render()
	return m
}

// Widget exposes the hosted indicator.
func (m *Model) Widget() *indicator.Widget { return m.widget }

func (m *Model) handleChange(position int) {
	m.log.WithField("position", position).Info("indicator changed")
	m.status = fmt.Sprintf("selected %d", position+1)
	if m.notify != nil {
		m.notify(position)
	}
}

func (m *Model) render() {
	m.raster.Clear()
	m.widget.Render(m.raster, float64(m.raster.Width()), float64(m.raster.Height()))
	m.frame = m.raster.Render(m.style)
}

// flush redraws if the widget asked for it and arms the next tick.
func (m *Model) flush() tea.Cmd {
	if m.sched.immediate {
		m.sched.immediate = false
		m.render()
	}
	if !m.sched.delayed || m.ticking {
		return nil
	}
	d := m.sched.delay
	m.sched.delayed = false
	m.ticking = true
	return tea.Tick(d, func(time.Time) tea.Msg { return frameMsg{} })
}

func (m *Model) Init() tea.Cmd {
	return m.flush()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.ticking = false
		m.render()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "right", "l":
			m.widget.SetPosition(m.widget.Position() + 1)
		case "left", "h":
			m.widget.SetPosition(m.widget.Position() - 1)
		case " ", "tab":
			m.widget.SetPosition((m.widget.Position() + 1) % m.widget.Circles())
		default:
			if k := msg.String(); len(k) == 1 && k[0] >= '1' && k[0] <= '9' {
				m.widget.SetPosition(int(k[0] - '1'))
			}
		}

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			// aim at the middle of the cell
			m.widget.HandlePointerDown(float64(msg.X)+0.5, float64(msg.Y*2)+1)
		}
	}
	return m, m.flush()
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Position %d/%d", m.widget.Position()+1, m.widget.Circles())))
	b.WriteString("  ")
	b.WriteString(helpStyle.Render(m.status))
	b.WriteString(strings.Repeat("\n", headerLines))
	b.WriteString(m.frame)
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("click a circle, ←/→ space 1-9 to move, q to quit"))
	return b.String()
}
