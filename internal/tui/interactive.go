package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/voxel-lab/smokesim/internal/config"
	"github.com/voxel-lab/smokesim/internal/simcore"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

type app struct {
	sim     *simcore.Simulator
	field   Field
	slice   int
	running bool
	speed   int

	width, height int
}

// NewInteractiveApp builds the bubbletea model for a live run of cfg,
// starting paused on the density field's middle horizontal slice.
func NewInteractiveApp(cfg config.Config) (*app, error) {
	sim, err := simcore.New(cfg, nil)
	if err != nil {
		return nil, err
	}
	_, _, nz := sim.Dims()
	return &app{
		sim:     sim,
		field:   FieldDensity,
		slice:   nz / 2,
		speed:   1,
		width:   80,
		height:  24,
	}, nil
}

// RunInteractive starts a full-screen bubbletea program driving cfg,
// mirroring the lab's RunInteractive entry point.
func RunInteractive(cfg config.Config) error {
	m, err := NewInteractiveApp(cfg)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m *app) Init() tea.Cmd { return nil }

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(16*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tickMsg:
		if m.running {
			for i := 0; i < m.speed; i++ {
				m.sim.Step()
			}
			return m, tick()
		}
		return m, nil
	}
	return m, nil
}

func (m *app) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.running = !m.running
		if m.running {
			return m, tick()
		}
		return m, nil
	case "d":
		m.field = FieldDensity
	case "t":
		m.field = FieldTransparency
	case "up":
		_, _, nz := m.sim.Dims()
		if m.slice < nz-1 {
			m.slice++
		}
	case "down":
		if m.slice > 0 {
			m.slice--
		}
	case "+", "=":
		m.speed++
	case "-":
		if m.speed > 1 {
			m.speed--
		}
	case "r":
		m.sim.Reset()
	}
	return m, nil
}

func (m *app) View() string {
	var b strings.Builder
	b.WriteString(dimmer.Render("  ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("   " + cyan.Render("smokesim") + dim.Render(fmt.Sprintf("  step %d  t=%.2fs  speed x%d", m.sim.StepCount(), m.sim.Time(), m.speed)) + "\n")
	b.WriteString(dimmer.Render("  ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n\n")

	fieldName := "density"
	if m.field == FieldTransparency {
		fieldName = "transparency"
	}
	b.WriteString(white.Render(fmt.Sprintf("  %s slice k=%d", fieldName, m.slice)) + "\n")

	nx, ny, _ := m.sim.Dims()
	raw := m.sim.Density()
	if m.field == FieldTransparency {
		raw = m.sim.Transparency()
	}
	rows := sliceValues(raw, nx, ny, m.slice)
	flat := make([]float64, 0, nx*ny)
	for _, row := range rows {
		flat = append(flat, row...)
	}
	for _, line := range renderRamp(rows, maxOf(flat)) {
		b.WriteString("  " + line + "\n")
	}

	if err := m.sim.HealthError(); err != nil {
		b.WriteString("\n" + yellow.Render("  "+err.Error()) + "\n")
	}

	b.WriteString("\n" + dim.Render("  space play/pause  d density  t transparency  ↑↓ slice  +/- speed  r reset  q quit") + "\n")
	return b.String()
}
