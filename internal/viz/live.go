// Package viz renders completed runs in the terminal: a live replay with
// scrubbing, and static summary charts.
package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/Chenchunxuan/qbit-simulator/internal/sim"
)

const (
	chartWidth   = 56
	chartHeight  = 6
	framesPerSec = 60
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model replays a completed run step by step. The run itself is immutable;
// only the playhead moves.
type Model struct {
	title    string
	result   *sim.Result
	dt       float64
	playHead int
	playing  bool

	// precomputed series for the charts
	altitude []float64
	pitchDeg []float64
	airspeed []float64
}

func NewModel(title string, result *sim.Result, dt float64) Model {
	alt, _ := result.Series("z")
	theta, _ := result.Series("theta")
	va, _ := result.Series("va")

	pitchDeg := make([]float64, len(theta))
	for i, v := range theta {
		pitchDeg[i] = v * 180 / math.Pi
	}

	return Model{
		title:    title,
		result:   result,
		dt:       dt,
		playing:  true,
		altitude: alt,
		pitchDeg: pitchDeg,
		airspeed: va,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/framesPerSec, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.playing = !m.playing
		case "r":
			m.playHead = 0
		case "[":
			m.scrub(-10)
		case "]":
			m.scrub(10)
		}
	case TickMsg:
		if m.playing && m.playHead < len(m.result.Steps)-1 {
			m.playHead++
		}
		return m, tea.Tick(time.Second/framesPerSec, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) scrub(delta int) {
	m.playing = false
	m.playHead += delta
	if m.playHead < 0 {
		m.playHead = 0
	}
	if m.playHead >= len(m.result.Steps) {
		m.playHead = len(m.result.Steps) - 1
	}
}

func (m Model) View() string {
	if len(m.result.Steps) == 0 {
		return "no samples\n"
	}
	step := m.result.Steps[m.playHead]

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.title)) + "\n")

	status := "REPLAYING"
	if !m.playing {
		status = "PAUSED"
	} else if m.playHead == len(m.result.Steps)-1 {
		status = "DONE"
	}
	s.WriteString(status + "\n\n")

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2f s", step.Time)) + "\n")
	s.WriteString(labelStyle.Render("Position") + valueStyle.Render(fmt.Sprintf("y %.2f  z %.2f m", step.State.Y, step.State.Z)) + "\n")
	s.WriteString(labelStyle.Render("Pitch") + valueStyle.Render(fmt.Sprintf("%.1f deg", step.State.Theta*180/math.Pi)) + "\n")
	s.WriteString(labelStyle.Render("Airspeed") + valueStyle.Render(fmt.Sprintf("%.2f m/s", step.Flow.Va)) + "\n")
	s.WriteString(labelStyle.Render("Thrust") + valueStyle.Render(fmt.Sprintf("top %.2f  bot %.2f N", step.Thrust.Top, step.Thrust.Bottom)) + "\n")
	s.WriteString(labelStyle.Render("Alpha eff") + valueStyle.Render(fmt.Sprintf("%.1f deg", step.Flow.AlphaEff*180/math.Pi)) + "\n")
	s.WriteString(labelStyle.Render("Grid") + valueStyle.Render(fmt.Sprintf("%d/%d @ %.3f s", m.playHead+1, len(m.result.Steps), m.dt)) + "\n")

	s.WriteString(helpStyle.Render("\nSP:Pause R:Restart [ ]:Scrub Q:Quit"))
	statsView := statsStyle.Render(s.String())

	charts := lipgloss.JoinVertical(lipgloss.Left,
		m.chart(m.altitude, "Altitude (m)"),
		m.chart(m.pitchDeg, "Pitch (deg)"),
		m.chart(m.airspeed, "Airspeed (m/s)"),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, charts, statsView)
}

// chart plots the series up to the playhead, so the graphs grow with the
// replay.
func (m Model) chart(series []float64, caption string) string {
	end := m.playHead + 1
	if end < 2 {
		end = 2
	}
	if end > len(series) {
		end = len(series)
	}
	plot := asciigraph.Plot(series[:end],
		asciigraph.Height(chartHeight),
		asciigraph.Width(chartWidth),
		asciigraph.Caption(caption),
	)
	return graphStyle.Render(plot)
}

// Run starts the replay in the alternate screen.
func Run(title string, result *sim.Result, dt float64) error {
	p := tea.NewProgram(NewModel(title, result, dt), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
