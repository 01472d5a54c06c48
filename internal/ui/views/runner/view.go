package runner

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	runnerdto "pulsecue/internal/modules/runner/dto"
	"pulsecue/internal/ui/components"
	"pulsecue/internal/ui/theme"
)

const (
	labelNow  = "NOW   "
	labelNext = "NEXT  "
	indent    = "      "
)

// ─── model ───────────────────────────────────────────────────────────────────

// Model renders the runner status handed to it by the app model. It owns no
// port: every runner operation goes through the app so ticks and key presses
// share one loop.
type Model struct {
	status   runnerdto.StatusOutput
	complete bool
	width    int
	height   int
}

func New() Model {
	return Model{}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// SetStatus records the latest runner status. The completion banner stays up
// until a new run starts.
func (m *Model) SetStatus(status runnerdto.StatusOutput) {
	m.complete = status.Finished || (m.complete && status.Idle())
	m.status = status
}

func (m Model) Status() runnerdto.StatusOutput {
	return m.status
}

func (m Model) View() string {
	lines := Lines(m.status, m.complete)
	styled := make([]string, len(lines))
	for i, line := range lines {
		styled[i] = styleLine(i, line, m.status, m.complete)
	}
	body := strings.Join(styled, "\n")
	hint := theme.Muted.Render("space: start step  n: skip  +: add 10s  b: back  x: stop")
	content := lipgloss.JoinVertical(lipgloss.Center, theme.PaneActive.Render(body), "", hint)
	if m.width <= 0 || m.height <= 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// Lines is the unstyled runner readout, one entry per line.
func Lines(s runnerdto.StatusOutput, complete bool) []string {
	switch {
	case complete:
		return []string{"Complete!", "Pick another routine on Workouts."}
	case s.Idle():
		return []string{"No active run", "Select a routine on Workouts and press enter."}
	case !s.HasCurrent:
		return []string{s.RoutineName, "This routine has no steps."}
	}

	lines := []string{
		fmt.Sprintf("%s  step %d/%d", s.RoutineName, s.StepIndex+1, s.StepCount),
		labelNow + s.Current.Name,
	}
	if s.Resting() {
		lines = append(lines, indent+components.Clock(s.RemainingSeconds)+"  REST")
	} else {
		lines = append(lines, indent+components.Clock(s.RemainingSeconds)+"  press space to start")
	}
	if s.HasNext {
		lines = append(lines, labelNext+s.Next.Name+"  "+components.Clock(s.Next.DurationSeconds))
	} else {
		lines = append(lines, labelNext+"finish")
	}
	if s.AutoAdvance {
		lines = append(lines, "auto-advance on")
	}
	return lines
}

func styleLine(i int, line string, s runnerdto.StatusOutput, complete bool) string {
	switch {
	case complete && i == 0:
		return theme.Done.Render(line)
	case i == 0:
		return theme.Title.Render(line)
	case strings.HasPrefix(line, labelNow):
		return theme.Hot.Render(labelNow) + line[len(labelNow):]
	case strings.HasPrefix(line, labelNext):
		return theme.Muted.Render(labelNext) + line[len(labelNext):]
	case strings.HasPrefix(line, indent) && s.Resting():
		clock := strings.TrimSuffix(strings.TrimPrefix(line, indent), "  REST")
		return indent + theme.Countdown.Render(clock) + theme.Rest.Render("REST")
	}
	return theme.Muted.Render(line)
}
