package workouts

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	routinedto "pulsecue/internal/modules/routine/dto"
	"pulsecue/internal/ui/components"
	"pulsecue/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type RoutinePort interface {
	List(ctx context.Context, query string) ([]routinedto.RoutineOutput, error)
	Get(ctx context.Context, id string) (routinedto.RoutineOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type RoutinesLoadedMsg struct {
	Routines []routinedto.RoutineOutput
	Err      error
}

type DetailLoadedMsg struct {
	Routine routinedto.RoutineOutput
	Err     error
}

// ─── list item ───────────────────────────────────────────────────────────────

type routineItem struct {
	routine routinedto.RoutineOutput
}

func (i routineItem) Title() string {
	if i.routine.IsPinned {
		return "★ " + i.routine.Name
	}
	return i.routine.Name
}
func (i routineItem) Description() string {
	return fmt.Sprintf("%d steps  %s", len(i.routine.Steps), components.Clock(i.routine.TotalSeconds()))
}
func (i routineItem) FilterValue() string { return i.routine.Name }

// ─── model ───────────────────────────────────────────────────────────────────

// Model lists routines on the left and the selected routine's steps on the
// right. The step cursor moves with [ and ].
type Model struct {
	port    RoutinePort
	list    list.Model
	detail  routinedto.RoutineOutput
	step    int
	query   string
	preview viewport.Model
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(port RoutinePort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Workouts"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	// Search goes through the routine store so it matches the CLI.
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = theme.Pane.UnsetBorderStyle()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Accent

	return Model{
		port:    port,
		list:    l,
		preview: vp,
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadRoutinesCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case RoutinesLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Workouts: " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = "Workouts"
		if m.query != "" {
			m.list.Title = fmt.Sprintf("Workouts matching %q", m.query)
		}
		items := make([]list.Item, len(msg.Routines))
		for i, r := range msg.Routines {
			items[i] = routineItem{routine: r}
		}
		cmds = append(cmds, m.list.SetItems(items))
		if item, ok := m.list.SelectedItem().(routineItem); ok {
			cmds = append(cmds, m.loadDetailCmd(item.routine.ID))
		} else {
			m.detail = routinedto.RoutineOutput{}
			m.preview.SetContent(m.renderDetail())
		}

	case DetailLoadedMsg:
		if msg.Err == nil {
			if msg.Routine.ID != m.detail.ID {
				m.step = 0
			}
			m.detail = msg.Routine
			m.clampStep()
			m.preview.SetContent(m.renderDetail())
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "]":
			m.step++
			m.clampStep()
			m.preview.SetContent(m.renderDetail())
			return m, nil
		case "[":
			m.step--
			m.clampStep()
			m.preview.SetContent(m.renderDetail())
			return m, nil
		}

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.loading {
		var lCmd tea.Cmd
		prevIdx := m.list.Index()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			if item, ok := m.list.SelectedItem().(routineItem); ok {
				cmds = append(cmds, m.loadDetailCmd(item.routine.ID))
			}
		}
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading workouts…")
	}

	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := theme.Detail.
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.preview.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// Reload refetches the list with the current query.
func (m Model) Reload() tea.Cmd {
	return m.loadRoutinesCmd()
}

// Search replaces the query and reloads. An empty query lists everything.
func (m *Model) Search(query string) tea.Cmd {
	m.query = strings.TrimSpace(query)
	return m.loadRoutinesCmd()
}

// SelectedRoutine returns the routine shown in the detail pane.
func (m Model) SelectedRoutine() (routinedto.RoutineOutput, bool) {
	if m.detail.ID == "" {
		return routinedto.RoutineOutput{}, false
	}
	return m.detail, true
}

// SelectedStep returns the step under the cursor, if the routine has any.
func (m Model) SelectedStep() (routinedto.StepOutput, bool) {
	if m.step < 0 || m.step >= len(m.detail.Steps) {
		return routinedto.StepOutput{}, false
	}
	return m.detail.Steps[m.step], true
}

// FollowStep moves the step cursor, used after a reorder so the cursor stays
// on the moved step.
func (m *Model) FollowStep(index int) {
	m.step = index
	m.clampStep()
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) clampStep() {
	if m.step >= len(m.detail.Steps) {
		m.step = len(m.detail.Steps) - 1
	}
	if m.step < 0 {
		m.step = 0
	}
}

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.preview.Width = detailW - 4
	m.preview.Height = m.height - 4
}

func (m Model) renderDetail() string {
	r := m.detail
	if r.ID == "" {
		return theme.Muted.Render("No routine selected. Create one with :routine:new <name>")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(r.Name) + "\n\n")
	sb.WriteString(theme.Muted.Render("created: ") + r.CreatedAt.Format("Jan 2, 2006") + "\n")
	sb.WriteString(theme.Muted.Render("total:   ") + components.Clock(r.TotalSeconds()) + "\n\n")
	if len(r.Steps) == 0 {
		sb.WriteString(theme.Muted.Render("No steps yet. Add one with :step:add <seconds> <name>") + "\n")
	}
	for i, step := range r.Steps {
		line := fmt.Sprintf("%2d. %-20s %s", i+1, step.Name, components.Clock(step.DurationSeconds))
		if i == m.step {
			sb.WriteString(theme.Hot.Render("› "+line) + "\n")
			continue
		}
		sb.WriteString("  " + line + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("enter: run  p: pin  [/]: step  :step:up/down"))
	return sb.String()
}

func (m Model) loadRoutinesCmd() tea.Cmd {
	query := m.query
	return func() tea.Msg {
		routines, err := m.port.List(context.Background(), query)
		return RoutinesLoadedMsg{Routines: routines, Err: err}
	}
}

func (m Model) loadDetailCmd(id string) tea.Cmd {
	return func() tea.Msg {
		routine, err := m.port.Get(context.Background(), id)
		return DetailLoadedMsg{Routine: routine, Err: err}
	}
}
