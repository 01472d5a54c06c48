package history

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	daylogdto "pulsecue/internal/modules/daylog/dto"
	"pulsecue/internal/ui/theme"
)

const days = 7

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Recent(ctx context.Context, days int) ([]daylogdto.DayLogOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Logs []daylogdto.DayLogOutput
	Err  error
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model shows the last week of daily logs, newest first.
type Model struct {
	port   Port
	table  table.Model
	err    error
	empty  bool
	width  int
	height int
}

func New(port Port) Model {
	t := table.New(
		table.WithColumns(columns(0)),
		table.WithFocused(true),
	)
	styles := table.DefaultStyles()
	styles.Header = theme.TableHeader.Padding(0, 1)
	styles.Selected = theme.TableSelected
	t.SetStyles(styles)
	return Model{port: port, table: t}
}

func (m Model) Init() tea.Cmd {
	return m.loadCmd()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetColumns(columns(m.width))
		m.table.SetHeight(max(m.height-4, 3))

	case LoadedMsg:
		m.err = msg.Err
		if msg.Err != nil {
			return m, nil
		}
		rows := make([]table.Row, len(msg.Logs))
		for i, l := range msg.Logs {
			rows[i] = row(l)
		}
		m.empty = len(rows) == 0
		m.table.SetRows(rows)
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	title := theme.Title.Render(fmt.Sprintf("Last %d days", days))
	switch {
	case m.err != nil:
		return title + "\n\n" + theme.Error.Render(m.err.Error())
	case m.empty:
		return title + "\n\n" + theme.Muted.Render("No logs yet.")
	}
	return title + "\n\n" + m.table.View()
}

// Reload refetches the window, e.g. after today's log changed.
func (m Model) Reload() tea.Cmd {
	return m.loadCmd()
}

// ─── private ─────────────────────────────────────────────────────────────────

func columns(width int) []table.Column {
	w := 10
	if width > 0 {
		w = max(width/6-2, 8)
	}
	return []table.Column{
		{Title: "Date", Width: w + 2},
		{Title: "Intake", Width: w},
		{Title: "Exercise", Width: w},
		{Title: "Balance", Width: w},
		{Title: "Sleep", Width: w},
		{Title: "Weight", Width: w},
	}
}

func row(l daylogdto.DayLogOutput) table.Row {
	weight := "-"
	if l.WeightKg != nil {
		weight = fmt.Sprintf("%.1f", *l.WeightKg)
	}
	return table.Row{
		l.Date.Format("Mon Jan 2"),
		fmt.Sprintf("%.0f", l.CaloriesIntake),
		fmt.Sprintf("%.0f", l.CaloriesExercise),
		fmt.Sprintf("%+.0f", l.Balance),
		fmt.Sprintf("%.1f", l.SleepHours),
		weight,
	}
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		logs, err := m.port.Recent(context.Background(), days)
		return LoadedMsg{Logs: logs, Err: err}
	}
}
