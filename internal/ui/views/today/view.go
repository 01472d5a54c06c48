package today

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	daylogdto "pulsecue/internal/modules/daylog/dto"
	"pulsecue/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Today(ctx context.Context) (daylogdto.DayLogOutput, bool, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Log   daylogdto.DayLogOutput
	Found bool
	Err   error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    Port
	log     daylogdto.DayLogOutput
	found   bool
	err     error
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(port Port) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Accent
	return Model{port: port, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case LoadedMsg:
		m.loading = false
		m.log, m.found, m.err = msg.Log, msg.Found, msg.Err

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading today…")
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderCard())
}

// Reload refetches today's log, e.g. after a palette update.
func (m Model) Reload() tea.Cmd {
	return m.loadCmd()
}

// Show replaces the card with a log the caller already has.
func (m *Model) Show(log daylogdto.DayLogOutput) {
	m.loading = false
	m.log, m.found, m.err = log, true, nil
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) renderCard() string {
	if m.err != nil {
		return theme.Error.Render("Today: " + m.err.Error())
	}
	var sb strings.Builder
	if !m.found {
		sb.WriteString(theme.Title.Render("Today") + "\n\n")
		sb.WriteString(theme.Muted.Render("Nothing logged yet.") + "\n\n")
		sb.WriteString(theme.Muted.Render(":log:intake <kcal>  :log:exercise <kcal>  :log:sleep <h>  :log:weight <kg>"))
		return theme.Pane.Render(sb.String())
	}

	l := m.log
	sb.WriteString(theme.Title.Render("Today  "+l.Date.Format("Mon Jan 2")) + "\n\n")
	sb.WriteString(fmt.Sprintf("%s%.0f kcal\n", theme.Muted.Render("intake:   "), l.CaloriesIntake))
	sb.WriteString(fmt.Sprintf("%s%.0f kcal\n", theme.Muted.Render("exercise: "), l.CaloriesExercise))
	balance := fmt.Sprintf("%+.0f kcal", l.Balance)
	if l.Balance > 0 {
		balance = theme.Hot.Render(balance)
	} else {
		balance = theme.Done.Render(balance)
	}
	sb.WriteString(theme.Muted.Render("balance:  ") + balance + "\n")
	sb.WriteString(fmt.Sprintf("%s%.1f h\n", theme.Muted.Render("sleep:    "), l.SleepHours))
	weight := "-"
	if l.WeightKg != nil {
		weight = fmt.Sprintf("%.1f kg", *l.WeightKg)
	}
	sb.WriteString(theme.Muted.Render("weight:   ") + weight + "\n\n")
	sb.WriteString(theme.Muted.Render(":log:<metric> <value> to update"))
	return theme.Pane.Render(sb.String())
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		log, found, err := m.port.Today(context.Background())
		return LoadedMsg{Log: log, Found: found, Err: err}
	}
}
