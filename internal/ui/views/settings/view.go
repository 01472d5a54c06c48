package settings

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	settingsdto "pulsecue/internal/modules/settings/dto"
	"pulsecue/internal/ui/theme"
)

type Port interface {
	Get(ctx context.Context) (settingsdto.SettingsOutput, error)
	ToggleBeep(ctx context.Context) (settingsdto.SettingsOutput, error)
}

type LoadedMsg struct {
	Settings settingsdto.SettingsOutput
	Toggled  bool
	Err      error
}

type Model struct {
	port     Port
	settings settingsdto.SettingsOutput
	err      error
	width    int
	height   int
}

func New(port Port) Model {
	return Model{port: port, settings: settingsdto.SettingsOutput{BeepEnabled: true}}
}

func (m Model) Init() tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Get(context.Background())
		return LoadedMsg{Settings: out, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case LoadedMsg:
		m.err = msg.Err
		if msg.Err == nil {
			m.settings = msg.Settings
		}
	}
	return m, nil
}

// ToggleBeep flips the completion beep.
func (m Model) ToggleBeep() tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.ToggleBeep(context.Background())
		return LoadedMsg{Settings: out, Toggled: true, Err: err}
	}
}

func (m Model) BeepEnabled() bool {
	return m.settings.BeepEnabled
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Settings") + "\n\n")
	beep := theme.Muted.Render("off")
	if m.settings.BeepEnabled {
		beep = theme.Done.Render("on")
	}
	sb.WriteString(theme.Muted.Render("completion beep: ") + beep + "\n\n")
	sb.WriteString(theme.Muted.Render("enter: toggle beep"))
	if m.err != nil {
		sb.WriteString("\n\n" + theme.Error.Render(m.err.Error()))
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, theme.Pane.Render(sb.String()))
}
