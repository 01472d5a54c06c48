package theme

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha.
var (
	Base     = lipgloss.Color("#1e1e2e")
	Mantle   = lipgloss.Color("#181825")
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Peach    = lipgloss.Color("#fab387")
	Yellow   = lipgloss.Color("#f9e2af")
	Red      = lipgloss.Color("#f38ba8")
)

// Text roles.
var (
	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot   = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Done  = lipgloss.NewStyle().Foreground(Green).Bold(true)
	Rest  = lipgloss.NewStyle().Foreground(Yellow).Bold(true)
	Error = lipgloss.NewStyle().Foreground(Red)

	Accent = lipgloss.NewStyle().Foreground(Lavender)

	// Countdown is the remaining-time readout on the runner pane.
	Countdown = lipgloss.NewStyle().Foreground(Text).Bold(true).Padding(0, 2)
)

// Surfaces.
var (
	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle).
		Foreground(Text).
		Padding(1)

	PaneActive = Pane.BorderForeground(Lavender)

	// Detail is Pane without padding; callers size it to fill a column.
	Detail = Pane.Padding(0)

	Palette = Pane.BorderForeground(Peach).Padding(0, 1)

	Bar       = lipgloss.NewStyle().Background(Mantle)
	TabActive = Hot.Padding(0, 1)
	TabIdle   = Muted.Padding(0, 1)

	TableHeader = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(Surface1).
			BorderBottom(true).
			Foreground(Sapphire).
			Bold(true)
	TableSelected = lipgloss.NewStyle().Foreground(Base).Background(Lavender)
)
