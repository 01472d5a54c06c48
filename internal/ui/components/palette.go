package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pulsecue/internal/ui/theme"
)

// PaletteSubmitMsg is emitted when the user confirms a command.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted when the user presses esc.
type PaletteCancelMsg struct{}

const historyLimit = 20

// paletteHints mirrors the verbs handled by executePalette in app/model.go.
var paletteHints = []string{
	"routine:new <name>",
	"routine:rename <name>",
	"routine:search [query]",
	"routine:pin",
	"routine:duplicate",
	"routine:delete",
	"step:add <seconds> <name>",
	"step:edit <seconds> <name>",
	"step:delete",
	"step:up",
	"step:down",
	"run:start",
	"run:auto",
	"run:stop",
	"log:intake <kcal>",
	"log:exercise <kcal>",
	"log:sleep <hours>",
	"log:weight <kg>",
	"settings:beep",
}

// Palette is a command-palette overlay backed by bubbles/textinput.
// Submitted commands are remembered, newest last, and recalled with up/down.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int

	history []string
	recall  int
}

// NewPalette creates an inactive Palette ready to be opened.
func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "routine:new Leg day"
	ti.CharLimit = 128
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.visible }

// Open shows the palette, clears the input, and returns the focus command.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.input.SetValue("")
	p.recall = len(p.history)
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

// Hints returns the first limit hints that start with prefix.
func Hints(prefix string, limit int) []string {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	var matching []string
	for _, h := range paletteHints {
		if prefix == "" || strings.HasPrefix(h, prefix) {
			matching = append(matching, h)
			if len(matching) == limit {
				break
			}
		}
	}
	return matching
}

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			val := strings.TrimSpace(p.input.Value())
			p.visible = false
			p.input.Blur()
			p.remember(val)
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
		case "tab":
			if verb, ok := complete(p.input.Value()); ok {
				p.input.SetValue(verb)
				p.input.CursorEnd()
			}
			return p, nil
		case "up":
			p.step(-1)
			return p, nil
		case "down":
			p.step(1)
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

// complete expands input to the verb of the only hint it prefixes, followed
// by a space when the verb takes arguments.
func complete(input string) (string, bool) {
	if strings.Contains(strings.TrimSpace(input), " ") {
		return "", false
	}
	matching := Hints(input, 2)
	if len(matching) != 1 {
		return "", false
	}
	verb, args, _ := strings.Cut(matching[0], " ")
	if args != "" {
		verb += " "
	}
	return verb, true
}

func (p *Palette) remember(cmd string) {
	if cmd == "" {
		return
	}
	if n := len(p.history); n > 0 && p.history[n-1] == cmd {
		return
	}
	p.history = append(p.history, cmd)
	if len(p.history) > historyLimit {
		p.history = p.history[len(p.history)-historyLimit:]
	}
}

func (p *Palette) step(delta int) {
	next := p.recall + delta
	if next < 0 || next > len(p.history) {
		return
	}
	p.recall = next
	if next == len(p.history) {
		p.input.SetValue("")
	} else {
		p.input.SetValue(p.history[next])
	}
	p.input.CursorEnd()
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	matching := Hints(p.input.Value(), 5)

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Command Palette") + "\n")
	sb.WriteString(": " + p.input.View() + "\n")
	if len(matching) > 0 {
		sb.WriteString("\n")
		for _, h := range matching {
			sb.WriteString(theme.Muted.Render("  "+h) + "\n")
		}
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return theme.Palette.Width(w - 2).Render(sb.String())
}
