package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	daylogdto "pulsecue/internal/modules/daylog/dto"
	routinedto "pulsecue/internal/modules/routine/dto"
	runnerdto "pulsecue/internal/modules/runner/dto"
	settingsdto "pulsecue/internal/modules/settings/dto"
	"pulsecue/internal/ui/components"
	"pulsecue/internal/ui/theme"
	historyview "pulsecue/internal/ui/views/history"
	runnerview "pulsecue/internal/ui/views/runner"
	settingsview "pulsecue/internal/ui/views/settings"
	todayview "pulsecue/internal/ui/views/today"
	workoutsview "pulsecue/internal/ui/views/workouts"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type routinePort interface {
	List(ctx context.Context, query string) ([]routinedto.RoutineOutput, error)
	Get(ctx context.Context, id string) (routinedto.RoutineOutput, error)
	Create(ctx context.Context, name string) (routinedto.RoutineOutput, error)
	Rename(ctx context.Context, id, name string) (routinedto.RoutineOutput, error)
	Delete(ctx context.Context, id string) error
	Duplicate(ctx context.Context, id string) (routinedto.RoutineOutput, error)
	TogglePin(ctx context.Context, id string) (routinedto.RoutineOutput, error)
	AddStep(ctx context.Context, routineID, name string, seconds int) (routinedto.StepOutput, error)
	UpdateStep(ctx context.Context, stepID, name string, seconds int) (routinedto.StepOutput, error)
	DeleteStep(ctx context.Context, stepID string) error
	MoveStep(ctx context.Context, routineID string, from, delta int) (routinedto.RoutineOutput, error)
}

type dayLogPort interface {
	Today(ctx context.Context) (daylogdto.DayLogOutput, bool, error)
	SetMetric(ctx context.Context, metric string, value float64) (daylogdto.DayLogOutput, error)
	Recent(ctx context.Context, days int) ([]daylogdto.DayLogOutput, error)
}

type settingsPort interface {
	Get(ctx context.Context) (settingsdto.SettingsOutput, error)
	ToggleBeep(ctx context.Context) (settingsdto.SettingsOutput, error)
}

// runnerPort calls are made synchronously from Update so that key presses and
// timer ticks reach the runner in order, on one goroutine.
type runnerPort interface {
	Start(ctx context.Context, routineID string, autoAdvance bool) (runnerdto.StatusOutput, error)
	StartStep(ctx context.Context) (runnerdto.StatusOutput, error)
	Tick(ctx context.Context) (runnerdto.StatusOutput, error)
	Skip(ctx context.Context) (runnerdto.StatusOutput, error)
	AddTenSeconds(ctx context.Context) (runnerdto.StatusOutput, error)
	Back(ctx context.Context) (runnerdto.StatusOutput, error)
	Stop(ctx context.Context) (runnerdto.StatusOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabWorkouts tabID = iota
	tabRunner
	tabToday
	tabHistory
	tabSettings
	tabCount
)

var tabLabels = [tabCount]string{
	"Workouts", "Runner", "Today", "History", "Settings",
}

// ─── async messages ───────────────────────────────────────────────────────────

type tickMsg time.Time

type alertMsg runnerdto.AlertOutput

// routineChangedMsg reports a finished routine mutation. follow, when >= 0,
// moves the step cursor to that index once the detail reloads.
type routineChangedMsg struct {
	status string
	follow int
	err    error
}

type dayLogChangedMsg struct {
	log daylogdto.DayLogOutput
	err error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Enter   key.Binding
	Pin     key.Binding
	Copy    key.Binding
	Cursor  key.Binding
	Arm     key.Binding
	Skip    key.Binding
	AddTime key.Binding
	Back    key.Binding
	Stop    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run routine / toggle")),
		Pin:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pin")),
		Copy:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "duplicate")),
		Cursor:  key.NewBinding(key.WithKeys("[", "]"), key.WithHelp("[/]", "step cursor")),
		Arm:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start step")),
		Skip:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "skip")),
		AddTime: key.NewBinding(key.WithKeys("+"), key.WithHelp("+", "add 10s")),
		Back:    key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "back")),
		Stop:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Enter, k.Pin, k.Copy, k.Cursor},
		{k.Arm, k.Skip, k.AddTime, k.Back, k.Stop},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the runner loop,
// the global help overlay, and the command palette. Business logic is
// delegated to port interfaces; rendering is delegated to sub-views.
type Model struct {
	// ports used at this orchestration level only
	routines routinePort
	dayLogs  dayLogPort
	runner   runnerPort

	ticks  <-chan time.Time
	alerts <-chan runnerdto.AlertOutput

	// sub-views (one per tab)
	workView     workoutsview.Model
	runView      runnerview.Model
	todayView    todayview.Model
	historyView  historyview.Model
	settingsView settingsview.Model

	// global UI state
	activeTab   tabID
	keys        keyMap
	help        help.Model
	showHelp    bool
	palette     components.Palette
	autoAdvance bool
	status      string
	width       int
	height      int
}

// ─── constructor ─────────────────────────────────────────────────────────────

// NewModel builds the root model. initial is the runner status after
// restore; a restored run opens on the Runner tab.
func NewModel(
	routines routinePort,
	dayLogs dayLogPort,
	settings settingsPort,
	runner runnerPort,
	ticks <-chan time.Time,
	alerts <-chan runnerdto.AlertOutput,
	initial runnerdto.StatusOutput,
	autoAdvance bool,
) Model {
	m := Model{
		routines:     routines,
		dayLogs:      dayLogs,
		runner:       runner,
		ticks:        ticks,
		alerts:       alerts,
		workView:     workoutsview.New(routinePortBridge{p: routines}),
		runView:      runnerview.New(),
		todayView:    todayview.New(dayLogPortBridge{p: dayLogs}),
		historyView:  historyview.New(dayLogPortBridge{p: dayLogs}),
		settingsView: settingsview.New(settings),
		activeTab:    tabWorkouts,
		keys:         defaultKeys(),
		help:         help.New(),
		palette:      components.NewPalette(),
		autoAdvance:  autoAdvance,
		status:       "ready",
	}
	m.runView.SetStatus(initial)
	if !initial.Idle() {
		m.activeTab = tabRunner
		m.status = "run restored: " + initial.RoutineName
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.workView.Init(),
		m.todayView.Init(),
		m.historyView.Init(),
		m.settingsView.Init(),
		waitForTick(m.ticks),
		waitForAlert(m.alerts),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Ticks and alerts keep flowing while the palette is open.
	switch msg := msg.(type) {
	case tickMsg:
		m.applyRunner(m.runner.Tick)
		return m, waitForTick(m.ticks)
	case alertMsg:
		m.status = msg.Title + ": " + msg.Body
		return m, waitForAlert(m.alerts)
	}

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()

	case routineChangedMsg:
		if msg.err != nil {
			m.status = "routine: " + msg.err.Error()
			return m, nil
		}
		m.status = msg.status
		if msg.follow >= 0 {
			m.workView.FollowStep(msg.follow)
		}
		return m, m.workView.Reload()

	case dayLogChangedMsg:
		if msg.err != nil {
			m.status = "log: " + msg.err.Error()
			return m, nil
		}
		m.todayView.Show(msg.log)
		m.status = "today's log updated"
		return m, m.historyView.Reload()

	case workoutsview.RoutinesLoadedMsg, workoutsview.DetailLoadedMsg:
		var cmd tea.Cmd
		m.workView, cmd = m.workView.Update(msg)
		return m, cmd

	case todayview.LoadedMsg:
		m.todayView, _ = m.todayView.Update(msg)
		return m, nil

	case historyview.LoadedMsg:
		m.historyView, _ = m.historyView.Update(msg)
		return m, nil

	case settingsview.LoadedMsg:
		m.settingsView, _ = m.settingsView.Update(msg)
		if msg.Toggled && msg.Err == nil {
			m.status = "beep " + onOff(msg.Settings.BeepEnabled)
		}
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			cmds = append(cmds, m.palette.Open())
			return m, tea.Batch(cmds...)
		}

		switch m.activeTab {
		case tabWorkouts:
			if cmd, handled := m.workoutsKey(msg.String()); handled {
				return m, cmd
			}
		case tabRunner:
			m.runnerKey(msg.String())
			return m, nil
		case tabSettings:
			if msg.String() == "enter" {
				return m, m.settingsView.ToggleBeep()
			}
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabWorkouts:
		m.workView, tabCmd = m.workView.Update(msg)
	case tabRunner:
		m.runView, tabCmd = m.runView.Update(msg)
	case tabToday:
		m.todayView, tabCmd = m.todayView.Update(msg)
	case tabHistory:
		m.historyView, tabCmd = m.historyView.Update(msg)
	case tabSettings:
		m.settingsView, tabCmd = m.settingsView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) workoutsKey(k string) (tea.Cmd, bool) {
	selected, ok := m.workView.SelectedRoutine()
	if !ok {
		return nil, false
	}
	switch k {
	case "enter":
		m.startRun(selected.ID, m.autoAdvance)
		return nil, true
	case "p":
		return m.togglePinCmd(selected.ID), true
	case "c":
		return m.duplicateCmd(selected.ID), true
	}
	return nil, false
}

func (m *Model) runnerKey(k string) {
	switch k {
	case " ":
		m.applyRunner(m.runner.StartStep)
	case "n":
		m.applyRunner(m.runner.Skip)
	case "+", "=":
		m.applyRunner(m.runner.AddTenSeconds)
	case "b":
		m.applyRunner(m.runner.Back)
	case "x":
		m.applyRunner(m.runner.Stop)
		m.status = "run stopped"
	}
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabWorkouts:
		return m.workView.View()
	case tabRunner:
		return m.runView.View()
	case tabToday:
		return m.todayView.View()
	case tabHistory:
		return m.historyView.View()
	case tabSettings:
		return m.settingsView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.TabActive.Render(label)
		} else {
			parts[i] = theme.TabIdle.Render(label)
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "pulsecue  " + strings.Join(parts, sep)
	return theme.Bar.Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if run := m.runView.Status(); !run.Idle() && run.HasCurrent {
		marker := "●"
		if run.Resting() {
			marker = "● " + components.Clock(run.RemainingSeconds)
		}
		left = theme.Hot.Render(marker+" "+run.Current.Name) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + theme.Bar.Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)
	verb := parts[0]
	rest := strings.TrimSpace(strings.TrimPrefix(input, verb))
	selected, hasSelected := m.workView.SelectedRoutine()
	step, hasStep := m.workView.SelectedStep()

	switch verb {
	case "routine:new":
		if rest == "" {
			m.status = "usage: routine:new <name>"
			return m, nil
		}
		m.activeTab = tabWorkouts
		return m, m.createRoutineCmd(rest)

	case "routine:search":
		m.activeTab = tabWorkouts
		return m, m.workView.Search(rest)

	case "routine:rename", "routine:pin", "routine:duplicate", "routine:delete":
		if !hasSelected {
			m.status = "no routine selected"
			return m, nil
		}
		switch verb {
		case "routine:rename":
			if rest == "" {
				m.status = "usage: routine:rename <name>"
				return m, nil
			}
			return m, m.renameRoutineCmd(selected.ID, rest)
		case "routine:pin":
			return m, m.togglePinCmd(selected.ID)
		case "routine:duplicate":
			return m, m.duplicateCmd(selected.ID)
		default:
			return m, m.deleteRoutineCmd(selected.ID, selected.Name)
		}

	case "step:add", "step:edit":
		seconds, name, err := parseStepArgs(parts)
		if err != nil {
			m.status = "usage: " + verb + " <seconds> <name>"
			return m, nil
		}
		if verb == "step:add" {
			if !hasSelected {
				m.status = "no routine selected"
				return m, nil
			}
			return m, m.addStepCmd(selected.ID, name, seconds)
		}
		if !hasStep {
			m.status = "no step selected"
			return m, nil
		}
		return m, m.updateStepCmd(step.ID, name, seconds)

	case "step:delete":
		if !hasStep {
			m.status = "no step selected"
			return m, nil
		}
		return m, m.deleteStepCmd(step.ID, step.Name)

	case "step:up", "step:down":
		if !hasStep {
			m.status = "no step selected"
			return m, nil
		}
		delta := -1
		if verb == "step:down" {
			delta = 1
		}
		return m, m.moveStepCmd(selected.ID, step.Order, delta, len(selected.Steps))

	case "run:start", "run:auto":
		if !hasSelected {
			m.status = "no routine selected"
			return m, nil
		}
		m.startRun(selected.ID, verb == "run:auto" || m.autoAdvance)
		return m, nil

	case "run:stop":
		m.applyRunner(m.runner.Stop)
		m.status = "run stopped"
		return m, nil

	case "log:intake", "log:exercise", "log:sleep", "log:weight":
		if len(parts) < 2 {
			m.status = "usage: " + verb + " <value>"
			return m, nil
		}
		value, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			m.status = "invalid number: " + parts[1]
			return m, nil
		}
		m.activeTab = tabToday
		return m, m.setMetricCmd(strings.TrimPrefix(verb, "log:"), value)

	case "settings:beep":
		return m, m.settingsView.ToggleBeep()

	default:
		m.status = "unknown command: " + verb
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) startRun(routineID string, auto bool) {
	m.applyRunner(func(ctx context.Context) (runnerdto.StatusOutput, error) {
		return m.runner.Start(ctx, routineID, auto)
	})
	if run := m.runView.Status(); !run.Idle() {
		m.activeTab = tabRunner
		m.status = "run started: " + run.RoutineName
	}
}

// applyRunner runs one runner operation and hands the result to the runner
// view.
func (m *Model) applyRunner(op func(context.Context) (runnerdto.StatusOutput, error)) {
	status, err := op(context.Background())
	if err != nil {
		m.status = "runner: " + err.Error()
		return
	}
	m.runView.SetStatus(status)
	if status.Finished {
		m.status = "routine complete"
	}
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.workView, _ = m.workView.Update(sz)
	m.runView, _ = m.runView.Update(sz)
	m.todayView, _ = m.todayView.Update(sz)
	m.historyView, _ = m.historyView.Update(sz)
	m.settingsView, _ = m.settingsView.Update(sz)
}

func parseStepArgs(parts []string) (int, string, error) {
	if len(parts) < 3 {
		return 0, "", fmt.Errorf("missing arguments")
	}
	seconds, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, "", err
	}
	return seconds, strings.Join(parts[2:], " "), nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// ─── async commands ───────────────────────────────────────────────────────────

func waitForTick(ticks <-chan time.Time) tea.Cmd {
	if ticks == nil {
		return nil
	}
	return func() tea.Msg {
		now, ok := <-ticks
		if !ok {
			return nil
		}
		return tickMsg(now)
	}
}

func waitForAlert(alerts <-chan runnerdto.AlertOutput) tea.Cmd {
	if alerts == nil {
		return nil
	}
	return func() tea.Msg {
		alert, ok := <-alerts
		if !ok {
			return nil
		}
		return alertMsg(alert)
	}
}

func (m Model) createRoutineCmd(name string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.routines.Create(context.Background(), name)
		return routineChangedMsg{status: "created " + out.Name, follow: -1, err: err}
	}
}

func (m Model) renameRoutineCmd(id, name string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.routines.Rename(context.Background(), id, name)
		return routineChangedMsg{status: "renamed to " + out.Name, follow: -1, err: err}
	}
}

func (m Model) togglePinCmd(id string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.routines.TogglePin(context.Background(), id)
		status := "unpinned " + out.Name
		if out.IsPinned {
			status = "pinned " + out.Name
		}
		return routineChangedMsg{status: status, follow: -1, err: err}
	}
}

func (m Model) duplicateCmd(id string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.routines.Duplicate(context.Background(), id)
		return routineChangedMsg{status: "created " + out.Name, follow: -1, err: err}
	}
}

func (m Model) deleteRoutineCmd(id, name string) tea.Cmd {
	return func() tea.Msg {
		err := m.routines.Delete(context.Background(), id)
		return routineChangedMsg{status: "deleted " + name, follow: -1, err: err}
	}
}

func (m Model) addStepCmd(routineID, name string, seconds int) tea.Cmd {
	return func() tea.Msg {
		out, err := m.routines.AddStep(context.Background(), routineID, name, seconds)
		return routineChangedMsg{status: "added " + out.Name, follow: out.Order, err: err}
	}
}

func (m Model) updateStepCmd(stepID, name string, seconds int) tea.Cmd {
	return func() tea.Msg {
		out, err := m.routines.UpdateStep(context.Background(), stepID, name, seconds)
		return routineChangedMsg{status: "updated " + out.Name, follow: -1, err: err}
	}
}

func (m Model) deleteStepCmd(stepID, name string) tea.Cmd {
	return func() tea.Msg {
		err := m.routines.DeleteStep(context.Background(), stepID)
		return routineChangedMsg{status: "deleted " + name, follow: -1, err: err}
	}
}

func (m Model) moveStepCmd(routineID string, from, delta, count int) tea.Cmd {
	target := min(max(from+delta, 0), count-1)
	return func() tea.Msg {
		_, err := m.routines.MoveStep(context.Background(), routineID, from, delta)
		return routineChangedMsg{status: "step moved", follow: target, err: err}
	}
}

func (m Model) setMetricCmd(metric string, value float64) tea.Cmd {
	return func() tea.Msg {
		out, err := m.dayLogs.SetMetric(context.Background(), metric, value)
		return dayLogChangedMsg{log: out, err: err}
	}
}

// ─── port bridges ─────────────────────────────────────────────────────────────
// Each bridge narrows a broad port interface to the minimal interface needed by
// a specific sub-view, keeping view packages free of knowledge about the wider
// port surface.

type routinePortBridge struct{ p routinePort }

func (b routinePortBridge) List(ctx context.Context, query string) ([]routinedto.RoutineOutput, error) {
	return b.p.List(ctx, query)
}
func (b routinePortBridge) Get(ctx context.Context, id string) (routinedto.RoutineOutput, error) {
	return b.p.Get(ctx, id)
}

type dayLogPortBridge struct{ p dayLogPort }

func (b dayLogPortBridge) Today(ctx context.Context) (daylogdto.DayLogOutput, bool, error) {
	return b.p.Today(ctx)
}
func (b dayLogPortBridge) Recent(ctx context.Context, days int) ([]daylogdto.DayLogOutput, error) {
	return b.p.Recent(ctx, days)
}
