package app

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	daylogdto "pulsecue/internal/modules/daylog/dto"
	routinedto "pulsecue/internal/modules/routine/dto"
	runnerdto "pulsecue/internal/modules/runner/dto"
	settingsdto "pulsecue/internal/modules/settings/dto"
	"pulsecue/internal/ui/components"
	workoutsview "pulsecue/internal/ui/views/workouts"
)

type fakeRoutines struct {
	routines []routinedto.RoutineOutput
	calls    []string
}

func (f *fakeRoutines) List(context.Context, string) ([]routinedto.RoutineOutput, error) {
	return f.routines, nil
}
func (f *fakeRoutines) Get(_ context.Context, id string) (routinedto.RoutineOutput, error) {
	for _, r := range f.routines {
		if r.ID == id {
			return r, nil
		}
	}
	return routinedto.RoutineOutput{}, errors.New("not found")
}
func (f *fakeRoutines) Create(_ context.Context, name string) (routinedto.RoutineOutput, error) {
	f.calls = append(f.calls, "create:"+name)
	return routinedto.RoutineOutput{ID: "new", Name: name}, nil
}
func (f *fakeRoutines) Rename(_ context.Context, id, name string) (routinedto.RoutineOutput, error) {
	f.calls = append(f.calls, "rename:"+id+":"+name)
	return routinedto.RoutineOutput{ID: id, Name: name}, nil
}
func (f *fakeRoutines) Delete(_ context.Context, id string) error {
	f.calls = append(f.calls, "delete:"+id)
	return nil
}
func (f *fakeRoutines) Duplicate(_ context.Context, id string) (routinedto.RoutineOutput, error) {
	f.calls = append(f.calls, "duplicate:"+id)
	return routinedto.RoutineOutput{ID: "copy"}, nil
}
func (f *fakeRoutines) TogglePin(_ context.Context, id string) (routinedto.RoutineOutput, error) {
	f.calls = append(f.calls, "pin:"+id)
	return routinedto.RoutineOutput{ID: id, IsPinned: true}, nil
}
func (f *fakeRoutines) AddStep(_ context.Context, routineID, name string, seconds int) (routinedto.StepOutput, error) {
	f.calls = append(f.calls, "add:"+routineID+":"+name)
	return routinedto.StepOutput{Name: name, DurationSeconds: seconds}, nil
}
func (f *fakeRoutines) UpdateStep(_ context.Context, stepID, name string, seconds int) (routinedto.StepOutput, error) {
	f.calls = append(f.calls, "update:"+stepID+":"+name)
	return routinedto.StepOutput{ID: stepID, Name: name, DurationSeconds: seconds}, nil
}
func (f *fakeRoutines) DeleteStep(_ context.Context, stepID string) error {
	f.calls = append(f.calls, "delete-step:"+stepID)
	return nil
}
func (f *fakeRoutines) MoveStep(_ context.Context, routineID string, from, delta int) (routinedto.RoutineOutput, error) {
	f.calls = append(f.calls, "move:"+routineID)
	return routinedto.RoutineOutput{ID: routineID}, nil
}

type fakeDayLogs struct {
	metric string
	value  float64
}

func (f *fakeDayLogs) Today(context.Context) (daylogdto.DayLogOutput, bool, error) {
	return daylogdto.DayLogOutput{}, false, nil
}
func (f *fakeDayLogs) SetMetric(_ context.Context, metric string, value float64) (daylogdto.DayLogOutput, error) {
	f.metric, f.value = metric, value
	return daylogdto.DayLogOutput{ID: "log", SleepHours: value}, nil
}
func (f *fakeDayLogs) Recent(context.Context, int) ([]daylogdto.DayLogOutput, error) {
	return nil, nil
}

type fakeSettings struct{ beep bool }

func (f *fakeSettings) Get(context.Context) (settingsdto.SettingsOutput, error) {
	return settingsdto.SettingsOutput{BeepEnabled: f.beep}, nil
}
func (f *fakeSettings) ToggleBeep(context.Context) (settingsdto.SettingsOutput, error) {
	f.beep = !f.beep
	return settingsdto.SettingsOutput{BeepEnabled: f.beep}, nil
}

type fakeRunner struct {
	calls  []string
	status runnerdto.StatusOutput
}

func (f *fakeRunner) record(op string) (runnerdto.StatusOutput, error) {
	f.calls = append(f.calls, op)
	return f.status, nil
}

func (f *fakeRunner) Start(_ context.Context, routineID string, auto bool) (runnerdto.StatusOutput, error) {
	f.status = runnerdto.StatusOutput{State: "resting", RoutineID: routineID, RoutineName: "Legs", HasCurrent: true, AutoAdvance: auto}
	return f.record("start")
}
func (f *fakeRunner) StartStep(context.Context) (runnerdto.StatusOutput, error) {
	return f.record("arm")
}
func (f *fakeRunner) Tick(context.Context) (runnerdto.StatusOutput, error) { return f.record("tick") }
func (f *fakeRunner) Skip(context.Context) (runnerdto.StatusOutput, error) { return f.record("skip") }
func (f *fakeRunner) AddTenSeconds(context.Context) (runnerdto.StatusOutput, error) {
	return f.record("add10")
}
func (f *fakeRunner) Back(context.Context) (runnerdto.StatusOutput, error) { return f.record("back") }
func (f *fakeRunner) Stop(context.Context) (runnerdto.StatusOutput, error) {
	f.status = runnerdto.StatusOutput{State: "idle"}
	return f.record("stop")
}

type harness struct {
	routines *fakeRoutines
	dayLogs  *fakeDayLogs
	settings *fakeSettings
	runner   *fakeRunner
	model    Model
}

func newHarness(t *testing.T, initial runnerdto.StatusOutput) *harness {
	t.Helper()
	h := &harness{
		routines: &fakeRoutines{routines: []routinedto.RoutineOutput{{
			ID:   "r1",
			Name: "Legs",
			Steps: []routinedto.StepOutput{
				{ID: "s1", RoutineID: "r1", Name: "Squats", DurationSeconds: 30, Order: 0},
				{ID: "s2", RoutineID: "r1", Name: "Lunges", DurationSeconds: 45, Order: 1},
			},
		}}},
		dayLogs:  &fakeDayLogs{},
		settings: &fakeSettings{beep: true},
		runner:   &fakeRunner{},
	}
	h.model = NewModel(h.routines, h.dayLogs, h.settings, h.runner, nil, nil, initial, false)
	h.send(tea.WindowSizeMsg{Width: 100, Height: 30})
	return h
}

// send feeds msg to the model and runs the resulting commands one level deep.
func (h *harness) send(msg tea.Msg) {
	next, cmd := h.model.Update(msg)
	h.model = next.(Model)
	h.drain(cmd)
}

func (h *harness) drain(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			h.drain(c)
		}
		return
	}
	switch msg.(type) {
	case nil, tea.QuitMsg:
		return
	}
	next, _ := h.model.Update(msg)
	h.model = next.(Model)
}

// load delivers the workouts list and the first routine's detail.
func (h *harness) load(t *testing.T) {
	t.Helper()
	h.send(workoutsview.RoutinesLoadedMsg{Routines: h.routines.routines})
	h.send(workoutsview.DetailLoadedMsg{Routine: h.routines.routines[0]})
	if _, ok := h.model.workView.SelectedRoutine(); !ok {
		t.Fatalf("expected a selected routine after load")
	}
}

func (h *harness) palette(input string) {
	h.send(components.PaletteSubmitMsg{Input: input})
}

func press(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestEnterOnWorkoutsStartsRunAndSwitchesTab(t *testing.T) {
	t.Parallel()
	h := newHarness(t, runnerdto.StatusOutput{})
	h.load(t)

	h.send(tea.KeyMsg{Type: tea.KeyEnter})

	if len(h.runner.calls) != 1 || h.runner.calls[0] != "start" {
		t.Fatalf("runner calls = %v", h.runner.calls)
	}
	if h.model.activeTab != tabRunner {
		t.Fatalf("active tab = %d, want runner", h.model.activeTab)
	}
}

func TestRunnerKeysAndTicksReachRunnerInOrder(t *testing.T) {
	t.Parallel()
	h := newHarness(t, runnerdto.StatusOutput{State: "resting", RoutineName: "Legs", HasCurrent: true})
	if h.model.activeTab != tabRunner {
		t.Fatalf("restored run should open the runner tab")
	}

	h.send(press(" "))
	h.send(tickMsg(time.Now()))
	h.send(press("+"))
	h.send(press("n"))
	h.send(press("b"))
	h.send(press("x"))

	want := []string{"arm", "tick", "add10", "skip", "back", "stop"}
	if len(h.runner.calls) != len(want) {
		t.Fatalf("runner calls = %v, want %v", h.runner.calls, want)
	}
	for i := range want {
		if h.runner.calls[i] != want[i] {
			t.Fatalf("runner calls = %v, want %v", h.runner.calls, want)
		}
	}
	if !h.model.runView.Status().Idle() {
		t.Fatalf("runner view should be idle after stop")
	}
}

func TestTickIsAppliedWhilePaletteIsOpen(t *testing.T) {
	t.Parallel()
	h := newHarness(t, runnerdto.StatusOutput{})
	h.send(press(":"))
	if !h.model.palette.Visible() {
		t.Fatalf("palette should be open")
	}
	h.send(tickMsg(time.Now()))
	if len(h.runner.calls) != 1 || h.runner.calls[0] != "tick" {
		t.Fatalf("runner calls = %v", h.runner.calls)
	}
}

func TestAlertShowsInStatusBar(t *testing.T) {
	t.Parallel()
	h := newHarness(t, runnerdto.StatusOutput{})
	h.send(alertMsg{Title: "Step Complete", Body: "Squats finished!"})
	if h.model.status != "Step Complete: Squats finished!" {
		t.Fatalf("status = %q", h.model.status)
	}
}

func TestPaletteRoutineAndStepCommands(t *testing.T) {
	t.Parallel()
	h := newHarness(t, runnerdto.StatusOutput{})
	h.load(t)

	h.palette("routine:new Upper body")
	h.palette("routine:rename Leg day")
	h.palette("step:add 40 Wall sit")
	h.palette("step:edit 35 Deep squats")
	h.palette("step:down")
	h.palette("routine:duplicate")

	want := []string{
		"create:Upper body",
		"rename:r1:Leg day",
		"add:r1:Wall sit",
		"update:s1:Deep squats",
		"move:r1",
		"duplicate:r1",
	}
	if len(h.routines.calls) != len(want) {
		t.Fatalf("routine calls = %v, want %v", h.routines.calls, want)
	}
	for i := range want {
		if h.routines.calls[i] != want[i] {
			t.Fatalf("routine calls = %v, want %v", h.routines.calls, want)
		}
	}
}

func TestPaletteRejectsBadStepArguments(t *testing.T) {
	t.Parallel()
	h := newHarness(t, runnerdto.StatusOutput{})
	h.load(t)

	h.palette("step:add ten Squats")
	if h.model.status != "usage: step:add <seconds> <name>" {
		t.Fatalf("status = %q", h.model.status)
	}
	if len(h.routines.calls) != 0 {
		t.Fatalf("no routine call expected, got %v", h.routines.calls)
	}
}

func TestPaletteLogAndSettings(t *testing.T) {
	t.Parallel()
	h := newHarness(t, runnerdto.StatusOutput{})

	h.palette("log:sleep 7.5")
	if h.dayLogs.metric != "sleep" || h.dayLogs.value != 7.5 {
		t.Fatalf("set metric = %s %v", h.dayLogs.metric, h.dayLogs.value)
	}
	if h.model.activeTab != tabToday {
		t.Fatalf("log commands should switch to the today tab")
	}

	h.palette("settings:beep")
	if h.settings.beep {
		t.Fatalf("beep should be toggled off")
	}
	if h.model.status != "beep off" {
		t.Fatalf("status = %q", h.model.status)
	}
}

func TestPaletteUnknownCommand(t *testing.T) {
	t.Parallel()
	h := newHarness(t, runnerdto.StatusOutput{})
	h.palette("reader:open")
	if h.model.status != "unknown command: reader:open" {
		t.Fatalf("status = %q", h.model.status)
	}
}
