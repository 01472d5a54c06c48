package domain

import (
	"fmt"
	"time"

	apperrors "pulsecue/internal/platform/errors"
)

type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StateResting State = "resting"
)

// AddedTime is how much AddTenSeconds pushes the deadline back.
const AddedTime = 10 * time.Second

type Step struct {
	ID              string
	Name            string
	DurationSeconds int
}

func (s Step) Duration() time.Duration {
	return time.Duration(s.DurationSeconds) * time.Second
}

// Plan is the routine being run with its steps already in ascending order.
type Plan struct {
	RoutineID   string
	RoutineName string
	Steps       []Step
}

// Machine is the run state. It performs no I/O: every transition takes the
// current time and returns the effects the caller must apply.
//
// In StateRunning the current step is selected but not counting down; in
// StateResting Deadline is set and ticks recompute Remaining from it.
type Machine struct {
	State       State
	Plan        Plan
	Index       int
	Deadline    time.Time
	Remaining   int
	Elapsed     int
	AutoAdvance bool
}

func NewMachine() Machine {
	return Machine{State: StateIdle}
}

func (m Machine) Current() (Step, bool) {
	if m.State == StateIdle || m.Index < 0 || m.Index >= len(m.Plan.Steps) {
		return Step{}, false
	}
	return m.Plan.Steps[m.Index], true
}

func (m Machine) Next() (Step, bool) {
	if m.State == StateIdle || m.Index+1 >= len(m.Plan.Steps) {
		return Step{}, false
	}
	return m.Plan.Steps[m.Index+1], true
}

// Start begins a run of plan from the first step, stopping any run already
// in progress. A plan with steps is armed immediately.
func (m *Machine) Start(plan Plan, autoAdvance bool, now time.Time) Effects {
	var effects Effects
	if m.State != StateIdle {
		effects = append(effects, m.Stop()...)
	}
	*m = Machine{
		State:       StateRunning,
		Plan:        plan,
		AutoAdvance: autoAdvance,
	}
	if step, ok := m.Current(); ok {
		m.Remaining = step.DurationSeconds
		return append(effects, m.arm(now)...)
	}
	return append(effects, do(EffectPersist))
}

// Arm starts the countdown of the current step. Arming an already armed step
// does nothing.
func (m *Machine) Arm(now time.Time) (Effects, error) {
	switch m.State {
	case StateIdle:
		return nil, apperrors.ErrNoActiveRun
	case StateResting:
		return nil, nil
	}
	if _, ok := m.Current(); !ok {
		return nil, fmt.Errorf("%w: index %d of %d", apperrors.ErrNoCurrentStep, m.Index, len(m.Plan.Steps))
	}
	return m.arm(now), nil
}

func (m *Machine) arm(now time.Time) Effects {
	step, _ := m.Current()
	m.Deadline = now.Add(step.Duration())
	m.Remaining = step.DurationSeconds
	m.State = StateResting
	return Effects{
		do(EffectStartTimer),
		do(EffectCancelAlerts),
		schedule(stepAlert(step, m.Deadline)),
		do(EffectCue),
		impact(IntensityMedium),
		do(EffectPersist),
	}
}

// Tick recomputes Remaining from the deadline and completes the step once it
// reaches zero. Outside StateResting it does nothing, so a tick delivered
// after the timer was cancelled cannot change state.
func (m *Machine) Tick(now time.Time) Effects {
	if m.State != StateResting || m.Deadline.IsZero() {
		return nil
	}
	m.Remaining = remainingSeconds(m.Deadline, now)
	effects := Effects{do(EffectPersist)}
	if m.Remaining == 0 {
		effects = append(effects, m.CompleteStep(now)...)
	}
	return effects
}

// CompleteStep moves to the next step, or ends the run after the last one.
// With AutoAdvance the next step is armed immediately.
func (m *Machine) CompleteStep(now time.Time) Effects {
	if m.State == StateIdle {
		return nil
	}
	if m.Index+1 >= len(m.Plan.Steps) {
		effects := m.Stop()
		return append(effects, haptic(HapticSuccess), do(EffectFinished))
	}
	m.Index++
	m.Elapsed = 0
	m.State = StateRunning
	m.Deadline = time.Time{}
	next, _ := m.Current()
	m.Remaining = next.DurationSeconds
	effects := Effects{
		do(EffectStopTimer),
		do(EffectCancelAlerts),
		haptic(HapticSuccess),
		do(EffectCue),
		do(EffectPersist),
	}
	if m.AutoAdvance {
		effects = append(effects, m.arm(now)...)
	}
	return effects
}

// Skip completes the current step regardless of time left.
func (m *Machine) Skip(now time.Time) Effects {
	return m.CompleteStep(now)
}

// AddTenSeconds pushes the deadline back and replaces the pending alert.
func (m *Machine) AddTenSeconds(now time.Time) Effects {
	if m.State != StateResting || m.Deadline.IsZero() {
		return nil
	}
	m.Deadline = m.Deadline.Add(AddedTime)
	effects := m.Tick(now)
	if m.State == StateResting {
		step, _ := m.Current()
		effects = append(effects, do(EffectCancelAlerts), schedule(stepAlert(step, m.Deadline)))
	}
	return append(effects, impact(IntensityLight))
}

// GoBack returns to the previous step without arming it. At the first step
// it does nothing.
func (m *Machine) GoBack() Effects {
	if m.State == StateIdle || m.Index == 0 {
		return nil
	}
	m.Index--
	m.Elapsed = 0
	m.State = StateRunning
	m.Deadline = time.Time{}
	step, _ := m.Current()
	m.Remaining = step.DurationSeconds
	return Effects{
		do(EffectStopTimer),
		do(EffectCancelAlerts),
		impact(IntensityLight),
		do(EffectPersist),
	}
}

// Stop ends the run from any state.
func (m *Machine) Stop() Effects {
	*m = NewMachine()
	return Effects{
		do(EffectStopTimer),
		do(EffectCancelAlerts),
		do(EffectClearSnapshot),
	}
}

// Restore rebuilds the run recorded in snap against plan. A countdown whose
// deadline is still ahead resumes; anything else lands in StateRunning on
// the recorded step and waits for the user. An index past the end of the
// plan is clamped to the last step.
func (m *Machine) Restore(snap Snapshot, plan Plan, now time.Time) Effects {
	*m = Machine{
		State:       StateRunning,
		Plan:        plan,
		Index:       snap.CurrentStepIndex,
		Deadline:    snap.Deadline,
		Elapsed:     snap.ElapsedSeconds,
		AutoAdvance: snap.AutoAdvance,
	}
	clamped := false
	if m.Index < 0 {
		m.Index = 0
	}
	if n := len(plan.Steps); m.Index >= n && n > 0 {
		m.Index = n - 1
		clamped = true
	}
	step, ok := m.Current()
	if !ok {
		return Effects{do(EffectStopTimer), do(EffectPersist)}
	}

	if snap.IsRunning && !clamped && !m.Deadline.IsZero() && m.Deadline.After(now) {
		m.State = StateResting
		effects := Effects{
			do(EffectStartTimer),
			do(EffectCancelAlerts),
			schedule(stepAlert(step, m.Deadline)),
		}
		return append(effects, m.Tick(now)...)
	}
	m.Remaining = step.DurationSeconds
	return Effects{do(EffectStopTimer), do(EffectPersist)}
}

func (m Machine) Snapshot() Snapshot {
	return Snapshot{
		RoutineID:        m.Plan.RoutineID,
		CurrentStepIndex: m.Index,
		Deadline:         m.Deadline,
		IsRunning:        m.State == StateResting,
		ElapsedSeconds:   m.Elapsed,
		AutoAdvance:      m.AutoAdvance,
	}
}

func remainingSeconds(deadline, now time.Time) int {
	left := deadline.Sub(now)
	if left <= 0 {
		return 0
	}
	return int(left / time.Second)
}
