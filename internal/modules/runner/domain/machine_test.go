package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pulsecue/internal/modules/runner/domain"
	apperrors "pulsecue/internal/platform/errors"
)

var t0 = time.Date(2026, 6, 1, 7, 0, 0, 0, time.UTC)

func plan(durations ...int) domain.Plan {
	p := domain.Plan{RoutineID: "r-1", RoutineName: "Intervals"}
	for i, d := range durations {
		p.Steps = append(p.Steps, domain.Step{ID: string(rune('a' + i)), Name: string(rune('A' + i)), DurationSeconds: d})
	}
	return p
}

func TestStartArmsFirstStep(t *testing.T) {
	t.Parallel()
	m := domain.NewMachine()
	effects := m.Start(plan(30, 45), false, t0)

	require.Equal(t, domain.StateResting, m.State)
	require.Equal(t, 0, m.Index)
	require.Equal(t, 30, m.Remaining)
	require.Equal(t, t0.Add(30*time.Second), m.Deadline)
	require.Equal(t, []domain.EffectKind{
		domain.EffectStartTimer,
		domain.EffectCancelAlerts,
		domain.EffectScheduleAlert,
		domain.EffectCue,
		domain.EffectImpact,
		domain.EffectPersist,
	}, effects.Kinds())
	require.Equal(t, "Step Complete", effects[2].Alert.Title)
	require.Equal(t, "A finished!", effects[2].Alert.Body)
	require.Equal(t, m.Deadline, effects[2].Alert.FiresAt)
	require.Equal(t, domain.IntensityMedium, effects[4].Intensity)
}

func TestStartEmptyPlanStaysRunning(t *testing.T) {
	t.Parallel()
	m := domain.NewMachine()
	effects := m.Start(plan(), false, t0)
	require.Equal(t, domain.StateRunning, m.State)
	require.Equal(t, []domain.EffectKind{domain.EffectPersist}, effects.Kinds())
	_, err := m.Arm(t0)
	require.ErrorIs(t, err, apperrors.ErrNoCurrentStep)
}

func TestStartReplacesRunInProgress(t *testing.T) {
	t.Parallel()
	m := domain.NewMachine()
	m.Start(plan(30, 45), false, t0)
	m.Skip(t0)

	effects := m.Start(plan(5), true, t0.Add(time.Minute))
	require.Equal(t, domain.EffectStopTimer, effects[0].Kind)
	require.True(t, effects.Has(domain.EffectClearSnapshot))
	require.Equal(t, 0, m.Index)
	require.True(t, m.AutoAdvance)
	require.Equal(t, domain.StateResting, m.State)
}

func TestTickToZeroAdvancesToRunning(t *testing.T) {
	t.Parallel()
	m := domain.NewMachine()
	m.Start(plan(30, 45), false, t0)

	m.Tick(t0.Add(10500 * time.Millisecond))
	require.Equal(t, 19, m.Remaining, "remaining truncates to whole seconds")
	require.Equal(t, domain.StateResting, m.State)

	effects := m.Tick(t0.Add(30 * time.Second))
	require.Equal(t, domain.StateRunning, m.State)
	require.Equal(t, 1, m.Index)
	require.Equal(t, 45, m.Remaining)
	require.True(t, m.Deadline.IsZero())
	require.True(t, effects.Has(domain.EffectStopTimer))
	require.True(t, effects.Has(domain.EffectHaptic))
	require.True(t, effects.Has(domain.EffectCue))
	require.False(t, effects.Has(domain.EffectStartTimer), "without auto-advance the next step waits")

	_, err := m.Arm(t0.Add(31 * time.Second))
	require.NoError(t, err)
	require.Equal(t, domain.StateResting, m.State)
	require.Equal(t, t0.Add(76*time.Second), m.Deadline)
}

func TestTickLongAfterDeadlineClampsToZero(t *testing.T) {
	t.Parallel()
	m := domain.NewMachine()
	m.Start(plan(30, 45), false, t0)
	m.Tick(t0.Add(time.Hour))
	require.Equal(t, 1, m.Index)
	require.Equal(t, domain.StateRunning, m.State)
}

func TestAutoAdvanceArmsNextStep(t *testing.T) {
	t.Parallel()
	m := domain.NewMachine()
	m.Start(plan(30, 45), true, t0)
	now := t0.Add(30 * time.Second)
	effects := m.Tick(now)
	require.Equal(t, domain.StateResting, m.State)
	require.Equal(t, 1, m.Index)
	require.Equal(t, now.Add(45*time.Second), m.Deadline)
	require.True(t, effects.Has(domain.EffectScheduleAlert))
}

func TestCompletingLastStepFinishesRun(t *testing.T) {
	t.Parallel()
	m := domain.NewMachine()
	m.Start(plan(30, 45), false, t0)
	m.CompleteStep(t0)
	_, err := m.Arm(t0)
	require.NoError(t, err)

	effects := m.CompleteStep(t0.Add(time.Second))
	require.Equal(t, domain.StateIdle, m.State)
	require.Equal(t, 0, m.Index)
	require.True(t, m.Deadline.IsZero())
	require.Equal(t, []domain.EffectKind{
		domain.EffectStopTimer,
		domain.EffectCancelAlerts,
		domain.EffectClearSnapshot,
		domain.EffectHaptic,
		domain.EffectFinished,
	}, effects.Kinds())
	require.False(t, m.Snapshot().Active())
}

func TestAddTenSecondsExtendsDeadline(t *testing.T) {
	t.Parallel()
	m := domain.NewMachine()
	m.Start(plan(30, 45), false, t0)
	deadline := m.Deadline
	now := t0.Add(25 * time.Second)
	m.Tick(now)
	require.Equal(t, 5, m.Remaining)

	effects := m.AddTenSeconds(now)
	require.Equal(t, deadline.Add(10*time.Second), m.Deadline)
	require.Equal(t, 15, m.Remaining)
	require.Equal(t, []domain.EffectKind{
		domain.EffectPersist,
		domain.EffectCancelAlerts,
		domain.EffectScheduleAlert,
		domain.EffectImpact,
	}, effects.Kinds())
	require.Equal(t, m.Deadline, effects[2].Alert.FiresAt)
	require.Equal(t, domain.IntensityLight, effects[3].Intensity)
}

func TestAddTenSecondsOnlyWhileResting(t *testing.T) {
	t.Parallel()
	m := domain.NewMachine()
	require.Nil(t, m.AddTenSeconds(t0))
	m.Start(plan(30, 45), false, t0)
	m.Skip(t0)
	require.Nil(t, m.AddTenSeconds(t0))
	require.True(t, m.Deadline.IsZero())
}

func TestGoBack(t *testing.T) {
	t.Parallel()
	m := domain.NewMachine()
	m.Start(plan(30, 45), false, t0)

	before := m
	require.Nil(t, m.GoBack(), "going back from the first step does nothing")
	require.Equal(t, before, m)

	m.Skip(t0)
	_, err := m.Arm(t0)
	require.NoError(t, err)
	effects := m.GoBack()
	require.Equal(t, 0, m.Index)
	require.Equal(t, domain.StateRunning, m.State)
	require.Equal(t, 30, m.Remaining)
	require.Equal(t, []domain.EffectKind{
		domain.EffectStopTimer,
		domain.EffectCancelAlerts,
		domain.EffectImpact,
		domain.EffectPersist,
	}, effects.Kinds())
}

func TestStopFromAnyState(t *testing.T) {
	t.Parallel()
	m := domain.NewMachine()
	m.Start(plan(30), false, t0)
	effects := m.Stop()
	require.Equal(t, domain.NewMachine(), m)
	require.True(t, effects.Has(domain.EffectClearSnapshot))

	idle := domain.NewMachine()
	require.True(t, idle.Stop().Has(domain.EffectCancelAlerts))
}

func TestArmFromIdleFails(t *testing.T) {
	t.Parallel()
	m := domain.NewMachine()
	_, err := m.Arm(t0)
	require.True(t, errors.Is(err, apperrors.ErrNoActiveRun))
}

func TestRestoreFutureDeadlineResumes(t *testing.T) {
	t.Parallel()
	snap := domain.Snapshot{RoutineID: "r-1", CurrentStepIndex: 1, Deadline: t0.Add(20 * time.Second), IsRunning: true}
	m := domain.NewMachine()
	effects := m.Restore(snap, plan(30, 45), t0)

	require.Equal(t, domain.StateResting, m.State)
	require.Equal(t, 1, m.Index)
	require.Equal(t, 20, m.Remaining)
	require.Equal(t, []domain.EffectKind{
		domain.EffectStartTimer,
		domain.EffectCancelAlerts,
		domain.EffectScheduleAlert,
		domain.EffectPersist,
	}, effects.Kinds())
	require.Equal(t, "B finished!", effects[2].Alert.Body)
}

func TestRestorePastDeadlineDoesNotAutoAdvance(t *testing.T) {
	t.Parallel()
	snap := domain.Snapshot{RoutineID: "r-1", CurrentStepIndex: 0, Deadline: t0.Add(-time.Minute), IsRunning: true}
	m := domain.NewMachine()
	effects := m.Restore(snap, plan(30, 45), t0)

	require.Equal(t, domain.StateRunning, m.State)
	require.Equal(t, 0, m.Index)
	require.Equal(t, snap.Deadline, m.Deadline)
	require.False(t, effects.Has(domain.EffectStartTimer))
	require.False(t, effects.Has(domain.EffectHaptic))
}

func TestRestoreNotRunningWaitsOnStep(t *testing.T) {
	t.Parallel()
	snap := domain.Snapshot{RoutineID: "r-1", CurrentStepIndex: 1, AutoAdvance: true}
	m := domain.NewMachine()
	m.Restore(snap, plan(30, 45), t0)
	require.Equal(t, domain.StateRunning, m.State)
	require.Equal(t, 1, m.Index)
	require.Equal(t, 45, m.Remaining)
	require.True(t, m.AutoAdvance)

	// The restored step can be armed straight away; an idle machine could not.
	_, err := m.Arm(t0)
	require.NoError(t, err)
	require.Equal(t, domain.StateResting, m.State)
	require.Equal(t, t0.Add(45*time.Second), m.Deadline)
}

func TestRestoreClampsIndexPastEnd(t *testing.T) {
	t.Parallel()
	snap := domain.Snapshot{RoutineID: "r-1", CurrentStepIndex: 5, Deadline: t0.Add(time.Minute), IsRunning: true}
	m := domain.NewMachine()
	m.Restore(snap, plan(30, 45), t0)
	require.Equal(t, 1, m.Index)
	require.Equal(t, domain.StateRunning, m.State)
}

func TestSnapshotReflectsState(t *testing.T) {
	t.Parallel()
	m := domain.NewMachine()
	m.Start(plan(30, 45), true, t0)
	snap := m.Snapshot()
	require.Equal(t, domain.Snapshot{
		RoutineID:        "r-1",
		CurrentStepIndex: 0,
		Deadline:         t0.Add(30 * time.Second),
		IsRunning:        true,
		AutoAdvance:      true,
	}, snap)

	m.Skip(t0)
	require.True(t, m.Snapshot().IsRunning, "auto-advance re-arms the next step")
	require.Equal(t, 1, m.Snapshot().CurrentStepIndex)

	m.Stop()
	require.False(t, m.Snapshot().Active())
}

func TestStaleTickIsIgnored(t *testing.T) {
	t.Parallel()
	m := domain.NewMachine()
	m.Start(plan(30, 45), false, t0)
	m.Skip(t0)
	before := m
	require.Nil(t, m.Tick(t0.Add(time.Hour)))
	require.Equal(t, before, m)
}
