package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"pulsecue/internal/modules/runner/domain"
	runnerout "pulsecue/internal/modules/runner/port/out"
	"pulsecue/internal/platform/clock"
	apperrors "pulsecue/internal/platform/errors"
)

// OrphanPolicy decides what Restore does with a snapshot whose routine no
// longer exists.
type OrphanPolicy string

const (
	OrphanKeep  OrphanPolicy = "keep"
	OrphanClear OrphanPolicy = "clear"
)

const defaultTickInterval = time.Second

// RunnerService owns the run state machine and applies its effects. It is
// not safe for concurrent use; the caller serializes every operation onto
// one loop.
type RunnerService struct {
	clock        clock.Clock
	routines     runnerout.RoutineFinder
	snapshots    runnerout.SnapshotStore
	notifier     runnerout.Notifier
	feedback     runnerout.Feedback
	timer        runnerout.Timer
	logger       zerolog.Logger
	tickInterval time.Duration
	orphanPolicy OrphanPolicy

	machine domain.Machine
}

// Option customizes the runner service.
type Option func(*RunnerService)

func WithTickInterval(d time.Duration) Option {
	return func(s *RunnerService) {
		if d > 0 {
			s.tickInterval = d
		}
	}
}

func WithOrphanPolicy(p OrphanPolicy) Option {
	return func(s *RunnerService) {
		s.orphanPolicy = p
	}
}

func NewRunnerService(
	clock clock.Clock,
	routines runnerout.RoutineFinder,
	snapshots runnerout.SnapshotStore,
	notifier runnerout.Notifier,
	feedback runnerout.Feedback,
	timer runnerout.Timer,
	logger zerolog.Logger,
	opts ...Option,
) *RunnerService {
	s := &RunnerService{
		clock:        clock,
		routines:     routines,
		snapshots:    snapshots,
		notifier:     notifier,
		feedback:     feedback,
		timer:        timer,
		logger:       logger,
		tickInterval: defaultTickInterval,
		orphanPolicy: OrphanClear,
		machine:      domain.NewMachine(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RunnerService) Machine() domain.Machine {
	return s.machine
}

func (s *RunnerService) Start(ctx context.Context, routineID string, autoAdvance bool) (domain.Effects, error) {
	plan, err := s.routines.FindRoutineByID(ctx, routineID)
	if err != nil {
		return nil, err
	}
	effects := s.machine.Start(plan, autoAdvance, s.clock.Now())
	s.apply(ctx, effects)
	s.logger.Info().Str("routine_id", plan.RoutineID).Int("steps", len(plan.Steps)).Bool("auto_advance", autoAdvance).Msg("run started")
	return effects, nil
}

func (s *RunnerService) StartCurrentStep(ctx context.Context) (domain.Effects, error) {
	effects, err := s.machine.Arm(s.clock.Now())
	if err != nil {
		return nil, err
	}
	s.apply(ctx, effects)
	return effects, nil
}

func (s *RunnerService) Tick(ctx context.Context) domain.Effects {
	return s.run(ctx, s.machine.Tick)
}

func (s *RunnerService) CompleteStep(ctx context.Context) domain.Effects {
	return s.run(ctx, s.machine.CompleteStep)
}

func (s *RunnerService) Skip(ctx context.Context) domain.Effects {
	return s.run(ctx, s.machine.Skip)
}

func (s *RunnerService) AddTenSeconds(ctx context.Context) domain.Effects {
	return s.run(ctx, s.machine.AddTenSeconds)
}

func (s *RunnerService) GoBack(ctx context.Context) domain.Effects {
	effects := s.machine.GoBack()
	s.apply(ctx, effects)
	return effects
}

func (s *RunnerService) Stop(ctx context.Context) domain.Effects {
	effects := s.machine.Stop()
	s.apply(ctx, effects)
	return effects
}

// Suspend releases the tick timer when the process goes away. The snapshot
// already reflects the last transition.
func (s *RunnerService) Suspend() {
	s.timer.Stop()
}

// Restore rebuilds the run from the persisted snapshot. It reports whether a
// run was restored. Lookup misses are logged, never returned.
func (s *RunnerService) Restore(ctx context.Context) (bool, domain.Effects) {
	if s.machine.State != domain.StateIdle {
		return false, nil
	}
	snap, err := s.snapshots.Load(ctx)
	if errors.Is(err, apperrors.ErrNoSnapshot) {
		return false, nil
	}
	if err != nil {
		s.logger.Warn().Err(err).Msg("runner snapshot unreadable")
		return false, nil
	}
	if !snap.Active() {
		return false, nil
	}
	plan, err := s.routines.FindRoutineByID(ctx, snap.RoutineID)
	if errors.Is(err, apperrors.ErrNotFound) {
		s.logger.Warn().Str("routine_id", snap.RoutineID).Str("policy", string(s.orphanPolicy)).Msg("runner snapshot references a missing routine")
		if s.orphanPolicy == OrphanClear {
			if err := s.snapshots.Clear(ctx); err != nil {
				s.logger.Warn().Err(err).Str("routine_id", snap.RoutineID).Msg("runner snapshot clear failed")
			}
		}
		return false, nil
	}
	if err != nil {
		s.logger.Warn().Err(err).Str("routine_id", snap.RoutineID).Msg("runner restore lookup failed")
		return false, nil
	}

	effects := s.machine.Restore(snap, plan, s.clock.Now())
	s.apply(ctx, effects)
	s.logger.Info().
		Str("routine_id", plan.RoutineID).
		Int("step_index", s.machine.Index).
		Str("state", string(s.machine.State)).
		Msg("run restored")
	return true, effects
}

// LoadSnapshot reads the persisted snapshot without touching the run.
func (s *RunnerService) LoadSnapshot(ctx context.Context) (domain.Snapshot, bool, error) {
	snap, err := s.snapshots.Load(ctx)
	if errors.Is(err, apperrors.ErrNoSnapshot) {
		return domain.Snapshot{}, false, nil
	}
	if err != nil {
		return domain.Snapshot{}, false, err
	}
	return snap, snap.Active(), nil
}

func (s *RunnerService) run(ctx context.Context, transition func(time.Time) domain.Effects) domain.Effects {
	effects := transition(s.clock.Now())
	s.apply(ctx, effects)
	return effects
}

// apply performs effects in order, then writes or clears the snapshot once
// so it matches the final state.
func (s *RunnerService) apply(ctx context.Context, effects domain.Effects) {
	if len(effects) == 0 {
		return
	}
	for _, effect := range effects {
		switch effect.Kind {
		case domain.EffectStartTimer:
			s.timer.Start(s.tickInterval)
		case domain.EffectStopTimer:
			s.timer.Stop()
		case domain.EffectScheduleAlert:
			if err := s.notifier.Schedule(ctx, effect.Alert); err != nil {
				s.warn(err, "alert schedule failed")
			}
		case domain.EffectCancelAlerts:
			if err := s.notifier.CancelAll(ctx); err != nil {
				s.warn(err, "alert cancel failed")
			}
		case domain.EffectCue:
			s.feedback.PlayCue(ctx)
		case domain.EffectImpact:
			s.feedback.HapticImpact(ctx, effect.Intensity)
		case domain.EffectHaptic:
			s.feedback.HapticNotification(ctx, effect.Haptic)
		case domain.EffectFinished:
			s.logger.Info().Msg("run finished")
		}
	}

	switch {
	case effects.Has(domain.EffectClearSnapshot) && s.machine.State == domain.StateIdle:
		if err := s.snapshots.Clear(ctx); err != nil {
			s.warn(err, "runner snapshot clear failed")
		}
	case effects.Has(domain.EffectPersist):
		if err := s.snapshots.Save(ctx, s.machine.Snapshot()); err != nil {
			s.warn(err, "runner snapshot save failed")
		}
	}
}

func (s *RunnerService) warn(err error, msg string) {
	s.logger.Warn().
		Err(err).
		Str("routine_id", s.machine.Plan.RoutineID).
		Int("step_index", s.machine.Index).
		Msg(msg)
}
