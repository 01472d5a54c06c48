package usecase

import (
	"context"

	"pulsecue/internal/modules/runner/domain"
	"pulsecue/internal/modules/runner/dto"
	runnerin "pulsecue/internal/modules/runner/port/in"
	"pulsecue/internal/modules/runner/service"
)

type Interactor struct {
	svc *service.RunnerService
}

func NewInteractor(svc *service.RunnerService) runnerin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Start(ctx context.Context, input dto.StartInput) (dto.StatusOutput, error) {
	effects, err := i.svc.Start(ctx, input.RoutineID, input.AutoAdvance)
	if err != nil {
		return i.status(nil), err
	}
	return i.status(effects), nil
}

func (i *Interactor) StartCurrentStep(ctx context.Context) (dto.StatusOutput, error) {
	effects, err := i.svc.StartCurrentStep(ctx)
	if err != nil {
		return i.status(nil), err
	}
	return i.status(effects), nil
}

func (i *Interactor) Tick(ctx context.Context) (dto.StatusOutput, error) {
	return i.status(i.svc.Tick(ctx)), nil
}

func (i *Interactor) CompleteStep(ctx context.Context) (dto.StatusOutput, error) {
	return i.status(i.svc.CompleteStep(ctx)), nil
}

func (i *Interactor) Skip(ctx context.Context) (dto.StatusOutput, error) {
	return i.status(i.svc.Skip(ctx)), nil
}

func (i *Interactor) AddTenSeconds(ctx context.Context) (dto.StatusOutput, error) {
	return i.status(i.svc.AddTenSeconds(ctx)), nil
}

func (i *Interactor) GoBack(ctx context.Context) (dto.StatusOutput, error) {
	return i.status(i.svc.GoBack(ctx)), nil
}

func (i *Interactor) Stop(ctx context.Context) (dto.StatusOutput, error) {
	return i.status(i.svc.Stop(ctx)), nil
}

func (i *Interactor) Restore(ctx context.Context) (dto.StatusOutput, error) {
	_, effects := i.svc.Restore(ctx)
	return i.status(effects), nil
}

func (i *Interactor) Status(context.Context) (dto.StatusOutput, error) {
	return i.status(nil), nil
}

func (i *Interactor) Suspend(context.Context) error {
	i.svc.Suspend()
	return nil
}

func (i *Interactor) Snapshot(ctx context.Context) (dto.SnapshotOutput, error) {
	snap, ok, err := i.svc.LoadSnapshot(ctx)
	if err != nil || !ok {
		return dto.SnapshotOutput{}, err
	}
	return dto.SnapshotOutput{
		Present:          true,
		RoutineID:        snap.RoutineID,
		CurrentStepIndex: snap.CurrentStepIndex,
		Deadline:         snap.Deadline,
		IsRunning:        snap.IsRunning,
		ElapsedSeconds:   snap.ElapsedSeconds,
		AutoAdvance:      snap.AutoAdvance,
	}, nil
}

func (i *Interactor) status(effects domain.Effects) dto.StatusOutput {
	m := i.svc.Machine()
	out := dto.StatusOutput{
		State:            string(m.State),
		RoutineID:        m.Plan.RoutineID,
		RoutineName:      m.Plan.RoutineName,
		StepIndex:        m.Index,
		StepCount:        len(m.Plan.Steps),
		RemainingSeconds: m.Remaining,
		Deadline:         m.Deadline,
		AutoAdvance:      m.AutoAdvance,
		Finished:         effects.Has(domain.EffectFinished),
	}
	if step, ok := m.Current(); ok {
		out.Current, out.HasCurrent = toStepView(step), true
	}
	if step, ok := m.Next(); ok {
		out.Next, out.HasNext = toStepView(step), true
	}
	return out
}

func toStepView(step domain.Step) dto.StepView {
	return dto.StepView{ID: step.ID, Name: step.Name, DurationSeconds: step.DurationSeconds}
}
