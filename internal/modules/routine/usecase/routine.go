package usecase

import (
	"context"
	"errors"

	"pulsecue/internal/modules/routine/domain"
	"pulsecue/internal/modules/routine/dto"
	routinein "pulsecue/internal/modules/routine/port/in"
	"pulsecue/internal/modules/routine/service"
	apperrors "pulsecue/internal/platform/errors"
)

type Interactor struct {
	svc *service.RoutineService
}

func NewInteractor(svc *service.RoutineService) routinein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) CreateRoutine(ctx context.Context, input dto.CreateRoutineInput) (dto.RoutineOutput, error) {
	routine, err := i.svc.Create(ctx, input.Name)
	if err != nil {
		return dto.RoutineOutput{}, err
	}
	return toRoutineOutput(routine), nil
}

func (i *Interactor) RenameRoutine(ctx context.Context, input dto.RenameRoutineInput) (dto.RoutineOutput, error) {
	routine, err := i.svc.Rename(ctx, input.ID, input.Name)
	if err != nil {
		return dto.RoutineOutput{}, err
	}
	return toRoutineOutput(routine), nil
}

func (i *Interactor) DeleteRoutine(ctx context.Context, id string) error {
	return i.svc.Delete(ctx, id)
}

func (i *Interactor) DuplicateRoutine(ctx context.Context, id string) (dto.RoutineOutput, error) {
	routine, err := i.svc.Duplicate(ctx, id)
	if err != nil {
		return dto.RoutineOutput{}, err
	}
	return toRoutineOutput(routine), nil
}

func (i *Interactor) TogglePin(ctx context.Context, id string) (dto.RoutineOutput, error) {
	routine, err := i.svc.TogglePin(ctx, id)
	if err != nil {
		return dto.RoutineOutput{}, err
	}
	return toRoutineOutput(routine), nil
}

func (i *Interactor) AddStep(ctx context.Context, input dto.AddStepInput) (dto.StepOutput, error) {
	step, err := i.svc.AddStep(ctx, input.RoutineID, input.Name, input.DurationSeconds)
	if err != nil {
		return dto.StepOutput{}, err
	}
	return toStepOutput(step), nil
}

func (i *Interactor) UpdateStep(ctx context.Context, input dto.UpdateStepInput) (dto.StepOutput, error) {
	step, err := i.svc.UpdateStep(ctx, input.StepID, input.Name, input.DurationSeconds)
	if err != nil {
		return dto.StepOutput{}, err
	}
	return toStepOutput(step), nil
}

func (i *Interactor) DeleteStep(ctx context.Context, stepID string) error {
	return i.svc.DeleteStep(ctx, stepID)
}

func (i *Interactor) ReorderSteps(ctx context.Context, input dto.ReorderStepsInput) (dto.RoutineOutput, error) {
	routine, err := i.svc.Reorder(ctx, input.RoutineID, input.From, input.To)
	if err != nil {
		return dto.RoutineOutput{}, err
	}
	return toRoutineOutput(routine), nil
}

func (i *Interactor) ListRoutines(ctx context.Context, input dto.ListRoutinesInput) ([]dto.RoutineOutput, error) {
	routines, err := i.svc.List(ctx, input.Query)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RoutineOutput, 0, len(routines))
	for _, routine := range routines {
		out = append(out, toRoutineOutput(routine))
	}
	return out, nil
}

func (i *Interactor) GetRoutine(ctx context.Context, id string) (dto.RoutineOutput, error) {
	routine, err := i.svc.Get(ctx, id)
	if err != nil {
		return dto.RoutineOutput{}, err
	}
	return toRoutineOutput(routine), nil
}

func (i *Interactor) FindRoutine(ctx context.Context, id string) (dto.RoutineOutput, bool, error) {
	routine, err := i.svc.Get(ctx, id)
	if errors.Is(err, apperrors.ErrNotFound) {
		return dto.RoutineOutput{}, false, nil
	}
	if err != nil {
		return dto.RoutineOutput{}, false, err
	}
	return toRoutineOutput(routine), true, nil
}

func toRoutineOutput(routine domain.Routine) dto.RoutineOutput {
	sorted := routine.SortedSteps()
	steps := make([]dto.StepOutput, 0, len(sorted))
	for _, step := range sorted {
		steps = append(steps, toStepOutput(step))
	}
	return dto.RoutineOutput{
		ID:        routine.ID,
		Name:      routine.Name,
		CreatedAt: routine.CreatedAt,
		IsPinned:  routine.IsPinned,
		Steps:     steps,
	}
}

func toStepOutput(step domain.Step) dto.StepOutput {
	return dto.StepOutput{
		ID:              step.ID,
		RoutineID:       step.RoutineID,
		Name:            step.Name,
		DurationSeconds: step.DurationSeconds,
		Order:           step.Order,
	}
}
