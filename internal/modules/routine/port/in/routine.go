package in

import (
	"context"

	"pulsecue/internal/modules/routine/dto"
)

type Usecase interface {
	CreateRoutine(ctx context.Context, input dto.CreateRoutineInput) (dto.RoutineOutput, error)
	RenameRoutine(ctx context.Context, input dto.RenameRoutineInput) (dto.RoutineOutput, error)
	DeleteRoutine(ctx context.Context, id string) error
	DuplicateRoutine(ctx context.Context, id string) (dto.RoutineOutput, error)
	TogglePin(ctx context.Context, id string) (dto.RoutineOutput, error)
	AddStep(ctx context.Context, input dto.AddStepInput) (dto.StepOutput, error)
	UpdateStep(ctx context.Context, input dto.UpdateStepInput) (dto.StepOutput, error)
	DeleteStep(ctx context.Context, stepID string) error
	ReorderSteps(ctx context.Context, input dto.ReorderStepsInput) (dto.RoutineOutput, error)
	ListRoutines(ctx context.Context, input dto.ListRoutinesInput) ([]dto.RoutineOutput, error)
	GetRoutine(ctx context.Context, id string) (dto.RoutineOutput, error)
	// FindRoutine reports a missing routine as ok=false rather than an error.
	FindRoutine(ctx context.Context, id string) (dto.RoutineOutput, bool, error)
}
