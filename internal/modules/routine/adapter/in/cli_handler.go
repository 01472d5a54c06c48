package in

import (
	"context"

	"pulsecue/internal/modules/routine/dto"
	routinein "pulsecue/internal/modules/routine/port/in"
)

type CLIHandler struct {
	usecase routinein.Usecase
}

func NewCLIHandler(usecase routinein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Create(ctx context.Context, name string) (dto.RoutineOutput, error) {
	return h.usecase.CreateRoutine(ctx, dto.CreateRoutineInput{Name: name})
}

func (h CLIHandler) Rename(ctx context.Context, id, name string) (dto.RoutineOutput, error) {
	return h.usecase.RenameRoutine(ctx, dto.RenameRoutineInput{ID: id, Name: name})
}

func (h CLIHandler) Delete(ctx context.Context, id string) error {
	return h.usecase.DeleteRoutine(ctx, id)
}

func (h CLIHandler) Duplicate(ctx context.Context, id string) (dto.RoutineOutput, error) {
	return h.usecase.DuplicateRoutine(ctx, id)
}

func (h CLIHandler) TogglePin(ctx context.Context, id string) (dto.RoutineOutput, error) {
	return h.usecase.TogglePin(ctx, id)
}

func (h CLIHandler) AddStep(ctx context.Context, routineID, name string, seconds int) (dto.StepOutput, error) {
	return h.usecase.AddStep(ctx, dto.AddStepInput{RoutineID: routineID, Name: name, DurationSeconds: seconds})
}

func (h CLIHandler) UpdateStep(ctx context.Context, stepID, name string, seconds int) (dto.StepOutput, error) {
	return h.usecase.UpdateStep(ctx, dto.UpdateStepInput{StepID: stepID, Name: name, DurationSeconds: seconds})
}

func (h CLIHandler) DeleteStep(ctx context.Context, stepID string) error {
	return h.usecase.DeleteStep(ctx, stepID)
}

// MoveStep moves the step at offset from by delta positions (negative moves
// it up), clamping at both ends.
func (h CLIHandler) MoveStep(ctx context.Context, routineID string, from, delta int) (dto.RoutineOutput, error) {
	routine, err := h.usecase.GetRoutine(ctx, routineID)
	if err != nil {
		return dto.RoutineOutput{}, err
	}
	target := from + delta
	if target < 0 {
		target = 0
	}
	if target > len(routine.Steps)-1 {
		target = len(routine.Steps) - 1
	}
	// Destinations are "insert before"; moving down lands past the target.
	to := target
	if target > from {
		to = target + 1
	}
	return h.usecase.ReorderSteps(ctx, dto.ReorderStepsInput{RoutineID: routineID, From: []int{from}, To: to})
}

func (h CLIHandler) List(ctx context.Context, query string) ([]dto.RoutineOutput, error) {
	return h.usecase.ListRoutines(ctx, dto.ListRoutinesInput{Query: query})
}

func (h CLIHandler) Get(ctx context.Context, id string) (dto.RoutineOutput, error) {
	return h.usecase.GetRoutine(ctx, id)
}
