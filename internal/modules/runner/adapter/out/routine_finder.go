package out

import (
	"context"
	"fmt"

	routinedto "pulsecue/internal/modules/routine/dto"
	routinein "pulsecue/internal/modules/routine/port/in"
	"pulsecue/internal/modules/runner/domain"
	apperrors "pulsecue/internal/platform/errors"
)

// RoutineFinder resolves runs through the routine module's usecase.
type RoutineFinder struct {
	routines routinein.Usecase
}

func NewRoutineFinder(routines routinein.Usecase) RoutineFinder {
	return RoutineFinder{routines: routines}
}

func (f RoutineFinder) FindRoutineByID(ctx context.Context, id string) (domain.Plan, error) {
	routine, ok, err := f.routines.FindRoutine(ctx, id)
	if err != nil {
		return domain.Plan{}, err
	}
	if !ok {
		return domain.Plan{}, fmt.Errorf("routine %s: %w", id, apperrors.ErrNotFound)
	}
	return toPlan(routine), nil
}

func toPlan(routine routinedto.RoutineOutput) domain.Plan {
	plan := domain.Plan{RoutineID: routine.ID, RoutineName: routine.Name}
	for _, step := range routine.Steps {
		plan.Steps = append(plan.Steps, domain.Step{
			ID:              step.ID,
			Name:            step.Name,
			DurationSeconds: step.DurationSeconds,
		})
	}
	return plan
}
