package out

import (
	"context"

	"pulsecue/internal/modules/routine/domain"
)

// RoutineStore persists routines and their steps. Lookups that miss return
// apperrors.ErrNotFound.
type RoutineStore interface {
	SaveRoutine(ctx context.Context, routine domain.Routine) error
	FindRoutine(ctx context.Context, id string) (domain.Routine, error)
	ListRoutines(ctx context.Context) ([]domain.Routine, error)
	DeleteRoutine(ctx context.Context, id string) error

	SaveStep(ctx context.Context, step domain.Step) error
	FindStep(ctx context.Context, id string) (domain.Step, error)
	DeleteStep(ctx context.Context, id string) error
	DeleteSteps(ctx context.Context, routineID string) error
}

// UnitOfWork runs fn so that every store call made with the ctx it receives
// commits or rolls back together. Nested calls join the outer unit.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(context.Context) error) error
}
