package in

import (
	"context"

	"pulsecue/internal/modules/runner/dto"
)

// Usecase drives a single run. Calls must be serialized by the caller.
type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.StatusOutput, error)
	StartCurrentStep(ctx context.Context) (dto.StatusOutput, error)
	Tick(ctx context.Context) (dto.StatusOutput, error)
	CompleteStep(ctx context.Context) (dto.StatusOutput, error)
	Skip(ctx context.Context) (dto.StatusOutput, error)
	AddTenSeconds(ctx context.Context) (dto.StatusOutput, error)
	GoBack(ctx context.Context) (dto.StatusOutput, error)
	Stop(ctx context.Context) (dto.StatusOutput, error)
	Restore(ctx context.Context) (dto.StatusOutput, error)
	Status(ctx context.Context) (dto.StatusOutput, error)
	Suspend(ctx context.Context) error
	Snapshot(ctx context.Context) (dto.SnapshotOutput, error)
}
