package in

import (
	"context"
	"time"

	"pulsecue/internal/modules/runner/dto"
	runnerin "pulsecue/internal/modules/runner/port/in"
)

type CLIHandler struct {
	usecase runnerin.Usecase
}

func NewCLIHandler(usecase runnerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, routineID string, autoAdvance bool) (dto.StatusOutput, error) {
	return h.usecase.Start(ctx, dto.StartInput{RoutineID: routineID, AutoAdvance: autoAdvance})
}

func (h CLIHandler) StartStep(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.StartCurrentStep(ctx)
}

func (h CLIHandler) Tick(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Tick(ctx)
}

func (h CLIHandler) Skip(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Skip(ctx)
}

func (h CLIHandler) AddTenSeconds(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.AddTenSeconds(ctx)
}

func (h CLIHandler) Back(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.GoBack(ctx)
}

func (h CLIHandler) Stop(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Stop(ctx)
}

func (h CLIHandler) Restore(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Restore(ctx)
}

func (h CLIHandler) Status(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) Suspend(ctx context.Context) error {
	return h.usecase.Suspend(ctx)
}

func (h CLIHandler) Snapshot(ctx context.Context) (dto.SnapshotOutput, error) {
	return h.usecase.Snapshot(ctx)
}

// Run drives the current run headlessly until it finishes. See RunLoop.
func (h CLIHandler) Run(ctx context.Context, ticks <-chan time.Time, onStatus func(dto.StatusOutput)) error {
	return RunLoop(ctx, h.usecase, ticks, onStatus)
}
