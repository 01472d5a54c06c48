package in

import (
	"context"
	"time"

	"pulsecue/internal/modules/runner/dto"
	runnerin "pulsecue/internal/modules/runner/port/in"
)

// RunLoop drives a run without a UI. Every value from ticks becomes a Tick,
// and a step left waiting in running is armed at once since nobody is there
// to start it. It returns once the run has nothing left to count down or ctx
// is done, and releases the timer in both cases.
func RunLoop(ctx context.Context, usecase runnerin.Usecase, ticks <-chan time.Time, onStatus func(dto.StatusOutput)) error {
	defer func() { _ = usecase.Suspend(context.WithoutCancel(ctx)) }()

	status, err := usecase.Status(ctx)
	if err != nil {
		return err
	}
	for {
		if status.Idle() || !status.HasCurrent {
			return nil
		}
		if !status.Resting() {
			if status, err = usecase.StartCurrentStep(ctx); err != nil {
				return err
			}
			report(onStatus, status)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticks:
			if status, err = usecase.Tick(ctx); err != nil {
				return err
			}
			report(onStatus, status)
		}
	}
}

func report(onStatus func(dto.StatusOutput), status dto.StatusOutput) {
	if onStatus != nil {
		onStatus(status)
	}
}
