package in

import (
	"context"
	"fmt"

	"pulsecue/internal/modules/daylog/dto"
	daylogin "pulsecue/internal/modules/daylog/port/in"
)

// Metric names accepted by SetMetric.
const (
	MetricIntake   = "intake"
	MetricExercise = "exercise"
	MetricSleep    = "sleep"
	MetricWeight   = "weight"
)

type CLIHandler struct {
	usecase daylogin.Usecase
}

func NewCLIHandler(usecase daylogin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Today(ctx context.Context) (dto.DayLogOutput, bool, error) {
	return h.usecase.GetTodayLog(ctx)
}

// SetMetric writes a single field of today's log, creating the log first
// when the day has none.
func (h CLIHandler) SetMetric(ctx context.Context, metric string, value float64) (dto.DayLogOutput, error) {
	input := dto.UpdateLogInput{}
	switch metric {
	case MetricIntake:
		input.CaloriesIntake = &value
	case MetricExercise:
		input.CaloriesExercise = &value
	case MetricSleep:
		input.SleepHours = &value
	case MetricWeight:
		input.WeightKg = &value
	default:
		return dto.DayLogOutput{}, fmt.Errorf("unknown metric %q", metric)
	}
	today, err := h.usecase.GetOrCreateTodayLog(ctx)
	if err != nil {
		return dto.DayLogOutput{}, err
	}
	input.ID = today.ID
	return h.usecase.UpdateLog(ctx, input)
}

func (h CLIHandler) Recent(ctx context.Context, days int) ([]dto.DayLogOutput, error) {
	return h.usecase.GetRecentLogs(ctx, dto.RecentLogsInput{Days: days})
}
