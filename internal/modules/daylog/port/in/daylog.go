package in

import (
	"context"

	"pulsecue/internal/modules/daylog/dto"
)

type Usecase interface {
	GetTodayLog(ctx context.Context) (dto.DayLogOutput, bool, error)
	GetOrCreateTodayLog(ctx context.Context) (dto.DayLogOutput, error)
	UpdateLog(ctx context.Context, input dto.UpdateLogInput) (dto.DayLogOutput, error)
	GetRecentLogs(ctx context.Context, input dto.RecentLogsInput) ([]dto.DayLogOutput, error)
}
