package out

import (
	"context"

	"pulsecue/internal/modules/daylog/domain"
)

type DayLogStore interface {
	Save(ctx context.Context, log domain.DayLog) error
	FindByID(ctx context.Context, id string) (domain.DayLog, error)
	// FindByDay misses with apperrors.ErrNotFound.
	FindByDay(ctx context.Context, dayKey string) (domain.DayLog, error)
	// ListDays returns logs with fromKey <= day < toKey, newest first.
	ListDays(ctx context.Context, fromKey, toKey string) ([]domain.DayLog, error)
}
