package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"pulsecue/internal/modules/daylog/domain"
	daylogout "pulsecue/internal/modules/daylog/port/out"
	"pulsecue/internal/platform/clock"
	apperrors "pulsecue/internal/platform/errors"
	"pulsecue/internal/platform/id"
)

type DayLogService struct {
	clock  clock.Clock
	idGen  id.Generator
	store  daylogout.DayLogStore
	logger zerolog.Logger
}

func NewDayLogService(clock clock.Clock, idGen id.Generator, store daylogout.DayLogStore, logger zerolog.Logger) *DayLogService {
	return &DayLogService{clock: clock, idGen: idGen, store: store, logger: logger}
}

// Today returns the log for the current local day, if any.
func (s *DayLogService) Today(ctx context.Context) (domain.DayLog, bool, error) {
	log, err := s.store.FindByDay(ctx, domain.DayKey(s.clock.Now()))
	if errors.Is(err, apperrors.ErrNotFound) {
		return domain.DayLog{}, false, nil
	}
	if err != nil {
		return domain.DayLog{}, false, err
	}
	return s.local(log), true, nil
}

func (s *DayLogService) TodayOrCreate(ctx context.Context) (domain.DayLog, error) {
	log, ok, err := s.Today(ctx)
	if err != nil {
		return domain.DayLog{}, err
	}
	if ok {
		return log, nil
	}
	now := s.clock.Now()
	log = domain.DayLog{ID: s.idGen.New(), Day: domain.DayKey(now), Date: now}
	if err := s.store.Save(ctx, log); err != nil {
		s.logger.Warn().Err(err).Str("day", log.DayKey()).Msg("day log write failed")
	}
	return log, nil
}

func (s *DayLogService) Update(ctx context.Context, id string, patch domain.Patch) (domain.DayLog, error) {
	log, err := s.store.FindByID(ctx, id)
	if err != nil {
		return domain.DayLog{}, err
	}
	log, err = s.local(log).Apply(patch)
	if err != nil {
		return domain.DayLog{}, err
	}
	if err := s.store.Save(ctx, log); err != nil {
		s.logger.Warn().Err(err).Str("day", log.DayKey()).Msg("day log write failed")
	}
	return log, nil
}

// Recent returns logs from the last days calendar days through today,
// newest first.
func (s *DayLogService) Recent(ctx context.Context, days int) ([]domain.DayLog, error) {
	if days <= 0 {
		days = domain.DefaultRecentDays
	}
	start := clock.StartOfDay(s.clock.Now())
	from := start.AddDate(0, 0, -days)
	to := start.AddDate(0, 0, 1)
	logs, err := s.store.ListDays(ctx, domain.DayKey(from), domain.DayKey(to))
	if err != nil {
		return nil, err
	}
	for i := range logs {
		logs[i] = s.local(logs[i])
	}
	return logs, nil
}

// local moves Date into the clock's zone, the one day keys are computed in.
func (s *DayLogService) local(log domain.DayLog) domain.DayLog {
	log.Date = log.Date.In(s.clock.Now().Location())
	return log
}
