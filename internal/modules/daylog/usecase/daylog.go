package usecase

import (
	"context"

	"pulsecue/internal/modules/daylog/domain"
	"pulsecue/internal/modules/daylog/dto"
	daylogin "pulsecue/internal/modules/daylog/port/in"
	"pulsecue/internal/modules/daylog/service"
)

type Interactor struct {
	svc *service.DayLogService
}

func NewInteractor(svc *service.DayLogService) daylogin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) GetTodayLog(ctx context.Context) (dto.DayLogOutput, bool, error) {
	log, ok, err := i.svc.Today(ctx)
	if err != nil || !ok {
		return dto.DayLogOutput{}, false, err
	}
	return toOutput(log), true, nil
}

func (i *Interactor) GetOrCreateTodayLog(ctx context.Context) (dto.DayLogOutput, error) {
	log, err := i.svc.TodayOrCreate(ctx)
	if err != nil {
		return dto.DayLogOutput{}, err
	}
	return toOutput(log), nil
}

func (i *Interactor) UpdateLog(ctx context.Context, input dto.UpdateLogInput) (dto.DayLogOutput, error) {
	log, err := i.svc.Update(ctx, input.ID, domain.Patch{
		CaloriesIntake:   input.CaloriesIntake,
		CaloriesExercise: input.CaloriesExercise,
		SleepHours:       input.SleepHours,
		WeightKg:         input.WeightKg,
	})
	if err != nil {
		return dto.DayLogOutput{}, err
	}
	return toOutput(log), nil
}

func (i *Interactor) GetRecentLogs(ctx context.Context, input dto.RecentLogsInput) ([]dto.DayLogOutput, error) {
	logs, err := i.svc.Recent(ctx, input.Days)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DayLogOutput, 0, len(logs))
	for _, log := range logs {
		out = append(out, toOutput(log))
	}
	return out, nil
}

func toOutput(log domain.DayLog) dto.DayLogOutput {
	return dto.DayLogOutput{
		ID:               log.ID,
		Day:              log.DayKey(),
		Date:             log.Date,
		CaloriesIntake:   log.CaloriesIntake,
		CaloriesExercise: log.CaloriesExercise,
		SleepHours:       log.SleepHours,
		WeightKg:         log.WeightKg,
		Balance:          log.Balance(),
	}
}
