package usecase

import (
	"context"

	"pulsecue/internal/modules/settings/dto"
	settingsin "pulsecue/internal/modules/settings/port/in"
	"pulsecue/internal/modules/settings/service"
)

type Interactor struct {
	svc *service.SettingsService
}

func NewInteractor(svc *service.SettingsService) settingsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) GetSettings(ctx context.Context) (dto.SettingsOutput, error) {
	prefs := i.svc.Get(ctx)
	return dto.SettingsOutput{BeepEnabled: prefs.BeepEnabled}, nil
}

func (i *Interactor) SetBeepEnabled(ctx context.Context, input dto.SetBeepInput) (dto.SettingsOutput, error) {
	prefs := i.svc.SetBeepEnabled(ctx, input.Enabled)
	return dto.SettingsOutput{BeepEnabled: prefs.BeepEnabled}, nil
}
