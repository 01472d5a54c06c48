package in

import (
	"context"

	"pulsecue/internal/modules/settings/dto"
	settingsin "pulsecue/internal/modules/settings/port/in"
)

type CLIHandler struct {
	usecase settingsin.Usecase
}

func NewCLIHandler(usecase settingsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Get(ctx context.Context) (dto.SettingsOutput, error) {
	return h.usecase.GetSettings(ctx)
}

func (h CLIHandler) ToggleBeep(ctx context.Context) (dto.SettingsOutput, error) {
	current, err := h.usecase.GetSettings(ctx)
	if err != nil {
		return dto.SettingsOutput{}, err
	}
	return h.usecase.SetBeepEnabled(ctx, dto.SetBeepInput{Enabled: !current.BeepEnabled})
}
