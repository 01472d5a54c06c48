package in

import (
	"context"

	"pulsecue/internal/modules/settings/dto"
)

type Usecase interface {
	GetSettings(ctx context.Context) (dto.SettingsOutput, error)
	SetBeepEnabled(ctx context.Context, input dto.SetBeepInput) (dto.SettingsOutput, error)
}
