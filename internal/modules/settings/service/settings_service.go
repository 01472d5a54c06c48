package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"pulsecue/internal/modules/settings/domain"
	settingsout "pulsecue/internal/modules/settings/port/out"
	apperrors "pulsecue/internal/platform/errors"
)

type SettingsService struct {
	store  settingsout.PreferencesStore
	logger zerolog.Logger
}

func NewSettingsService(store settingsout.PreferencesStore, logger zerolog.Logger) *SettingsService {
	return &SettingsService{store: store, logger: logger}
}

// Get never fails: a missing or unreadable file yields the defaults.
func (s *SettingsService) Get(ctx context.Context) domain.Preferences {
	prefs, err := s.store.Load(ctx)
	if errors.Is(err, apperrors.ErrNotFound) {
		return domain.Defaults()
	}
	if err != nil {
		s.logger.Warn().Err(err).Msg("settings unreadable, using defaults")
		return domain.Defaults()
	}
	return prefs
}

func (s *SettingsService) SetBeepEnabled(ctx context.Context, enabled bool) domain.Preferences {
	prefs := s.Get(ctx)
	prefs.BeepEnabled = enabled
	if err := s.store.Save(ctx, prefs); err != nil {
		s.logger.Warn().Err(err).Msg("settings write failed")
	}
	return prefs
}
