package out

import (
	"context"

	"pulsecue/internal/modules/settings/domain"
)

type PreferencesStore interface {
	// Load returns apperrors.ErrNotFound when nothing has been saved yet.
	Load(ctx context.Context) (domain.Preferences, error)
	Save(ctx context.Context, prefs domain.Preferences) error
}
