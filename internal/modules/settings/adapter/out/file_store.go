package out

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"pulsecue/internal/modules/settings/domain"
	"pulsecue/internal/platform/atomicfile"
	apperrors "pulsecue/internal/platform/errors"
)

type fileDocument struct {
	BeepEnabled *bool `yaml:"beep_enabled"`
}

// FileSettingsStore keeps preferences in a small YAML document.
type FileSettingsStore struct {
	path string
}

func NewFileSettingsStore(path string) *FileSettingsStore {
	return &FileSettingsStore{path: path}
}

func (s *FileSettingsStore) Load(_ context.Context) (domain.Preferences, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Preferences{}, apperrors.ErrNotFound
		}
		return domain.Preferences{}, fmt.Errorf("read settings: %w", err)
	}
	var doc fileDocument
	if err := yaml.Unmarshal(payload, &doc); err != nil {
		return domain.Preferences{}, fmt.Errorf("decode settings: %w", err)
	}
	prefs := domain.Defaults()
	if doc.BeepEnabled != nil {
		prefs.BeepEnabled = *doc.BeepEnabled
	}
	return prefs, nil
}

func (s *FileSettingsStore) Save(_ context.Context, prefs domain.Preferences) error {
	beep := prefs.BeepEnabled
	payload, err := yaml.Marshal(fileDocument{BeepEnabled: &beep})
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := atomicfile.Write(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
