package usecase_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	settingsin "pulsecue/internal/modules/settings/adapter/in"
	settingsout "pulsecue/internal/modules/settings/adapter/out"
	"pulsecue/internal/modules/settings/service"
	"pulsecue/internal/modules/settings/usecase"
)

func newHandler(path string, logs *bytes.Buffer) settingsin.CLIHandler {
	svc := service.NewSettingsService(settingsout.NewFileSettingsStore(path), zerolog.New(logs))
	return settingsin.NewCLIHandler(usecase.NewInteractor(svc))
}

func TestBeepDefaultsOnAndTogglePersists(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	var logs bytes.Buffer
	h := newHandler(path, &logs)
	ctx := context.Background()

	got, err := h.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.BeepEnabled {
		t.Fatalf("beep should default to enabled")
	}

	toggled, err := h.ToggleBeep(ctx)
	if err != nil || toggled.BeepEnabled {
		t.Fatalf("toggle should disable beep: %+v %v", toggled, err)
	}

	reopened := newHandler(path, &logs)
	got, err = reopened.Get(ctx)
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if got.BeepEnabled {
		t.Fatalf("disabled beep should survive reopen")
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read settings: %v", err)
	}
	if !strings.Contains(string(payload), "beep_enabled: false") {
		t.Fatalf("unexpected settings file: %s", payload)
	}
}

func TestCorruptSettingsFallBackToDefaults(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("beep_enabled: [nope"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	var logs bytes.Buffer
	got, err := newHandler(path, &logs).Get(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.BeepEnabled {
		t.Fatalf("corrupt file should fall back to defaults")
	}
	if !strings.Contains(logs.String(), "settings unreadable") {
		t.Fatalf("expected warn log, got %s", logs.String())
	}
}
