package domain_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"pulsecue/internal/modules/daylog/domain"
	apperrors "pulsecue/internal/platform/errors"
)

func ptr(v float64) *float64 { return &v }

func TestApplyOnlyOverwritesSuppliedFields(t *testing.T) {
	t.Parallel()
	log := domain.DayLog{ID: "d", CaloriesIntake: 2000, CaloriesExercise: 300, SleepHours: 7}

	got, err := log.Apply(domain.Patch{CaloriesExercise: ptr(450), WeightKg: ptr(72.5)})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got.CaloriesIntake != 2000 || got.SleepHours != 7 {
		t.Fatalf("unsupplied fields must keep prior values: %+v", got)
	}
	if got.CaloriesExercise != 450 || got.WeightKg == nil || *got.WeightKg != 72.5 {
		t.Fatalf("supplied fields must overwrite: %+v", got)
	}
	if got.Balance() != 1550 {
		t.Fatalf("expected balance 1550, got %v", got.Balance())
	}
	if log.WeightKg != nil {
		t.Fatalf("apply must not mutate the receiver")
	}
}

func TestApplyRejectsNegativeValues(t *testing.T) {
	t.Parallel()
	_, err := domain.DayLog{}.Apply(domain.Patch{SleepHours: ptr(-1)})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestDayKeyUsesLocation(t *testing.T) {
	t.Parallel()
	loc := time.FixedZone("UTC+10", 10*3600)
	ts := time.Date(2026, 5, 1, 23, 30, 0, 0, time.UTC)
	if got := domain.DayKey(ts.In(loc)); got != "2026-05-02" {
		t.Fatalf("expected local day 2026-05-02, got %s", got)
	}
}

func TestValidateReportsFirstNegativeField(t *testing.T) {
	t.Parallel()
	patch := domain.Patch{CaloriesExercise: ptr(-5), SleepHours: ptr(-1), WeightKg: ptr(-70)}
	for i := 0; i < 20; i++ {
		err := patch.Validate()
		if err == nil || !strings.Contains(err.Error(), "calories exercise") {
			t.Fatalf("run %d: expected calories exercise to be reported, got %v", i, err)
		}
	}
}

func TestFiledDayWinsOverDateZone(t *testing.T) {
	t.Parallel()
	log := domain.DayLog{Day: "2026-05-01", Date: time.Date(2026, 5, 2, 3, 30, 0, 0, time.UTC)}
	if got := log.DayKey(); got != "2026-05-01" {
		t.Fatalf("expected filed day 2026-05-01, got %s", got)
	}
}
