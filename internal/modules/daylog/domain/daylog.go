package domain

import (
	"fmt"
	"time"

	apperrors "pulsecue/internal/platform/errors"
)

// DayKeyLayout formats the local calendar day a log belongs to.
const DayKeyLayout = "2006-01-02"

// DefaultRecentDays is used when a caller asks for a non-positive window.
const DefaultRecentDays = 7

type DayLog struct {
	ID string
	// Day is the calendar day the log was filed under. It is fixed at
	// creation and wins over Date, whose zone depends on who reads it.
	Day              string
	Date             time.Time
	CaloriesIntake   float64
	CaloriesExercise float64
	SleepHours       float64
	WeightKg         *float64
}

// Balance is intake minus exercise. It is never stored.
func (d DayLog) Balance() float64 {
	return d.CaloriesIntake - d.CaloriesExercise
}

func (d DayLog) DayKey() string {
	if d.Day != "" {
		return d.Day
	}
	return DayKey(d.Date)
}

func DayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

// Patch overwrites only the non-nil fields.
type Patch struct {
	CaloriesIntake   *float64
	CaloriesExercise *float64
	SleepHours       *float64
	WeightKg         *float64
}

// Validate reports the first negative field in declaration order.
func (p Patch) Validate() error {
	fields := []struct {
		name  string
		value *float64
	}{
		{"calories intake", p.CaloriesIntake},
		{"calories exercise", p.CaloriesExercise},
		{"sleep hours", p.SleepHours},
		{"weight", p.WeightKg},
	}
	for _, f := range fields {
		if f.value != nil && *f.value < 0 {
			return fmt.Errorf("%w: %s must not be negative", apperrors.ErrInvalidInput, f.name)
		}
	}
	return nil
}

func (d DayLog) Apply(p Patch) (DayLog, error) {
	if err := p.Validate(); err != nil {
		return DayLog{}, err
	}
	if p.CaloriesIntake != nil {
		d.CaloriesIntake = *p.CaloriesIntake
	}
	if p.CaloriesExercise != nil {
		d.CaloriesExercise = *p.CaloriesExercise
	}
	if p.SleepHours != nil {
		d.SleepHours = *p.SleepHours
	}
	if p.WeightKg != nil {
		w := *p.WeightKg
		d.WeightKg = &w
	}
	return d, nil
}
