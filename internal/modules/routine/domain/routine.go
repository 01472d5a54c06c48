package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	apperrors "pulsecue/internal/platform/errors"
)

// CopySuffix is appended to the name of a duplicated routine.
const CopySuffix = " (Copy)"

type Routine struct {
	ID        string
	Name      string
	CreatedAt time.Time
	IsPinned  bool
	Steps     []Step
}

// Step belongs to exactly one routine, referenced by RoutineID.
type Step struct {
	ID              string
	RoutineID       string
	Name            string
	DurationSeconds int
	Order           int
}

func (r Routine) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("%w: routine id is required", apperrors.ErrInvalidInput)
	}
	return ValidateName(r.Name)
}

func (s Step) Validate() error {
	if strings.TrimSpace(s.ID) == "" || strings.TrimSpace(s.RoutineID) == "" {
		return fmt.Errorf("%w: step id and routine id are required", apperrors.ErrInvalidInput)
	}
	if err := ValidateName(s.Name); err != nil {
		return err
	}
	return ValidateDuration(s.DurationSeconds)
}

func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", apperrors.ErrInvalidInput)
	}
	return nil
}

func ValidateDuration(seconds int) error {
	if seconds < 1 {
		return fmt.Errorf("%w: duration must be at least 1 second, got %d", apperrors.ErrInvalidInput, seconds)
	}
	return nil
}

// SortedSteps returns a copy of the steps in ascending Order. Steps are always
// addressed this way, never by slice position.
func (r Routine) SortedSteps() []Step {
	out := make([]Step, len(r.Steps))
	copy(out, r.Steps)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Renumber rewrites Order to match slice position, 0-indexed.
func Renumber(steps []Step) []Step {
	out := make([]Step, len(steps))
	for i, step := range steps {
		step.Order = i
		out[i] = step
	}
	return out
}

// IsDense reports whether the orders of steps form the permutation 0..N-1.
func IsDense(steps []Step) bool {
	seen := make([]bool, len(steps))
	for _, step := range steps {
		if step.Order < 0 || step.Order >= len(steps) || seen[step.Order] {
			return false
		}
		seen[step.Order] = true
	}
	return true
}

// MoveSteps moves the elements at the from offsets so they sit just before
// the element originally at offset to (to == len(steps) appends). Moved
// elements keep their relative order. Orders are rewritten densely.
func MoveSteps(steps []Step, from []int, to int) ([]Step, error) {
	n := len(steps)
	if to < 0 || to > n {
		return nil, fmt.Errorf("%w: destination %d out of range 0..%d", apperrors.ErrInvalidInput, to, n)
	}
	selected := make(map[int]struct{}, len(from))
	for _, idx := range from {
		if idx < 0 || idx >= n {
			return nil, fmt.Errorf("%w: source offset %d out of range 0..%d", apperrors.ErrInvalidInput, idx, n-1)
		}
		selected[idx] = struct{}{}
	}

	moved := make([]Step, 0, len(selected))
	rest := make([]Step, 0, n-len(selected))
	insertAt := to
	for i, step := range steps {
		if _, ok := selected[i]; ok {
			moved = append(moved, step)
			if i < to {
				insertAt--
			}
			continue
		}
		rest = append(rest, step)
	}

	out := make([]Step, 0, n)
	out = append(out, rest[:insertAt]...)
	out = append(out, moved...)
	out = append(out, rest[insertAt:]...)
	return Renumber(out), nil
}
