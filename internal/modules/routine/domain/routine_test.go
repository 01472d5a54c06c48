package domain_test

import (
	"errors"
	"testing"
	"time"

	"pulsecue/internal/modules/routine/domain"
	apperrors "pulsecue/internal/platform/errors"
)

func steps(names ...string) []domain.Step {
	out := make([]domain.Step, len(names))
	for i, name := range names {
		out[i] = domain.Step{ID: name, RoutineID: "r", Name: name, DurationSeconds: 10, Order: i}
	}
	return out
}

func names(steps []domain.Step) string {
	s := ""
	for _, step := range steps {
		s += step.Name
	}
	return s
}

func TestValidate(t *testing.T) {
	t.Parallel()
	r := domain.Routine{ID: "r-1", Name: "Legs", CreatedAt: time.Now()}
	if err := r.Validate(); err != nil {
		t.Fatalf("routine should be valid: %v", err)
	}
	r.Name = "   "
	if err := r.Validate(); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("blank name should be invalid input, got %v", err)
	}
	s := domain.Step{ID: "s-1", RoutineID: "r-1", Name: "Squat", DurationSeconds: 1}
	if err := s.Validate(); err != nil {
		t.Fatalf("one second step should be valid: %v", err)
	}
	s.DurationSeconds = 0
	if err := s.Validate(); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("zero duration should be invalid input, got %v", err)
	}
}

func TestSortedStepsUsesOrderNotPosition(t *testing.T) {
	t.Parallel()
	r := domain.Routine{Steps: []domain.Step{
		{ID: "c", Name: "C", Order: 2},
		{ID: "a", Name: "A", Order: 0},
		{ID: "b", Name: "B", Order: 1},
	}}
	if got := names(r.SortedSteps()); got != "ABC" {
		t.Fatalf("expected ABC, got %s", got)
	}
	if r.Steps[0].ID != "c" {
		t.Fatalf("SortedSteps must not mutate the routine")
	}
}

func TestMoveSteps(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		from []int
		to   int
		want string
	}{
		{name: "first to end", from: []int{0}, to: 4, want: "BCDA"},
		{name: "last to front", from: []int{3}, to: 0, want: "DABC"},
		{name: "down one", from: []int{1}, to: 3, want: "ACBD"},
		{name: "up one", from: []int{2}, to: 1, want: "ACBD"},
		{name: "no-op in place", from: []int{1}, to: 1, want: "ABCD"},
		{name: "no-op just after", from: []int{1}, to: 2, want: "ABCD"},
		{name: "multi keeps relative order", from: []int{0, 2}, to: 4, want: "BDAC"},
		{name: "multi to middle", from: []int{0, 3}, to: 2, want: "BADC"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := domain.MoveSteps(steps("A", "B", "C", "D"), tc.from, tc.to)
			if err != nil {
				t.Fatalf("move: %v", err)
			}
			if got := names(out); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
			for i, step := range out {
				if step.Order != i {
					t.Fatalf("order must match position: step %s has order %d at %d", step.Name, step.Order, i)
				}
			}
			if !domain.IsDense(out) {
				t.Fatalf("orders must be dense")
			}
		})
	}
}

func TestMoveStepsRejectsOutOfRange(t *testing.T) {
	t.Parallel()
	if _, err := domain.MoveSteps(steps("A", "B"), []int{2}, 0); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid source offset, got %v", err)
	}
	if _, err := domain.MoveSteps(steps("A", "B"), []int{0}, 3); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid destination, got %v", err)
	}
}

func TestIsDense(t *testing.T) {
	t.Parallel()
	if !domain.IsDense(nil) {
		t.Fatalf("empty list is dense")
	}
	gap := steps("A", "B", "C")
	gap[2].Order = 3
	if domain.IsDense(gap) {
		t.Fatalf("gap should not be dense")
	}
	dup := steps("A", "B")
	dup[1].Order = 0
	if domain.IsDense(dup) {
		t.Fatalf("duplicate orders should not be dense")
	}
}
