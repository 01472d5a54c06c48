package dto

import "time"

type CreateRoutineInput struct {
	Name string
}

type RenameRoutineInput struct {
	ID   string
	Name string
}

type AddStepInput struct {
	RoutineID       string
	Name            string
	DurationSeconds int
}

type UpdateStepInput struct {
	StepID          string
	Name            string
	DurationSeconds int
}

type ReorderStepsInput struct {
	RoutineID string
	From      []int
	To        int
}

type ListRoutinesInput struct {
	Query string
}

type StepOutput struct {
	ID              string
	RoutineID       string
	Name            string
	DurationSeconds int
	Order           int
}

// RoutineOutput carries steps already sorted by Order.
type RoutineOutput struct {
	ID        string
	Name      string
	CreatedAt time.Time
	IsPinned  bool
	Steps     []StepOutput
}

func (r RoutineOutput) TotalSeconds() int {
	total := 0
	for _, step := range r.Steps {
		total += step.DurationSeconds
	}
	return total
}
