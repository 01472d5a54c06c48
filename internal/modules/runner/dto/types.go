package dto

import "time"

type StartInput struct {
	RoutineID   string
	AutoAdvance bool
}

type StepView struct {
	ID              string
	Name            string
	DurationSeconds int
}

// StatusOutput is the view-state of the runner after an operation.
type StatusOutput struct {
	State            string
	RoutineID        string
	RoutineName      string
	StepIndex        int
	StepCount        int
	Current          StepView
	HasCurrent       bool
	Next             StepView
	HasNext          bool
	RemainingSeconds int
	Deadline         time.Time
	AutoAdvance      bool
	// Finished is set on the operation that completed the last step.
	Finished bool
}

// Idle also holds for the zero value.
func (s StatusOutput) Idle() bool {
	return s.State == "idle" || s.State == ""
}

func (s StatusOutput) Resting() bool {
	return s.State == "resting"
}

type SnapshotOutput struct {
	Present          bool
	RoutineID        string
	CurrentStepIndex int
	Deadline         time.Time
	IsRunning        bool
	ElapsedSeconds   int
	AutoAdvance      bool
}

// AlertOutput is a step alert that came due while the process was running.
type AlertOutput struct {
	Title string
	Body  string
}
