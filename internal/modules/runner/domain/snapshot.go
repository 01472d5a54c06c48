package domain

import "time"

// Snapshot is the durable record of a run in progress. A zero RoutineID
// means no run. Deadline is zero when no countdown was recorded.
type Snapshot struct {
	RoutineID        string
	CurrentStepIndex int
	Deadline         time.Time
	IsRunning        bool
	ElapsedSeconds   int
	AutoAdvance      bool
}

func (s Snapshot) Active() bool {
	return s.RoutineID != ""
}
