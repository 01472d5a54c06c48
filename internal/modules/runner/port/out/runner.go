package out

import (
	"context"
	"time"

	"pulsecue/internal/modules/runner/domain"
)

// Notifier schedules local deadline alerts. Rescheduling is CancelAll
// followed by Schedule.
type Notifier interface {
	Schedule(ctx context.Context, alert domain.Alert) error
	CancelAll(ctx context.Context) error
}

// Feedback plays cues and haptics. Failures are the adapter's concern.
type Feedback interface {
	PlayCue(ctx context.Context)
	HapticImpact(ctx context.Context, intensity domain.Intensity)
	HapticNotification(ctx context.Context, kind domain.HapticKind)
}

// SnapshotStore persists the single in-progress run. Load returns
// apperrors.ErrNoSnapshot when nothing is stored.
type SnapshotStore interface {
	Save(ctx context.Context, snapshot domain.Snapshot) error
	Load(ctx context.Context) (domain.Snapshot, error)
	Clear(ctx context.Context) error
}

// RoutineFinder resolves a routine into an order-sorted plan. A missing
// routine returns apperrors.ErrNotFound.
type RoutineFinder interface {
	FindRoutineByID(ctx context.Context, id string) (domain.Plan, error)
}

// Timer drives periodic ticks while a countdown is armed. Start replaces a
// running timer; Stop is idempotent.
type Timer interface {
	Start(interval time.Duration)
	Stop()
}
