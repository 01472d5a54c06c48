package out

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"pulsecue/internal/modules/runner/domain"
	runnerout "pulsecue/internal/modules/runner/port/out"
	"pulsecue/internal/platform/clock"
)

// ScheduledNotifier delivers alerts in-process when they come due.
type ScheduledNotifier struct {
	clock   clock.Clock
	deliver func(domain.Alert)

	mu      sync.Mutex
	pending []*time.Timer
}

func NewScheduledNotifier(clock clock.Clock, deliver func(domain.Alert)) *ScheduledNotifier {
	return &ScheduledNotifier{clock: clock, deliver: deliver}
}

func (n *ScheduledNotifier) Schedule(_ context.Context, alert domain.Alert) error {
	delay := alert.FiresAt.Sub(n.clock.Now())
	if delay < 0 {
		delay = 0
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pending = append(n.pending, time.AfterFunc(delay, func() {
		if n.deliver != nil {
			n.deliver(alert)
		}
	}))
	return nil
}

func (n *ScheduledNotifier) CancelAll(context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, timer := range n.pending {
		timer.Stop()
	}
	n.pending = nil
	return nil
}

// Pending reports how many alerts have been scheduled since the last
// CancelAll.
func (n *ScheduledNotifier) Pending() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.pending)
}

// LogNotifier records alert traffic at debug level.
type LogNotifier struct {
	logger zerolog.Logger
}

func NewLogNotifier(logger zerolog.Logger) LogNotifier {
	return LogNotifier{logger: logger}
}

func (n LogNotifier) Schedule(_ context.Context, alert domain.Alert) error {
	n.logger.Debug().Str("title", alert.Title).Str("body", alert.Body).Time("fires_at", alert.FiresAt).Msg("alert scheduled")
	return nil
}

func (n LogNotifier) CancelAll(context.Context) error {
	n.logger.Debug().Msg("alerts cancelled")
	return nil
}

// MultiNotifier fans out to several notifiers and returns the first error.
type MultiNotifier struct {
	notifiers []runnerout.Notifier
}

func NewMultiNotifier(notifiers ...runnerout.Notifier) *MultiNotifier {
	filtered := make([]runnerout.Notifier, 0, len(notifiers))
	for _, n := range notifiers {
		if n == nil {
			continue
		}
		filtered = append(filtered, n)
	}
	return &MultiNotifier{notifiers: filtered}
}

func (m *MultiNotifier) Schedule(ctx context.Context, alert domain.Alert) error {
	var firstErr error
	for _, n := range m.notifiers {
		if err := n.Schedule(ctx, alert); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (m *MultiNotifier) CancelAll(ctx context.Context) error {
	var firstErr error
	for _, n := range m.notifiers {
		if err := n.CancelAll(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
