package out

import (
	"sync"
	"time"
)

// Ticker is the minimal interface needed to drive the timer.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type timeTicker struct {
	ticker *time.Ticker
}

func (t timeTicker) C() <-chan time.Time {
	return t.ticker.C
}

func (t timeTicker) Stop() {
	t.ticker.Stop()
}

// ChannelTimer forwards ticks to a single channel so the owner can select
// on it from its event loop. Ticks the owner is too slow to take are
// dropped.
type ChannelTimer struct {
	tickerFactory func(time.Duration) Ticker
	out           chan time.Time

	mu     sync.Mutex
	ticker Ticker
	done   chan struct{}
}

// TimerOption customizes a ChannelTimer.
type TimerOption func(*ChannelTimer)

// WithTickerFactory overrides how tickers are created.
func WithTickerFactory(factory func(time.Duration) Ticker) TimerOption {
	return func(t *ChannelTimer) {
		t.tickerFactory = factory
	}
}

func NewChannelTimer(opts ...TimerOption) *ChannelTimer {
	t := &ChannelTimer{
		out: make(chan time.Time, 1),
		tickerFactory: func(d time.Duration) Ticker {
			return timeTicker{ticker: time.NewTicker(d)}
		},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *ChannelTimer) Ticks() <-chan time.Time {
	return t.out
}

func (t *ChannelTimer) Start(interval time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
	ticker := t.tickerFactory(interval)
	done := make(chan struct{})
	t.ticker, t.done = ticker, done
	go t.forward(ticker, done)
}

func (t *ChannelTimer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

func (t *ChannelTimer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ticker != nil
}

func (t *ChannelTimer) stopLocked() {
	if t.ticker == nil {
		return
	}
	t.ticker.Stop()
	close(t.done)
	t.ticker, t.done = nil, nil
	select {
	case <-t.out:
	default:
	}
}

func (t *ChannelTimer) forward(ticker Ticker, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case now := <-ticker.C():
			select {
			case t.out <- now:
			default:
			}
		}
	}
}
