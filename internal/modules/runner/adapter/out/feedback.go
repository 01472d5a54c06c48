package out

import (
	"context"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"pulsecue/internal/modules/runner/domain"
	settingsin "pulsecue/internal/modules/settings/port/in"
)

// bell is the terminal's audible cue.
const bell = "\a"

// TerminalFeedback rings the terminal bell for cues when the user has beeps
// enabled. A terminal has no haptics, so pulses are only logged.
type TerminalFeedback struct {
	out      io.Writer
	settings settingsin.Usecase
	logger   zerolog.Logger

	mu sync.Mutex
}

func NewTerminalFeedback(out io.Writer, settings settingsin.Usecase, logger zerolog.Logger) *TerminalFeedback {
	return &TerminalFeedback{out: out, settings: settings, logger: logger}
}

func (f *TerminalFeedback) PlayCue(ctx context.Context) {
	if f.settings != nil {
		prefs, err := f.settings.GetSettings(ctx)
		if err != nil {
			f.logger.Warn().Err(err).Msg("beep preference unavailable")
			return
		}
		if !prefs.BeepEnabled {
			return
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := io.WriteString(f.out, bell); err != nil {
		f.logger.Debug().Err(err).Msg("cue write failed")
	}
}

func (f *TerminalFeedback) HapticImpact(_ context.Context, intensity domain.Intensity) {
	f.logger.Debug().Str("intensity", string(intensity)).Msg("haptic impact")
}

func (f *TerminalFeedback) HapticNotification(_ context.Context, kind domain.HapticKind) {
	f.logger.Debug().Str("kind", string(kind)).Msg("haptic notification")
}
