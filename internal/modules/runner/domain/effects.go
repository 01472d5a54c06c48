package domain

import "time"

type Intensity string

const (
	IntensityLight  Intensity = "light"
	IntensityMedium Intensity = "medium"
)

type HapticKind string

const HapticSuccess HapticKind = "success"

// Alert is a local notification due at FiresAt.
type Alert struct {
	Title   string
	Body    string
	FiresAt time.Time
}

const alertTitle = "Step Complete"

func stepAlert(step Step, firesAt time.Time) Alert {
	return Alert{Title: alertTitle, Body: step.Name + " finished!", FiresAt: firesAt}
}

type EffectKind int

const (
	EffectStartTimer EffectKind = iota
	EffectStopTimer
	EffectScheduleAlert
	EffectCancelAlerts
	EffectCue
	EffectImpact
	EffectHaptic
	EffectPersist
	EffectClearSnapshot
	EffectFinished
)

func (k EffectKind) String() string {
	switch k {
	case EffectStartTimer:
		return "start-timer"
	case EffectStopTimer:
		return "stop-timer"
	case EffectScheduleAlert:
		return "schedule-alert"
	case EffectCancelAlerts:
		return "cancel-alerts"
	case EffectCue:
		return "cue"
	case EffectImpact:
		return "impact"
	case EffectHaptic:
		return "haptic"
	case EffectPersist:
		return "persist"
	case EffectClearSnapshot:
		return "clear-snapshot"
	case EffectFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Effect is one side effect requested by a transition. Only the field
// matching Kind is set.
type Effect struct {
	Kind      EffectKind
	Alert     Alert
	Intensity Intensity
	Haptic    HapticKind
}

// Effects are applied in order.
type Effects []Effect

func (e Effects) Has(kind EffectKind) bool {
	for _, effect := range e {
		if effect.Kind == kind {
			return true
		}
	}
	return false
}

func (e Effects) Kinds() []EffectKind {
	out := make([]EffectKind, 0, len(e))
	for _, effect := range e {
		out = append(out, effect.Kind)
	}
	return out
}

func do(kind EffectKind) Effect { return Effect{Kind: kind} }

func impact(i Intensity) Effect { return Effect{Kind: EffectImpact, Intensity: i} }

func haptic(k HapticKind) Effect { return Effect{Kind: EffectHaptic, Haptic: k} }

func schedule(a Alert) Effect { return Effect{Kind: EffectScheduleAlert, Alert: a} }
