package clock

import "time"

// Clock abstracts time to keep usecases deterministic in tests.
//
// Implementations must return times in the user's location: day boundaries
// for health logs are computed from the returned value's Location.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// StartOfDay returns local midnight for t in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
