package domain

// Preferences are the persisted user choices.
type Preferences struct {
	BeepEnabled bool
}

func Defaults() Preferences {
	return Preferences{BeepEnabled: true}
}
