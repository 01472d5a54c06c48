package dto

type SettingsOutput struct {
	BeepEnabled bool
}

type SetBeepInput struct {
	Enabled bool
}
