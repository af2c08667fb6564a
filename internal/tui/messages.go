package tui

// SwitchScreenMsg requests a screen change
type SwitchScreenMsg struct {
	Screen Screen
}

// RefreshDataMsg tells a screen the invoice changed elsewhere
type RefreshDataMsg struct{}

// ErrorMsg carries error information
type ErrorMsg struct {
	Err error
}

// OpenSettingsFormMsg tells the settings screen to open the edit form
type OpenSettingsFormMsg struct{}

// firstRunCheckMsg reports whether company details have been configured
type firstRunCheckMsg struct {
	hasCompany bool
}
