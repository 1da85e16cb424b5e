package constants

const (
	// Setting keys
	SettingTimezone = "timezone"
	SettingUsername = "username"
	SettingColor    = "color"

	// Default Settings Values
	DefaultTimezone = "UTC"
	DefaultUsername = "user"
	DefaultColor    = "blue"
)
