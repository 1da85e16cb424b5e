package models

import "github.com/devmadhava/habitx/internal/constants"

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) Settings {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingUsername:
			settings.Username = value
		case constants.SettingColor:
			settings.Color = value
		}
	}
	return settings
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingTimezone: settings.Timezone,
		constants.SettingUsername: settings.Username,
		constants.SettingColor:    settings.Color,
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.Username == "" {
		settings.Username = constants.DefaultUsername
	}
	if settings.Color == "" {
		settings.Color = constants.DefaultColor
	}
}
