package models

// Settings represents user-level configuration stored alongside habit data
type Settings struct {
	Timezone string `json:"timezone"` // IANA timezone name used for calendar math (e.g. "Asia/Kolkata"); "UTC" when unset
	Username string `json:"username"` // display name used in greetings and summaries
	Color    string `json:"color"`    // accent color for CLI/TUI output
}
