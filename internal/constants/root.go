package constants

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "habitx"
	DefaultKeyringUser = "database-connection"
	DBFileName         = "habitx.db"
	DefaultConfigPath  = "~/.config/habitx/habitx.db"
	Version            = "v1.0.0"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "habitx-"
	BackupFileSuffix = ".db"
)

// Session States
const (
	StateHabits SessionState = iota
	StateConsistency
	StateSettings
	StateStreakDetail
	StateAddHabit
	StateEditHabit
	StateEditSettings
	StateConfirmDelete
)
