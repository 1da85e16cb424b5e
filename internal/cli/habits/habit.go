// Package habits implements the habit management commands.
package habits

type HabitCmd struct {
	Add     HabitAddCmd     `cmd:"" help:"Add a new habit."`
	List    HabitListCmd    `cmd:"" help:"List habits."`
	Edit    HabitEditCmd    `cmd:"" help:"Edit a habit's name or description."`
	Delete  HabitDeleteCmd  `cmd:"" help:"Delete a habit (soft delete by default)."`
	Restore HabitRestoreCmd `cmd:"" help:"Restore a soft-deleted habit."`
	Done    HabitDoneCmd    `cmd:"" help:"Mark a habit completed."`
	Undone  HabitUndoneCmd  `cmd:"" help:"Remove a completion."`
}
