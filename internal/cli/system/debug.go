package system

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/devmadhava/habitx/internal/cli"
	"github.com/devmadhava/habitx/internal/constants"
	"github.com/devmadhava/habitx/internal/models"
	"github.com/devmadhava/habitx/internal/storage"
)

type DebugCmd struct {
	DBPath          *DebugDBPathCmd          `cmd:"" help:"Show database location."`
	DumpHabit       *DebugDumpHabitCmd       `cmd:"" help:"Dump habit data as JSON."`
	DumpCompletions *DebugDumpCompletionsCmd `cmd:"" help:"Dump completion data as JSON."`
	DumpSettings    *DebugDumpSettingsCmd    `cmd:"" help:"Dump settings data as JSON."`
	Env             *DebugEnvCmd             `cmd:"" help:"Dump build and environment details as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	path := ctx.Store.GetConfigPath()

	// Output in machine-readable format
	output := map[string]any{
		"backend": "sqlite",
		"path":    path,
	}
	if storage.IsPostgresConnString(path) {
		output["backend"] = "postgres"
		output["path"] = maskPassword(path)
	} else if stat, err := os.Stat(path); err == nil {
		output["size_bytes"] = stat.Size()
	}

	return printJSON(output)
}

type DebugDumpHabitCmd struct {
	ID int64 `arg:"" help:"ID of the habit to dump."`
}

func (cmd *DebugDumpHabitCmd) Run(ctx *cli.Context) error {
	// Scan with deleted habits included so soft-deleted rows stay inspectable.
	habits, err := ctx.Store.GetAllHabits(true)
	if err != nil {
		return fmt.Errorf("failed to get habits: %w", err)
	}

	var habit *models.Habit
	for i := range habits {
		if habits[i].ID == cmd.ID {
			habit = &habits[i]
			break
		}
	}
	if habit == nil {
		return fmt.Errorf("habit not found: %d", cmd.ID)
	}

	completions, err := ctx.Store.GetCompletions(cmd.ID)
	if err != nil {
		return fmt.Errorf("failed to get completions: %w", err)
	}

	output := struct {
		Habit       models.Habit        `json:"habit"`
		Completions []models.Completion `json:"completions"`
	}{*habit, completions}

	return printJSON(output)
}

type DebugDumpCompletionsCmd struct {
	ID int64 `arg:"" optional:"" help:"Limit the dump to one habit ID."`
}

func (cmd *DebugDumpCompletionsCmd) Run(ctx *cli.Context) error {
	var (
		completions []models.Completion
		err         error
	)
	if cmd.ID != 0 {
		completions, err = ctx.Store.GetCompletions(cmd.ID)
	} else {
		completions, err = ctx.Store.GetAllCompletions()
	}
	if err != nil {
		return fmt.Errorf("failed to get completions: %w", err)
	}

	return printJSON(completions)
}

type DebugDumpSettingsCmd struct{}

func (cmd *DebugDumpSettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	return printJSON(settings)
}

type DebugEnvCmd struct{}

func (cmd *DebugEnvCmd) Run(ctx *cli.Context) error {
	path := ctx.Store.GetConfigPath()
	if storage.IsPostgresConnString(path) {
		path = maskPassword(path)
	}

	output := map[string]string{
		"version":     constants.Version,
		"go_version":  runtime.Version(),
		"go_os":       runtime.GOOS,
		"go_arch":     runtime.GOARCH,
		"config_dir":  ctx.ConfigDir,
		"config_path": path,
	}

	return printJSON(output)
}

func printJSON(v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	fmt.Println(string(jsonBytes))
	return nil
}
