package system

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/devmadhava/habitx/internal/backup"
	"github.com/devmadhava/habitx/internal/cli"
	"github.com/devmadhava/habitx/internal/constants"
	"github.com/devmadhava/habitx/internal/storage"
	"github.com/devmadhava/habitx/internal/storage/postgres"
	"github.com/devmadhava/habitx/internal/storage/sqlite"
	"github.com/devmadhava/habitx/internal/utils"
	"github.com/devmadhava/habitx/internal/validation"
)

// listProcessesFunc is swappable in tests.
var listProcessesFunc = ps.Processes

// backupStaleAfter is how old the newest backup may get before doctor warns.
const backupStaleAfter = 7 * 24 * time.Hour

type DoctorCmd struct {
	Fix bool `help:"Automatically fix duplicate habit names by soft-deleting the newer copies."`
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	isPostgres := storage.IsPostgresConnString(ctx.Store.GetConfigPath())

	// Check 1: DB reachable
	dbReachable := true
	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
		dbReachable = false
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
	}

	// Check 2: Schema version valid (only if DB is reachable)
	if dbReachable {
		if err := checkSchemaVersion(ctx); err != nil {
			fmt.Printf("❌ Schema version: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Schema version: OK\n")
		}
	} else {
		fmt.Printf("⊘ Schema version: SKIPPED (database not reachable)\n")
	}

	// Check 3: Migrations complete (only if DB is reachable)
	if dbReachable {
		if err := checkMigrationsComplete(ctx); err != nil {
			fmt.Printf("❌ Migrations complete: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Migrations complete: OK\n")
		}
	} else {
		fmt.Printf("⊘ Migrations complete: SKIPPED (database not reachable)\n")
	}

	// Check 4: Backups present and fresh (warning only)
	if isPostgres {
		fmt.Printf("⊘ Backups: SKIPPED (PostgreSQL uses server-side backups)\n")
	} else if err := checkBackups(ctx); err != nil {
		fmt.Printf("⚠ Backups: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Backups: OK\n")
	}

	// Check 5: Data integrity (only if DB is reachable)
	if dbReachable {
		if err := checkDataIntegrity(ctx, cmd.Fix); err != nil {
			fmt.Printf("❌ Data integrity: FAIL\n")
			fmt.Printf("   %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Data integrity: OK\n")
		}
	} else {
		fmt.Printf("⊘ Data integrity: SKIPPED (database not reachable)\n")
	}

	// Check 6: Clock/timezone sanity
	if err := checkClockTimezone(ctx, dbReachable); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	// Check 7: Concurrent habitx processes (warning only)
	if err := checkConcurrentProcesses(); err != nil {
		fmt.Printf("⚠ Concurrent processes: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Concurrent processes: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

// storeDB returns the live connection regardless of backend, or nil.
func storeDB(ctx *cli.Context) *sql.DB {
	switch store := ctx.Store.(type) {
	case *sqlite.Store:
		return store.GetDB()
	case *postgres.Store:
		return store.GetDB()
	}
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	db := storeDB(ctx)
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	var result int
	if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	runner, err := migrationRunner(ctx)
	if err != nil {
		return err
	}
	return runner.ValidateVersion()
}

func checkMigrationsComplete(ctx *cli.Context) error {
	runner, err := migrationRunner(ctx)
	if err != nil {
		return err
	}

	current, err := runner.GetCurrentVersion()
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}
	latest, err := runner.GetLatestVersion()
	if err != nil {
		return fmt.Errorf("failed to get latest schema version: %w", err)
	}

	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

func checkBackups(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	latest, err := mgr.LatestBackup()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if latest == nil {
		return fmt.Errorf("no backups found - consider creating one with 'habitx system backup create'")
	}
	if age := time.Since(latest.Timestamp); age > backupStaleAfter {
		return fmt.Errorf("latest backup is %d days old - consider creating a fresh one", int(age.Hours()/24))
	}
	return nil
}

func checkDataIntegrity(ctx *cli.Context, fix bool) error {
	habits, err := ctx.Store.GetAllHabits(true)
	if err != nil {
		return fmt.Errorf("failed to get habits: %w", err)
	}
	completions, err := ctx.Store.GetAllCompletions()
	if err != nil {
		return fmt.Errorf("failed to get completions: %w", err)
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	validator := validation.New()
	result := validator.ValidateAll(habits, completions, settings, time.Now().UTC())
	if !result.HasConflicts() {
		return nil
	}

	if fix {
		actions := validation.AutoFixDuplicateHabits(result.Conflicts, habits, ctx.Store.DeleteHabit)
		for _, action := range actions {
			fmt.Printf("   fix: %s\n", action.Action)
		}

		habits, err = ctx.Store.GetAllHabits(true)
		if err != nil {
			return fmt.Errorf("failed to reload habits: %w", err)
		}
		result = validator.ValidateAll(habits, completions, settings, time.Now().UTC())
		if !result.HasConflicts() {
			return nil
		}
	}

	return errors.New(strings.TrimSpace(result.FormatReport()))
}

func checkClockTimezone(ctx *cli.Context, dbReachable bool) error {
	// Check if system time is in a reasonable range
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	if dbReachable {
		settings, err := ctx.Store.GetSettings()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		if !utils.ValidateTimezone(settings.Timezone) {
			return fmt.Errorf("configured timezone %q does not resolve to a known zone", settings.Timezone)
		}
	}
	return nil
}

func checkConcurrentProcesses() error {
	processes, err := listProcessesFunc()
	if err != nil {
		return fmt.Errorf("failed to list processes: %w", err)
	}

	self := os.Getpid()
	var others []int
	for _, p := range processes {
		if p.Pid() == self {
			continue
		}
		if p.Executable() == constants.AppName {
			others = append(others, p.Pid())
		}
	}

	if len(others) > 0 {
		return fmt.Errorf("found %d other running %s process(es) (PIDs %v) - concurrent writes can corrupt a SQLite database",
			len(others), constants.AppName, others)
	}
	return nil
}
