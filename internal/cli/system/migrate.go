package system

import (
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/devmadhava/habitx/internal/cli"
	"github.com/devmadhava/habitx/internal/migration"
	"github.com/devmadhava/habitx/internal/storage/postgres"
	"github.com/devmadhava/habitx/internal/storage/sqlite"
	"github.com/devmadhava/habitx/migrations"
)

type MigrateCmd struct {
	Run      MigrateRunCmd      `cmd:"" default:"1" help:"Apply pending migrations."`
	Status   MigrateStatusCmd   `cmd:"" help:"Show applied and available schema versions."`
	Validate MigrateValidateCmd `cmd:"" help:"Check the database schema against this binary."`
}

// migrationRunner builds a runner for the store's backend and dialect.
func migrationRunner(ctx *cli.Context) (*migration.Runner, error) {
	var (
		db      *sql.DB
		dialect migration.Dialect
		dir     string
	)

	switch store := ctx.Store.(type) {
	case *sqlite.Store:
		db, dialect, dir = store.GetDB(), migration.DialectSQLite, "sqlite"
	case *postgres.Store:
		db, dialect, dir = store.GetDB(), migration.DialectPostgres, "postgres"
	default:
		return nil, fmt.Errorf("migrations require a sqlite or postgres store")
	}

	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	subFS, err := fs.Sub(migrations.FS, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access %s migrations: %w", dir, err)
	}
	return migration.NewRunner(db, subFS, dialect), nil
}

type MigrateRunCmd struct{}

func (c *MigrateRunCmd) Run(ctx *cli.Context) error {
	runner, err := migrationRunner(ctx)
	if err != nil {
		return err
	}

	count, err := runner.ApplyMigrations(func(msg string) {
		fmt.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}

type MigrateStatusCmd struct{}

func (c *MigrateStatusCmd) Run(ctx *cli.Context) error {
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

	fmt.Printf("Current schema version: %d\n", current)
	fmt.Printf("Latest schema version:  %d\n", latest)
	switch {
	case current == latest:
		fmt.Println("Database is up to date.")
	case current < latest:
		fmt.Printf("%d migration(s) pending. Run 'habitx system migrate run' to apply them.\n", latest-current)
	default:
		fmt.Println("Database is newer than this binary. Upgrade habitx.")
	}
	return nil
}

type MigrateValidateCmd struct{}

func (c *MigrateValidateCmd) Run(ctx *cli.Context) error {
	runner, err := migrationRunner(ctx)
	if err != nil {
		return err
	}

	if err := runner.ValidateVersion(); err != nil {
		return err
	}

	fmt.Println("✓ Schema version is compatible with this binary.")
	return nil
}
