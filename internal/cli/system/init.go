// Package system implements database and system management commands.
package system

import (
	"fmt"
	"os"

	"github.com/devmadhava/habitx/internal/cli"
	"github.com/devmadhava/habitx/internal/storage"
)

type InitCmd struct {
	Force bool `help:"Delete the existing database before initializing."`
	Demo  bool `help:"Seed the fresh database with demo habits and history."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		dbPath := ctx.Store.GetConfigPath()
		if storage.IsPostgresConnString(dbPath) {
			return fmt.Errorf("--force only applies to SQLite databases; drop the PostgreSQL schema manually")
		}
		if _, err := os.Stat(dbPath); err == nil {
			// Close before deleting to avoid file locking issues.
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized habitx storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Demo {
		count, err := storage.SeedDemoData(ctx.Store)
		if err != nil {
			return fmt.Errorf("failed to seed demo data: %w", err)
		}
		fmt.Printf("Seeded %d demo habits with several weeks of history.\n", count)
		fmt.Println("Try 'habitx streaks' or 'habitx consistency' to explore them.")
	}

	return nil
}
