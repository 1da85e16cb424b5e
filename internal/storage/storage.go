// Package storage selects and wires the habit storage backends. The sqlite
// and postgres subpackages implement Provider; this package holds the
// constructors, the streak engine adapter, and demo seeding.
package storage

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/devmadhava/habitx/internal/storage/postgres"
	"github.com/devmadhava/habitx/internal/storage/sqlite"
)

// NewSQLiteStore creates a Provider backed by a local SQLite database file.
// A leading ~ in the path is expanded to the user's home directory.
func NewSQLiteStore(path string) Provider {
	return sqlite.NewStore(ExpandPath(path))
}

// NewPostgresStore creates a Provider backed by a PostgreSQL server.
func NewPostgresStore(connStr string) Provider {
	return postgres.New(connStr)
}

// IsPostgresConnString reports whether the config value addresses a
// PostgreSQL server rather than a local database file. It recognizes URL
// connection strings, key/value DSNs, and the identifier a postgres store
// reports as its config path.
func IsPostgresConnString(config string) bool {
	if strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://") {
		return true
	}
	if config == "postgresql" {
		return true
	}
	return strings.Contains(config, "host=") || strings.Contains(config, "dbname=")
}

// ExpandPath resolves a leading ~ to the user's home directory. The path
// comes back unchanged when the home directory cannot be determined.
func ExpandPath(path string) string {
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
