// Package migrations embeds the SQL schema migrations for both storage
// backends. Files follow the NNN_name.sql convention and are applied in
// version order by the migration runner.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
