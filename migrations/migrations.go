// Package migrations embeds the SQL migration files so the server can
// apply them at startup without shipping loose files.
package migrations

import "embed"

//go:embed *.sql
var MigrationsFS embed.FS
