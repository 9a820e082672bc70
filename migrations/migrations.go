// Package migrations embeds the SQL migrations for the Postgres
// document-store provider.
package migrations

import "embed"

//go:embed *.sql
var MigrationsFS embed.FS
