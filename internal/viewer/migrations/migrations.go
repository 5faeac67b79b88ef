// Package migrations embeds the SQLite schema migrations for the viewer's
// local navigation-state database.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
