// Package db embeds the archive database migrations so both the migration
// command and the archive store run the same schema.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
