package migrations

import "embed"

// FS contains embedded SQLite migrations for the round archive.
//
//go:embed *.sql
var FS embed.FS
