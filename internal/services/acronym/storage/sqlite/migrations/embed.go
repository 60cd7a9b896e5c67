package migrations

import "embed"

// FS contains embedded SQLite migrations for acronym storage.
//
//go:embed *.sql
var FS embed.FS
