// Package migrations embeds the goose SQL migrations that create the
// application schema. Versions are ordered so that accounts exists before
// income_records references it.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
