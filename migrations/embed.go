// Package migrations embeds the goose SQL migrations for the Metro Connect
// schema so the API, the worker and integration tests apply the same files.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time.
//
//go:embed *.sql
var FS embed.FS
