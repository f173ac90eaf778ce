// Package migrations embeds the SQL schema migrations so that binaries and
// tests can apply them without a checkout of the repository.
package migrations

import "embed"

// FS holds every *.sql migration in golang-migrate naming
//
//go:embed *.sql
var FS embed.FS
