// Package migrations holds the goose SQL migrations, embedded for the service binary.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
