// Package migrations embeds the SQL schema of the index store.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
