// Package migrations embeds the PostgreSQL schema for the token authority.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
