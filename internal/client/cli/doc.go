// Package cli provides the interactive tokenkeeper command-line client.
//
// App wires configuration, the local auth cache (SQLite, Redis or memory),
// the gRPC token authority client and the token lifecycle manager, then runs
// a small REPL with login, refresh, logout and status commands.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
