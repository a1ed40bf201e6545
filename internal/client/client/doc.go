// Package client contains the client-side transport to the token authority
// and the local database bootstrap used by the CLI.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the TokenAuthority interface) for
//     Create, Refresh and Invalidate.
//  2. A concrete gRPC implementation (see GRPCClient) that applies a per-call
//     timeout, passes the current access token as metadata and maps gRPC
//     status codes to sentinel errors.
//  3. Local persistence bootstrap utilities (InitDatabase, RunMigrations) that
//     open an SQLite database and apply embedded goose migrations.
//
// # Error Handling
//
// Rejected credentials or tokens surface as ErrUnauthorized; an unreachable
// or timed-out authority as ErrUnavailable. Match them with errors.Is.
package client
