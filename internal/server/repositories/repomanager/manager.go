// Package repomanager bundles the authority's repositories behind one handle
// that also owns migrations and transactions.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/tokenkeeper/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/repositories/users"
)

// Repositories is the set of repositories bound to one connection or transaction.
type Repositories struct {
	Users         users.Repository
	RefreshTokens refreshtokens.Repository
}

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	// Repositories returns repositories outside of any transaction.
	Repositories() Repositories
	// WithTx runs fn with repositories bound to a single transaction,
	// committing when fn returns nil.
	WithTx(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error
	Close() error
}
