package client

import (
	"context"

	"github.com/dmitrijs2005/tokenkeeper/internal/client/models"
)

// TokenAuthority is the remote party that issues, refreshes and revokes tokens.
//
// Implementations report a rejected credential or token as ErrUnauthorized and
// a transport failure as ErrUnavailable. Any other error is passed through
// wrapped.
type TokenAuthority interface {
	Create(ctx context.Context, creds models.Credentials) (models.TokenSet, error)
	Refresh(ctx context.Context, current models.AuthState) (models.TokenSet, error)
	Invalidate(ctx context.Context, current models.AuthState) (models.TokenSet, error)
	Close() error
}
