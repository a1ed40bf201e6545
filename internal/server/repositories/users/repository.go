// Package users stores the accounts the token authority accepts.
package users

import (
	"context"

	"github.com/dmitrijs2005/tokenkeeper/internal/server/models"
)

// Repository defines operations for storing and looking up users.
type Repository interface {
	// Upsert creates the user or replaces salt and verifier of an existing
	// user with the same name. The stored ID is set on the returned user.
	Upsert(ctx context.Context, user *models.User) (*models.User, error)

	// GetUserByLogin returns common.ErrorNotFound when the user is absent.
	GetUserByLogin(ctx context.Context, userName string) (*models.User, error)
}
