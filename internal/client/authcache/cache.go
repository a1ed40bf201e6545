// Package authcache stores the singleton auth record in a metadata key/value
// backend.
package authcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/tokenkeeper/internal/client/models"
	"github.com/dmitrijs2005/tokenkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/tokenkeeper/internal/common"
)

// ErrCorruptState is returned when the stored record cannot be decoded.
var ErrCorruptState = errors.New("corrupt auth state")

// Cache reads and writes the auth record under common.AuthStateKey. It is
// safe for concurrent use when the underlying repository is.
type Cache struct {
	repo metadata.Repository
}

func New(repo metadata.Repository) *Cache {
	return &Cache{repo: repo}
}

// Read returns the stored record, or models.DefaultAuthState when nothing
// has been written since the last reset.
func (c *Cache) Read(ctx context.Context) (models.AuthState, error) {
	raw, err := c.repo.Get(ctx, common.AuthStateKey)
	if err != nil {
		return models.AuthState{}, fmt.Errorf("read auth state: %w", err)
	}
	if raw == nil {
		return models.DefaultAuthState(), nil
	}

	var s models.AuthState
	if err := json.Unmarshal(raw, &s); err != nil {
		return models.AuthState{}, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	return s, nil
}

// Write replaces the whole record.
func (c *Cache) Write(ctx context.Context, s models.AuthState) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode auth state: %w", err)
	}
	if err := c.repo.Set(ctx, common.AuthStateKey, raw); err != nil {
		return fmt.Errorf("write auth state: %w", err)
	}
	return nil
}

// ResetAll wipes every key in the backend, not only the auth record.
func (c *Cache) ResetAll(ctx context.Context) error {
	if err := c.repo.Clear(ctx); err != nil {
		return fmt.Errorf("reset cache: %w", err)
	}
	return nil
}
