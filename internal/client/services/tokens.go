// Package services contains application services for the tokenkeeper client.
// This file defines the token lifecycle manager: create, conditional refresh
// and invalidate, keeping the shared auth cache in step with the authority.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/tokenkeeper/internal/client/client"
	"github.com/dmitrijs2005/tokenkeeper/internal/client/models"
	"github.com/dmitrijs2005/tokenkeeper/internal/common"
	"github.com/dmitrijs2005/tokenkeeper/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// Operation names which lifecycle operation produced a Result or an error.
type Operation string

const (
	OpCreateTokens     Operation = "CreateTokensMutation"
	OpRefreshTokens    Operation = "RefreshTokensMutation"
	OpInvalidateTokens Operation = "InvalidateTokensMutation"
)

// Result is the tagged outcome of a successful operation.
type Result struct {
	Op   Operation
	Auth models.AuthState
}

// OpError tags a failure with the operation it came from. It unwraps to the
// underlying error.
type OpError struct {
	Op  Operation
	Err error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// ErrInvalidNotBefore is returned by RefreshTokens when notBefore is set but
// is not a recognizable timestamp.
var ErrInvalidNotBefore = fmt.Errorf("%w: notBefore is not a valid timestamp", common.ErrValidation)

// notBeforeLayouts are the ISO-8601 forms accepted for notBefore. Fractional
// seconds are accepted after any seconds field; values without a zone are UTC.
var notBeforeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04Z07:00",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006-01",
}

// SharedCache is the local store of the singleton auth record.
//
// Read returns models.DefaultAuthState when nothing is stored. Write replaces
// the record. ResetAll wipes every key the cache holds.
type SharedCache interface {
	Read(ctx context.Context) (models.AuthState, error)
	Write(ctx context.Context, s models.AuthState) error
	ResetAll(ctx context.Context) error
}

// TokenLifecycleManager issues, refreshes and invalidates tokens.
//
// Contract:
//   - CreateTokens: exchange credentials for tokens and store them.
//   - RefreshTokens: refresh only when the cached expiry is unknown or
//     notBefore lies after it; otherwise return the cached record.
//   - InvalidateTokens: wipe the cache, revoke at the authority and store
//     whatever it returns.
//
// An unauthorized answer from CreateTokens or RefreshTokens marks the cached
// record invalid and is returned to the caller. Operations do not exclude each
// other; concurrent calls resolve by last cache write.
type TokenLifecycleManager interface {
	CreateTokens(ctx context.Context, creds models.Credentials) (*Result, error)
	RefreshTokens(ctx context.Context, notBefore string) (*Result, error)
	InvalidateTokens(ctx context.Context) (*Result, error)
}

type tokenLifecycleManager struct {
	authority       client.TokenAuthority
	cache           SharedCache
	log             logging.Logger
	expiryFromToken bool
}

type Option func(*tokenLifecycleManager)

func WithLogger(l logging.Logger) Option {
	return func(m *tokenLifecycleManager) { m.log = l }
}

// WithExpiryFromToken fills a missing ExpiresAt from the access token's exp
// claim when the token is a JWT. The token signature is not checked.
func WithExpiryFromToken() Option {
	return func(m *tokenLifecycleManager) { m.expiryFromToken = true }
}

func NewTokenLifecycleManager(authority client.TokenAuthority, cache SharedCache, opts ...Option) TokenLifecycleManager {
	m := &tokenLifecycleManager{
		authority: authority,
		cache:     cache,
		log:       logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *tokenLifecycleManager) CreateTokens(ctx context.Context, creds models.Credentials) (*Result, error) {
	set, err := m.authority.Create(ctx, creds)
	if err != nil {
		return nil, m.fail(ctx, OpCreateTokens, err, true)
	}
	return m.store(ctx, OpCreateTokens, set)
}

func (m *tokenLifecycleManager) RefreshTokens(ctx context.Context, notBefore string) (*Result, error) {
	nb, err := parseNotBefore(notBefore)
	if err != nil {
		m.log.Warn(ctx, "refresh rejected", "op", OpRefreshTokens, "not_before", notBefore)
		return nil, &OpError{Op: OpRefreshTokens, Err: err}
	}

	current, err := m.cache.Read(ctx)
	if err != nil {
		return nil, m.fail(ctx, OpRefreshTokens, err, false)
	}

	if !isExpired(current.ExpiresAt, nb) {
		m.log.Debug(ctx, "tokens still valid", "op", OpRefreshTokens)
		return &Result{Op: OpRefreshTokens, Auth: current}, nil
	}

	set, err := m.authority.Refresh(ctx, current)
	if err != nil {
		return nil, m.fail(ctx, OpRefreshTokens, err, true)
	}
	return m.store(ctx, OpRefreshTokens, set)
}

func (m *tokenLifecycleManager) InvalidateTokens(ctx context.Context) (*Result, error) {
	previous, err := m.cache.Read(ctx)
	if err != nil {
		return nil, m.fail(ctx, OpInvalidateTokens, err, false)
	}

	if err := m.cache.ResetAll(ctx); err != nil {
		return nil, m.fail(ctx, OpInvalidateTokens, err, false)
	}

	set, err := m.authority.Invalidate(ctx, previous)
	if err != nil {
		return nil, m.fail(ctx, OpInvalidateTokens, err, false)
	}
	return m.store(ctx, OpInvalidateTokens, set)
}

// store writes the normalized token set and returns it as the result.
func (m *tokenLifecycleManager) store(ctx context.Context, op Operation, set models.TokenSet) (*Result, error) {
	state := m.normalize(set)

	if err := m.cache.Write(ctx, state); err != nil {
		return nil, m.fail(ctx, op, err, false)
	}

	m.log.Info(ctx, "auth state updated", "op", op, "status", state.Status())
	return &Result{Op: op, Auth: state}, nil
}

// fail logs err and wraps it in an OpError. With markInvalid set, an
// unauthorized error also flags the cached record invalid.
func (m *tokenLifecycleManager) fail(ctx context.Context, op Operation, err error, markInvalid bool) error {
	if !errors.Is(err, client.ErrUnauthorized) {
		m.log.Error(ctx, "operation failed", "op", op, "error", err)
		return &OpError{Op: op, Err: err}
	}

	m.log.Warn(ctx, "authority rejected request", "op", op)
	if markInvalid {
		if merr := m.markInvalid(ctx); merr != nil {
			m.log.Error(ctx, "marking auth state invalid failed", "op", op, "error", merr)
			return &OpError{Op: op, Err: errors.Join(err, merr)}
		}
	}
	return &OpError{Op: op, Err: err}
}

// markInvalid sets Invalid on the cached record and keeps the token fields.
func (m *tokenLifecycleManager) markInvalid(ctx context.Context) error {
	current, err := m.cache.Read(ctx)
	if err != nil {
		return fmt.Errorf("mark invalid: %w", err)
	}
	current.Invalid = true
	if err := m.cache.Write(ctx, current); err != nil {
		return fmt.Errorf("mark invalid: %w", err)
	}
	return nil
}

func (m *tokenLifecycleManager) normalize(set models.TokenSet) models.AuthState {
	state := models.AuthState{
		Invalid:      false,
		AccessToken:  set.AccessToken,
		RefreshToken: set.RefreshToken,
		ExpiresAt:    set.ExpiresAt,
	}
	if state.ExpiresAt == nil && m.expiryFromToken {
		state.ExpiresAt = expiryFromJWT(set.AccessToken)
	}
	return state
}

// isExpired reports whether a refresh is due. A nil notBefore or an unknown
// expiry always counts as expired.
func isExpired(expiresAt, notBefore *time.Time) bool {
	if notBefore == nil || expiresAt == nil {
		return true
	}
	return notBefore.After(*expiresAt)
}

// parseNotBefore returns nil for an empty value.
func parseNotBefore(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	for _, layout := range notBeforeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return &t, nil
		}
	}
	return nil, ErrInvalidNotBefore
}

func expiryFromJWT(token string) *time.Time {
	if token == "" {
		return nil
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}
	t := exp.Time.UTC()
	return &t
}
