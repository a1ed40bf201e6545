// Package models defines client-side data models used by the tokenkeeper
// library and CLI.
package models

import "time"

// AuthState is the singleton record describing current token validity and
// values. Empty strings and a nil ExpiresAt stand for "not set".
type AuthState struct {
	// Invalid is set once the authority rejected the credentials or tokens.
	Invalid bool

	AccessToken  string
	RefreshToken string

	// ExpiresAt is the access token expiry as reported by the authority.
	ExpiresAt *time.Time
}

// Status is the lifecycle state an AuthState record is in.
type Status string

const (
	StatusAnonymous     Status = "anonymous"
	StatusAuthenticated Status = "authenticated"
	StatusInvalid       Status = "invalid"
)

// DefaultAuthState returns the record every fresh cache starts with.
func DefaultAuthState() AuthState {
	return AuthState{}
}

// Status classifies s. Invalid wins over populated tokens.
func (s AuthState) Status() Status {
	switch {
	case s.Invalid:
		return StatusInvalid
	case s.AccessToken != "" || s.RefreshToken != "":
		return StatusAuthenticated
	default:
		return StatusAnonymous
	}
}

// Equal reports whether two records carry the same values, comparing
// ExpiresAt by instant rather than by pointer.
func (s AuthState) Equal(o AuthState) bool {
	if s.Invalid != o.Invalid || s.AccessToken != o.AccessToken || s.RefreshToken != o.RefreshToken {
		return false
	}
	if s.ExpiresAt == nil || o.ExpiresAt == nil {
		return s.ExpiresAt == nil && o.ExpiresAt == nil
	}
	return s.ExpiresAt.Equal(*o.ExpiresAt)
}

// TokenSet is what the token authority returns from every operation.
type TokenSet struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    *time.Time
}

// Credentials are the username/password pair exchanged for tokens.
// Password is a byte slice so callers can wipe it after use.
type Credentials struct {
	Username string
	Password []byte
}
