package models

import "time"

// User is an account known to the authority. Salt and Verifier come from
// cryptox.NewVerifier; the plain password is never stored.
type User struct {
	ID        string
	UserName  string
	Salt      []byte
	Verifier  []byte
	CreatedAt time.Time
}
