package models

import "time"

// RefreshToken is an opaque, server-stored refresh token.
type RefreshToken struct {
	UserID  string
	Token   string
	Expires time.Time
}
