package models

import "time"

// RefreshToken is a persisted refresh token record.
type RefreshToken struct {
	ID        string     `db:"id" json:"id"`
	UserID    string     `db:"user_id" json:"user_id"`
	TokenHash string     `db:"token_hash" json:"-"`
	IssuedAt  time.Time  `db:"issued_at" json:"issued_at"`
	ExpiresAt time.Time  `db:"expires_at" json:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at" json:"revoked_at,omitempty"`
	IP        string     `db:"ip" json:"-"`
	UserAgent string     `db:"user_agent" json:"-"`
}

// Valid reports whether the token can still be exchanged.
func (t *RefreshToken) Valid(now time.Time) bool {
	return t.RevokedAt == nil && now.Before(t.ExpiresAt)
}
