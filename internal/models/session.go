package models

import "time"

// Session is one authenticated device; the refresh token rotates on
// every refresh and the fingerprint pins it to the issuing client.
type Session struct {
	ID           string
	UserID       string
	Fingerprint  string
	RefreshToken string
	ExpiresAt    time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
