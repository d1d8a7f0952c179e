package models

import "time"

// RedactedDigest replaces the password digest on every outbound path; the
// real digest never leaves the service.
const RedactedDigest = "******"

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	ImageURL     string
	IsAdmin      bool
	CreatedAt    time.Time
}

// Redacted returns a copy safe to attach to request context or serialize.
func (u User) Redacted() User {
	u.PasswordHash = RedactedDigest
	return u
}
