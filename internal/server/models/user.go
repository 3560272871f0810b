package models

import "time"

// User is a single credential record. PasswordHash is the opaque bcrypt
// output; the raw password is never stored or returned to callers.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
