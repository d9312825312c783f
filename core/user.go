package core

import (
	"strings"
	"time"
)

// Role identifies what a user may do on the dashboard.
type Role string

const (
	RoleParent   Role = "parent"
	RoleGuardian Role = "guardian"
)

func (r Role) Valid() bool {
	return r == RoleParent || r == RoleGuardian
}

// User represents a dashboard account holder
//
// This is the "identity" - who someone is. It is also the exact shape of the
// persisted session record.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate reports whether u is complete enough to act as a logged in user.
func (u *User) Validate() error {
	if u == nil {
		return ErrMalformedRecord
	}
	if u.ID == "" {
		return ErrMalformedRecord
	}
	if strings.TrimSpace(u.Email) == "" {
		return ErrMalformedRecord
	}
	if !u.Role.Valid() {
		return ErrMalformedRecord
	}
	return nil
}

// Clone returns a copy that callers may keep without sharing state.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// NormalizeEmail is the canonical form used for registry lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
