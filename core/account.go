package core

import "time"

const ProviderCredential = "credential"

// Account represents an authentication method
//
// This is the "credential" - how someone proves who they are
type Account struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	ProviderID   string    `json:"providerId"` // only "credential" for now
	PasswordHash string    `json:"-"`          // Never expose in JSON
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
