package core

import (
	"context"
	"time"
)

// Ports define interfaces for external dependencies

// ============================================
// STORAGE PORTS (credential registry)
// ============================================

// UserStorage defines user-related registry operations
type UserStorage interface {
	CreateUser(ctx context.Context, u *User) error
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}

// AccountStorage defines account-related registry operations
type AccountStorage interface {
	CreateAccount(ctx context.Context, a *Account) error
	GetAccountByUserAndProvider(ctx context.Context, userID, providerID string) (*Account, error)
}

// CredentialStorage is the whole registry. CreateUserWithAccount stores
// both records or neither, so a failed registration never leaves a user
// that cannot log in.
type CredentialStorage interface {
	UserStorage
	AccountStorage
	CreateUserWithAccount(ctx context.Context, u *User, a *Account) error
}

// ============================================
// PERSISTED RECORD PORT
// ============================================

// RecordStorage is durable key/value storage that survives restarts.
// Get returns ErrRecordNotFound when the key is absent. Delete of an
// absent key is not an error.
type RecordStorage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// RecordStorageWithStats extends RecordStorage with statistics tracking
type RecordStorageWithStats interface {
	RecordStorage
	Stats() StorageStats
}

// StorageStats are simple counters for storage behavior.
type StorageStats struct {
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Sets    int64 `json:"sets"`
	Deletes int64 `json:"deletes"`
	Size    int   `json:"size"`
}

// ============================================
// CREDENTIAL VALIDATOR PORT
// ============================================

// Authenticator decides whether credentials identify a known user, or
// mints a new one. Calls may suspend the caller.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*User, error)
	RegisterNew(ctx context.Context, email, password, name string) (*User, error)
}

// ============================================
// METRICS PORT
// ============================================

// Outcome labels reported to AuthMetrics.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeBusy    = "busy"
	OutcomeAbsent  = "absent"
	OutcomeCorrupt = "corrupt"
	OutcomeError   = "error"
)

type AuthMetrics interface {
	RecordLogin(outcome string)
	RecordRegister(outcome string)
	RecordRestore(outcome string)
	RecordLogout()
	RecordValidatorLatency(op string, d time.Duration)
}

// NopMetrics discards everything.
type NopMetrics struct{}

func (NopMetrics) RecordLogin(string)                           {}
func (NopMetrics) RecordRegister(string)                        {}
func (NopMetrics) RecordRestore(string)                         {}
func (NopMetrics) RecordLogout()                                {}
func (NopMetrics) RecordValidatorLatency(string, time.Duration) {}
