package memory

import (
	"context"
	"sync"

	"github.com/lborres/kindercrew/core"
)

var _ core.CredentialStorage = (*Registry)(nil)

// Registry is an in-memory credential registry keyed by normalized email.
type Registry struct {
	mu       sync.RWMutex
	users    map[string]*core.User    // key: user id
	byEmail  map[string]string        // key: normalized email, value: user id
	accounts map[string]*core.Account // key: user id + provider
}

func New() *Registry {
	return &Registry{
		users:    make(map[string]*core.User),
		byEmail:  make(map[string]string),
		accounts: make(map[string]*core.Account),
	}
}

func accountKey(userID, providerID string) string {
	return userID + "|" + providerID
}

func (r *Registry) CreateUser(_ context.Context, u *core.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkUser(u); err != nil {
		return err
	}
	r.insertUser(u)
	return nil
}

// CreateUserWithAccount checks both records before inserting either.
func (r *Registry) CreateUserWithAccount(_ context.Context, u *core.User, a *core.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkUser(u); err != nil {
		return err
	}
	if a.UserID != u.ID {
		return core.ErrUserNotFound
	}
	if _, exists := r.accounts[accountKey(a.UserID, a.ProviderID)]; exists {
		return core.ErrUserExists
	}

	r.insertUser(u)
	r.insertAccount(a)
	return nil
}

func (r *Registry) checkUser(u *core.User) error {
	if _, exists := r.byEmail[core.NormalizeEmail(u.Email)]; exists {
		return core.ErrUserExists
	}
	if _, exists := r.users[u.ID]; exists {
		return core.ErrUserExists
	}
	return nil
}

func (r *Registry) insertUser(u *core.User) {
	r.users[u.ID] = u.Clone()
	r.byEmail[core.NormalizeEmail(u.Email)] = u.ID
}

func (r *Registry) insertAccount(a *core.Account) {
	c := *a
	r.accounts[accountKey(a.UserID, a.ProviderID)] = &c
}

func (r *Registry) GetUserByID(_ context.Context, id string) (*core.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, core.ErrUserNotFound
	}
	return u.Clone(), nil
}

func (r *Registry) GetUserByEmail(_ context.Context, email string) (*core.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[core.NormalizeEmail(email)]
	if !ok {
		return nil, core.ErrUserNotFound
	}
	return r.users[id].Clone(), nil
}

func (r *Registry) CreateAccount(_ context.Context, a *core.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[a.UserID]; !ok {
		return core.ErrUserNotFound
	}
	if _, exists := r.accounts[accountKey(a.UserID, a.ProviderID)]; exists {
		return core.ErrUserExists
	}

	r.insertAccount(a)
	return nil
}

func (r *Registry) GetAccountByUserAndProvider(_ context.Context, userID, providerID string) (*core.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.accounts[accountKey(userID, providerID)]
	if !ok {
		return nil, core.ErrAccountNotFound
	}
	c := *a
	return &c, nil
}

// Len returns the number of registered users.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}
