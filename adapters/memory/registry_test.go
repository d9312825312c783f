package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lborres/kindercrew/core"
)

func newUser(id, email string) *core.User {
	return &core.User{ID: id, Email: email, Name: "Test", Role: core.RoleParent, CreatedAt: time.Now()}
}

func TestRegistry_CreateUser(t *testing.T) {
	tests := []struct {
		name     string
		existing []*core.User
		create   *core.User
		wantErr  error
	}{
		{name: "empty registry", create: newUser("1", "parent@example.com")},
		{name: "duplicate email", existing: []*core.User{newUser("1", "parent@example.com")}, create: newUser("2", "parent@example.com"), wantErr: core.ErrUserExists},
		{name: "duplicate email differing in case", existing: []*core.User{newUser("1", "parent@example.com")}, create: newUser("2", " Parent@Example.com "), wantErr: core.ErrUserExists},
		{name: "duplicate id", existing: []*core.User{newUser("1", "a@example.com")}, create: newUser("1", "b@example.com"), wantErr: core.ErrUserExists},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			// Arrange
			ctx := context.Background()
			r := New()
			for _, u := range test.existing {
				if err := r.CreateUser(ctx, u); err != nil {
					t.Fatalf("seed CreateUser() error = %v", err)
				}
			}

			// Act
			err := r.CreateUser(ctx, test.create)

			// Assert
			if !errors.Is(err, test.wantErr) {
				t.Errorf("CreateUser() error = %v, want %v", err, test.wantErr)
			}
		})
	}
}

func TestRegistry_GetUserByEmail_IsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	r := New()
	r.CreateUser(ctx, newUser("1", "parent@example.com"))

	u, err := r.GetUserByEmail(ctx, "PARENT@example.com")

	if err != nil {
		t.Fatalf("GetUserByEmail() error = %v", err)
	}
	if u.ID != "1" {
		t.Errorf("ID = %q, want 1", u.ID)
	}
}

func TestRegistry_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	r := New()
	r.CreateUser(ctx, newUser("1", "parent@example.com"))

	u, _ := r.GetUserByID(ctx, "1")
	u.Name = "changed"

	again, _ := r.GetUserByID(ctx, "1")
	if again.Name != "Test" {
		t.Errorf("registry state leaked through returned pointer: %q", again.Name)
	}
}

func TestRegistry_Accounts(t *testing.T) {
	// Arrange
	ctx := context.Background()
	r := New()
	r.CreateUser(ctx, newUser("1", "parent@example.com"))

	// Act
	errOrphan := r.CreateAccount(ctx, &core.Account{ID: "a0", UserID: "nobody", ProviderID: core.ProviderCredential})
	errCreate := r.CreateAccount(ctx, &core.Account{ID: "a1", UserID: "1", ProviderID: core.ProviderCredential, PasswordHash: "h"})
	errDup := r.CreateAccount(ctx, &core.Account{ID: "a2", UserID: "1", ProviderID: core.ProviderCredential})
	acc, errGet := r.GetAccountByUserAndProvider(ctx, "1", core.ProviderCredential)
	_, errMissing := r.GetAccountByUserAndProvider(ctx, "1", "google")

	// Assert
	if !errors.Is(errOrphan, core.ErrUserNotFound) {
		t.Errorf("orphan account error = %v, want ErrUserNotFound", errOrphan)
	}
	if errCreate != nil {
		t.Fatalf("CreateAccount() error = %v", errCreate)
	}
	if !errors.Is(errDup, core.ErrUserExists) {
		t.Errorf("duplicate account error = %v, want ErrUserExists", errDup)
	}
	if errGet != nil || acc.PasswordHash != "h" {
		t.Errorf("GetAccountByUserAndProvider() = %+v, %v", acc, errGet)
	}
	if !errors.Is(errMissing, core.ErrAccountNotFound) {
		t.Errorf("missing provider error = %v, want ErrAccountNotFound", errMissing)
	}
}

// Requirement: registration stores the user and its account together or not at all.
func TestRegistry_CreateUserWithAccount(t *testing.T) {
	ctx := context.Background()
	account := func(userID string) *core.Account {
		return &core.Account{ID: "a-" + userID, UserID: userID, ProviderID: core.ProviderCredential, PasswordHash: "h"}
	}

	tests := []struct {
		name      string
		user      *core.User
		account   *core.Account
		wantErr   error
		wantUsers int
	}{
		{name: "both stored", user: newUser("2", "new@example.com"), account: account("2"), wantUsers: 2},
		{name: "taken email", user: newUser("2", "PARENT@example.com"), account: account("2"), wantErr: core.ErrUserExists, wantUsers: 1},
		{name: "account for another user", user: newUser("2", "new@example.com"), account: account("1"), wantErr: core.ErrUserNotFound, wantUsers: 1},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			// Arrange
			r := New()
			if err := r.CreateUserWithAccount(ctx, newUser("1", "parent@example.com"), account("1")); err != nil {
				t.Fatalf("seed CreateUserWithAccount() error = %v", err)
			}

			// Act
			err := r.CreateUserWithAccount(ctx, test.user, test.account)

			// Assert
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("CreateUserWithAccount() error = %v, want %v", err, test.wantErr)
			}
			if got := r.Len(); got != test.wantUsers {
				t.Errorf("Len() = %d, want %d", got, test.wantUsers)
			}
			_, lookupErr := r.GetUserByEmail(ctx, "new@example.com")
			if test.wantErr != nil && !errors.Is(lookupErr, core.ErrUserNotFound) {
				t.Errorf("failed registration left a user behind: %v", lookupErr)
			}
			if test.wantErr == nil {
				if _, err := r.GetAccountByUserAndProvider(ctx, test.user.ID, core.ProviderCredential); err != nil {
					t.Errorf("GetAccountByUserAndProvider() error = %v", err)
				}
			}
		})
	}
}
