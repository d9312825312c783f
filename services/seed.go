package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lborres/kindercrew/core"
	"github.com/lborres/kindercrew/pkg/crypto"
)

const (
	DemoEmail    = "parent@example.com"
	DemoPassword = "password"
)

// DemoParent is the account every fresh registry starts with.
func DemoParent() *core.User {
	return &core.User{
		ID:        "1",
		Email:     DemoEmail,
		Name:      "Sarah Johnson",
		Role:      core.RoleParent,
		CreatedAt: time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
	}
}

// SeedDefaults installs the demo parent unless its email is already taken.
func SeedDefaults(ctx context.Context, storage core.CredentialStorage, passwords crypto.PasswordHandler) error {
	user := DemoParent()

	existing, err := storage.GetUserByEmail(ctx, user.Email)
	if err != nil && !errors.Is(err, core.ErrUserNotFound) {
		return fmt.Errorf("failed to check demo user: %w", err)
	}
	if existing != nil {
		return nil
	}

	hashed, err := passwords.Hash(DemoPassword)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	err = storage.CreateUserWithAccount(ctx, user, &core.Account{
		ID:           "1",
		UserID:       user.ID,
		ProviderID:   core.ProviderCredential,
		PasswordHash: hashed,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to create demo user: %w", err)
	}
	return nil
}
