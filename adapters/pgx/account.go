package pgx

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lborres/kindercrew/core"
)

func (a *Adapter) CreateAccount(ctx context.Context, acc *core.Account) error {
	return insertAccount(ctx, a.pool, acc)
}

func insertAccount(ctx context.Context, db execer, acc *core.Account) error {
	query := `INSERT INTO public.accounts (id, user_id, provider_id, password_hash, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := db.Exec(ctx, query,
		acc.ID, acc.UserID, acc.ProviderID, acc.PasswordHash, acc.CreatedAt, acc.UpdatedAt,
	)
	if err != nil {
		switch pgCode(err) {
		case codeUniqueViolation:
			return core.ErrUserExists
		case codeForeignKeyViolation:
			return core.ErrUserNotFound
		}
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}

func (a *Adapter) GetAccountByUserAndProvider(ctx context.Context, userID, providerID string) (*core.Account, error) {
	query := `SELECT id, user_id, provider_id, password_hash, created_at, updated_at
	          FROM public.accounts WHERE user_id = $1 AND provider_id = $2`

	acc := &core.Account{}
	err := a.pool.QueryRow(ctx, query, userID, providerID).Scan(
		&acc.ID, &acc.UserID, &acc.ProviderID, &acc.PasswordHash, &acc.CreatedAt, &acc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return acc, nil
}
