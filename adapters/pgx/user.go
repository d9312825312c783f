package pgx

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lborres/kindercrew/core"
)

const userColumns = `id, email, name, role, created_at`

func (a *Adapter) CreateUser(ctx context.Context, user *core.User) error {
	return insertUser(ctx, a.pool, user)
}

// CreateUserWithAccount inserts both rows in one transaction.
func (a *Adapter) CreateUserWithAccount(ctx context.Context, user *core.User, acc *core.Account) error {
	tx, err := a.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	// rollback after a successful commit is a no-op
	defer func() { _ = tx.Rollback(ctx) }()

	if err := insertUser(ctx, tx, user); err != nil {
		return err
	}
	if err := insertAccount(ctx, tx, acc); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit registration: %w", err)
	}
	return nil
}

func insertUser(ctx context.Context, db execer, user *core.User) error {
	query := `INSERT INTO public.users (id, email, name, role, created_at) VALUES ($1, $2, $3, $4, $5)`

	_, err := db.Exec(ctx, query, user.ID, user.Email, user.Name, string(user.Role), user.CreatedAt)
	if err != nil {
		if pgCode(err) == codeUniqueViolation {
			return core.ErrUserExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (a *Adapter) GetUserByID(ctx context.Context, id string) (*core.User, error) {
	q := `SELECT ` + userColumns + ` FROM public.users WHERE id = $1`
	return a.scanUser(a.pool.QueryRow(ctx, q, id))
}

// GetUserByEmail matches case-insensitively, like the unique index.
func (a *Adapter) GetUserByEmail(ctx context.Context, email string) (*core.User, error) {
	q := `SELECT ` + userColumns + ` FROM public.users WHERE lower(email) = $1`
	return a.scanUser(a.pool.QueryRow(ctx, q, core.NormalizeEmail(email)))
}

func (a *Adapter) scanUser(row pgx.Row) (*core.User, error) {
	user := &core.User{}
	var role string
	err := row.Scan(&user.ID, &user.Email, &user.Name, &role, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	user.Role = core.Role(role)
	return user, nil
}
