package pgx

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lborres/kindercrew/core"
)

func (a *Adapter) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := a.pool.QueryRow(ctx, `SELECT value FROM public.persisted_records WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get record: %w", err)
	}
	return value, nil
}

func (a *Adapter) Set(ctx context.Context, key string, value []byte) error {
	query := `INSERT INTO public.persisted_records (key, value, updated_at) VALUES ($1, $2, now())
	          ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	if _, err := a.pool.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to set record: %w", err)
	}
	return nil
}

func (a *Adapter) Delete(ctx context.Context, key string) error {
	if _, err := a.pool.Exec(ctx, `DELETE FROM public.persisted_records WHERE key = $1`, key); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}
