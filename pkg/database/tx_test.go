package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRunInTx_CommitsOnSuccess(t *testing.T) {
	store, err := Open(testConfig(t), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	require.NoError(t, store.Initialize(ctx))

	err = RunInTx(ctx, store.DB, func(ctx context.Context, tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO medications (name, is_active, created_at, updated_at)
			 VALUES ('Sertraline', 1, datetime('now'), datetime('now'))`)
		return err
	})
	require.NoError(t, err)

	var count int
	require.NoError(t, store.DB.GetContext(ctx, &count, "SELECT COUNT(*) FROM medications"))
	assert.Equal(t, 1, count)
}

func TestRunInTx_RollsBackOnError(t *testing.T) {
	store, err := Open(testConfig(t), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	require.NoError(t, store.Initialize(ctx))

	boom := errors.New("boom")
	err = RunInTx(ctx, store.DB, func(ctx context.Context, tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO medications (name, is_active, created_at, updated_at)
			 VALUES ('Sertraline', 1, datetime('now'), datetime('now'))`); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var count int
	require.NoError(t, store.DB.GetContext(ctx, &count, "SELECT COUNT(*) FROM medications"))
	assert.Equal(t, 0, count, "the insert should have been rolled back")
}
