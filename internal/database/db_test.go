package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/soldash/internal/database/repository"
)

func TestOpenSessionStoreAppliesSchema(t *testing.T) {
	db, err := OpenSessionStore()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	// Migrations must leave the in-memory handle usable.
	require.NoError(t, db.Ping())
	var name string
	require.NoError(t, db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='messages'`).Scan(&name))
	require.Equal(t, "messages", name)

	require.NoError(t, RunMigrations(db))
}

func TestSessionStoresAreIsolated(t *testing.T) {
	ctx := context.Background()
	a, err := OpenSessionStore()
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	b, err := OpenSessionStore()
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })

	require.NoError(t, repository.NewMessageRepo(a).Insert(ctx, repository.Message{
		ID: "m1", Author: "someone", Content: "hi", CreatedAt: time.Now(),
	}))
	n, err := repository.NewMessageRepo(b).Count(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
}
