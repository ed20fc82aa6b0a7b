package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpen_CreatesDirAndSchema(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "nested", "data")

	db, err := Open(context.Background(), dataDir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = os.Stat(filepath.Join(dataDir, DefaultFileName))
	require.NoError(t, err)

	repo := NewSQLiteRepository(db)
	require.NoError(t, repo.Set(context.Background(), "k", []byte("v")))
}

func TestOpen_IsIdempotentAcrossRestarts(t *testing.T) {
	dataDir := t.TempDir()
	ctx := context.Background()

	db, err := Open(ctx, dataDir)
	require.NoError(t, err)
	require.NoError(t, NewSQLiteRepository(db).Set(ctx, "authToken", []byte(`"T1"`)))
	require.NoError(t, db.Close())

	// Second open replays migrations as a no-op and sees the old data.
	db, err = Open(ctx, dataDir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	v, err := NewSQLiteRepository(db).Get(ctx, "authToken")
	require.NoError(t, err)
	require.Equal(t, []byte(`"T1"`), v)
}
