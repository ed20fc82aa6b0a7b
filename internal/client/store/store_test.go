package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/andiamoid/andiamo-admin/internal/logging"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE kv (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func insertRaw(t *testing.T, db *sql.DB, k string, v []byte) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO kv(key,value) VALUES(?,?)`, k, v)
	require.NoError(t, err)
}

func TestRepository_GetAbsentKey(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)

	v, err := repo.Get(context.Background(), "missing")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestRepository_SetOverwrites(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "k", []byte("v1")))
	require.NoError(t, repo.Set(ctx, "k", []byte("v2")))

	v, err := repo.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("v2"), v)
}

func TestRepository_DeleteIsIdempotent(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "k", []byte("v")))
	require.NoError(t, repo.Delete(ctx, "k"))
	require.NoError(t, repo.Delete(ctx, "k"))

	v, err := repo.Get(ctx, "k")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestRepository_List(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "a", []byte("1")))
	require.NoError(t, repo.Set(ctx, "b", []byte("2")))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Equal(t, map[string][]byte{"a": []byte("1"), "b": []byte("2")}, all)
}

type testUser struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func TestKV_RoundTrip(t *testing.T) {
	kv := NewKV(setupDB(t), logging.NewNopLogger())
	ctx := context.Background()

	in := testUser{ID: 1, Name: "A", Email: "a@b.com"}
	kv.Set(ctx, "userData", in)

	var out testUser
	require.True(t, kv.Get(ctx, "userData", &out))
	require.Equal(t, in, out)
}

func TestKV_GetAbsent(t *testing.T) {
	kv := NewKV(setupDB(t), nil)

	var out string
	require.False(t, kv.Get(context.Background(), "authToken", &out))
	require.Empty(t, out)
}

func TestKV_GetCorruptValueNeverErrors(t *testing.T) {
	db := setupDB(t)
	insertRaw(t, db, "userData", []byte(`{"id": not-json`))
	kv := NewKV(db, logging.NewNopLogger())

	var out testUser
	require.NotPanics(t, func() {
		require.False(t, kv.Get(context.Background(), "userData", &out))
	})
}

func TestKV_SetUnserializableValueIsSwallowed(t *testing.T) {
	kv := NewKV(setupDB(t), logging.NewNopLogger())
	ctx := context.Background()

	// Channels cannot be JSON-marshalled; the write must be dropped quietly.
	require.NotPanics(t, func() { kv.Set(ctx, "bad", make(chan int)) })

	var out any
	require.False(t, kv.Get(ctx, "bad", &out))
}

func TestKV_SetAllWritesAtomically(t *testing.T) {
	db := setupDB(t)
	kv := NewKV(db, logging.NewNopLogger())
	ctx := context.Background()

	kv.SetAll(ctx, map[string]any{
		"authToken": "T1",
		"userData":  testUser{ID: 1, Name: "A", Email: "a@b.com"},
	})

	var token string
	var user testUser
	require.True(t, kv.Get(ctx, "authToken", &token))
	require.True(t, kv.Get(ctx, "userData", &user))
	require.Equal(t, "T1", token)
	require.Equal(t, "a@b.com", user.Email)
}

func TestKV_RemoveAllClearsEverything(t *testing.T) {
	db := setupDB(t)
	kv := NewKV(db, logging.NewNopLogger())
	ctx := context.Background()

	kv.Set(ctx, "authToken", "T1")
	kv.Set(ctx, "userData", testUser{ID: 1})
	kv.RemoveAll(ctx, "authToken", "userData")

	var token string
	var user testUser
	require.False(t, kv.Get(ctx, "authToken", &token))
	require.False(t, kv.Get(ctx, "userData", &user))
}

func TestKV_RemoveAbsentKey(t *testing.T) {
	kv := NewKV(setupDB(t), nil)
	require.NotPanics(t, func() { kv.Remove(context.Background(), "missing") })
}
