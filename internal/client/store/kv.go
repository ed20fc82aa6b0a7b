// Package store is the persistent key-value layer backing session restore.
// Values are JSON-encoded under fixed keys, and every failure is swallowed
// after logging so a broken store degrades to "no value", never to a crash.
package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/andiamoid/andiamo-admin/internal/dbx"
	"github.com/andiamoid/andiamo-admin/internal/logging"
)

// KV is the failure-tolerant typed wrapper the rest of the app uses.
//
// Contract:
//   - Set serializes value and writes it under key; on any failure it logs
//     and returns without raising to the caller.
//   - Get reads and deserializes into dest; it reports false (never an
//     error) if the key is absent or the content is corrupt.
//   - Remove deletes the key; removing an absent key is not an error.
type KV struct {
	db  *sql.DB
	log logging.Logger
}

func NewKV(db *sql.DB, log logging.Logger) *KV {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &KV{db: db, log: log.With("component", "store")}
}

func (kv *KV) repo() Repository {
	return NewSQLiteRepository(kv.db)
}

// Set writes the JSON encoding of value under key. Failures are logged and
// swallowed.
func (kv *KV) Set(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		kv.log.Error(ctx, "error saving to store", "key", key, "err", err)
		return
	}
	if err := kv.repo().Set(ctx, key, data); err != nil {
		kv.log.Error(ctx, "error saving to store", "key", key, "err", err)
	}
}

// SetAll writes several keys in one transaction, so a credential never
// lands on disk without its user record. Failures are logged and swallowed.
func (kv *KV) SetAll(ctx context.Context, values map[string]any) {
	encoded := make(map[string][]byte, len(values))
	for key, value := range values {
		data, err := json.Marshal(value)
		if err != nil {
			kv.log.Error(ctx, "error saving to store", "key", key, "err", err)
			return
		}
		encoded[key] = data
	}

	err := dbx.WithTx(ctx, kv.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteRepository(tx)
		for key, data := range encoded {
			if err := repo.Set(ctx, key, data); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		kv.log.Error(ctx, "error saving to store", "err", err)
	}
}

// Get reads key into dest. It reports whether a usable value was found;
// absent keys and corrupt content both come back as false.
func (kv *KV) Get(ctx context.Context, key string, dest any) bool {
	data, err := kv.repo().Get(ctx, key)
	if err != nil {
		kv.log.Error(ctx, "error reading from store", "key", key, "err", err)
		return false
	}
	if data == nil {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		kv.log.Error(ctx, "error decoding store value", "key", key, "err", err)
		return false
	}
	return true
}

// Remove deletes key. Idempotent; failures are logged and swallowed.
func (kv *KV) Remove(ctx context.Context, key string) {
	if err := kv.repo().Delete(ctx, key); err != nil {
		kv.log.Error(ctx, "error removing from store", "key", key, "err", err)
	}
}

// RemoveAll deletes several keys in one transaction. Failures are logged
// and swallowed.
func (kv *KV) RemoveAll(ctx context.Context, keys ...string) {
	err := dbx.WithTx(ctx, kv.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteRepository(tx)
		for _, key := range keys {
			if err := repo.Delete(ctx, key); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		kv.log.Error(ctx, "error removing from store", "err", err)
	}
}
