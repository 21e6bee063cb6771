// Package store persists forms, responses and users in SQLite. Forms and
// responses are kept as JSON blobs under well-known keys.
package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("not found")

type Blobs struct {
	db *sql.DB
}

func NewBlobs(db *sql.DB) *Blobs {
	return &Blobs{db}
}

// Get returns the blob stored under key, or ErrNotFound.
func (b *Blobs) Get(ctx context.Context, key string) ([]byte, error) {
	return get(ctx, b.db, key)
}

func (b *Blobs) Put(ctx context.Context, key string, value []byte) error {
	return put(ctx, b.db, key, value)
}

// Update replaces the blob under key with fn's result inside a single
// transaction. fn receives nil when no blob is stored yet.
func (b *Blobs) Update(ctx context.Context, key string, fn func(old []byte) ([]byte, error)) error {
	return b.InTx(ctx, func(tx *BlobTx) error {
		old, err := tx.Get(ctx, key)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}

		value, err := fn(old)
		if err != nil {
			return err
		}
		return tx.Put(ctx, key, value)
	})
}

// InTx runs fn in one write transaction, committed when fn returns nil.
// Transactions begin immediately, so other writers wait until it ends.
func (b *Blobs) InTx(ctx context.Context, fn func(tx *BlobTx) error) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "blob.tx.begin")
	}
	defer tx.Rollback()

	if err = fn(&BlobTx{tx}); err != nil {
		return err
	}
	return errors.Wrap(tx.Commit(), "blob.tx.commit")
}

type BlobTx struct {
	tx *sql.Tx
}

// Get returns the blob stored under key, or ErrNotFound.
func (t *BlobTx) Get(ctx context.Context, key string) ([]byte, error) {
	return get(ctx, t.tx, key)
}

func (t *BlobTx) Put(ctx context.Context, key string, value []byte) error {
	return put(ctx, t.tx, key, value)
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func get(ctx context.Context, db queryer, key string) ([]byte, error) {
	var value []byte
	err := db.
		QueryRowContext(ctx, "SELECT value FROM blob WHERE key = ?", key).
		Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "blob.get %s", key)
	}
	return value, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func put(ctx context.Context, db execer, key string, value []byte) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO blob (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`,
		key,
		value,
		time.Now(),
	)
	return errors.Wrapf(err, "blob.put %s", key)
}
