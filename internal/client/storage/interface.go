// Package storage owns the durable client-side state: the session token and
// the last profile snapshot, kept in a SQLite-backed key-value table.
package storage

import "context"

// Repository is the raw key-value surface over the kv_store table.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
