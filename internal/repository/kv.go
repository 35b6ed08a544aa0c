package repository

import "context"

// KV is the persistent key-value store the application keeps all of its
// records in. Get reports absence through the second return value rather
// than an error; Set overwrites unconditionally (last write wins).
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}
