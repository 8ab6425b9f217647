// Package storage is the client's persistent key-value store. Values are
// JSON text; the local user directory and the session snapshot live under
// fixed keys (see common.UsersKey, common.TokenKey, common.IdentityKey).
package storage

import "context"

type Repository interface {
	// Get returns the value stored under key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	// Delete is a no-op for missing keys.
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Clear(ctx context.Context) error
}
