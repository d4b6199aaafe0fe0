// Package metadata is a small durable key-value store for client state that
// is not registry data: the session pointer, the theme preference, and the
// per-device signing secret.
package metadata

import (
	"context"
)

// Keys used by the auth core. Other components may store their own keys;
// these are the reserved ones.
const (
	KeySession      = "session"
	KeyTheme        = "theme"
	KeyDeviceSecret = "device_secret"
)

type Repository interface {
	// Get returns the value for key, or nil if the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set inserts or replaces the value for key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes all keys.
	Clear(ctx context.Context) error
}
