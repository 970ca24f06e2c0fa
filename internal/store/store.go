// ABOUTME: Storage adapter interface for coven-wallet persistence.
// ABOUTME: A minimal asynchronous key-value surface, pluggable by the host.

package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has no stored value.
var ErrNotFound = errors.New("not found")

// Storage is the key-value persistence capability the wallet kit writes its
// recent-connection record through. Implementations may fail with any
// adapter-defined error; the kit treats every failure as "no record" on
// read and "write skipped" on write.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
