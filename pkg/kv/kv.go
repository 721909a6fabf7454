// Package kv abstracts the durable key-value store the appointment
// collection persists to. Values are opaque byte blobs; the caller owns
// serialization.
package kv

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when the key has never been written.
var ErrKeyNotFound = errors.New("kv: key not found")

// Store is a flat string-keyed blob store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}
