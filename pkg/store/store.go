// Package store is the narrow object-store surface the rest of the
// system depends on: byte blobs keyed by slash-separated paths, with
// prefix listing. Blobs are treated as immutable once written.
package store

import (
	"context"
	"errors"
)

// ErrNotFound reports that no blob exists at the requested path.
var ErrNotFound = errors.New("store: not found")

// Store reads, writes and lists blobs by path.
type Store interface {
	Get(ctx context.Context, path string) ([]byte, error)
	Put(ctx context.Context, path string, data []byte) error
	List(ctx context.Context, prefix string) ([]string, error)
}
