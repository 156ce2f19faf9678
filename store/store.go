package store

import (
	"context"
	"errors"
)

// ErrClosed is returned by stores that have already been closed.
var ErrClosed = errors.New("appirater/store: store closed")

// Store defines the interface for preference backends. Values live in a
// namespace (one per installed application) and are addressed by fixed keys.
type Store interface {
	// Load returns every value stored under namespace. An unknown namespace
	// yields an empty record and no error.
	Load(ctx context.Context, namespace string) (Record, error)

	// Commit writes every value in batch as one atomic unit. Keys that are not
	// part of the batch keep their stored values. The write is durable when
	// Commit returns.
	Commit(ctx context.Context, namespace string, batch Record) error

	// Reset removes every value under namespace.
	Reset(ctx context.Context, namespace string) error

	// Close releases any resources held by the store.
	Close() error
}
