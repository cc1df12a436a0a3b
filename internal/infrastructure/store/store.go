// Package store holds the durable backends for the single named save record.
package store

import (
	"context"
	"errors"
)

// ErrNotFound means no record exists under the store's name.
var ErrNotFound = errors.New("save record not found")

// Store reads and writes one opaque save payload. Write replaces the whole
// record in a single operation.
type Store interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, payload []byte) error
	Delete(ctx context.Context) error
}
