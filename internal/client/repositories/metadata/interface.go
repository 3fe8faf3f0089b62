// Package metadata is the local key/value store of the client. It backs the
// persistent credential slot.
package metadata

import (
	"context"
)

// Repository is a string-keyed byte store. Get returns common.ErrorNotFound
// (wrapped) for absent keys; Delete of an absent key is not an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
