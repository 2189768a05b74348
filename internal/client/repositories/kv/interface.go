package kv

import "context"

// Store is a string-keyed, string-valued persistent map.
//
// Contract:
//   - Get returns ok=false and a nil error for a missing key.
//   - Set and Delete are unconditional; Delete of a missing key is a no-op.
//   - CompareAndSwap writes value only if the current value equals *old, or,
//     when old is nil, only if the key is absent. It reports whether the write
//     happened; a lost race is (false, nil), not an error.
//
// Implementations are safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	CompareAndSwap(ctx context.Context, key string, old *string, value string) (bool, error)
	Close() error
}
