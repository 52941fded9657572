package kv

import "context"

type Repository interface {
	// Get returns the value stored under key; ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Put writes every pair in values in a single transaction.
	Put(ctx context.Context, values map[string]string) error
	// Delete removes keys in a single transaction. Absent keys are ignored.
	Delete(ctx context.Context, keys ...string) error
	// Clear removes every key owned by the repository.
	Clear(ctx context.Context) error
}
