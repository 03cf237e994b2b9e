// Package storage defines the durable key/value contract the session store
// persists through, and the error type every backend reports failures with.
// Backends live in subpackages (sqlite, redis, memory).
package storage

import (
	"context"
	"errors"
	"fmt"
)

// Operation names carried by Error. "get" failures are read errors;
// "set" and "remove" failures are write errors.
const (
	OpGet    = "get"
	OpSet    = "set"
	OpRemove = "remove"
)

// Adapter is an asynchronous key/value byte store.
//
// Contract:
//   - Get returns (nil, nil) when the key is absent.
//   - A Set followed by a Get on the same key returns the written value once
//     the Set has returned (per-key sequential consistency).
//   - No retries: a failed operation is reported once, as a *Error.
//
// All methods must honor context cancellation.
type Adapter interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// Error describes a failed adapter operation. Op is one of OpGet, OpSet,
// OpRemove; Key is the key the operation targeted.
type Error struct {
	Op  string
	Key string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage %s [%s]: %v", e.Op, e.Key, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError wraps err with the operation and key it failed on.
func NewError(op, key string, err error) *Error {
	return &Error{Op: op, Key: key, Err: err}
}

// IsWrite reports whether err is an adapter error from a mutating operation.
func IsWrite(err error) bool {
	var se *Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Op == OpSet || se.Op == OpRemove
}
