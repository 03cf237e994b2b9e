// Package memory provides an in-process storage.Adapter. It backs tests and
// the ephemeral "memory" backend, where losing the session on exit is fine.
package memory

import (
	"context"
	"sync"
)

type Adapter struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func New() *Adapter {
	return &Adapter{data: make(map[string][]byte)}
}

func (a *Adapter) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	v, ok := a.data[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (a *Adapter) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	a.data[key] = stored
	return nil
}

func (a *Adapter) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.data, key)
	return nil
}
