// Package redis implements storage.Adapter on a Redis server. It exists for
// deployments where the session record lives on a shared host instead of the
// device filesystem; the contract is identical to the sqlite backend.
package redis

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/NigelSimon20/adnab-qr-code-app/internal/storage"
)

type Adapter struct {
	client *redis.Client
}

func New(client *redis.Client) *Adapter {
	return &Adapter{client: client}
}

// Open connects to the Redis server at addr and verifies the connection.
func Open(ctx context.Context, addr, password string, db int) (*Adapter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return New(client), nil
}

func (a *Adapter) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := a.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, storage.NewError(storage.OpGet, key, err)
	}
	return v, nil
}

func (a *Adapter) Set(ctx context.Context, key string, value []byte) error {
	// No TTL: the session record lives until logout removes it.
	if err := a.client.Set(ctx, key, value, 0).Err(); err != nil {
		return storage.NewError(storage.OpSet, key, err)
	}
	return nil
}

func (a *Adapter) Remove(ctx context.Context, key string) error {
	if err := a.client.Del(ctx, key).Err(); err != nil {
		return storage.NewError(storage.OpRemove, key, err)
	}
	return nil
}

// Close releases the underlying client.
func (a *Adapter) Close() error {
	return a.client.Close()
}
