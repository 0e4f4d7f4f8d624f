package cache

import (
	"context"
	"errors"
	"time"
)

// Client is a typed cache over JSON-marshaled values. The redis
// implementation backs submission records, the in-memory one the provider
// catalog.
type Client[T any] interface {
	Get(ctx context.Context, key string) (T, error)
	Set(ctx context.Context, key string, object T, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	GetOrSet(ctx context.Context, opts GetOrSetOpts[T]) (T, error)
}

var (
	ErrNotExists           = errors.New("key not exists on cache storage")
	ErrCallbackNotProvided = errors.New("callback not provided")
)

// GetOrSetOpts drives the read-through path: on a miss the Callback
// produces the value and it is stored under Key for TTL.
type GetOrSetOpts[T any] struct {
	Key      string
	TTL      time.Duration
	Callback func() (T, error)
}
