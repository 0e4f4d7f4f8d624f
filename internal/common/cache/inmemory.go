package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// InMemoryClient backs the catalog cache in single-process deployments and
// tests. Values are stored marshaled so Get always hands out a fresh copy.
type InMemoryClient[T any] struct {
	mu      sync.RWMutex
	entries map[string]entry
	done    chan struct{}
}

type entry struct {
	payload   []byte
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && e.expiresAt.Before(now)
}

func NewInMemoryClient[T any]() *InMemoryClient[T] {
	m := &InMemoryClient[T]{
		entries: make(map[string]entry),
		done:    make(chan struct{}),
	}

	go m.janitor()
	return m
}

func (m *InMemoryClient[T]) Get(ctx context.Context, key string) (result T, err error) {
	m.mu.RLock()
	e, found := m.entries[key]
	m.mu.RUnlock()

	if !found {
		return result, ErrNotExists
	}

	if e.expired(time.Now()) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return result, ErrNotExists
	}

	if err = json.Unmarshal(e.payload, &result); err != nil {
		return result, err
	}

	return result, nil
}

func (m *InMemoryClient[T]) Set(ctx context.Context, key string, object T, ttl time.Duration) error {
	payload, err := json.Marshal(object)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.entries[key] = entry{
		payload:   payload,
		expiresAt: time.Now().Add(ttl),
	}
	m.mu.Unlock()

	return nil
}

func (m *InMemoryClient[T]) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

func (m *InMemoryClient[T]) GetOrSet(ctx context.Context, opts GetOrSetOpts[T]) (result T, err error) {
	if opts.Callback == nil {
		return result, ErrCallbackNotProvided
	}

	obj, err := m.Get(ctx, opts.Key)
	if err == nil {
		return obj, nil
	}
	if err != ErrNotExists {
		return result, err
	}

	obj, err = opts.Callback()
	if err != nil {
		return result, err
	}

	if err = m.Set(ctx, opts.Key, obj, opts.TTL); err != nil {
		return result, err
	}

	return obj, nil
}

func (m *InMemoryClient[T]) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			m.mu.Lock()
			for key, e := range m.entries {
				if e.expired(now) {
					delete(m.entries, key)
				}
			}
			m.mu.Unlock()
		case <-m.done:
			return
		}
	}
}

// Close stops the janitor.
func (m *InMemoryClient[T]) Close() {
	close(m.done)
}
