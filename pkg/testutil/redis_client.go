package testutil

import (
	"context"
	"sync"
	"time"
)

// MockRedisClient keeps keys in memory. Expiry is not simulated.
type MockRedisClient struct {
	SetNXFunc func(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	DelFunc   func(ctx context.Context, key ...string) error

	mu   sync.Mutex
	keys map[string]string
}

func (m *MockRedisClient) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	if m.SetNXFunc != nil {
		return m.SetNXFunc(ctx, key, value, ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.keys == nil {
		m.keys = map[string]string{}
	}

	if _, ok := m.keys[key]; ok {
		return false, nil
	}

	m.keys[key] = value
	return true, nil
}

func (m *MockRedisClient) Del(ctx context.Context, key ...string) error {
	if m.DelFunc != nil {
		return m.DelFunc(ctx, key...)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range key {
		delete(m.keys, k)
	}

	return nil
}
