package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	mu     sync.Mutex
	values map[string]string
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: make(map[string]string)}
}

func (f *fakeRedis) GetValue(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[key], nil
}

func (f *fakeRedis) SetValue(_ context.Context, key, value string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
	return nil
}

func (f *fakeRedis) DelValue(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.values, key)
	return nil
}

func (f *fakeRedis) Keys(_ context.Context, _ string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := make([]string, 0, len(f.values))
	for k := range f.values {
		keys = append(keys, k)
	}
	return keys, nil
}

func TestMonitorRegisterAndUnregister(t *testing.T) {
	redis := newFakeRedis()
	m := NewMonitor(redis, "instance-1")
	ctx := context.Background()

	sess := &Session{CallSID: "CA123", CreatedAt: time.Now()}
	m.Register(ctx, sess)

	calls, err := m.ActiveCalls(ctx)
	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Equal(t, "CA123", calls[0].CallSID)
	assert.Equal(t, "instance-1", calls[0].InstanceID)

	m.Unregister(ctx, "CA123")
	calls, err = m.ActiveCalls(ctx)
	require.NoError(t, err)
	assert.Empty(t, calls)
}

func TestMonitorWithoutRedisIsNoop(t *testing.T) {
	m := NewMonitor(nil, "instance-1")
	ctx := context.Background()

	m.Register(ctx, &Session{CallSID: "CA123"})
	m.Unregister(ctx, "CA123")

	calls, err := m.ActiveCalls(ctx)
	assert.NoError(t, err)
	assert.Nil(t, calls)
}
