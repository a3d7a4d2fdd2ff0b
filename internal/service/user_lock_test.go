package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	m := NewKeyedMutex()
	ctx := context.Background()

	var active, maxActive int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := m.Lock(ctx, "u1")
			if !assert.NoError(t, err) {
				return
			}
			defer unlock()

			n := atomic.AddInt32(&active, 1)
			for {
				cur := atomic.LoadInt32(&maxActive)
				if n <= cur || atomic.CompareAndSwapInt32(&maxActive, cur, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&active, -1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxActive)
	assert.Equal(t, 0, m.held())
}

func TestKeyedMutex_DifferentKeysDoNotBlock(t *testing.T) {
	m := NewKeyedMutex()
	ctx := context.Background()

	unlockA, err := m.Lock(ctx, "a")
	require.NoError(t, err)
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB, err := m.Lock(ctx, "b")
		if err == nil {
			unlockB()
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on b blocked behind a")
	}
}

func TestKeyedMutex_ContextCancelled(t *testing.T) {
	m := NewKeyedMutex()

	unlock, err := m.Lock(context.Background(), "u1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = m.Lock(ctx, "u1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, m.held())

	unlock()
	// A second call must not release someone else's hold.
	unlock()
	assert.Equal(t, 0, m.held())

	unlock, err = m.Lock(context.Background(), "u1")
	require.NoError(t, err)
	unlock()
}
