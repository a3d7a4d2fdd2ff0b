package service

import (
	"context"
	"errors"
	"report_backend/pkg/logger"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserLocker serializes read-modify-write cycles on one user's documents.
// The returned unlock func must be called exactly once.
type UserLocker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

type keyedLock struct {
	ch   chan struct{}
	refs int
}

// KeyedMutex is an in-process UserLocker. Entries are dropped once no
// goroutine holds or waits on them, so the map stays bounded by the number
// of users currently being written.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*keyedLock)}
}

func (m *KeyedMutex) Lock(ctx context.Context, key string) (func(), error) {
	m.mu.Lock()
	l, ok := m.locks[key]
	if !ok {
		l = &keyedLock{ch: make(chan struct{}, 1)}
		m.locks[key] = l
	}
	l.refs++
	m.mu.Unlock()

	select {
	case l.ch <- struct{}{}:
	case <-ctx.Done():
		m.release(key, l)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-l.ch
			m.release(key, l)
		})
	}, nil
}

func (m *KeyedMutex) release(key string, l *keyedLock) {
	m.mu.Lock()
	l.refs--
	if l.refs == 0 {
		delete(m.locks, key)
	}
	m.mu.Unlock()
}

// held reports how many keys currently have holders or waiters.
func (m *KeyedMutex) held() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.locks)
}

var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker is a UserLocker shared by every replica talking to the same
// redis. A lock expires after ttl even if its holder dies.
type RedisLocker struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
	retry  time.Duration
}

func NewRedisLocker(rdb *redis.Client, ttl, retry time.Duration) *RedisLocker {
	return &RedisLocker{
		rdb:    rdb,
		prefix: "report:lock:",
		ttl:    ttl,
		retry:  retry,
	}
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	redisKey := l.prefix + key
	token := uuid.NewString()

	for {
		ok, err := l.rdb.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			break
		}

		timer := time.NewTimer(l.retry)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			err := unlockScript.Run(context.Background(), l.rdb, []string{redisKey}, token).Err()
			if err != nil && !errors.Is(err, redis.Nil) {
				logger.Log.Warn("failed to release user lock", zap.String("key", key), zap.Error(err))
			}
		})
	}, nil
}
