package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// SlotLocker serialises writers on one broker slot. Acquire never blocks:
// ok is false when someone else holds the key.
type SlotLocker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), ok bool, err error)
}

const slotLockPrefix = "slotlock:"

// releaseScript deletes the key only if we still own it.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisSlotLocker holds locks as SET NX keys with a TTL so a crashed
// holder cannot wedge a slot.
type RedisSlotLocker struct {
	Client *redis.Client
}

func (l *RedisSlotLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), bool, error) {
	k := slotLockPrefix + key
	token := uuid.New().String()

	ok, err := l.Client.SetNX(ctx, k, token, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("acquire slot lock %s: %w", key, err)
	}
	if !ok {
		return nil, false, nil
	}

	release := func() {
		// The request context may already be gone.
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = releaseScript.Run(ctx, l.Client, []string{k}, token).Err()
	}
	return release, true, nil
}

// LocalSlotLocker is an in-process locker for single-instance deployments and tests.
type LocalSlotLocker struct {
	mu   sync.Mutex
	gen  uint64
	held map[string]lease
}

type lease struct {
	gen     uint64
	expires time.Time
}

func NewLocalSlotLocker() *LocalSlotLocker {
	return &LocalSlotLocker{held: make(map[string]lease)}
}

func (l *LocalSlotLocker) Acquire(_ context.Context, key string, ttl time.Duration) (func(), bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if cur, ok := l.held[key]; ok && now.Before(cur.expires) {
		return nil, false, nil
	}
	l.gen++
	mine := lease{gen: l.gen, expires: now.Add(ttl)}
	l.held[key] = mine

	release := func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.held[key].gen == mine.gen {
			delete(l.held, key)
		}
	}
	return release, true, nil
}
