// Package runlock implements a Redis-backed mutual exclusion lock for
// scheduled extract runs, so overlapping cron invocations don't double-load.
package runlock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ErrHeld is returned by Acquire when another run holds the lock.
var ErrHeld = errors.New("run lock already held")

// releaseScript deletes the key only if this process still owns it.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// Lock is a single-holder lock with a TTL safety net: a crashed run releases
// itself when the TTL expires.
type Lock struct {
	rdb    *redis.Client
	key    string
	token  string
	ttl    time.Duration
	logger zerolog.Logger
}

// New creates a lock on the given key.
func New(rdb *redis.Client, key string, ttl time.Duration) *Lock {
	return &Lock{
		rdb:    rdb,
		key:    key,
		token:  uuid.NewString(),
		ttl:    ttl,
		logger: log.With().Str("component", "runlock").Str("key", key).Logger(),
	}
}

// Acquire takes the lock or returns ErrHeld.
func (l *Lock) Acquire(ctx context.Context) error {
	ok, err := l.rdb.SetNX(ctx, l.key, l.token, l.ttl).Result()
	if err != nil {
		return fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return ErrHeld
	}
	l.logger.Debug().Dur("ttl", l.ttl).Msg("Run lock acquired")
	return nil
}

// Release frees the lock if this instance still owns it. Releasing a lock
// that expired and was re-acquired elsewhere is a no-op.
func (l *Lock) Release(ctx context.Context) error {
	deleted, err := releaseScript.Run(ctx, l.rdb, []string{l.key}, l.token).Int()
	if err != nil {
		return fmt.Errorf("release run lock: %w", err)
	}
	if deleted == 0 {
		l.logger.Warn().Msg("Run lock was no longer held at release")
	}
	return nil
}
