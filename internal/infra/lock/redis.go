package lock

import (
	"context"
	"log/slog"
	"time"

	"coworking-reservations/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "coworking:space-lock:"

// releaseScript deletes the key only if it still carries our token, so a
// holder whose lease expired cannot free someone else's lock.
var releaseScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

// RedisLocker serializes writers across processes with SET NX PX leases.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
	wait   time.Duration
	poll   time.Duration
	logger *slog.Logger
}

func NewRedisLocker(client *redis.Client, ttl, wait time.Duration, logger *slog.Logger) *RedisLocker {
	return &RedisLocker{
		client: client,
		ttl:    ttl,
		wait:   wait,
		poll:   25 * time.Millisecond,
		logger: logger,
	}
}

func (l *RedisLocker) Lock(ctx context.Context, spaceID uuid.UUID) (func(), error) {
	key := keyPrefix + spaceID.String()
	token := uuid.NewString()

	deadline := time.Now().Add(l.wait)
	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, errs.Wrapf(err, "failed to acquire lock %s", key)
		}
		if ok {
			break
		}
		if !time.Now().Before(deadline) {
			return nil, errs.Mark(errs.Newf("lock %s held by another writer", key), ErrLockTimeout)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.poll):
		}
	}

	return func() {
		// release must run even when the request context is already done
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
		defer cancel()
		if err := releaseScript.Run(releaseCtx, l.client, []string{key}, token).Err(); err != nil {
			l.logger.Warn("failed to release space lock",
				slog.String("key", key),
				slog.String("error", err.Error()))
		}
	}, nil
}
