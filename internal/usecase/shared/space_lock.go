package shared

import (
	"context"

	"coworking-reservations/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrLockUnavailable = errs.New("failed to acquire space lock")

// WithSpaceLock runs fn while holding the lock for spaceID.
func WithSpaceLock[T any](ctx context.Context, locker SpaceLocker, spaceID uuid.UUID, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	unlock, err := locker.Lock(ctx, spaceID)
	if err != nil {
		return zero, errs.Mark(err, ErrLockUnavailable)
	}
	defer unlock()

	return fn(ctx)
}
