package lock

import (
	"context"
	"sync"
	"time"

	"coworking-reservations/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrLockTimeout = errs.New("timed out waiting for space lock")

// MemoryLocker is a keyed mutex for single-process deployments.
type MemoryLocker struct {
	mu    sync.Mutex
	slots map[uuid.UUID]*slot
	wait  time.Duration
}

type slot struct {
	ch   chan struct{}
	refs int
}

// NewMemoryLocker gives up after wait; zero means wait for ctx only.
func NewMemoryLocker(wait time.Duration) *MemoryLocker {
	return &MemoryLocker{slots: make(map[uuid.UUID]*slot), wait: wait}
}

func (l *MemoryLocker) Lock(ctx context.Context, spaceID uuid.UUID) (func(), error) {
	s := l.acquireSlot(spaceID)

	if l.wait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.wait)
		defer cancel()
	}

	select {
	case s.ch <- struct{}{}:
	case <-ctx.Done():
		l.releaseSlot(spaceID)
		if errs.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, errs.Mark(ctx.Err(), ErrLockTimeout)
		}
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-s.ch
			l.releaseSlot(spaceID)
		})
	}, nil
}

func (l *MemoryLocker) acquireSlot(id uuid.UUID) *slot {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.slots[id]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.slots[id] = s
	}
	s.refs++
	return s
}

// releaseSlot drops the entry once nobody holds or waits for it.
func (l *MemoryLocker) releaseSlot(id uuid.UUID) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s := l.slots[id]
	s.refs--
	if s.refs == 0 {
		delete(l.slots, id)
	}
}
