package queries

//go:generate mockgen -source=space.go -destination=../../../tests/mock/queries/space.go -package=queriesmock

import (
	"cmp"
	"context"
	"slices"
	"time"

	"coworking-reservations/internal/domain/reservation"
	"coworking-reservations/internal/domain/space"
	"coworking-reservations/internal/infra"
	"coworking-reservations/internal/pkg/errs"
	"coworking-reservations/internal/usecase/shared"

	"github.com/google/uuid"
)

type SpaceQueries interface {
	// List returns active spaces only.
	List(ctx context.Context) ([]*SpaceView, error)
	// Get returns the space even when it has been deactivated.
	Get(ctx context.Context, id uuid.UUID) (*SpaceView, error)
	Available(ctx context.Context, start, end time.Time) ([]*SpaceView, error)
}

type spaceQueriesImpl struct {
	spaces       shared.SpaceRepository
	reservations shared.ReservationRepository
}

func NewSpaceQueries(spaces shared.SpaceRepository, reservations shared.ReservationRepository) SpaceQueries {
	return &spaceQueriesImpl{spaces: spaces, reservations: reservations}
}

func (q *spaceQueriesImpl) List(ctx context.Context) ([]*SpaceView, error) {
	spaces, err := q.spaces.List(ctx)
	if err != nil {
		return nil, err
	}
	spaces = slices.DeleteFunc(spaces, func(s *space.Space) bool { return !s.IsActive() })
	return toSpaceViews(spaces), nil
}

func (q *spaceQueriesImpl) Get(ctx context.Context, id uuid.UUID) (*SpaceView, error) {
	s, err := q.spaces.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrSpaceNotFound
		}
		return nil, err
	}
	return NewSpaceView(s), nil
}

func (q *spaceQueriesImpl) Available(ctx context.Context, start, end time.Time) ([]*SpaceView, error) {
	if !end.After(start) {
		return nil, errs.Mark(errs.New("endTime must be after startTime"), errs.ErrMalformedInput)
	}

	spaces, err := q.spaces.List(ctx)
	if err != nil {
		return nil, err
	}
	existing, err := q.reservations.List(ctx)
	if err != nil {
		return nil, err
	}

	available := reservation.AvailableSpaces(reservation.NewTimeSlot(start, end), spaces, existing)
	return toSpaceViews(available), nil
}

func toSpaceViews(spaces []*space.Space) []*SpaceView {
	slices.SortStableFunc(spaces, func(a, b *space.Space) int {
		if c := a.CreatedAt().Compare(b.CreatedAt()); c != 0 {
			return c
		}
		return cmp.Compare(a.Name(), b.Name())
	})
	views := make([]*SpaceView, 0, len(spaces))
	for _, s := range spaces {
		views = append(views, NewSpaceView(s))
	}
	return views
}
