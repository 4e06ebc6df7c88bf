package queries

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/queries/reservation.go -package=queriesmock

import (
	"cmp"
	"context"
	"slices"
	"time"

	"coworking-reservations/internal/domain/reservation"
	"coworking-reservations/internal/domain/space"
	"coworking-reservations/internal/domain/user"
	"coworking-reservations/internal/infra"
	"coworking-reservations/internal/pkg/errs"
	"coworking-reservations/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationQueries interface {
	List(ctx context.Context) ([]*ReservationView, error)
	Get(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*ReservationView, error)
	// ListBySpace optionally narrows to reservations starting on day.
	ListBySpace(ctx context.Context, spaceID uuid.UUID, day *Day) ([]*ReservationView, error)
	// ListByDateRange returns reservations lying entirely within [from, to].
	ListByDateRange(ctx context.Context, from, to time.Time) ([]*ReservationView, error)
}

type reservationQueriesImpl struct {
	reservations shared.ReservationRepository
	spaces       shared.SpaceRepository
	users        shared.UserRepository
	policy       reservation.Policy
}

func NewReservationQueries(
	reservations shared.ReservationRepository,
	spaces shared.SpaceRepository,
	users shared.UserRepository,
	policy reservation.Policy,
) ReservationQueries {
	return &reservationQueriesImpl{
		reservations: reservations,
		spaces:       spaces,
		users:        users,
		policy:       policy,
	}
}

func (q *reservationQueriesImpl) List(ctx context.Context) ([]*ReservationView, error) {
	rs, err := q.reservations.List(ctx)
	if err != nil {
		return nil, err
	}
	return q.toViews(ctx, rs)
}

func (q *reservationQueriesImpl) Get(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	r, err := q.reservations.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrReservationNotFound
		}
		return nil, err
	}
	views, err := q.toViews(ctx, []*reservation.Reservation{r})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (q *reservationQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*ReservationView, error) {
	if _, err := q.users.FindByID(ctx, userID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, err
	}

	rs, err := q.reservations.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return q.toViews(ctx, rs)
}

func (q *reservationQueriesImpl) ListBySpace(ctx context.Context, spaceID uuid.UUID, day *Day) ([]*ReservationView, error) {
	if _, err := q.spaces.FindByID(ctx, spaceID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrSpaceNotFound
		}
		return nil, err
	}

	rs, err := q.reservations.ListBySpace(ctx, spaceID)
	if err != nil {
		return nil, err
	}

	if day != nil {
		dayStart, dayEnd := q.policy.DayBounds(day.In(q.policy.Location))
		rs = slices.DeleteFunc(rs, func(r *reservation.Reservation) bool {
			return !r.StartsOn(dayStart, dayEnd)
		})
	}
	return q.toViews(ctx, rs)
}

func (q *reservationQueriesImpl) ListByDateRange(ctx context.Context, from, to time.Time) ([]*ReservationView, error) {
	if to.Before(from) {
		return nil, errs.Mark(errs.New("endDate must not be before startDate"), errs.ErrMalformedInput)
	}

	rs, err := q.reservations.List(ctx)
	if err != nil {
		return nil, err
	}
	rs = slices.DeleteFunc(rs, func(r *reservation.Reservation) bool {
		return !r.TimeSlot().Within(from, to)
	})
	return q.toViews(ctx, rs)
}

// toViews sorts by start time then id and joins owner and space names.
func (q *reservationQueriesImpl) toViews(ctx context.Context, rs []*reservation.Reservation) ([]*ReservationView, error) {
	users, err := q.users.List(ctx)
	if err != nil {
		return nil, err
	}
	spaces, err := q.spaces.List(ctx)
	if err != nil {
		return nil, err
	}

	usersByID := make(map[uuid.UUID]*user.User, len(users))
	for _, u := range users {
		usersByID[u.ID()] = u
	}
	spacesByID := make(map[uuid.UUID]*space.Space, len(spaces))
	for _, s := range spaces {
		spacesByID[s.ID()] = s
	}

	SortReservations(rs)
	views := make([]*ReservationView, 0, len(rs))
	for _, r := range rs {
		views = append(views, NewReservationView(r, usersByID[r.UserID()], spacesByID[r.SpaceID()]))
	}
	return views, nil
}

func SortReservations(rs []*reservation.Reservation) {
	slices.SortFunc(rs, func(a, b *reservation.Reservation) int {
		if c := a.Start().Compare(b.Start()); c != 0 {
			return c
		}
		return cmp.Compare(a.ID().String(), b.ID().String())
	})
}
