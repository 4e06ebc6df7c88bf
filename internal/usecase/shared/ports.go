package shared

import (
	"context"
	"time"

	"coworking-reservations/internal/domain/reservation"
	"coworking-reservations/internal/domain/space"
	"coworking-reservations/internal/domain/user"

	"github.com/google/uuid"
)

// Repositories return infra.RepositoryError values; KindNotFound for a
// missing id, KindDuplicateKey for a taken email and KindConflict when the
// store itself rejects an overlapping reservation.

type ReservationRepository interface {
	List(ctx context.Context) ([]*reservation.Reservation, error)
	ListBySpace(ctx context.Context, spaceID uuid.UUID) ([]*reservation.Reservation, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*reservation.Reservation, error)
	FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	Insert(ctx context.Context, r *reservation.Reservation) error
	Update(ctx context.Context, r *reservation.Reservation) error
}

type SpaceRepository interface {
	List(ctx context.Context) ([]*space.Space, error)
	FindByID(ctx context.Context, id uuid.UUID) (*space.Space, error)
	Insert(ctx context.Context, s *space.Space) error
	Update(ctx context.Context, s *space.Space) error
}

type UserRepository interface {
	List(ctx context.Context) ([]*user.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByEmail(ctx context.Context, email user.Email) (*user.User, error)
	Insert(ctx context.Context, u *user.User) error
}

// SpaceLocker serializes validate-then-commit sections per space.
type SpaceLocker interface {
	Lock(ctx context.Context, spaceID uuid.UUID) (unlock func(), err error)
}

type EventType string

const (
	EventReservationCreated   EventType = "reservation.created"
	EventReservationUpdated   EventType = "reservation.updated"
	EventReservationCancelled EventType = "reservation.cancelled"
)

type ReservationEvent struct {
	Type          EventType `json:"type"`
	OccurredAt    time.Time `json:"occurredAt"`
	ReservationID uuid.UUID `json:"reservationId"`
	UserID        uuid.UUID `json:"userId"`
	SpaceID       uuid.UUID `json:"spaceId"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	Status        string    `json:"status"`
}

func NewReservationEvent(t EventType, r *reservation.Reservation, at time.Time) ReservationEvent {
	return ReservationEvent{
		Type:          t,
		OccurredAt:    at,
		ReservationID: r.ID(),
		UserID:        r.UserID(),
		SpaceID:       r.SpaceID(),
		StartTime:     r.Start(),
		EndTime:       r.End(),
		Status:        r.Status().String(),
	}
}

type EventPublisher interface {
	Publish(ctx context.Context, event ReservationEvent) error
}
