//go:build unit || e2e

package builder

import (
	"time"

	"coworking-reservations/internal/domain/reservation"
	reqdto "coworking-reservations/internal/handler/dto/request"
	"coworking-reservations/internal/usecase/commands"
	"coworking-reservations/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	SpaceID   uuid.UUID
	StartTime time.Time
	EndTime   time.Time
	Status    string
	Purpose   string
}

// NewReservationBuilder defaults to a confirmed 10:00-11:00 slot on the day of Now.
func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		SpaceID:   uuid.New(),
		StartTime: At(0, 10, 0),
		EndTime:   At(0, 11, 0),
		Status:    "CONFIRMED",
		Purpose:   "Réunion équipe",
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) Slot() reservation.TimeSlot {
	return reservation.NewTimeSlot(b.StartTime, b.EndTime)
}

// Build methods
func (b *ReservationBuilder) BuildStored() *reservation.Reservation {
	return reservation.ReconstructReservation(
		b.ID, b.UserID, b.SpaceID, b.Slot(),
		reservation.Status(b.Status), reservation.ReconstructPurpose(b.Purpose),
		Now, Now,
	)
}

func (b *ReservationBuilder) BuildCreateInput() commands.CreateReservationInput {
	in := commands.CreateReservationInput{
		UserID:    b.UserID,
		SpaceID:   b.SpaceID,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
	}
	if b.Purpose != "" {
		p := b.Purpose
		in.Purpose = &p
	}
	return in
}

func (b *ReservationBuilder) BuildView() *queries.ReservationView {
	return queries.NewReservationView(b.BuildStored(), nil, nil)
}

func (b *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	in := b.BuildCreateInput()
	return reqdto.CreateReservationRequest{
		UserID:    in.UserID,
		SpaceID:   in.SpaceID,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		Purpose:   in.Purpose,
	}
}

// Fluent builder methods
func (b *ReservationBuilder) WithID(id uuid.UUID) *ReservationBuilder {
	b.ID = id
	return b
}

func (b *ReservationBuilder) WithUser(id uuid.UUID) *ReservationBuilder {
	b.UserID = id
	return b
}

func (b *ReservationBuilder) WithSpace(id uuid.UUID) *ReservationBuilder {
	b.SpaceID = id
	return b
}

func (b *ReservationBuilder) WithSlot(start, end time.Time) *ReservationBuilder {
	b.StartTime = start
	b.EndTime = end
	return b
}

func (b *ReservationBuilder) WithStatus(status string) *ReservationBuilder {
	b.Status = status
	return b
}

func (b *ReservationBuilder) WithPurpose(purpose string) *ReservationBuilder {
	b.Purpose = purpose
	return b
}

func (b *ReservationBuilder) AsCancelled() *ReservationBuilder {
	b.Status = "CANCELLED"
	return b
}
