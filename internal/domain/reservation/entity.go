package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus  = errors.New("invalid reservation status")
	ErrPurposeTooLong = errors.New("purpose is too long (max 500 characters)")
)

type Reservation struct {
	id        uuid.UUID
	userID    uuid.UUID
	spaceID   uuid.UUID
	timeSlot  TimeSlot
	status    Status
	purpose   Purpose
	createdAt time.Time
	updatedAt time.Time
}

// NewReservation builds a reservation without checking the scheduling
// rules; use Factory for validated creation.
func NewReservation(userID, spaceID uuid.UUID, slot TimeSlot, status Status, purpose Purpose, now time.Time) (*Reservation, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	return &Reservation{
		id:        uuid.New(),
		userID:    userID,
		spaceID:   spaceID,
		timeSlot:  slot,
		status:    status,
		purpose:   purpose,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructReservation(
	id, userID, spaceID uuid.UUID,
	timeSlot TimeSlot,
	status Status,
	purpose Purpose,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:        id,
		userID:    userID,
		spaceID:   spaceID,
		timeSlot:  timeSlot,
		status:    status,
		purpose:   purpose,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (r *Reservation) Reschedule(slot TimeSlot, now time.Time) {
	r.timeSlot = slot
	r.updatedAt = now
}

func (r *Reservation) ChangePurpose(p Purpose, now time.Time) {
	r.purpose = p
	r.updatedAt = now
}

func (r *Reservation) ChangeStatus(s Status, now time.Time) error {
	if !s.IsValid() {
		return ErrInvalidStatus
	}
	r.status = s
	r.updatedAt = now
	return nil
}

// Cancel is idempotent.
func (r *Reservation) Cancel(now time.Time) {
	if r.status == StatusCancelled {
		return
	}
	r.status = StatusCancelled
	r.updatedAt = now
}

func (r *Reservation) IsCancelled() bool {
	return r.status == StatusCancelled
}

// StartsOn reports whether the reservation starts within [dayStart, dayEnd).
func (r *Reservation) StartsOn(dayStart, dayEnd time.Time) bool {
	start := r.timeSlot.Start()
	return !start.Before(dayStart) && start.Before(dayEnd)
}

func (r *Reservation) Clone() *Reservation {
	c := *r
	return &c
}

func (r *Reservation) ID() uuid.UUID        { return r.id }
func (r *Reservation) UserID() uuid.UUID    { return r.userID }
func (r *Reservation) SpaceID() uuid.UUID   { return r.spaceID }
func (r *Reservation) TimeSlot() TimeSlot   { return r.timeSlot }
func (r *Reservation) Start() time.Time     { return r.timeSlot.Start() }
func (r *Reservation) End() time.Time       { return r.timeSlot.End() }
func (r *Reservation) Status() Status       { return r.status }
func (r *Reservation) Purpose() Purpose     { return r.purpose }
func (r *Reservation) CreatedAt() time.Time { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time { return r.updatedAt }
