package reservation

import (
	"coworking-reservations/internal/pkg/clock"

	"github.com/google/uuid"
)

type Factory struct {
	Clock       clock.Clock
	Policy      Policy
	AutoConfirm bool
}

func NewFactory(clock clock.Clock, policy Policy, autoConfirm bool) *Factory {
	return &Factory{
		Clock:       clock,
		Policy:      policy,
		AutoConfirm: autoConfirm,
	}
}

// CreateReservation validates the window and returns an uncommitted
// reservation. Conflicts are the caller's concern since they depend on
// the current store contents.
func (f *Factory) CreateReservation(userID, spaceID uuid.UUID, slot TimeSlot, purpose Purpose) (*Reservation, error) {
	now := f.Clock.Now()
	if err := f.Policy.ValidateWindow(slot, now); err != nil {
		return nil, err
	}

	status := StatusPending
	if f.AutoConfirm {
		status = StatusConfirmed
	}

	return NewReservation(userID, spaceID, slot, status, purpose, now)
}

// ValidateReschedule checks a new window for an existing reservation.
func (f *Factory) ValidateReschedule(slot TimeSlot) error {
	return f.Policy.ValidateWindow(slot, f.Clock.Now())
}
