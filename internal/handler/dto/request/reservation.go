package request

import (
	"time"

	"coworking-reservations/internal/domain/reservation"
	"coworking-reservations/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	UserID    uuid.UUID `json:"userId" binding:"required"`
	SpaceID   uuid.UUID `json:"spaceId" binding:"required"`
	StartTime time.Time `json:"startTime" binding:"required"`
	EndTime   time.Time `json:"endTime" binding:"required"`
	Purpose   *string   `json:"purpose,omitempty"`
}

func (r CreateReservationRequest) ToInput() commands.CreateReservationInput {
	return commands.CreateReservationInput{
		UserID:    r.UserID,
		SpaceID:   r.SpaceID,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Purpose:   r.Purpose,
	}
}

// UpdateReservationRequest carries only the fields to change.
type UpdateReservationRequest struct {
	StartTime *time.Time `json:"startTime,omitempty"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	Status    *string    `json:"status,omitempty"`
	Purpose   *string    `json:"purpose,omitempty"`
}

func (r UpdateReservationRequest) ToInput(id uuid.UUID) (commands.UpdateReservationInput, error) {
	in := commands.UpdateReservationInput{
		ID:        id,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Purpose:   r.Purpose,
	}
	if r.Status != nil {
		status, err := reservation.NewStatus(*r.Status)
		if err != nil {
			return commands.UpdateReservationInput{}, err
		}
		in.Status = &status
	}
	return in, nil
}
