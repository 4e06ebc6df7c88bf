package response

import (
	"time"

	"coworking-reservations/internal/domain/reservation"
	"coworking-reservations/internal/usecase/commands"
	"coworking-reservations/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	UserName  string    `json:"userName,omitempty"`
	UserEmail string    `json:"userEmail,omitempty"`
	SpaceID   uuid.UUID `json:"spaceId"`
	SpaceName string    `json:"spaceName,omitempty"`
	SpaceType string    `json:"spaceType,omitempty"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Status    string    `json:"status"`
	Purpose   *string   `json:"purpose,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationResultResponse is the envelope of every reservation command,
// successful or not.
type ReservationResultResponse struct {
	Success     bool                   `json:"success"`
	Message     string                 `json:"message"`
	Code        string                 `json:"code,omitempty"`
	Reservation *ReservationResponse   `json:"reservation,omitempty"`
	Conflicts   []*ReservationResponse `json:"conflicts,omitempty"`
}

func FromReservationView(v *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:        v.ID,
		UserID:    v.UserID,
		UserName:  v.UserName,
		UserEmail: v.UserEmail,
		SpaceID:   v.SpaceID,
		SpaceName: v.SpaceName,
		SpaceType: v.SpaceType,
		StartTime: v.StartTime,
		EndTime:   v.EndTime,
		Status:    v.Status,
		Purpose:   v.Purpose,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

func FromReservationViews(views []*queries.ReservationView) []*ReservationResponse {
	res := make([]*ReservationResponse, len(views))
	for i, v := range views {
		res[i] = FromReservationView(v)
	}
	return res
}

func FromReservation(r *reservation.Reservation) *ReservationResponse {
	return FromReservationView(queries.NewReservationView(r, nil, nil))
}

func FromReservationResult(r *commands.ReservationResult) *ReservationResultResponse {
	res := &ReservationResultResponse{
		Success: r.Success,
		Message: r.Message,
		Code:    string(r.Code),
	}
	if r.Reservation != nil {
		res.Reservation = FromReservation(r.Reservation)
	}
	if len(r.Conflicts) > 0 {
		res.Conflicts = make([]*ReservationResponse, len(r.Conflicts))
		for i, c := range r.Conflicts {
			res.Conflicts[i] = FromReservation(c)
		}
	}
	return res
}
