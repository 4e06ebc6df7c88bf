package response

import (
	"time"

	"coworking-reservations/internal/usecase/commands"
	"coworking-reservations/internal/usecase/queries"

	"github.com/google/uuid"
)

type SpaceResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Capacity    int       `json:"capacity"`
	Amenities   []string  `json:"amenities"`
	Description *string   `json:"description,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type SpaceResultResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Code    string         `json:"code,omitempty"`
	Space   *SpaceResponse `json:"space,omitempty"`
}

func FromSpaceView(v *queries.SpaceView) *SpaceResponse {
	amenities := v.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	return &SpaceResponse{
		ID:          v.ID,
		Name:        v.Name,
		Type:        v.Type,
		Capacity:    v.Capacity,
		Amenities:   amenities,
		Description: v.Description,
		IsActive:    v.IsActive,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

func FromSpaceViews(views []*queries.SpaceView) []*SpaceResponse {
	res := make([]*SpaceResponse, len(views))
	for i, v := range views {
		res[i] = FromSpaceView(v)
	}
	return res
}

func FromSpaceResult(r *commands.SpaceResult) *SpaceResultResponse {
	res := &SpaceResultResponse{Success: r.Success, Message: r.Message, Code: string(r.Code)}
	if r.Space != nil {
		res.Space = FromSpaceView(queries.NewSpaceView(r.Space))
	}
	return res
}
