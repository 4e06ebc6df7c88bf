package request

import (
	"coworking-reservations/internal/domain/space"
	"coworking-reservations/internal/usecase/commands"
)

// SpaceRequest serves both create and full update.
type SpaceRequest struct {
	Name        string   `json:"name" binding:"required"`
	Type        string   `json:"type" binding:"required"`
	Capacity    int      `json:"capacity" binding:"required,min=1"`
	Amenities   []string `json:"amenities"`
	Description *string  `json:"description,omitempty"`
}

func (r SpaceRequest) ToInput() commands.SpaceInput {
	return commands.SpaceInput{
		Name:        r.Name,
		Type:        space.Type(r.Type),
		Capacity:    r.Capacity,
		Amenities:   r.Amenities,
		Description: r.Description,
	}
}
