//go:build unit || e2e

package builder

import (
	"coworking-reservations/internal/domain/space"
	reqdto "coworking-reservations/internal/handler/dto/request"
	"coworking-reservations/internal/usecase/commands"
	"coworking-reservations/internal/usecase/queries"

	"github.com/google/uuid"
)

type SpaceBuilder struct {
	ID          uuid.UUID
	Name        string
	Type        string
	Capacity    int
	Amenities   []string
	Description *string
	IsActive    bool
}

func NewSpaceBuilder() *SpaceBuilder {
	description := "Salle de réunion moderne"
	return &SpaceBuilder{
		ID:          uuid.New(),
		Name:        "Salle Alpha",
		Type:        "MEETING_ROOM",
		Capacity:    8,
		Amenities:   []string{"WiFi", "Tableau blanc"},
		Description: &description,
		IsActive:    true,
	}
}

func (b *SpaceBuilder) With(mutate func(*SpaceBuilder)) *SpaceBuilder {
	mutate(b)
	return b
}

func (b *SpaceBuilder) Attributes() space.Attributes {
	return space.Attributes{
		Name:        b.Name,
		Type:        space.Type(b.Type),
		Capacity:    b.Capacity,
		Amenities:   b.Amenities,
		Description: b.Description,
	}
}

// Build methods
func (b *SpaceBuilder) BuildDomain() (*space.Space, error) {
	return space.NewSpace(b.Attributes(), Now)
}

func (b *SpaceBuilder) BuildStored() *space.Space {
	return space.ReconstructSpace(
		b.ID, b.Name, space.Type(b.Type), b.Capacity,
		append([]string(nil), b.Amenities...), b.Description,
		b.IsActive, Now, Now,
	)
}

func (b *SpaceBuilder) BuildInput() commands.SpaceInput {
	return commands.SpaceInput{
		Name:        b.Name,
		Type:        space.Type(b.Type),
		Capacity:    b.Capacity,
		Amenities:   b.Amenities,
		Description: b.Description,
	}
}

func (b *SpaceBuilder) BuildView() *queries.SpaceView {
	return queries.NewSpaceView(b.BuildStored())
}

func (b *SpaceBuilder) BuildRequestDTO() reqdto.SpaceRequest {
	return reqdto.SpaceRequest{
		Name:        b.Name,
		Type:        b.Type,
		Capacity:    b.Capacity,
		Amenities:   b.Amenities,
		Description: b.Description,
	}
}

// Fluent builder methods
func (b *SpaceBuilder) WithID(id uuid.UUID) *SpaceBuilder {
	b.ID = id
	return b
}

func (b *SpaceBuilder) WithName(name string) *SpaceBuilder {
	b.Name = name
	return b
}

func (b *SpaceBuilder) WithType(t string) *SpaceBuilder {
	b.Type = t
	return b
}

func (b *SpaceBuilder) WithCapacity(capacity int) *SpaceBuilder {
	b.Capacity = capacity
	return b
}

func (b *SpaceBuilder) WithAmenities(amenities ...string) *SpaceBuilder {
	b.Amenities = amenities
	return b
}

func (b *SpaceBuilder) WithDescription(description *string) *SpaceBuilder {
	b.Description = description
	return b
}

func (b *SpaceBuilder) AsInactive() *SpaceBuilder {
	b.IsActive = false
	return b
}
