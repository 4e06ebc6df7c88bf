package space

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName          = errors.New("space name cannot be empty")
	ErrNameTooLong        = errors.New("space name is too long (max 255 characters)")
	ErrInvalidType        = errors.New("invalid space type")
	ErrInvalidCapacity    = errors.New("capacity must be at least 1")
	ErrDescriptionTooLong = errors.New("space description is too long (max 1000 characters)")
)

const (
	MaxNameLength        = 255
	MaxDescriptionLength = 1000
)

// Attributes holds the editable fields of a space.
type Attributes struct {
	Name        string
	Type        Type
	Capacity    int
	Amenities   []string
	Description *string
}

type Space struct {
	id          uuid.UUID
	name        string
	spaceType   Type
	capacity    int
	amenities   []string
	description *string
	isActive    bool
	createdAt   time.Time
	updatedAt   time.Time
}

// NewSpace creates an active space.
func NewSpace(attrs Attributes, now time.Time) (*Space, error) {
	s := &Space{
		id:        uuid.New(),
		isActive:  true,
		createdAt: now,
		updatedAt: now,
	}
	if err := s.apply(attrs); err != nil {
		return nil, err
	}
	return s, nil
}

func ReconstructSpace(
	id uuid.UUID,
	name string,
	spaceType Type,
	capacity int,
	amenities []string,
	description *string,
	isActive bool,
	createdAt, updatedAt time.Time,
) *Space {
	return &Space{
		id:          id,
		name:        name,
		spaceType:   spaceType,
		capacity:    capacity,
		amenities:   amenities,
		description: description,
		isActive:    isActive,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// Update replaces every editable field. Activity is left untouched.
func (s *Space) Update(attrs Attributes, now time.Time) error {
	next := *s
	if err := next.apply(attrs); err != nil {
		return err
	}
	next.updatedAt = now
	*s = next
	return nil
}

// Deactivate soft-deletes the space. Repeated calls are no-ops.
func (s *Space) Deactivate(now time.Time) {
	if !s.isActive {
		return
	}
	s.isActive = false
	s.updatedAt = now
}

func (s *Space) apply(attrs Attributes) error {
	name := strings.TrimSpace(attrs.Name)
	if name == "" {
		return ErrEmptyName
	}
	if len(name) > MaxNameLength {
		return ErrNameTooLong
	}
	if !attrs.Type.IsValid() {
		return ErrInvalidType
	}
	if attrs.Capacity < 1 {
		return ErrInvalidCapacity
	}

	var description *string
	if attrs.Description != nil {
		d := strings.TrimSpace(*attrs.Description)
		if len(d) > MaxDescriptionLength {
			return ErrDescriptionTooLong
		}
		if d != "" {
			description = &d
		}
	}

	s.name = name
	s.spaceType = attrs.Type
	s.capacity = attrs.Capacity
	s.amenities = normalizeAmenities(attrs.Amenities)
	s.description = description
	return nil
}

func normalizeAmenities(in []string) []string {
	out := make([]string, 0, len(in))
	for _, a := range in {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}

// Clone returns a deep copy safe to hand across store boundaries.
func (s *Space) Clone() *Space {
	c := *s
	c.amenities = append([]string(nil), s.amenities...)
	if s.description != nil {
		d := *s.description
		c.description = &d
	}
	return &c
}

func (s *Space) ID() uuid.UUID        { return s.id }
func (s *Space) Name() string         { return s.name }
func (s *Space) Type() Type           { return s.spaceType }
func (s *Space) Capacity() int        { return s.capacity }
func (s *Space) Amenities() []string  { return s.amenities }
func (s *Space) Description() *string { return s.description }
func (s *Space) IsActive() bool       { return s.isActive }
func (s *Space) CreatedAt() time.Time { return s.createdAt }
func (s *Space) UpdatedAt() time.Time { return s.updatedAt }
