package queries

import (
	"fmt"
	"time"

	"coworking-reservations/internal/domain/reservation"
	"coworking-reservations/internal/domain/space"
	"coworking-reservations/internal/domain/user"

	"github.com/google/uuid"
)

// ReservationView is a reservation joined with its owner and space.
type ReservationView struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	UserName  string
	UserEmail string
	SpaceID   uuid.UUID
	SpaceName string
	SpaceType string
	StartTime time.Time
	EndTime   time.Time
	Status    string
	Purpose   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type SpaceView struct {
	ID          uuid.UUID
	Name        string
	Type        string
	Capacity    int
	Amenities   []string
	Description *string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type UserView struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Role      string
	CreatedAt time.Time
}

// Day is a calendar date interpreted in the scheduling time zone.
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

func ParseDay(s string) (Day, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Day{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	y, m, d := t.Date()
	return Day{Year: y, Month: m, Day: d}, nil
}

func (d Day) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func NewSpaceView(s *space.Space) *SpaceView {
	return &SpaceView{
		ID:          s.ID(),
		Name:        s.Name(),
		Type:        s.Type().String(),
		Capacity:    s.Capacity(),
		Amenities:   append([]string{}, s.Amenities()...),
		Description: s.Description(),
		IsActive:    s.IsActive(),
		CreatedAt:   s.CreatedAt(),
		UpdatedAt:   s.UpdatedAt(),
	}
}

func NewUserView(u *user.User) *UserView {
	return &UserView{
		ID:        u.ID(),
		Name:      u.Name(),
		Email:     u.Email().Value(),
		Role:      u.Role().String(),
		CreatedAt: u.CreatedAt(),
	}
}

// NewReservationView joins r with its owner and space. Either may be nil
// when the referenced record is gone; the names are then left empty.
func NewReservationView(r *reservation.Reservation, u *user.User, s *space.Space) *ReservationView {
	v := &ReservationView{
		ID:        r.ID(),
		UserID:    r.UserID(),
		SpaceID:   r.SpaceID(),
		StartTime: r.Start(),
		EndTime:   r.End(),
		Status:    r.Status().String(),
		Purpose:   r.Purpose().Ptr(),
		CreatedAt: r.CreatedAt(),
		UpdatedAt: r.UpdatedAt(),
	}
	if u != nil {
		v.UserName = u.Name()
		v.UserEmail = u.Email().Value()
	}
	if s != nil {
		v.SpaceName = s.Name()
		v.SpaceType = s.Type().String()
	}
	return v
}
