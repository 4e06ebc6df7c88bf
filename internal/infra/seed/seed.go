package seed

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	"coworking-reservations/internal/domain/reservation"
	"coworking-reservations/internal/domain/space"
	"coworking-reservations/internal/domain/user"
	"coworking-reservations/internal/usecase/shared"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultData []byte

// namespace keeps seeded ids stable across restarts.
var namespace = uuid.MustParse("6f1c1a52-8a1e-4d3b-9a57-0c7f3f6b2d10")

type Dataset struct {
	Users        []UserRecord        `yaml:"users"`
	Spaces       []SpaceRecord       `yaml:"spaces"`
	Reservations []ReservationRecord `yaml:"reservations"`
}

type UserRecord struct {
	Ref       string    `yaml:"ref"`
	Name      string    `yaml:"name"`
	Email     string    `yaml:"email"`
	Role      string    `yaml:"role"`
	CreatedAt time.Time `yaml:"createdAt"`
}

type SpaceRecord struct {
	Ref         string    `yaml:"ref"`
	Name        string    `yaml:"name"`
	Type        string    `yaml:"type"`
	Capacity    int       `yaml:"capacity"`
	Amenities   []string  `yaml:"amenities"`
	Description string    `yaml:"description"`
	CreatedAt   time.Time `yaml:"createdAt"`
}

type ReservationRecord struct {
	Ref       string    `yaml:"ref"`
	User      string    `yaml:"user"`
	Space     string    `yaml:"space"`
	StartTime time.Time `yaml:"startTime"`
	EndTime   time.Time `yaml:"endTime"`
	Status    string    `yaml:"status"`
	Purpose   string    `yaml:"purpose"`
	CreatedAt time.Time `yaml:"createdAt"`
}

// ID maps a dataset ref to the uuid it is stored under.
func ID(ref string) uuid.UUID {
	return uuid.NewSHA1(namespace, []byte(ref))
}

func Default() (*Dataset, error) {
	return Parse(defaultData)
}

func Parse(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}
	return &ds, nil
}

type Seeder struct {
	users        shared.UserRepository
	spaces       shared.SpaceRepository
	reservations shared.ReservationRepository
	logger       *slog.Logger
}

func NewSeeder(
	users shared.UserRepository,
	spaces shared.SpaceRepository,
	reservations shared.ReservationRepository,
	logger *slog.Logger,
) *Seeder {
	return &Seeder{users: users, spaces: spaces, reservations: reservations, logger: logger}
}

// Run loads ds unless the store already holds users.
func (s *Seeder) Run(ctx context.Context, ds *Dataset) error {
	existing, err := s.users.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		s.logger.Info("seed skipped, store not empty", slog.Int("users", len(existing)))
		return nil
	}

	for _, rec := range ds.Users {
		u, err := rec.toDomain()
		if err != nil {
			return err
		}
		if err := s.users.Insert(ctx, u); err != nil {
			return fmt.Errorf("seed user %s: %w", rec.Ref, err)
		}
	}
	for _, rec := range ds.Spaces {
		sp, err := rec.toDomain()
		if err != nil {
			return err
		}
		if err := s.spaces.Insert(ctx, sp); err != nil {
			return fmt.Errorf("seed space %s: %w", rec.Ref, err)
		}
	}
	for _, rec := range ds.Reservations {
		r, err := rec.toDomain()
		if err != nil {
			return err
		}
		if err := s.reservations.Insert(ctx, r); err != nil {
			return fmt.Errorf("seed reservation %s: %w", rec.Ref, err)
		}
	}

	s.logger.Info("seed data loaded",
		slog.Int("users", len(ds.Users)),
		slog.Int("spaces", len(ds.Spaces)),
		slog.Int("reservations", len(ds.Reservations)),
	)
	return nil
}

func (rec UserRecord) toDomain() (*user.User, error) {
	email, err := user.NewEmail(rec.Email)
	if err != nil {
		return nil, fmt.Errorf("seed user %s: %w", rec.Ref, err)
	}
	role, err := user.NewRole(rec.Role)
	if err != nil {
		return nil, fmt.Errorf("seed user %s: %w", rec.Ref, err)
	}
	return user.ReconstructUser(ID(rec.Ref), rec.Name, email, role, rec.CreatedAt), nil
}

func (rec SpaceRecord) toDomain() (*space.Space, error) {
	t, err := space.NewType(rec.Type)
	if err != nil {
		return nil, fmt.Errorf("seed space %s: %w", rec.Ref, err)
	}
	var description *string
	if rec.Description != "" {
		description = &rec.Description
	}
	return space.ReconstructSpace(
		ID(rec.Ref), rec.Name, t, rec.Capacity, rec.Amenities, description,
		true, rec.CreatedAt, rec.CreatedAt,
	), nil
}

func (rec ReservationRecord) toDomain() (*reservation.Reservation, error) {
	status, err := reservation.NewStatus(rec.Status)
	if err != nil {
		return nil, fmt.Errorf("seed reservation %s: %w", rec.Ref, err)
	}
	purpose, err := reservation.NewPurpose(rec.Purpose)
	if err != nil {
		return nil, fmt.Errorf("seed reservation %s: %w", rec.Ref, err)
	}
	return reservation.ReconstructReservation(
		ID(rec.Ref), ID(rec.User), ID(rec.Space),
		reservation.NewTimeSlot(rec.StartTime, rec.EndTime),
		status, purpose, rec.CreatedAt, rec.CreatedAt,
	), nil
}
