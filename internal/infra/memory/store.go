package memory

import (
	"sync"

	"coworking-reservations/internal/domain/reservation"
	"coworking-reservations/internal/domain/space"
	"coworking-reservations/internal/domain/user"

	"github.com/google/uuid"
)

// Store keeps every aggregate in process memory. Entities are cloned on the
// way in and out so callers never share state with the store.
type Store struct {
	mu           sync.RWMutex
	users        map[uuid.UUID]*user.User
	emails       map[string]uuid.UUID
	spaces       map[uuid.UUID]*space.Space
	reservations map[uuid.UUID]*reservation.Reservation
}

func NewStore() *Store {
	return &Store{
		users:        make(map[uuid.UUID]*user.User),
		emails:       make(map[string]uuid.UUID),
		spaces:       make(map[uuid.UUID]*space.Space),
		reservations: make(map[uuid.UUID]*reservation.Reservation),
	}
}

func (s *Store) Users() *UserRepository {
	return &UserRepository{store: s}
}

func (s *Store) Spaces() *SpaceRepository {
	return &SpaceRepository{store: s}
}

func (s *Store) Reservations() *ReservationRepository {
	return &ReservationRepository{store: s}
}

// Reset drops all data.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.users)
	clear(s.emails)
	clear(s.spaces)
	clear(s.reservations)
}
