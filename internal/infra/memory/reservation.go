package memory

import (
	"context"

	"coworking-reservations/internal/domain/reservation"
	"coworking-reservations/internal/infra"

	"github.com/google/uuid"
)

// ReservationRepository refuses to store two active reservations that
// overlap on the same space, matching the exclusion constraint of the
// postgres schema.
type ReservationRepository struct {
	store *Store
}

func (r *ReservationRepository) List(_ context.Context) ([]*reservation.Reservation, error) {
	return r.filter(func(*reservation.Reservation) bool { return true }), nil
}

func (r *ReservationRepository) ListBySpace(_ context.Context, spaceID uuid.UUID) ([]*reservation.Reservation, error) {
	return r.filter(func(res *reservation.Reservation) bool { return res.SpaceID() == spaceID }), nil
}

func (r *ReservationRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]*reservation.Reservation, error) {
	return r.filter(func(res *reservation.Reservation) bool { return res.UserID() == userID }), nil
}

func (r *ReservationRepository) FindByID(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	res, ok := r.store.reservations[id]
	if !ok {
		return nil, infra.NotFound("reservation not found")
	}
	return res.Clone(), nil
}

func (r *ReservationRepository) Insert(_ context.Context, res *reservation.Reservation) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, taken := r.store.reservations[res.ID()]; taken {
		return infra.WrapRepoErr("reservation id already exists", nil, infra.KindDuplicateKey)
	}
	if err := r.checkReferences(res); err != nil {
		return err
	}
	if err := r.checkOverlap(res); err != nil {
		return err
	}
	r.store.reservations[res.ID()] = res.Clone()
	return nil
}

func (r *ReservationRepository) Update(_ context.Context, res *reservation.Reservation) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.reservations[res.ID()]; !ok {
		return infra.NotFound("reservation not found")
	}
	if err := r.checkOverlap(res); err != nil {
		return err
	}
	r.store.reservations[res.ID()] = res.Clone()
	return nil
}

func (r *ReservationRepository) filter(keep func(*reservation.Reservation) bool) []*reservation.Reservation {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]*reservation.Reservation, 0)
	for _, res := range r.store.reservations {
		if keep(res) {
			out = append(out, res.Clone())
		}
	}
	return out
}

// caller holds the write lock
func (r *ReservationRepository) checkReferences(res *reservation.Reservation) error {
	if _, ok := r.store.users[res.UserID()]; !ok {
		return infra.WrapRepoErr("reservation references unknown user", nil, infra.KindForeignKeyViolated)
	}
	if _, ok := r.store.spaces[res.SpaceID()]; !ok {
		return infra.WrapRepoErr("reservation references unknown space", nil, infra.KindForeignKeyViolated)
	}
	return nil
}

// caller holds the write lock
func (r *ReservationRepository) checkOverlap(res *reservation.Reservation) error {
	if res.IsCancelled() {
		return nil
	}
	existing := make([]*reservation.Reservation, 0)
	for _, other := range r.store.reservations {
		if other.SpaceID() == res.SpaceID() {
			existing = append(existing, other)
		}
	}
	if len(reservation.FindConflicts(res.SpaceID(), res.TimeSlot(), existing, res.ID())) > 0 {
		return infra.WrapRepoErr("reservation overlaps an active reservation", nil, infra.KindConflict)
	}
	return nil
}
