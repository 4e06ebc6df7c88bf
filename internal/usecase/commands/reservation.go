package commands

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/commands/reservation.go -package=commandsmock

import (
	"context"
	"log/slog"
	"time"

	"coworking-reservations/internal/domain/reservation"
	"coworking-reservations/internal/infra"
	"coworking-reservations/internal/pkg/clock"
	"coworking-reservations/internal/pkg/errs"
	"coworking-reservations/internal/pkg/patch"
	"coworking-reservations/internal/pkg/ptr"
	"coworking-reservations/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateReservationInput struct {
	UserID    uuid.UUID
	SpaceID   uuid.UUID
	StartTime time.Time
	EndTime   time.Time
	Purpose   *string
}

// UpdateReservationInput is a partial update; nil fields are left as is.
type UpdateReservationInput struct {
	ID        uuid.UUID
	StartTime *time.Time
	EndTime   *time.Time
	Purpose   *string
	Status    *reservation.Status
}

type ReservationCommands interface {
	Create(ctx context.Context, in CreateReservationInput) (*ReservationResult, error)
	Update(ctx context.Context, in UpdateReservationInput) (*ReservationResult, error)
	Cancel(ctx context.Context, id uuid.UUID) (*ReservationResult, error)
}

type reservationCommandsImpl struct {
	reservations shared.ReservationRepository
	spaces       shared.SpaceRepository
	users        shared.UserRepository
	locker       shared.SpaceLocker
	publisher    shared.EventPublisher
	factory      *reservation.Factory
	clock        clock.Clock
	logger       *slog.Logger
}

func NewReservationCommands(
	reservations shared.ReservationRepository,
	spaces shared.SpaceRepository,
	users shared.UserRepository,
	locker shared.SpaceLocker,
	publisher shared.EventPublisher,
	factory *reservation.Factory,
	clock clock.Clock,
	logger *slog.Logger,
) ReservationCommands {
	return &reservationCommandsImpl{
		reservations: reservations,
		spaces:       spaces,
		users:        users,
		locker:       locker,
		publisher:    publisher,
		factory:      factory,
		clock:        clock,
		logger:       logger,
	}
}

func (c *reservationCommandsImpl) Create(ctx context.Context, in CreateReservationInput) (*ReservationResult, error) {
	purpose, err := reservation.NewPurpose(ptr.Deref(in.Purpose))
	if err != nil {
		return c.rejected(reservationRejected(CodeMalformedInput, err.Error()), in.SpaceID), nil
	}

	slot := reservation.NewTimeSlot(in.StartTime, in.EndTime)
	candidate, err := c.factory.CreateReservation(in.UserID, in.SpaceID, slot, purpose)
	if err != nil {
		if reservation.IsWindowRejection(err) {
			return c.rejected(windowRejected(err), in.SpaceID), nil
		}
		return nil, err
	}

	rejected, err := c.checkParticipants(ctx, in.UserID, in.SpaceID)
	if err != nil {
		return nil, err
	}
	if rejected != nil {
		return c.rejected(rejected, in.SpaceID), nil
	}

	result, err := shared.WithSpaceLock(ctx, c.locker, in.SpaceID, func(ctx context.Context) (*ReservationResult, error) {
		if rejected, err := c.checkConflicts(ctx, in.SpaceID, slot, uuid.Nil); rejected != nil || err != nil {
			return rejected, err
		}

		if err := c.reservations.Insert(ctx, candidate); err != nil {
			return c.storeFailure(ctx, err, candidate)
		}
		return reservationOK(msgReservationCreated, candidate), nil
	})
	if err != nil {
		return nil, err
	}

	if !result.Success {
		return c.rejected(result, in.SpaceID), nil
	}
	c.publish(ctx, shared.EventReservationCreated, result.Reservation)
	return result, nil
}

func (c *reservationCommandsImpl) Update(ctx context.Context, in UpdateReservationInput) (*ReservationResult, error) {
	existing, err := c.reservations.FindByID(ctx, in.ID)
	if err != nil {
		return c.notFoundOr(err)
	}

	result, err := shared.WithSpaceLock(ctx, c.locker, existing.SpaceID(), func(ctx context.Context) (*ReservationResult, error) {
		// Re-read under the lock so validation sees the committed state.
		current, err := c.reservations.FindByID(ctx, in.ID)
		if err != nil {
			return c.notFoundOr(err)
		}
		return c.applyUpdate(ctx, current, in)
	})
	if err != nil {
		return nil, err
	}

	if !result.Success {
		return c.rejected(result, existing.SpaceID()), nil
	}
	c.publish(ctx, shared.EventReservationUpdated, result.Reservation)
	return result, nil
}

func (c *reservationCommandsImpl) applyUpdate(ctx context.Context, current *reservation.Reservation, in UpdateReservationInput) (*ReservationResult, error) {
	var purpose *reservation.Purpose
	if in.Purpose != nil {
		p, err := reservation.NewPurpose(*in.Purpose)
		if err != nil {
			return reservationRejected(CodeMalformedInput, err.Error()), nil
		}
		purpose = &p
	}
	if in.Status != nil && !in.Status.IsValid() {
		return reservationRejected(CodeMalformedInput, reservation.ErrInvalidStatus.Error()), nil
	}

	slot := current.TimeSlot()
	reschedule := in.StartTime != nil || in.EndTime != nil
	if reschedule {
		slot = reservation.NewTimeSlot(
			patch.Coalesce(in.StartTime, slot.Start()),
			patch.Coalesce(in.EndTime, slot.End()),
		)
		if err := c.factory.ValidateReschedule(slot); err != nil {
			if reservation.IsWindowRejection(err) {
				return windowRejected(err), nil
			}
			return nil, err
		}
	}

	// Leaving CANCELLED brings the slot back into play, so it must not
	// collide with anything booked meanwhile. Opening hours are not
	// re-checked for an unchanged slot.
	reactivate := in.Status != nil && *in.Status != reservation.StatusCancelled && current.IsCancelled()

	if reschedule || reactivate {
		if rejected, err := c.checkConflicts(ctx, current.SpaceID(), slot, current.ID()); rejected != nil || err != nil {
			return rejected, err
		}
	}

	now := c.clock.Now()
	if reschedule {
		current.Reschedule(slot, now)
	}
	if purpose != nil {
		current.ChangePurpose(*purpose, now)
	}
	if in.Status != nil {
		if err := current.ChangeStatus(*in.Status, now); err != nil {
			return reservationRejected(CodeMalformedInput, err.Error()), nil
		}
	}

	if err := c.reservations.Update(ctx, current); err != nil {
		return c.storeFailure(ctx, err, current)
	}
	return reservationOK(msgReservationUpdated, current), nil
}

func (c *reservationCommandsImpl) Cancel(ctx context.Context, id uuid.UUID) (*ReservationResult, error) {
	existing, err := c.reservations.FindByID(ctx, id)
	if err != nil {
		return c.notFoundOr(err)
	}

	var changed bool
	result, err := shared.WithSpaceLock(ctx, c.locker, existing.SpaceID(), func(ctx context.Context) (*ReservationResult, error) {
		current, err := c.reservations.FindByID(ctx, id)
		if err != nil {
			return c.notFoundOr(err)
		}
		if current.IsCancelled() {
			return reservationOK(msgReservationCancelled, current), nil
		}

		current.Cancel(c.clock.Now())
		if err := c.reservations.Update(ctx, current); err != nil {
			return c.storeFailure(ctx, err, current)
		}
		changed = true
		return reservationOK(msgReservationCancelled, current), nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		c.publish(ctx, shared.EventReservationCancelled, result.Reservation)
	}
	return result, nil
}

func (c *reservationCommandsImpl) checkParticipants(ctx context.Context, userID, spaceID uuid.UUID) (*ReservationResult, error) {
	if _, err := c.users.FindByID(ctx, userID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return reservationRejected(CodeNotFound, msgUserNotFound), nil
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	sp, err := c.spaces.FindByID(ctx, spaceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return reservationRejected(CodeNotFound, msgSpaceNotFound), nil
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !sp.IsActive() {
		return reservationRejected(CodeNotFound, msgSpaceInactive), nil
	}
	return nil, nil
}

// checkConflicts validates slot against a fresh snapshot of the space's
// reservations. Callers must hold the space lock.
func (c *reservationCommandsImpl) checkConflicts(ctx context.Context, spaceID uuid.UUID, slot reservation.TimeSlot, excludeID uuid.UUID) (*ReservationResult, error) {
	existing, err := c.reservations.ListBySpace(ctx, spaceID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if conflicts := reservation.FindConflicts(spaceID, slot, existing, excludeID); len(conflicts) > 0 {
		return conflictRejected(conflicts), nil
	}
	return nil, nil
}

// storeFailure turns write errors the store reports for business reasons
// into rejections. Anything else is a fault.
func (c *reservationCommandsImpl) storeFailure(ctx context.Context, err error, r *reservation.Reservation) (*ReservationResult, error) {
	switch {
	case infra.IsKind(err, infra.KindConflict):
		existing, listErr := c.reservations.ListBySpace(ctx, r.SpaceID())
		if listErr != nil {
			return nil, errs.Mark(listErr, errs.ErrDatabaseOperationFailed)
		}
		return conflictRejected(reservation.FindConflicts(r.SpaceID(), r.TimeSlot(), existing, r.ID())), nil
	case infra.IsKind(err, infra.KindNotFound):
		return reservationRejected(CodeNotFound, msgReservationNotFound), nil
	case infra.IsKind(err, infra.KindForeignKeyViolated):
		return reservationRejected(CodeNotFound, msgSpaceNotFound), nil
	default:
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
}

func (c *reservationCommandsImpl) notFoundOr(err error) (*ReservationResult, error) {
	if infra.IsKind(err, infra.KindNotFound) {
		return reservationRejected(CodeNotFound, msgReservationNotFound), nil
	}
	return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
}

func (c *reservationCommandsImpl) rejected(result *ReservationResult, spaceID uuid.UUID) *ReservationResult {
	c.logger.Info("reservation rejected",
		slog.String("code", string(result.Code)),
		slog.String("space_id", spaceID.String()),
		slog.Int("conflicts", len(result.Conflicts)),
	)
	return result
}

func (c *reservationCommandsImpl) publish(ctx context.Context, t shared.EventType, r *reservation.Reservation) {
	event := shared.NewReservationEvent(t, r, c.clock.Now())
	if err := c.publisher.Publish(ctx, event); err != nil {
		c.logger.Warn("failed to publish reservation event",
			slog.String("type", string(t)),
			slog.String("reservation_id", r.ID().String()),
			slog.String("error", err.Error()),
		)
	}
}
