//go:build unit

package commands_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"coworking-reservations/internal/domain/reservation"
	"coworking-reservations/internal/infra"
	"coworking-reservations/internal/infra/memory"
	"coworking-reservations/internal/pkg/errs"
	"coworking-reservations/internal/pkg/ptr"
	"coworking-reservations/internal/usecase/commands"
	"coworking-reservations/internal/usecase/shared"
	"coworking-reservations/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// staleReservations hides existing reservations from the first
// staleReads ListBySpace calls, as a concurrent writer would.
type staleReservations struct {
	*memory.ReservationRepository
	mu         sync.Mutex
	staleReads int
	insertErr  error
}

func (r *staleReservations) ListBySpace(ctx context.Context, spaceID uuid.UUID) ([]*reservation.Reservation, error) {
	r.mu.Lock()
	stale := r.staleReads > 0
	if stale {
		r.staleReads--
	}
	r.mu.Unlock()
	if stale {
		return []*reservation.Reservation{}, nil
	}
	return r.ReservationRepository.ListBySpace(ctx, spaceID)
}

func (r *staleReservations) Insert(ctx context.Context, res *reservation.Reservation) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	return r.ReservationRepository.Insert(ctx, res)
}

// ================================================================================
// Create
// ================================================================================

func (s *CommandsTestSuite) TestCreateReservation() {
	s.Run("success: books a free slot", func() {
		s.expectPublish(shared.EventReservationCreated)

		result, err := s.reservations.Create(s.ctx, s.booking(builder.At(0, 10, 0), builder.At(0, 11, 0)))

		s.Require().NoError(err)
		s.True(result.Success)
		s.Equal("Reservation created successfully", result.Message)
		s.Empty(result.Code)
		s.Require().NotNil(result.Reservation)
		s.Equal(reservation.StatusConfirmed, result.Reservation.Status())
		s.Equal("Réunion équipe", result.Reservation.Purpose().String())
		s.Equal(builder.Now, result.Reservation.CreatedAt())

		stored, err := s.store.Reservations().FindByID(s.ctx, result.Reservation.ID())
		s.Require().NoError(err)
		s.Equal(result.Reservation.ID(), stored.ID())
		s.publisher.AssertExpectations(s.T())
	})

	s.Run("success: pending when auto confirm is off", func() {
		s.expectPublish(shared.EventReservationCreated)
		cmds := s.newReservationCommands(false, s.store.Reservations())

		result, err := cmds.Create(s.ctx, s.booking(builder.At(0, 10, 0), builder.At(0, 11, 0)))

		s.Require().NoError(err)
		s.True(result.Success)
		s.Equal(reservation.StatusPending, result.Reservation.Status())
	})

	s.Run("success: back to back with an existing reservation", func() {
		s.seedReservation(builder.NewReservationBuilder())
		s.expectPublish(shared.EventReservationCreated)

		result, err := s.reservations.Create(s.ctx, s.booking(builder.At(0, 11, 0), builder.At(0, 12, 0)))

		s.Require().NoError(err)
		s.True(result.Success)
	})

	s.Run("success: cancelled reservations do not block", func() {
		s.seedReservation(builder.NewReservationBuilder().AsCancelled())
		s.expectPublish(shared.EventReservationCreated)

		result, err := s.reservations.Create(s.ctx, s.booking(builder.At(0, 10, 0), builder.At(0, 11, 0)))

		s.Require().NoError(err)
		s.True(result.Success)
	})

	s.Run("success: empty purpose is stored as absent", func() {
		s.expectPublish(shared.EventReservationCreated)
		in := s.booking(builder.At(0, 10, 0), builder.At(0, 11, 0))
		in.Purpose = ptr.To("   ")

		result, err := s.reservations.Create(s.ctx, in)

		s.Require().NoError(err)
		s.True(result.Success)
		s.Nil(result.Reservation.Purpose().Ptr())
	})

	s.Run("rejected: time window rules", func() {
		testCases := []struct {
			name  string
			start time.Time
			end   time.Time
			code  commands.Code
		}{
			{name: "start in the past", start: builder.Now.Add(-time.Hour), end: builder.Now.Add(time.Hour), code: commands.CodeNotInFuture},
			{name: "end before start", start: builder.At(0, 11, 0), end: builder.At(0, 10, 0), code: commands.CodeEndBeforeStart},
			{name: "too short", start: builder.At(0, 10, 0), end: builder.At(0, 10, 10), code: commands.CodeTooShort},
			{name: "too long", start: builder.At(0, 8, 0), end: builder.At(0, 17, 0), code: commands.CodeTooLong},
			{name: "before opening", start: builder.At(0, 6, 30), end: builder.At(0, 7, 30), code: commands.CodeOutsideOpeningHours},
			{name: "after closing", start: builder.At(0, 21, 30), end: builder.At(0, 22, 30), code: commands.CodeOutsideOpeningHours},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				result, err := s.reservations.Create(s.ctx, s.booking(tc.start, tc.end))

				s.Require().NoError(err)
				s.False(result.Success)
				s.Equal(tc.code, result.Code)
				s.True(result.Code.IsWindowRejection())
				s.Nil(result.Reservation)
				s.Zero(s.storedCount())
				s.assertNothingPublished()
			})
		}
	})

	s.Run("rejected: window is checked before the participants", func() {
		in := s.booking(builder.Now.Add(-time.Hour), builder.Now.Add(time.Hour))
		in.UserID = uuid.New()

		result, err := s.reservations.Create(s.ctx, in)

		s.Require().NoError(err)
		s.Equal(commands.CodeNotInFuture, result.Code)
	})

	s.Run("rejected: unknown user", func() {
		in := s.booking(builder.At(0, 10, 0), builder.At(0, 11, 0))
		in.UserID = uuid.New()

		result, err := s.reservations.Create(s.ctx, in)

		s.Require().NoError(err)
		s.False(result.Success)
		s.Equal(commands.CodeNotFound, result.Code)
		s.Equal("User not found", result.Message)
	})

	s.Run("rejected: unknown space", func() {
		in := s.booking(builder.At(0, 10, 0), builder.At(0, 11, 0))
		in.SpaceID = uuid.New()

		result, err := s.reservations.Create(s.ctx, in)

		s.Require().NoError(err)
		s.Equal(commands.CodeNotFound, result.Code)
		s.Equal("Space not found", result.Message)
	})

	s.Run("rejected: deactivated space", func() {
		_, err := s.spaces.Delete(s.ctx, s.space.ID())
		s.Require().NoError(err)

		result, err := s.reservations.Create(s.ctx, s.booking(builder.At(0, 10, 0), builder.At(0, 11, 0)))

		s.Require().NoError(err)
		s.Equal(commands.CodeNotFound, result.Code)
		s.Equal("Space is not available for booking", result.Message)
	})

	s.Run("rejected: overlapping reservation", func() {
		existing := s.seedReservation(builder.NewReservationBuilder())
		other := s.seedReservation(builder.NewReservationBuilder().WithSlot(builder.At(0, 11, 30), builder.At(0, 12, 30)))

		result, err := s.reservations.Create(s.ctx, s.booking(builder.At(0, 10, 30), builder.At(0, 12, 0)))

		s.Require().NoError(err)
		s.False(result.Success)
		s.Equal(commands.CodeSchedulingConflict, result.Code)
		s.Equal("Conflict detected with 2 existing reservation(s)", result.Message)
		s.Require().Len(result.Conflicts, 2)
		s.ElementsMatch([]uuid.UUID{existing.ID(), other.ID()},
			[]uuid.UUID{result.Conflicts[0].ID(), result.Conflicts[1].ID()})
		s.Equal(2, s.storedCount())
		s.assertNothingPublished()
	})

	s.Run("rejected: purpose too long", func() {
		in := s.booking(builder.At(0, 10, 0), builder.At(0, 11, 0))
		in.Purpose = ptr.To(strings.Repeat("a", reservation.MaxPurposeLength+1))

		result, err := s.reservations.Create(s.ctx, in)

		s.Require().NoError(err)
		s.Equal(commands.CodeMalformedInput, result.Code)
	})

	s.Run("rejected: store catches an overlap the snapshot missed", func() {
		existing := s.seedReservation(builder.NewReservationBuilder())
		repo := &staleReservations{ReservationRepository: s.store.Reservations(), staleReads: 1}
		cmds := s.newReservationCommands(true, repo)

		result, err := cmds.Create(s.ctx, s.booking(builder.At(0, 10, 30), builder.At(0, 11, 30)))

		s.Require().NoError(err)
		s.Equal(commands.CodeSchedulingConflict, result.Code)
		s.Require().Len(result.Conflicts, 1)
		s.Equal(existing.ID(), result.Conflicts[0].ID())
	})

	s.Run("error: store failure is a fault", func() {
		repo := &staleReservations{
			ReservationRepository: s.store.Reservations(),
			insertErr:             infra.WrapRepoErr("connection reset", errors.New("boom")),
		}
		cmds := s.newReservationCommands(true, repo)

		result, err := cmds.Create(s.ctx, s.booking(builder.At(0, 10, 0), builder.At(0, 11, 0)))

		s.Require().Error(err)
		s.Nil(result)
		s.True(errs.Is(err, errs.ErrDatabaseOperationFailed))
	})

	s.Run("success: publish failure does not fail the booking", func() {
		s.publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

		result, err := s.reservations.Create(s.ctx, s.booking(builder.At(0, 10, 0), builder.At(0, 11, 0)))

		s.Require().NoError(err)
		s.True(result.Success)
		s.Equal(1, s.storedCount())
	})

	s.Run("concurrent requests for one slot book it once", func() {
		s.publisher.On("Publish", mock.Anything, eventOfType(shared.EventReservationCreated)).Return(nil)

		const workers = 16
		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			succeeded int
			conflicts int
		)
		for range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				result, err := s.reservations.Create(s.ctx, s.booking(builder.At(0, 10, 0), builder.At(0, 11, 0)))
				if err != nil {
					return
				}
				mu.Lock()
				defer mu.Unlock()
				if result.Success {
					succeeded++
				} else if result.Code == commands.CodeSchedulingConflict {
					conflicts++
				}
			}()
		}
		wg.Wait()

		s.Equal(1, succeeded)
		s.Equal(workers-1, conflicts)
		s.Equal(1, s.storedCount())
		s.publisher.AssertNumberOfCalls(s.T(), "Publish", 1)
	})
}

// ================================================================================
// Update
// ================================================================================

func (s *CommandsTestSuite) TestUpdateReservation() {
	s.Run("success: purpose only skips revalidation", func() {
		r := s.seedReservation(builder.NewReservationBuilder())
		s.clock.Set(builder.At(0, 10, 30)) // already started
		s.expectPublish(shared.EventReservationUpdated)

		result, err := s.reservations.Update(s.ctx, commands.UpdateReservationInput{ID: r.ID(), Purpose: ptr.To("Atelier")})

		s.Require().NoError(err)
		s.True(result.Success)
		s.Equal("Reservation updated successfully", result.Message)
		s.Equal("Atelier", result.Reservation.Purpose().String())
		s.Equal(builder.At(0, 10, 30), result.Reservation.UpdatedAt())
		s.publisher.AssertExpectations(s.T())
	})

	s.Run("success: shifting within its own slot does not conflict with itself", func() {
		r := s.seedReservation(builder.NewReservationBuilder())
		s.expectPublish(shared.EventReservationUpdated)

		result, err := s.reservations.Update(s.ctx, commands.UpdateReservationInput{
			ID:        r.ID(),
			StartTime: ptr.To(builder.At(0, 10, 30)),
			EndTime:   ptr.To(builder.At(0, 11, 30)),
		})

		s.Require().NoError(err)
		s.True(result.Success)
		s.Equal(builder.At(0, 10, 30), result.Reservation.Start())
	})

	s.Run("success: a single bound keeps the other", func() {
		r := s.seedReservation(builder.NewReservationBuilder())
		s.expectPublish(shared.EventReservationUpdated)

		result, err := s.reservations.Update(s.ctx, commands.UpdateReservationInput{ID: r.ID(), EndTime: ptr.To(builder.At(0, 12, 0))})

		s.Require().NoError(err)
		s.True(result.Success)
		s.Equal(builder.At(0, 10, 0), result.Reservation.Start())
		s.Equal(builder.At(0, 12, 0), result.Reservation.End())
	})

	s.Run("rejected: a single bound can break the window", func() {
		r := s.seedReservation(builder.NewReservationBuilder())

		result, err := s.reservations.Update(s.ctx, commands.UpdateReservationInput{ID: r.ID(), EndTime: ptr.To(builder.At(0, 19, 0))})

		s.Require().NoError(err)
		s.Equal(commands.CodeTooLong, result.Code)
		s.assertNothingPublished()
	})

	s.Run("rejected: moving onto another reservation", func() {
		s.seedReservation(builder.NewReservationBuilder())
		r := s.seedReservation(builder.NewReservationBuilder().WithSlot(builder.At(0, 14, 0), builder.At(0, 15, 0)))

		result, err := s.reservations.Update(s.ctx, commands.UpdateReservationInput{
			ID:        r.ID(),
			StartTime: ptr.To(builder.At(0, 10, 45)),
			EndTime:   ptr.To(builder.At(0, 11, 45)),
		})

		s.Require().NoError(err)
		s.Equal(commands.CodeSchedulingConflict, result.Code)
		s.Len(result.Conflicts, 1)

		stored, err := s.store.Reservations().FindByID(s.ctx, r.ID())
		s.Require().NoError(err)
		s.Equal(builder.At(0, 14, 0), stored.Start(), "rejected update must not persist")
	})

	s.Run("rejected: moving into the past", func() {
		r := s.seedReservation(builder.NewReservationBuilder())

		result, err := s.reservations.Update(s.ctx, commands.UpdateReservationInput{
			ID:        r.ID(),
			StartTime: ptr.To(builder.Now.Add(-time.Hour)),
		})

		s.Require().NoError(err)
		s.Equal(commands.CodeNotInFuture, result.Code)
	})

	s.Run("success: cancelling through update", func() {
		r := s.seedReservation(builder.NewReservationBuilder())
		s.expectPublish(shared.EventReservationUpdated)

		result, err := s.reservations.Update(s.ctx, commands.UpdateReservationInput{ID: r.ID(), Status: ptr.To(reservation.StatusCancelled)})

		s.Require().NoError(err)
		s.True(result.Success)
		s.Equal(reservation.StatusCancelled, result.Reservation.Status())
	})

	s.Run("rejected: reactivating into a slot taken meanwhile", func() {
		cancelled := s.seedReservation(builder.NewReservationBuilder().AsCancelled())
		s.seedReservation(builder.NewReservationBuilder())

		result, err := s.reservations.Update(s.ctx, commands.UpdateReservationInput{ID: cancelled.ID(), Status: ptr.To(reservation.StatusConfirmed)})

		s.Require().NoError(err)
		s.Equal(commands.CodeSchedulingConflict, result.Code)
	})

	s.Run("success: reactivating a free slot", func() {
		cancelled := s.seedReservation(builder.NewReservationBuilder().AsCancelled())
		s.expectPublish(shared.EventReservationUpdated)

		result, err := s.reservations.Update(s.ctx, commands.UpdateReservationInput{ID: cancelled.ID(), Status: ptr.To(reservation.StatusConfirmed)})

		s.Require().NoError(err)
		s.True(result.Success)
		s.Equal(reservation.StatusConfirmed, result.Reservation.Status())
	})

	s.Run("rejected: unknown status", func() {
		r := s.seedReservation(builder.NewReservationBuilder())

		result, err := s.reservations.Update(s.ctx, commands.UpdateReservationInput{ID: r.ID(), Status: ptr.To(reservation.Status("DONE"))})

		s.Require().NoError(err)
		s.Equal(commands.CodeMalformedInput, result.Code)
	})

	s.Run("rejected: unknown reservation", func() {
		result, err := s.reservations.Update(s.ctx, commands.UpdateReservationInput{ID: uuid.New(), Purpose: ptr.To("x")})

		s.Require().NoError(err)
		s.Equal(commands.CodeNotFound, result.Code)
		s.Equal("Reservation not found", result.Message)
	})
}

// ================================================================================
// Cancel
// ================================================================================

func (s *CommandsTestSuite) TestCancelReservation() {
	s.Run("success: cancels and frees the slot", func() {
		r := s.seedReservation(builder.NewReservationBuilder())
		s.expectPublish(shared.EventReservationCancelled)

		result, err := s.reservations.Cancel(s.ctx, r.ID())

		s.Require().NoError(err)
		s.True(result.Success)
		s.Equal("Reservation cancelled successfully", result.Message)
		s.Equal(reservation.StatusCancelled, result.Reservation.Status())

		s.expectPublish(shared.EventReservationCreated)
		rebooked, err := s.reservations.Create(s.ctx, s.booking(builder.At(0, 10, 0), builder.At(0, 11, 0)))
		s.Require().NoError(err)
		s.True(rebooked.Success)
		s.publisher.AssertExpectations(s.T())
	})

	s.Run("success: cancelling twice publishes once", func() {
		r := s.seedReservation(builder.NewReservationBuilder())
		s.expectPublish(shared.EventReservationCancelled)

		first, err := s.reservations.Cancel(s.ctx, r.ID())
		s.Require().NoError(err)
		s.clock.Add(time.Minute)
		second, err := s.reservations.Cancel(s.ctx, r.ID())
		s.Require().NoError(err)

		s.True(second.Success)
		s.Equal(reservation.StatusCancelled, second.Reservation.Status())
		s.Equal(first.Reservation.UpdatedAt(), second.Reservation.UpdatedAt())
		s.publisher.AssertNumberOfCalls(s.T(), "Publish", 1)
	})

	s.Run("rejected: unknown reservation", func() {
		result, err := s.reservations.Cancel(s.ctx, uuid.New())

		s.Require().NoError(err)
		s.False(result.Success)
		s.Equal(commands.CodeNotFound, result.Code)
	})
}
