//go:build unit

package commands_test

import (
	"time"

	"coworking-reservations/internal/domain/reservation"
	"coworking-reservations/internal/pkg/ptr"
	"coworking-reservations/internal/usecase/commands"
	"coworking-reservations/tests/common/builder"

	"github.com/google/uuid"
)

func (s *CommandsTestSuite) TestCreateSpace() {
	s.Run("success", func() {
		in := builder.NewSpaceBuilder().WithName("Open Space Bêta").WithType("COMMON_AREA").WithCapacity(20).BuildInput()

		result, err := s.spaces.Create(s.ctx, in)

		s.Require().NoError(err)
		s.True(result.Success)
		s.Equal("Space created successfully", result.Message)
		s.True(result.Space.IsActive())
		s.Equal(builder.Now, result.Space.CreatedAt())

		stored, err := s.store.Spaces().FindByID(s.ctx, result.Space.ID())
		s.Require().NoError(err)
		s.Equal("Open Space Bêta", stored.Name())
	})

	s.Run("rejected: invalid attributes", func() {
		testCases := []struct {
			name string
			in   commands.SpaceInput
		}{
			{name: "blank name", in: builder.NewSpaceBuilder().WithName("  ").BuildInput()},
			{name: "unknown type", in: builder.NewSpaceBuilder().WithType("GARAGE").BuildInput()},
			{name: "zero capacity", in: builder.NewSpaceBuilder().WithCapacity(0).BuildInput()},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				result, err := s.spaces.Create(s.ctx, tc.in)

				s.Require().NoError(err)
				s.False(result.Success)
				s.Equal(commands.CodeMalformedInput, result.Code)
				s.Nil(result.Space)
			})
		}
	})
}

func (s *CommandsTestSuite) TestUpdateSpace() {
	s.Run("success: replaces every field", func() {
		s.clock.Add(time.Hour)
		in := builder.NewSpaceBuilder().WithName("Salle Gamma").WithCapacity(12).WithAmenities("Projecteur").WithDescription(ptr.To("")).BuildInput()

		result, err := s.spaces.Update(s.ctx, s.space.ID(), in)

		s.Require().NoError(err)
		s.True(result.Success)
		s.Equal("Space updated successfully", result.Message)
		s.Equal("Salle Gamma", result.Space.Name())
		s.Equal(12, result.Space.Capacity())
		s.Equal([]string{"Projecteur"}, result.Space.Amenities())
		s.Nil(result.Space.Description())
		s.Equal(builder.Now.Add(time.Hour), result.Space.UpdatedAt())
	})

	s.Run("rejected: invalid attributes leave the space untouched", func() {
		result, err := s.spaces.Update(s.ctx, s.space.ID(), builder.NewSpaceBuilder().WithCapacity(-1).BuildInput())

		s.Require().NoError(err)
		s.Equal(commands.CodeMalformedInput, result.Code)

		stored, err := s.store.Spaces().FindByID(s.ctx, s.space.ID())
		s.Require().NoError(err)
		s.Equal(8, stored.Capacity())
	})

	s.Run("rejected: unknown space", func() {
		result, err := s.spaces.Update(s.ctx, uuid.New(), builder.NewSpaceBuilder().BuildInput())

		s.Require().NoError(err)
		s.Equal(commands.CodeNotFound, result.Code)
		s.Equal("Space not found", result.Message)
	})
}

func (s *CommandsTestSuite) TestDeleteSpace() {
	s.Run("success: deactivates and keeps reservations", func() {
		r := s.seedReservation(builder.NewReservationBuilder())

		result, err := s.spaces.Delete(s.ctx, s.space.ID())

		s.Require().NoError(err)
		s.True(result.Success)
		s.Equal("Space deleted successfully", result.Message)
		s.False(result.Space.IsActive())

		kept, err := s.store.Reservations().FindByID(s.ctx, r.ID())
		s.Require().NoError(err)
		s.Equal(reservation.StatusConfirmed, kept.Status())
	})

	s.Run("success: deleting twice is harmless", func() {
		_, err := s.spaces.Delete(s.ctx, s.space.ID())
		s.Require().NoError(err)

		result, err := s.spaces.Delete(s.ctx, s.space.ID())

		s.Require().NoError(err)
		s.True(result.Success)
	})

	s.Run("rejected: unknown space", func() {
		result, err := s.spaces.Delete(s.ctx, uuid.New())

		s.Require().NoError(err)
		s.Equal(commands.CodeNotFound, result.Code)
	})
}
