//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"coworking-reservations/internal/domain/reservation"
	"coworking-reservations/internal/domain/space"
	"coworking-reservations/internal/domain/user"
	"coworking-reservations/internal/infra/memory"
	"coworking-reservations/internal/pkg/errs"
	"coworking-reservations/internal/usecase/queries"
	"coworking-reservations/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type QueriesTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *memory.Store

	reservations queries.ReservationQueries
	spaces       queries.SpaceQueries
	users        queries.UserQueries

	marie *user.User
	jean  *user.User
	alpha *space.Space
	beta  *space.Space
}

func TestQueriesSuite(t *testing.T) {
	suite.Run(t, new(QueriesTestSuite))
}

func (s *QueriesTestSuite) SetupTest() {
	s.reset()
}

func (s *QueriesTestSuite) SetupSubTest() {
	s.reset()
}

func (s *QueriesTestSuite) reset() {
	s.ctx = context.Background()
	s.store = memory.NewStore()

	policy := reservation.DefaultPolicy(time.UTC)
	s.reservations = queries.NewReservationQueries(s.store.Reservations(), s.store.Spaces(), s.store.Users(), policy)
	s.spaces = queries.NewSpaceQueries(s.store.Spaces(), s.store.Reservations())
	s.users = queries.NewUserQueries(s.store.Users())

	s.marie = builder.NewUserBuilder().BuildStored()
	s.jean = builder.NewUserBuilder().WithName("Jean Martin").WithEmail("jean@example.com").BuildStored()
	s.alpha = builder.NewSpaceBuilder().BuildStored()
	s.beta = builder.NewSpaceBuilder().WithName("Bureau Bêta").WithType("OFFICE").WithCapacity(2).BuildStored()

	for _, u := range []*user.User{s.marie, s.jean} {
		s.Require().NoError(s.store.Users().Insert(s.ctx, u))
	}
	for _, sp := range []*space.Space{s.alpha, s.beta} {
		s.Require().NoError(s.store.Spaces().Insert(s.ctx, sp))
	}
}

func (s *QueriesTestSuite) insert(b *builder.ReservationBuilder) *reservation.Reservation {
	r := b.BuildStored()
	s.Require().NoError(s.store.Reservations().Insert(s.ctx, r))
	return r
}

func ids(views []*queries.ReservationView) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(views))
	for _, v := range views {
		out = append(out, v.ID)
	}
	return out
}

func (s *QueriesTestSuite) TestReservationList() {
	s.Run("sorted by start time and joined with names", func() {
		late := s.insert(builder.NewReservationBuilder().WithUser(s.jean.ID()).WithSpace(s.beta.ID()).
			WithSlot(builder.At(1, 9, 0), builder.At(1, 10, 0)))
		early := s.insert(builder.NewReservationBuilder().WithUser(s.marie.ID()).WithSpace(s.alpha.ID()))

		views, err := s.reservations.List(s.ctx)

		s.Require().NoError(err)
		s.Equal([]uuid.UUID{early.ID(), late.ID()}, ids(views))
		s.Equal("Marie Dubois", views[0].UserName)
		s.Equal("marie@example.com", views[0].UserEmail)
		s.Equal("Salle Alpha", views[0].SpaceName)
		s.Equal("MEETING_ROOM", views[0].SpaceType)
		s.Equal("Bureau Bêta", views[1].SpaceName)
	})

	s.Run("ties on start time are ordered by id", func() {
		a := s.insert(builder.NewReservationBuilder().WithUser(s.marie.ID()).WithSpace(s.alpha.ID()))
		b := s.insert(builder.NewReservationBuilder().WithUser(s.jean.ID()).WithSpace(s.beta.ID()))

		views, err := s.reservations.List(s.ctx)

		s.Require().NoError(err)
		expected := []uuid.UUID{a.ID(), b.ID()}
		if b.ID().String() < a.ID().String() {
			expected = []uuid.UUID{b.ID(), a.ID()}
		}
		s.Equal(expected, ids(views))
	})

	s.Run("empty store", func() {
		views, err := s.reservations.List(s.ctx)

		s.Require().NoError(err)
		s.Empty(views)
	})
}

func (s *QueriesTestSuite) TestReservationGet() {
	s.Run("found", func() {
		b := builder.NewReservationBuilder().WithUser(s.marie.ID()).WithSpace(s.alpha.ID())
		r := s.insert(b)

		view, err := s.reservations.Get(s.ctx, r.ID())

		s.Require().NoError(err)
		expected := queries.NewReservationView(r, s.marie, s.alpha)
		if diff := cmp.Diff(expected, view); diff != "" {
			s.Failf("view mismatch", "(-want +got):\n%s", diff)
		}
	})

	s.Run("not found", func() {
		_, err := s.reservations.Get(s.ctx, uuid.New())

		s.True(errs.Is(err, errs.ErrReservationNotFound))
	})
}

func (s *QueriesTestSuite) TestReservationListByUser() {
	s.Run("only the user's reservations", func() {
		mine := s.insert(builder.NewReservationBuilder().WithUser(s.marie.ID()).WithSpace(s.alpha.ID()))
		s.insert(builder.NewReservationBuilder().WithUser(s.jean.ID()).WithSpace(s.beta.ID()))

		views, err := s.reservations.ListByUser(s.ctx, s.marie.ID())

		s.Require().NoError(err)
		s.Equal([]uuid.UUID{mine.ID()}, ids(views))
	})

	s.Run("unknown user", func() {
		_, err := s.reservations.ListByUser(s.ctx, uuid.New())

		s.True(errs.Is(err, errs.ErrUserNotFound))
	})
}

func (s *QueriesTestSuite) TestReservationListBySpace() {
	s.Run("all days or one day", func() {
		today := s.insert(builder.NewReservationBuilder().WithUser(s.marie.ID()).WithSpace(s.alpha.ID()))
		tomorrow := s.insert(builder.NewReservationBuilder().WithUser(s.jean.ID()).WithSpace(s.alpha.ID()).
			WithSlot(builder.At(1, 10, 0), builder.At(1, 11, 0)))
		s.insert(builder.NewReservationBuilder().WithUser(s.jean.ID()).WithSpace(s.beta.ID()))

		all, err := s.reservations.ListBySpace(s.ctx, s.alpha.ID(), nil)
		s.Require().NoError(err)
		s.Equal([]uuid.UUID{today.ID(), tomorrow.ID()}, ids(all))

		day, err := queries.ParseDay(builder.At(1, 0, 0).Format(time.DateOnly))
		s.Require().NoError(err)
		filtered, err := s.reservations.ListBySpace(s.ctx, s.alpha.ID(), &day)
		s.Require().NoError(err)
		s.Equal([]uuid.UUID{tomorrow.ID()}, ids(filtered))
	})

	s.Run("deactivated spaces are still listed", func() {
		inactive := builder.NewSpaceBuilder().WithName("Ancienne salle").AsInactive().BuildStored()
		s.Require().NoError(s.store.Spaces().Insert(s.ctx, inactive))

		views, err := s.reservations.ListBySpace(s.ctx, inactive.ID(), nil)

		s.Require().NoError(err)
		s.Empty(views)
	})

	s.Run("unknown space", func() {
		_, err := s.reservations.ListBySpace(s.ctx, uuid.New(), nil)

		s.True(errs.Is(err, errs.ErrSpaceNotFound))
	})
}

func (s *QueriesTestSuite) TestReservationListByDateRange() {
	s.Run("only reservations fully inside the range", func() {
		inside := s.insert(builder.NewReservationBuilder().WithUser(s.marie.ID()).WithSpace(s.alpha.ID()))
		s.insert(builder.NewReservationBuilder().WithUser(s.jean.ID()).WithSpace(s.beta.ID()).
			WithSlot(builder.At(0, 11, 30), builder.At(0, 13, 0)))
		s.insert(builder.NewReservationBuilder().WithUser(s.jean.ID()).WithSpace(s.alpha.ID()).
			WithSlot(builder.At(2, 10, 0), builder.At(2, 11, 0)))

		views, err := s.reservations.ListByDateRange(s.ctx, builder.At(0, 9, 0), builder.At(0, 12, 0))

		s.Require().NoError(err)
		s.Equal([]uuid.UUID{inside.ID()}, ids(views))
	})

	s.Run("range bounds are inclusive", func() {
		r := s.insert(builder.NewReservationBuilder().WithUser(s.marie.ID()).WithSpace(s.alpha.ID()))

		views, err := s.reservations.ListByDateRange(s.ctx, r.Start(), r.End())

		s.Require().NoError(err)
		s.Len(views, 1)
	})

	s.Run("inverted range", func() {
		_, err := s.reservations.ListByDateRange(s.ctx, builder.At(1, 0, 0), builder.At(0, 0, 0))

		s.True(errs.Is(err, errs.ErrMalformedInput))
	})
}

func (s *QueriesTestSuite) TestSpaceQueries() {
	s.Run("list skips deactivated spaces and sorts by name on equal creation time", func() {
		inactive := builder.NewSpaceBuilder().WithName("Ancienne salle").AsInactive().BuildStored()
		s.Require().NoError(s.store.Spaces().Insert(s.ctx, inactive))

		views, err := s.spaces.List(s.ctx)

		s.Require().NoError(err)
		s.Require().Len(views, 2)
		s.Equal("Bureau Bêta", views[0].Name)
		s.Equal("Salle Alpha", views[1].Name)
	})

	s.Run("get returns a deactivated space", func() {
		inactive := builder.NewSpaceBuilder().WithName("Ancienne salle").AsInactive().BuildStored()
		s.Require().NoError(s.store.Spaces().Insert(s.ctx, inactive))

		view, err := s.spaces.Get(s.ctx, inactive.ID())

		s.Require().NoError(err)
		s.False(view.IsActive)
	})

	s.Run("get unknown space", func() {
		_, err := s.spaces.Get(s.ctx, uuid.New())

		s.True(errs.Is(err, errs.ErrSpaceNotFound))
	})

	s.Run("available excludes booked and deactivated spaces", func() {
		s.insert(builder.NewReservationBuilder().WithUser(s.marie.ID()).WithSpace(s.alpha.ID()))
		inactive := builder.NewSpaceBuilder().WithName("Ancienne salle").AsInactive().BuildStored()
		s.Require().NoError(s.store.Spaces().Insert(s.ctx, inactive))

		views, err := s.spaces.Available(s.ctx, builder.At(0, 10, 30), builder.At(0, 11, 30))

		s.Require().NoError(err)
		s.Require().Len(views, 1)
		s.Equal(s.beta.ID(), views[0].ID)
	})

	s.Run("available ignores cancelled and adjacent reservations", func() {
		s.insert(builder.NewReservationBuilder().WithUser(s.marie.ID()).WithSpace(s.alpha.ID()).AsCancelled())
		s.insert(builder.NewReservationBuilder().WithUser(s.jean.ID()).WithSpace(s.beta.ID()).
			WithSlot(builder.At(0, 9, 0), builder.At(0, 10, 0)))

		views, err := s.spaces.Available(s.ctx, builder.At(0, 10, 0), builder.At(0, 11, 0))

		s.Require().NoError(err)
		s.Len(views, 2)
	})

	s.Run("available with an empty window", func() {
		_, err := s.spaces.Available(s.ctx, builder.At(0, 11, 0), builder.At(0, 11, 0))

		s.True(errs.Is(err, errs.ErrMalformedInput))
	})
}

func (s *QueriesTestSuite) TestUserQueries() {
	s.Run("list sorted by name on equal creation time", func() {
		views, err := s.users.List(s.ctx)

		s.Require().NoError(err)
		s.Require().Len(views, 2)
		s.Equal("Jean Martin", views[0].Name)
		s.Equal("Marie Dubois", views[1].Name)
	})

	s.Run("get", func() {
		view, err := s.users.Get(s.ctx, s.marie.ID())

		s.Require().NoError(err)
		s.Equal(builder.NewUserBuilder().WithID(s.marie.ID()).BuildView(), view)
	})

	s.Run("get unknown user", func() {
		_, err := s.users.Get(s.ctx, uuid.New())

		s.True(errs.Is(err, errs.ErrUserNotFound))
	})
}

func TestParseDay(t *testing.T) {
	day, err := queries.ParseDay("2030-06-04")
	require.NoError(t, err)
	assert.True(t, day.In(time.UTC).Equal(time.Date(2030, 6, 4, 0, 0, 0, 0, time.UTC)))

	_, err = queries.ParseDay("04/06/2030")
	assert.Error(t, err)
}
