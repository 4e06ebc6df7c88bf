//go:build unit

package commands_test

import (
	"coworking-reservations/internal/domain/user"
	"coworking-reservations/internal/usecase/commands"
	"coworking-reservations/tests/common/builder"
)

func (s *CommandsTestSuite) TestCreateUser() {
	s.Run("success", func() {
		in := builder.NewUserBuilder().WithName("Jean Martin").WithEmail("Jean.Martin@Example.com").BuildCreateInput()

		result, err := s.users.Create(s.ctx, in)

		s.Require().NoError(err)
		s.True(result.Success)
		s.Equal("User created successfully", result.Message)
		s.Equal("jean.martin@example.com", result.User.Email().Value())
		s.Equal(user.RoleUser, result.User.Role())
	})

	s.Run("rejected: email taken regardless of case", func() {
		in := builder.NewUserBuilder().WithName("Autre Marie").WithEmail("MARIE@example.com").BuildCreateInput()

		result, err := s.users.Create(s.ctx, in)

		s.Require().NoError(err)
		s.False(result.Success)
		s.Equal(commands.CodeDuplicateEmail, result.Code)
		s.Equal("A user with this email already exists", result.Message)
	})

	s.Run("rejected: malformed fields", func() {
		testCases := []struct {
			name string
			in   commands.CreateUserInput
		}{
			{name: "invalid email", in: builder.NewUserBuilder().WithEmail("not-an-email").BuildCreateInput()},
			{name: "unknown role", in: builder.NewUserBuilder().WithEmail("new@example.com").WithRole("ROOT").BuildCreateInput()},
			{name: "blank name", in: builder.NewUserBuilder().WithEmail("new@example.com").WithName(" ").BuildCreateInput()},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				result, err := s.users.Create(s.ctx, tc.in)

				s.Require().NoError(err)
				s.Equal(commands.CodeMalformedInput, result.Code)
				s.Nil(result.User)
			})
		}
	})
}
