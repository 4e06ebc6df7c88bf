//go:build unit

package user_test

import (
	"strings"
	"testing"

	"coworking-reservations/internal/domain/user"
	"coworking-reservations/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.UserBuilder)
	errIs  error
}

func TestUser(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewUserBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, "Marie Dubois", actual.Name())
		assert.Equal(t, "marie@example.com", actual.Email().Value())
		assert.Equal(t, user.RoleUser, actual.Role())
		assert.False(t, actual.IsAdmin())
		assert.Equal(t, builder.Now, actual.CreatedAt())
	})

	t.Run("email validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "valid email",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("valid@example.com") },
			},
			{
				name:   "empty email",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("") },
				errIs:  user.ErrInvalidEmail,
			},
			{
				name:   "invalid format",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("invalid-email") },
				errIs:  user.ErrInvalidEmail,
			},
			{
				name:   "missing @",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("invalidemail.com") },
				errIs:  user.ErrInvalidEmail,
			},
		})
	})

	t.Run("role validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "USER role",
				mutate: func(b *builder.UserBuilder) { b.WithRole("USER") },
			},
			{
				name:   "ADMIN role",
				mutate: func(b *builder.UserBuilder) { b.AsAdmin() },
			},
			{
				name:   "empty role defaults to USER",
				mutate: func(b *builder.UserBuilder) { b.WithRole("") },
			},
			{
				name:   "lower-case role",
				mutate: func(b *builder.UserBuilder) { b.WithRole("admin") },
				errIs:  user.ErrInvalidRole,
			},
			{
				name:   "unknown role",
				mutate: func(b *builder.UserBuilder) { b.WithRole("OWNER") },
				errIs:  user.ErrInvalidRole,
			},
		})
	})

	t.Run("name validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "blank name",
				mutate: func(b *builder.UserBuilder) { b.WithName("   ") },
				errIs:  user.ErrEmptyName,
			},
			{
				name:   "maximum length name",
				mutate: func(b *builder.UserBuilder) { b.WithName(strings.Repeat("a", user.MaxNameLength)) },
			},
			{
				name:   "name too long",
				mutate: func(b *builder.UserBuilder) { b.WithName(strings.Repeat("a", user.MaxNameLength+1)) },
				errIs:  user.ErrNameTooLong,
			},
		})
	})

	t.Run("email is normalized", func(t *testing.T) {
		actual, err := builder.NewUserBuilder().WithEmail("  Marie.Dubois@Example.COM ").BuildDomain()
		require.NoError(t, err)

		if diff := cmp.Diff("marie.dubois@example.com", actual.Email().Value()); diff != "" {
			t.Errorf("email mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty role resolves to USER", func(t *testing.T) {
		actual, err := builder.NewUserBuilder().WithRole("").BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, user.RoleUser, actual.Role())
	})

	t.Run("clone does not share state", func(t *testing.T) {
		original, err := builder.NewUserBuilder().BuildDomain()
		require.NoError(t, err)

		clone := original.Clone()
		require.NotSame(t, original, clone)
		assert.Equal(t, original.ID(), clone.ID())
		assert.Equal(t, original.Email(), clone.Email())
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewUserBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NoError(t, err)
				require.NotNil(t, actual)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
