//go:build unit || e2e

package builder

import (
	"coworking-reservations/internal/domain/user"
	reqdto "coworking-reservations/internal/handler/dto/request"
	"coworking-reservations/internal/usecase/commands"
	"coworking-reservations/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserBuilder struct {
	ID    uuid.UUID
	Name  string
	Email string
	Role  string
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:    uuid.New(),
		Name:  "Marie Dubois",
		Email: "marie@example.com",
		Role:  "USER",
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

// Build methods
func (u *UserBuilder) BuildDomain() (*user.User, error) {
	email, err := user.NewEmail(u.Email)
	if err != nil {
		return nil, err
	}

	role, err := user.NewRole(u.Role)
	if err != nil {
		return nil, err
	}

	return user.NewUser(u.Name, email, role, Now)
}

// BuildStored keeps the builder's id, as if the user had been read back.
func (u *UserBuilder) BuildStored() *user.User {
	return user.ReconstructUser(u.ID, u.Name, user.ReconstructEmail(u.Email), user.Role(u.Role), Now)
}

func (u *UserBuilder) BuildView() *queries.UserView {
	return &queries.UserView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: Now,
	}
}

func (u *UserBuilder) BuildCreateInput() commands.CreateUserInput {
	return commands.CreateUserInput{Name: u.Name, Email: u.Email, Role: u.Role}
}

func (u *UserBuilder) BuildCreateRequestDTO() reqdto.CreateUserRequest {
	return reqdto.CreateUserRequest{Name: u.Name, Email: u.Email, Role: u.Role}
}

// Fluent builder methods
func (u *UserBuilder) WithID(id uuid.UUID) *UserBuilder {
	u.ID = id
	return u
}

func (u *UserBuilder) WithName(name string) *UserBuilder {
	u.Name = name
	return u
}

func (u *UserBuilder) WithEmail(email string) *UserBuilder {
	u.Email = email
	return u
}

func (u *UserBuilder) WithRole(role string) *UserBuilder {
	u.Role = role
	return u
}

func (u *UserBuilder) AsAdmin() *UserBuilder {
	u.Role = "ADMIN"
	return u
}
