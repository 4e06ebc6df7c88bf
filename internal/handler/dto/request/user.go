package request

import "coworking-reservations/internal/usecase/commands"

type CreateUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
	Role  string `json:"role,omitempty"`
}

func (r CreateUserRequest) ToInput() commands.CreateUserInput {
	return commands.CreateUserInput{Name: r.Name, Email: r.Email, Role: r.Role}
}
