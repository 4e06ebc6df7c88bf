package commands

//go:generate mockgen -source=user.go -destination=../../../tests/mock/commands/user.go -package=commandsmock

import (
	"context"
	"log/slog"

	"coworking-reservations/internal/domain/user"
	"coworking-reservations/internal/infra"
	"coworking-reservations/internal/pkg/clock"
	"coworking-reservations/internal/pkg/errs"
	"coworking-reservations/internal/usecase/shared"
)

type CreateUserInput struct {
	Name  string
	Email string
	Role  string
}

type UserCommands interface {
	Create(ctx context.Context, in CreateUserInput) (*UserResult, error)
}

type userCommandsImpl struct {
	users  shared.UserRepository
	clock  clock.Clock
	logger *slog.Logger
}

func NewUserCommands(users shared.UserRepository, clock clock.Clock, logger *slog.Logger) UserCommands {
	return &userCommandsImpl{users: users, clock: clock, logger: logger}
}

func (c *userCommandsImpl) Create(ctx context.Context, in CreateUserInput) (*UserResult, error) {
	email, err := user.NewEmail(in.Email)
	if err != nil {
		return userRejected(CodeMalformedInput, err.Error()), nil
	}
	role, err := user.NewRole(in.Role)
	if err != nil {
		return userRejected(CodeMalformedInput, err.Error()), nil
	}
	u, err := user.NewUser(in.Name, email, role, c.clock.Now())
	if err != nil {
		return userRejected(CodeMalformedInput, err.Error()), nil
	}

	if _, err := c.users.FindByEmail(ctx, email); err == nil {
		return userRejected(CodeDuplicateEmail, msgDuplicateEmail), nil
	} else if !infra.IsKind(err, infra.KindNotFound) {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if err := c.users.Insert(ctx, u); err != nil {
		// Lost a race against a concurrent signup with the same email.
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return userRejected(CodeDuplicateEmail, msgDuplicateEmail), nil
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	c.logger.Info("user created", slog.String("user_id", u.ID().String()), slog.String("role", u.Role().String()))
	return &UserResult{Success: true, Message: msgUserCreated, User: u}, nil
}
