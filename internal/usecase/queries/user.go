package queries

//go:generate mockgen -source=user.go -destination=../../../tests/mock/queries/user.go -package=queriesmock

import (
	"cmp"
	"context"
	"slices"

	"coworking-reservations/internal/domain/user"
	"coworking-reservations/internal/infra"
	"coworking-reservations/internal/pkg/errs"
	"coworking-reservations/internal/usecase/shared"

	"github.com/google/uuid"
)

type UserQueries interface {
	List(ctx context.Context) ([]*UserView, error)
	Get(ctx context.Context, id uuid.UUID) (*UserView, error)
}

type userQueriesImpl struct {
	users shared.UserRepository
}

func NewUserQueries(users shared.UserRepository) UserQueries {
	return &userQueriesImpl{users: users}
}

func (q *userQueriesImpl) List(ctx context.Context) ([]*UserView, error) {
	users, err := q.users.List(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(users, func(a, b *user.User) int {
		if c := a.CreatedAt().Compare(b.CreatedAt()); c != 0 {
			return c
		}
		return cmp.Compare(a.Name(), b.Name())
	})

	views := make([]*UserView, 0, len(users))
	for _, u := range users {
		views = append(views, NewUserView(u))
	}
	return views, nil
}

func (q *userQueriesImpl) Get(ctx context.Context, id uuid.UUID) (*UserView, error) {
	u, err := q.users.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, err
	}
	return NewUserView(u), nil
}
