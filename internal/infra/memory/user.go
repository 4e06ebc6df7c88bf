package memory

import (
	"context"

	"coworking-reservations/internal/domain/user"
	"coworking-reservations/internal/infra"

	"github.com/google/uuid"
)

type UserRepository struct {
	store *Store
}

func (r *UserRepository) List(_ context.Context) ([]*user.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]*user.User, 0, len(r.store.users))
	for _, u := range r.store.users {
		out = append(out, u.Clone())
	}
	return out, nil
}

func (r *UserRepository) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	u, ok := r.store.users[id]
	if !ok {
		return nil, infra.NotFound("user not found")
	}
	return u.Clone(), nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email user.Email) (*user.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	id, ok := r.store.emails[email.Value()]
	if !ok {
		return nil, infra.NotFound("user not found")
	}
	return r.store.users[id].Clone(), nil
}

func (r *UserRepository) Insert(_ context.Context, u *user.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, taken := r.store.emails[u.Email().Value()]; taken {
		return infra.WrapRepoErr("email already registered", nil, infra.KindDuplicateKey)
	}
	if _, taken := r.store.users[u.ID()]; taken {
		return infra.WrapRepoErr("user id already exists", nil, infra.KindDuplicateKey)
	}

	r.store.users[u.ID()] = u.Clone()
	r.store.emails[u.Email().Value()] = u.ID()
	return nil
}
