package memory

import (
	"context"

	"coworking-reservations/internal/domain/space"
	"coworking-reservations/internal/infra"

	"github.com/google/uuid"
)

type SpaceRepository struct {
	store *Store
}

// List includes deactivated spaces.
func (r *SpaceRepository) List(_ context.Context) ([]*space.Space, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]*space.Space, 0, len(r.store.spaces))
	for _, s := range r.store.spaces {
		out = append(out, s.Clone())
	}
	return out, nil
}

func (r *SpaceRepository) FindByID(_ context.Context, id uuid.UUID) (*space.Space, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	s, ok := r.store.spaces[id]
	if !ok {
		return nil, infra.NotFound("space not found")
	}
	return s.Clone(), nil
}

func (r *SpaceRepository) Insert(_ context.Context, s *space.Space) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, taken := r.store.spaces[s.ID()]; taken {
		return infra.WrapRepoErr("space id already exists", nil, infra.KindDuplicateKey)
	}
	r.store.spaces[s.ID()] = s.Clone()
	return nil
}

func (r *SpaceRepository) Update(_ context.Context, s *space.Space) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.spaces[s.ID()]; !ok {
		return infra.NotFound("space not found")
	}
	r.store.spaces[s.ID()] = s.Clone()
	return nil
}
