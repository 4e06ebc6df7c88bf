package commands

//go:generate mockgen -source=space.go -destination=../../../tests/mock/commands/space.go -package=commandsmock

import (
	"context"
	"log/slog"

	"coworking-reservations/internal/domain/space"
	"coworking-reservations/internal/infra"
	"coworking-reservations/internal/pkg/clock"
	"coworking-reservations/internal/pkg/errs"
	"coworking-reservations/internal/usecase/shared"

	"github.com/google/uuid"
)

type SpaceInput struct {
	Name        string
	Type        space.Type
	Capacity    int
	Amenities   []string
	Description *string
}

func (in SpaceInput) attributes() space.Attributes {
	return space.Attributes{
		Name:        in.Name,
		Type:        in.Type,
		Capacity:    in.Capacity,
		Amenities:   in.Amenities,
		Description: in.Description,
	}
}

type SpaceCommands interface {
	Create(ctx context.Context, in SpaceInput) (*SpaceResult, error)
	// Update replaces every editable field of the space.
	Update(ctx context.Context, id uuid.UUID, in SpaceInput) (*SpaceResult, error)
	// Delete deactivates the space. Its reservations are kept.
	Delete(ctx context.Context, id uuid.UUID) (*SpaceResult, error)
}

type spaceCommandsImpl struct {
	spaces shared.SpaceRepository
	clock  clock.Clock
	logger *slog.Logger
}

func NewSpaceCommands(spaces shared.SpaceRepository, clock clock.Clock, logger *slog.Logger) SpaceCommands {
	return &spaceCommandsImpl{spaces: spaces, clock: clock, logger: logger}
}

func (c *spaceCommandsImpl) Create(ctx context.Context, in SpaceInput) (*SpaceResult, error) {
	sp, err := space.NewSpace(in.attributes(), c.clock.Now())
	if err != nil {
		return spaceRejected(CodeMalformedInput, err.Error()), nil
	}
	if err := c.spaces.Insert(ctx, sp); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	c.logger.Info("space created", slog.String("space_id", sp.ID().String()), slog.String("type", sp.Type().String()))
	return &SpaceResult{Success: true, Message: msgSpaceCreated, Space: sp}, nil
}

func (c *spaceCommandsImpl) Update(ctx context.Context, id uuid.UUID, in SpaceInput) (*SpaceResult, error) {
	sp, result, err := c.load(ctx, id)
	if sp == nil {
		return result, err
	}

	if err := sp.Update(in.attributes(), c.clock.Now()); err != nil {
		return spaceRejected(CodeMalformedInput, err.Error()), nil
	}
	if err := c.spaces.Update(ctx, sp); err != nil {
		return c.writeFailure(err)
	}
	return &SpaceResult{Success: true, Message: msgSpaceUpdated, Space: sp}, nil
}

func (c *spaceCommandsImpl) Delete(ctx context.Context, id uuid.UUID) (*SpaceResult, error) {
	sp, result, err := c.load(ctx, id)
	if sp == nil {
		return result, err
	}

	sp.Deactivate(c.clock.Now())
	if err := c.spaces.Update(ctx, sp); err != nil {
		return c.writeFailure(err)
	}

	c.logger.Info("space deactivated", slog.String("space_id", sp.ID().String()))
	return &SpaceResult{Success: true, Message: msgSpaceDeleted, Space: sp}, nil
}

func (c *spaceCommandsImpl) load(ctx context.Context, id uuid.UUID) (*space.Space, *SpaceResult, error) {
	sp, err := c.spaces.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, spaceRejected(CodeNotFound, msgSpaceNotFound), nil
		}
		return nil, nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return sp, nil, nil
}

func (c *spaceCommandsImpl) writeFailure(err error) (*SpaceResult, error) {
	if infra.IsKind(err, infra.KindNotFound) {
		return spaceRejected(CodeNotFound, msgSpaceNotFound), nil
	}
	return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
}
