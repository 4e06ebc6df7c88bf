package postgres

import (
	"context"

	"coworking-reservations/internal/domain/space"
	"coworking-reservations/internal/infra"
	"coworking-reservations/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const spaceColumns = "id, name, type, capacity, amenities, description, is_active, created_at, updated_at"

type SpaceRepository struct {
	db DBTX
}

func NewSpaceRepository(pool *pgxpool.Pool) *SpaceRepository {
	return &SpaceRepository{db: pool}
}

func (r *SpaceRepository) List(ctx context.Context) ([]*space.Space, error) {
	rows, err := r.db.Query(ctx, "SELECT "+spaceColumns+" FROM spaces ORDER BY created_at, name")
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list spaces", err)
	}
	spaces, err := collect(rows, scanSpace)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan spaces", err)
	}
	return spaces, nil
}

func (r *SpaceRepository) FindByID(ctx context.Context, id uuid.UUID) (*space.Space, error) {
	s, err := scanSpace(r.db.QueryRow(ctx, "SELECT "+spaceColumns+" FROM spaces WHERE id = $1", id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("space not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find space by ID", err)
	}
	return s, nil
}

func (r *SpaceRepository) Insert(ctx context.Context, s *space.Space) error {
	_, err := r.db.Exec(ctx,
		"INSERT INTO spaces ("+spaceColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)",
		s.ID(), s.Name(), s.Type().String(), s.Capacity(), amenitiesOrEmpty(s.Amenities()),
		pgconv.StringPtrToPgtype(s.Description()), s.IsActive(),
		pgconv.TimeToPgtype(s.CreatedAt()), pgconv.TimeToPgtype(s.UpdatedAt()),
	)
	if err != nil {
		if pgconv.IsUniqueViolation(err) {
			return infra.WrapRepoErr("space id already exists", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create space", err)
	}
	return nil
}

func (r *SpaceRepository) Update(ctx context.Context, s *space.Space) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE spaces
		SET name = $2, type = $3, capacity = $4, amenities = $5, description = $6,
		    is_active = $7, updated_at = $8
		WHERE id = $1`,
		s.ID(), s.Name(), s.Type().String(), s.Capacity(), amenitiesOrEmpty(s.Amenities()),
		pgconv.StringPtrToPgtype(s.Description()), s.IsActive(), pgconv.TimeToPgtype(s.UpdatedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update space", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NotFound("space not found")
	}
	return nil
}

func scanSpace(row scanner) (*space.Space, error) {
	var (
		id          uuid.UUID
		name        string
		spaceType   string
		capacity    int32
		amenities   []string
		description pgtype.Text
		isActive    bool
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
	)
	if err := row.Scan(&id, &name, &spaceType, &capacity, &amenities, &description, &isActive, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return space.ReconstructSpace(
		id, name, space.Type(spaceType), int(capacity), amenitiesOrEmpty(amenities),
		pgconv.StringPtrFromPgtype(description), isActive,
		pgconv.TimeFromPgtype(createdAt), pgconv.TimeFromPgtype(updatedAt),
	), nil
}

// amenities is NOT NULL in the schema; nil slices would be sent as NULL.
func amenitiesOrEmpty(a []string) []string {
	if a == nil {
		return []string{}
	}
	return a
}
