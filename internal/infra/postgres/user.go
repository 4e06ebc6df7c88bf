package postgres

import (
	"context"

	"coworking-reservations/internal/domain/user"
	"coworking-reservations/internal/infra"
	"coworking-reservations/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = "id, name, email, role, created_at"

type UserRepository struct {
	db DBTX
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: pool}
}

func (r *UserRepository) List(ctx context.Context) ([]*user.User, error) {
	rows, err := r.db.Query(ctx, "SELECT "+userColumns+" FROM users ORDER BY created_at, name")
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list users", err)
	}
	users, err := collect(rows, scanUser)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan users", err)
	}
	return users, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	row := r.db.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
	u, err := scanUser(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email user.Email) (*user.User, error) {
	row := r.db.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1", email.Value())
	u, err := scanUser(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by email", err)
	}
	return u, nil
}

func (r *UserRepository) Insert(ctx context.Context, u *user.User) error {
	_, err := r.db.Exec(ctx,
		"INSERT INTO users ("+userColumns+") VALUES ($1, $2, $3, $4, $5)",
		u.ID(), u.Name(), u.Email().Value(), u.Role().String(), pgconv.TimeToPgtype(u.CreatedAt()),
	)
	if err != nil {
		if pgconv.IsUniqueViolation(err) {
			return infra.WrapRepoErr("email already registered", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create user", err)
	}
	return nil
}

func scanUser(row scanner) (*user.User, error) {
	var (
		id        uuid.UUID
		name      string
		email     string
		role      string
		createdAt pgtype.Timestamptz
	)
	if err := row.Scan(&id, &name, &email, &role, &createdAt); err != nil {
		return nil, err
	}
	return user.ReconstructUser(id, name, user.ReconstructEmail(email), user.Role(role), pgconv.TimeFromPgtype(createdAt)), nil
}
