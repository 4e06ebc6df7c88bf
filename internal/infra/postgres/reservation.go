package postgres

import (
	"context"

	"coworking-reservations/internal/domain/reservation"
	"coworking-reservations/internal/infra"
	"coworking-reservations/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const reservationColumns = "id, user_id, space_id, start_time, end_time, status, purpose, created_at, updated_at"

// ReservationRepository relies on the reservations_no_overlap exclusion
// constraint as the last line against double booking; a violation is
// reported as KindConflict.
type ReservationRepository struct {
	db DBTX
	tx *txRunner
}

func NewReservationRepository(pool *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{db: pool, tx: newTxRunner(pool)}
}

func (r *ReservationRepository) List(ctx context.Context) ([]*reservation.Reservation, error) {
	return r.query(ctx, "failed to list reservations",
		"SELECT "+reservationColumns+" FROM reservations ORDER BY start_time, id")
}

func (r *ReservationRepository) ListBySpace(ctx context.Context, spaceID uuid.UUID) ([]*reservation.Reservation, error) {
	return r.query(ctx, "failed to list reservations by space",
		"SELECT "+reservationColumns+" FROM reservations WHERE space_id = $1 ORDER BY start_time, id", spaceID)
}

func (r *ReservationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*reservation.Reservation, error) {
	return r.query(ctx, "failed to list reservations by user",
		"SELECT "+reservationColumns+" FROM reservations WHERE user_id = $1 ORDER BY start_time, id", userID)
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	res, err := scanReservation(r.db.QueryRow(ctx, "SELECT "+reservationColumns+" FROM reservations WHERE id = $1", id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	return res, nil
}

func (r *ReservationRepository) Insert(ctx context.Context, res *reservation.Reservation) error {
	err := r.tx.within(ctx, func(ctx context.Context, tx DBTX) error {
		_, err := tx.Exec(ctx,
			"INSERT INTO reservations ("+reservationColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)",
			res.ID(), res.UserID(), res.SpaceID(),
			pgconv.TimeToPgtype(res.Start()), pgconv.TimeToPgtype(res.End()),
			res.Status().String(), pgconv.StringPtrToPgtype(res.Purpose().Ptr()),
			pgconv.TimeToPgtype(res.CreatedAt()), pgconv.TimeToPgtype(res.UpdatedAt()),
		)
		return err
	})
	if err != nil {
		return classifyWrite("failed to create reservation", err)
	}
	return nil
}

func (r *ReservationRepository) Update(ctx context.Context, res *reservation.Reservation) error {
	var affected int64
	err := r.tx.within(ctx, func(ctx context.Context, tx DBTX) error {
		tag, err := tx.Exec(ctx, `
			UPDATE reservations
			SET start_time = $2, end_time = $3, status = $4, purpose = $5, updated_at = $6
			WHERE id = $1`,
			res.ID(),
			pgconv.TimeToPgtype(res.Start()), pgconv.TimeToPgtype(res.End()),
			res.Status().String(), pgconv.StringPtrToPgtype(res.Purpose().Ptr()),
			pgconv.TimeToPgtype(res.UpdatedAt()),
		)
		affected = tag.RowsAffected()
		return err
	})
	if err != nil {
		return classifyWrite("failed to update reservation", err)
	}
	if affected == 0 {
		return infra.NotFound("reservation not found")
	}
	return nil
}

func (r *ReservationRepository) query(ctx context.Context, failure, sql string, args ...any) ([]*reservation.Reservation, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(failure, err)
	}
	out, err := collect(rows, scanReservation)
	if err != nil {
		return nil, infra.WrapRepoErr(failure, err)
	}
	return out, nil
}

func classifyWrite(msg string, err error) error {
	switch {
	case pgconv.IsExclusionViolation(err):
		return infra.WrapRepoErr("reservation overlaps an active reservation", err, infra.KindConflict)
	case pgconv.IsForeignKeyViolation(err):
		return infra.WrapRepoErr("reservation references unknown user or space", err, infra.KindForeignKeyViolated)
	case pgconv.IsUniqueViolation(err):
		return infra.WrapRepoErr("reservation id already exists", err, infra.KindDuplicateKey)
	default:
		return infra.WrapRepoErr(msg, err)
	}
}

func scanReservation(row scanner) (*reservation.Reservation, error) {
	var (
		id, userID, spaceID uuid.UUID
		start, end          pgtype.Timestamptz
		status              string
		purpose             pgtype.Text
		createdAt           pgtype.Timestamptz
		updatedAt           pgtype.Timestamptz
	)
	if err := row.Scan(&id, &userID, &spaceID, &start, &end, &status, &purpose, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return reservation.ReconstructReservation(
		id, userID, spaceID,
		reservation.NewTimeSlot(pgconv.TimeFromPgtype(start), pgconv.TimeFromPgtype(end)),
		reservation.Status(status),
		reservation.ReconstructPurpose(purpose.String),
		pgconv.TimeFromPgtype(createdAt), pgconv.TimeFromPgtype(updatedAt),
	), nil
}
