package repository

import (
	"context"
	"time"

	"loanerdesk/internal/domain/reservation"
	"loanerdesk/internal/infra"
	"loanerdesk/internal/infra/db"
	"loanerdesk/internal/pkg/errs"
	"loanerdesk/internal/pkg/pgconv"
	"loanerdesk/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationRepository struct {
	db db.DBTX
}

func NewReservationRepository(d db.DBTX) *ReservationRepository {
	return &ReservationRepository{db: d}
}

var _ shared.ReservationRepository = (*ReservationRepository)(nil)

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO reservations (
			reservation_id, customer_id, vehicle_id, assigned_advisor_id,
			start_date, end_date, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		res.ID(), res.CustomerID(), res.VehicleID(), res.AdvisorID(),
		pgconv.DateToPgtype(res.Dates().Start().Time()),
		pgconv.DateToPgtype(res.Dates().End().Time()),
		res.Status().String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert reservation", err)
	}
	return nil
}

func (r *ReservationRepository) FindSnapshot(ctx context.Context, id string) (*shared.ReservationSnapshot, error) {
	var (
		snap      shared.ReservationSnapshot
		startDate pgtype.Date
		endDate   pgtype.Date
		status    string
	)
	err := r.db.QueryRow(ctx, `
		SELECT reservation_id, customer_id, vehicle_id, assigned_advisor_id,
		       start_date, end_date, status
		FROM reservations
		WHERE reservation_id = $1`, id,
	).Scan(&snap.ID, &snap.CustomerID, &snap.VehicleID, &snap.AdvisorID,
		&startDate, &endDate, &status)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation", err)
	}

	dates, err := reservation.NewDateRange(
		reservation.NewDate(pgconv.DateFromPgtype(startDate)),
		reservation.NewDate(pgconv.DateFromPgtype(endDate)),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load reservation dates", err)
	}
	snap.Dates = dates
	snap.Status = reservation.Status(status)
	return &snap, nil
}

// FindConflicts runs the overlap test s1 < e2 AND s2 < e1 against every
// booking for the vehicle. No status filter: cancelled rows still block.
func (r *ReservationRepository) FindConflicts(
	ctx context.Context,
	vehicleID string,
	dates reservation.DateRange,
	excludeID *string,
) ([]shared.ConflictingReservation, error) {
	rows, err := r.db.Query(ctx, `
		SELECT reservation_id, customer_id, start_date, end_date
		FROM reservations
		WHERE vehicle_id = $1
		  AND start_date < $3
		  AND end_date > $2
		  AND ($4::text IS NULL OR reservation_id <> $4)
		ORDER BY start_date ASC`,
		vehicleID,
		pgconv.DateToPgtype(dates.Start().Time()),
		pgconv.DateToPgtype(dates.End().Time()),
		excludeID,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query conflicting reservations", err)
	}
	defer rows.Close()

	var conflicts []shared.ConflictingReservation
	for rows.Next() {
		var (
			c     shared.ConflictingReservation
			start pgtype.Date
			end   pgtype.Date
		)
		if err := rows.Scan(&c.ReservationID, &c.CustomerID, &start, &end); err != nil {
			return nil, infra.WrapRepoErr("failed to scan conflicting reservation", err)
		}
		c.StartDate = reservation.NewDate(pgconv.DateFromPgtype(start))
		c.EndDate = reservation.NewDate(pgconv.DateFromPgtype(end))
		conflicts = append(conflicts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to query conflicting reservations", err)
	}
	return conflicts, nil
}

func (r *ReservationRepository) UpdateDetails(ctx context.Context, id string, upd shared.ReservationUpdate) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE reservations
		SET vehicle_id = $2,
		    assigned_advisor_id = $3,
		    start_date = $4,
		    end_date = $5,
		    status = $6,
		    updated_at = NOW()
		WHERE reservation_id = $1`,
		id, upd.VehicleID, upd.AdvisorID,
		pgconv.DateToPgtype(upd.Dates.Start().Time()),
		pgconv.DateToPgtype(upd.Dates.End().Time()),
		upd.Status.String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation", err)
	}
	return requireRowAffected(tag.RowsAffected(), "reservation not found")
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, id string, status reservation.Status) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE reservations
		SET status = $2, updated_at = NOW()
		WHERE reservation_id = $1`,
		id, status.String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation status", err)
	}
	return requireRowAffected(tag.RowsAffected(), "reservation not found")
}

func (r *ReservationRepository) MarkCheckedOut(ctx context.Context, id string, at time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE reservations
		SET status = $2, check_out_timestamp = $3, updated_at = NOW()
		WHERE reservation_id = $1`,
		id, reservation.StatusInUse.String(), pgconv.TimeToPgtype(at),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to check out reservation", err)
	}
	return requireRowAffected(tag.RowsAffected(), "reservation not found")
}

func (r *ReservationRepository) MarkCheckedIn(ctx context.Context, id string, at time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE reservations
		SET status = $2, check_in_timestamp = $3, updated_at = NOW()
		WHERE reservation_id = $1`,
		id, reservation.StatusReturned.String(), pgconv.TimeToPgtype(at),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to check in reservation", err)
	}
	return requireRowAffected(tag.RowsAffected(), "reservation not found")
}

// Delete removes the reservation row only. Inspection and eligibility rows
// keep their reservation_id and stay behind as history.
func (r *ReservationRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reservations WHERE reservation_id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete reservation", err)
	}
	return requireRowAffected(tag.RowsAffected(), "reservation not found")
}

func requireRowAffected(n int64, msg string) error {
	if n == 0 {
		return infra.WrapRepoErr(msg, errs.New(msg), infra.KindNotFound)
	}
	return nil
}
