package readstore

import (
	"context"

	"loanerdesk/internal/domain/reservation"
	"loanerdesk/internal/infra"
	"loanerdesk/internal/infra/db"
	"loanerdesk/internal/pkg/pgconv"
	"loanerdesk/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgtype"
)

// ReservationReadStore assembles the joined reservation view. It runs over
// any DBTX, so the same store serves pool-backed queries and in-transaction
// reads.
type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(d db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: d}
}

var _ queries.ReservationViewRepo = (*ReservationReadStore)(nil)

const reservationViewColumns = `
	r.reservation_id, r.customer_id, r.vehicle_id, r.assigned_advisor_id,
	r.start_date, r.end_date, r.status,
	r.check_out_timestamp, r.check_in_timestamp,
	r.created_at, r.updated_at,
	c.customer_id, c.first_name, c.last_name, c.date_of_birth,
	c.drivers_license_number, c.insurance_provider, c.phone, c.email,
	v.vehicle_id, v.make, v.model, v.year, v.license_plate,
	v.current_odometer, v.current_fuel_level,
	a.advisor_id, a.first_name, a.last_name, a.email,
	COALESCE(e.age_verified, FALSE),
	COALESCE(e.license_verified, FALSE),
	COALESCE(e.insurance_verified, FALSE),
	COALESCE(e.waiver_signed, FALSE)`

const reservationViewJoins = `
	FROM reservations r
	LEFT JOIN customers c ON c.customer_id = r.customer_id
	LEFT JOIN vehicles v ON v.vehicle_id = r.vehicle_id
	LEFT JOIN service_advisors a ON a.advisor_id = r.assigned_advisor_id
	LEFT JOIN eligibility_verification e ON e.reservation_id = r.reservation_id`

const findReservationViewQuery = `SELECT` + reservationViewColumns + reservationViewJoins + `
	WHERE r.reservation_id = $1`

const listReservationViewsQuery = `SELECT` + reservationViewColumns + reservationViewJoins + `
	WHERE ($1::text IS NULL OR r.status = $1)
	ORDER BY r.start_date ASC, r.end_date ASC`

const listInspectionsQuery = `
	SELECT inspection_id, reservation_id, inspection_type, odometer,
	       fuel_level, notes, inspected_by, inspected_at
	FROM inspections
	WHERE reservation_id = $1
	ORDER BY inspected_at DESC, inspection_id DESC`

// FindByID returns the full view including the inspection history, newest
// first.
func (s *ReservationReadStore) FindByID(ctx context.Context, id string) (*queries.ReservationView, error) {
	row := s.db.QueryRow(ctx, findReservationViewQuery, id)
	view, err := scanReservationView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation", err)
	}

	inspections, err := s.findInspections(ctx, id)
	if err != nil {
		return nil, err
	}
	view.Inspections = inspections
	return view, nil
}

// FindAll lists reservation views without inspection history, optionally
// filtered by status.
func (s *ReservationReadStore) FindAll(ctx context.Context, status *string) ([]*queries.ReservationView, error) {
	rows, err := s.db.Query(ctx, listReservationViewsQuery, status)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	defer rows.Close()

	views := make([]*queries.ReservationView, 0)
	for rows.Next() {
		view, err := scanReservationView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	return views, nil
}

func (s *ReservationReadStore) findInspections(ctx context.Context, reservationID string) ([]queries.InspectionView, error) {
	rows, err := s.db.Query(ctx, listInspectionsQuery, reservationID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list inspections", err)
	}
	defer rows.Close()

	var out []queries.InspectionView
	for rows.Next() {
		var (
			iv          queries.InspectionView
			notes       pgtype.Text
			inspectedBy pgtype.Text
			inspectedAt pgtype.Timestamptz
		)
		if err := rows.Scan(
			&iv.InspectionID, &iv.ReservationID, &iv.Type, &iv.Odometer,
			&iv.FuelLevel, &notes, &inspectedBy, &inspectedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan inspection", err)
		}
		iv.Notes = pgconv.StringPtrFromPgtype(notes)
		iv.InspectedBy = pgconv.StringPtrFromPgtype(inspectedBy)
		iv.InspectedAt = pgconv.TimeFromPgtype(inspectedAt)
		out = append(out, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list inspections", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservationView(row rowScanner) (*queries.ReservationView, error) {
	var (
		view       queries.ReservationView
		startDate  pgtype.Date
		endDate    pgtype.Date
		checkOutAt pgtype.Timestamptz
		checkInAt  pgtype.Timestamptz
		createdAt  pgtype.Timestamptz
		updatedAt  pgtype.Timestamptz

		custID      pgtype.Text
		custFirst   pgtype.Text
		custLast    pgtype.Text
		custDOB     pgtype.Date
		custLicense pgtype.Text
		custInsurer pgtype.Text
		custPhone   pgtype.Text
		custEmail   pgtype.Text

		vehID    pgtype.Text
		vehMake  pgtype.Text
		vehModel pgtype.Text
		vehYear  pgtype.Int4
		vehPlate pgtype.Text
		vehOdo   pgtype.Int4
		vehFuel  pgtype.Text

		advID    pgtype.Text
		advFirst pgtype.Text
		advLast  pgtype.Text
		advEmail pgtype.Text
	)

	if err := row.Scan(
		&view.ReservationID, &view.CustomerID, &view.VehicleID, &view.AdvisorID,
		&startDate, &endDate, &view.Status,
		&checkOutAt, &checkInAt,
		&createdAt, &updatedAt,
		&custID, &custFirst, &custLast, &custDOB,
		&custLicense, &custInsurer, &custPhone, &custEmail,
		&vehID, &vehMake, &vehModel, &vehYear, &vehPlate,
		&vehOdo, &vehFuel,
		&advID, &advFirst, &advLast, &advEmail,
		&view.Eligibility.AgeVerified,
		&view.Eligibility.LicenseVerified,
		&view.Eligibility.InsuranceVerified,
		&view.Eligibility.WaiverSigned,
	); err != nil {
		return nil, err
	}

	view.StartDate = reservation.NewDate(pgconv.DateFromPgtype(startDate))
	view.EndDate = reservation.NewDate(pgconv.DateFromPgtype(endDate))
	view.CheckOutAt = pgconv.TimePtrFromPgtype(checkOutAt)
	view.CheckInAt = pgconv.TimePtrFromPgtype(checkInAt)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)

	if custID.Valid {
		view.Customer = &queries.CustomerSummary{
			CustomerID:           custID.String,
			FirstName:            custFirst.String,
			LastName:             custLast.String,
			DateOfBirth:          pgconv.DateFromPgtype(custDOB),
			DriversLicenseNumber: custLicense.String,
			InsuranceProvider:    custInsurer.String,
			Phone:                custPhone.String,
			Email:                custEmail.String,
		}
	}
	if vehID.Valid {
		view.Vehicle = &queries.VehicleSummary{
			VehicleID:        vehID.String,
			Make:             vehMake.String,
			Model:            vehModel.String,
			Year:             vehYear.Int32,
			LicensePlate:     vehPlate.String,
			CurrentOdometer:  vehOdo.Int32,
			CurrentFuelLevel: vehFuel.String,
		}
	}
	if advID.Valid {
		view.Advisor = &queries.AdvisorSummary{
			AdvisorID: advID.String,
			FirstName: advFirst.String,
			LastName:  advLast.String,
			Email:     advEmail.String,
		}
	}

	return &view, nil
}
