package commands

import (
	"context"
	"time"

	"loanerdesk/internal/domain/inspection"
	"loanerdesk/internal/domain/reservation"
	"loanerdesk/internal/domain/vehicle"
	"loanerdesk/internal/infra"
	"loanerdesk/internal/notifier"
	"loanerdesk/internal/pkg/clock"
	"loanerdesk/internal/pkg/errs"
	"loanerdesk/internal/usecase/queries"
	"loanerdesk/internal/usecase/shared"
)

var (
	ErrReservationNotFound     = errs.New("reservation not found")
	ErrVehicleNotFound         = errs.New("vehicle not found")
	ErrCustomerNotFound        = errs.New("customer does not exist")
	ErrCustomerRequired        = errs.New("customer information is required")
	ErrMissingRequiredFields   = errs.New("vehicleId, startDate, endDate, and assignedAdvisorId are required")
	ErrInvalidDateRange        = errs.New("invalid date range")
	ErrInvalidInput            = errs.New("invalid input")
	ErrReservationConflict     = errs.New("vehicle is already reserved for the selected date range")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// ConflictError carries the colliding bookings so a caller can display them
// and pick another range.
type ConflictError struct {
	Conflicts []shared.ConflictingReservation
}

func (e *ConflictError) Error() string {
	return "vehicle is already reserved for the selected date range"
}

type NewCustomerInput struct {
	CustomerID           *string
	FirstName            string
	LastName             string
	DateOfBirth          time.Time
	DriversLicenseNumber string
	InsuranceProvider    string
	Phone                string
	Email                string
}

type EligibilityInput struct {
	AgeVerified       bool
	LicenseVerified   bool
	InsuranceVerified bool
	WaiverSigned      bool
}

type CreateReservationInput struct {
	VehicleID  string
	AdvisorID  string
	StartDate  reservation.Date
	EndDate    reservation.Date
	Status     string
	Customer   *NewCustomerInput // inline customer: resolved or created
	CustomerID *string           // bare reference: must already exist
	Eligibility *EligibilityInput
}

type UpdateReservationInput struct {
	VehicleID *string
	AdvisorID *string
	StartDate *reservation.Date
	EndDate   *reservation.Date
	Status    *string
}

type InspectionInput struct {
	Odometer    int32
	FuelLevel   string
	Notes       string
	InspectedBy string
}

type ReservationCommands interface {
	Create(ctx context.Context, in CreateReservationInput) (*queries.ReservationView, error)
	Update(ctx context.Context, id string, in UpdateReservationInput) (*queries.ReservationView, error)
	UpdateStatus(ctx context.Context, id string, status string) (*queries.ReservationView, error)
	CheckOut(ctx context.Context, id string, in InspectionInput) (*queries.ReservationView, error)
	CheckIn(ctx context.Context, id string, in InspectionInput) (*queries.ReservationView, error)
	Delete(ctx context.Context, id string) (*queries.ReservationView, error)
}

type reservationCommandsImpl struct {
	uow       shared.UnitOfWork
	publisher notifier.Publisher
	clock     clock.Clock
}

func NewReservationCommands(uow shared.UnitOfWork, publisher notifier.Publisher, clk clock.Clock) ReservationCommands {
	return &reservationCommandsImpl{
		uow:       uow,
		publisher: publisher,
		clock:     clk,
	}
}

func (c *reservationCommandsImpl) Create(ctx context.Context, in CreateReservationInput) (*queries.ReservationView, error) {
	if in.VehicleID == "" || in.AdvisorID == "" || in.StartDate.IsZero() || in.EndDate.IsZero() {
		return nil, ErrMissingRequiredFields
	}

	dates, err := reservation.NewDateRange(in.StartDate, in.EndDate)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidDateRange)
	}

	var view *queries.ReservationView
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := checkAvailability(ctx, tx, in.VehicleID, dates, nil); err != nil {
			return err
		}

		customerID, err := c.resolveCustomer(ctx, tx, in)
		if err != nil {
			return err
		}

		res, err := reservation.NewReservation(customerID, in.VehicleID, in.AdvisorID, dates, reservation.Status(in.Status))
		if err != nil {
			return errs.Mark(err, ErrInvalidInput)
		}

		if err := tx.Reservations().Create(ctx, res); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if in.Eligibility != nil {
			checklist := reservation.Eligibility{
				AgeVerified:       in.Eligibility.AgeVerified,
				LicenseVerified:   in.Eligibility.LicenseVerified,
				InsuranceVerified: in.Eligibility.InsuranceVerified,
				WaiverSigned:      in.Eligibility.WaiverSigned,
			}
			if err := tx.Eligibility().Create(ctx, res.ID(), checklist, in.AdvisorID); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}

		view, err = tx.Views().FindByID(ctx, res.ID())
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.publisher.Publish(notifier.ActionCreate, view)
	return view, nil
}

// resolveCustomer keeps the two creation paths explicit: an inline customer
// object is created when missing, while a bare customer reference must
// already exist.
func (c *reservationCommandsImpl) resolveCustomer(ctx context.Context, tx shared.Tx, in CreateReservationInput) (string, error) {
	switch {
	case in.Customer != nil:
		return c.createWithNewCustomer(ctx, tx, *in.Customer)
	case in.CustomerID != nil && *in.CustomerID != "":
		return c.createWithExistingCustomer(ctx, tx, *in.CustomerID)
	default:
		return "", ErrCustomerRequired
	}
}

func (c *reservationCommandsImpl) createWithNewCustomer(ctx context.Context, tx shared.Tx, in NewCustomerInput) (string, error) {
	customerID := reservation.NewCustomerID()
	if in.CustomerID != nil && *in.CustomerID != "" {
		customerID = *in.CustomerID
	}

	exists, err := tx.Customers().Exists(ctx, customerID)
	if err != nil {
		return "", errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if exists {
		return customerID, nil
	}

	cust := shared.NewCustomer{
		ID:                   customerID,
		FirstName:            in.FirstName,
		LastName:             in.LastName,
		DateOfBirth:          in.DateOfBirth,
		DriversLicenseNumber: in.DriversLicenseNumber,
		InsuranceProvider:    in.InsuranceProvider,
		Phone:                in.Phone,
		Email:                in.Email,
	}
	if err := tx.Customers().Create(ctx, cust); err != nil {
		return "", errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return customerID, nil
}

func (c *reservationCommandsImpl) createWithExistingCustomer(ctx context.Context, tx shared.Tx, customerID string) (string, error) {
	exists, err := tx.Customers().Exists(ctx, customerID)
	if err != nil {
		return "", errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !exists {
		return "", ErrCustomerNotFound
	}
	return customerID, nil
}

func (c *reservationCommandsImpl) Update(ctx context.Context, id string, in UpdateReservationInput) (*queries.ReservationView, error) {
	var view *queries.ReservationView
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		existing, err := tx.Reservations().FindSnapshot(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrReservationNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		merged, err := mergeUpdate(existing, in)
		if err != nil {
			return err
		}

		if err := checkAvailability(ctx, tx, merged.VehicleID, merged.Dates, &id); err != nil {
			return err
		}

		if err := tx.Reservations().UpdateDetails(ctx, id, merged); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrReservationNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		view, err = tx.Views().FindByID(ctx, id)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.publisher.Publish(notifier.ActionUpdate, view)
	return view, nil
}

// mergeUpdate fills absent fields from the current row, then re-validates the
// merged result the same way create does.
func mergeUpdate(existing *shared.ReservationSnapshot, in UpdateReservationInput) (shared.ReservationUpdate, error) {
	vehicleID := existing.VehicleID
	if in.VehicleID != nil && *in.VehicleID != "" {
		vehicleID = *in.VehicleID
	}
	advisorID := existing.AdvisorID
	if in.AdvisorID != nil && *in.AdvisorID != "" {
		advisorID = *in.AdvisorID
	}
	start := existing.Dates.Start()
	if in.StartDate != nil && !in.StartDate.IsZero() {
		start = *in.StartDate
	}
	end := existing.Dates.End()
	if in.EndDate != nil && !in.EndDate.IsZero() {
		end = *in.EndDate
	}
	status := existing.Status
	if in.Status != nil && *in.Status != "" {
		parsed, err := reservation.ParseStatus(*in.Status)
		if err != nil {
			return shared.ReservationUpdate{}, errs.Mark(err, ErrInvalidInput)
		}
		status = parsed
	}

	if vehicleID == "" || advisorID == "" {
		return shared.ReservationUpdate{}, ErrMissingRequiredFields
	}

	dates, err := reservation.NewDateRange(start, end)
	if err != nil {
		return shared.ReservationUpdate{}, errs.Mark(err, ErrInvalidDateRange)
	}

	return shared.ReservationUpdate{
		VehicleID: vehicleID,
		AdvisorID: advisorID,
		Dates:     dates,
		Status:    status,
	}, nil
}

func (c *reservationCommandsImpl) UpdateStatus(ctx context.Context, id string, status string) (*queries.ReservationView, error) {
	parsed, err := reservation.ParseStatus(status)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidInput)
	}

	var view *queries.ReservationView
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// Unconditional set: no state-machine guard and no availability check.
		if err := tx.Reservations().UpdateStatus(ctx, id, parsed); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrReservationNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		view, err = tx.Views().FindByID(ctx, id)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.publisher.Publish(notifier.ActionUpdate, view)
	return view, nil
}

func (c *reservationCommandsImpl) CheckOut(ctx context.Context, id string, in InspectionInput) (*queries.ReservationView, error) {
	return c.transition(ctx, id, in, inspection.TypePreCheck)
}

func (c *reservationCommandsImpl) CheckIn(ctx context.Context, id string, in InspectionInput) (*queries.ReservationView, error) {
	return c.transition(ctx, id, in, inspection.TypePostCheck)
}

// transition performs the checkout/check-in handover: reservation status and
// timestamp, vehicle status plus odometer/fuel overwrite, and exactly one
// inspection row, all in one transaction.
func (c *reservationCommandsImpl) transition(ctx context.Context, id string, in InspectionInput, typ inspection.Type) (*queries.ReservationView, error) {
	fuel, err := vehicle.ParseFuelLevel(in.FuelLevel)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidInput)
	}
	rec, err := inspection.NewRecord(typ, in.Odometer, fuel, in.Notes, in.InspectedBy)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidInput)
	}

	var view *queries.ReservationView
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reservations().FindSnapshot(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrReservationNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		now := c.clock.Now()
		vehicleStatus := vehicle.StatusInUse
		if typ == inspection.TypePreCheck {
			err = tx.Reservations().MarkCheckedOut(ctx, id, now)
		} else {
			vehicleStatus = vehicle.StatusAvailable
			err = tx.Reservations().MarkCheckedIn(ctx, id, now)
		}
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrReservationNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := tx.Vehicles().ApplyInspection(ctx, snap.VehicleID, vehicleStatus, rec.Odometer, rec.FuelLevel); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrVehicleNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := tx.Inspections().Create(ctx, id, rec); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		view, err = tx.Views().FindByID(ctx, id)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.publisher.Publish(notifier.ActionUpdate, view)
	return view, nil
}

func (c *reservationCommandsImpl) Delete(ctx context.Context, id string) (*queries.ReservationView, error) {
	var view *queries.ReservationView
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		// Capture the joined view before the row disappears; the delete
		// broadcast carries it. Child inspection and eligibility rows are
		// deliberately left in place.
		view, err = tx.Views().FindByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrReservationNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := tx.Reservations().Delete(ctx, id); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrReservationNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.publisher.Publish(notifier.ActionDelete, view)
	return view, nil
}

// checkAvailability is the conflict gate shared by create and update. It
// runs inside the caller's transaction so the check and the subsequent write
// cannot be split by a concurrent booking.
func checkAvailability(ctx context.Context, tx shared.Tx, vehicleID string, dates reservation.DateRange, excludeID *string) error {
	if vehicleID == "" {
		return ErrMissingRequiredFields
	}

	conflicts, err := tx.Reservations().FindConflicts(ctx, vehicleID, dates, excludeID)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if len(conflicts) > 0 {
		return errs.Mark(&ConflictError{Conflicts: conflicts}, ErrReservationConflict)
	}
	return nil
}
