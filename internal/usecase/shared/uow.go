package shared

import (
	"context"
	"time"

	"loanerdesk/internal/domain/inspection"
	"loanerdesk/internal/domain/reservation"
	"loanerdesk/internal/domain/vehicle"
	"loanerdesk/internal/usecase/queries"
)

// UnitOfWork is the transactional boundary for every mutation. The conflict
// check and the write it guards must share one transaction, so the whole
// lifecycle operation runs inside Within.
type UnitOfWork interface {
	// Within: serializable transaction with retry on serialization failure
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Reservations() ReservationRepository
	Customers() CustomerRepository
	Vehicles() VehicleRepository
	Inspections() InspectionRepository
	Eligibility() EligibilityRepository
	Views() ReservationViews
}

// ReservationViews exposes the joined read model inside the owning
// transaction, so the view handed to the notifier matches what was committed.
type ReservationViews interface {
	FindByID(ctx context.Context, id string) (*queries.ReservationView, error)
}

// ConflictingReservation is the slice of an existing booking returned to a
// caller whose requested range collides with it.
type ConflictingReservation struct {
	ReservationID string           `json:"reservationId"`
	CustomerID    string           `json:"customerId"`
	StartDate     reservation.Date `json:"startDate"`
	EndDate       reservation.Date `json:"endDate"`
}

// ReservationSnapshot is the minimal row image used by command validation.
type ReservationSnapshot struct {
	ID         string
	CustomerID string
	VehicleID  string
	AdvisorID  string
	Dates      reservation.DateRange
	Status     reservation.Status
}

// ReservationUpdate carries the merged field set for a full update.
type ReservationUpdate struct {
	VehicleID string
	AdvisorID string
	Dates     reservation.DateRange
	Status    reservation.Status
}

type ReservationRepository interface {
	Create(ctx context.Context, res *reservation.Reservation) error
	FindSnapshot(ctx context.Context, id string) (*ReservationSnapshot, error)
	// FindConflicts returns bookings for the vehicle whose ranges overlap the
	// given one, ordered by start date. Status is deliberately not filtered:
	// cancelled rows still block.
	FindConflicts(ctx context.Context, vehicleID string, dates reservation.DateRange, excludeID *string) ([]ConflictingReservation, error)
	UpdateDetails(ctx context.Context, id string, upd ReservationUpdate) error
	UpdateStatus(ctx context.Context, id string, status reservation.Status) error
	MarkCheckedOut(ctx context.Context, id string, at time.Time) error
	MarkCheckedIn(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
}

type NewCustomer struct {
	ID                   string
	FirstName            string
	LastName             string
	DateOfBirth          time.Time
	DriversLicenseNumber string
	InsuranceProvider    string
	Phone                string
	Email                string
}

type CustomerRepository interface {
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, cust NewCustomer) error
	Update(ctx context.Context, id string, cust NewCustomer) error
}

type NewVehicle struct {
	ID               string
	Make             string
	Model            string
	Year             int32
	LicensePlate     string
	CurrentOdometer  int32
	CurrentFuelLevel vehicle.FuelLevel
	Status           vehicle.Status
}

type VehicleRepository interface {
	Create(ctx context.Context, v NewVehicle) error
	Update(ctx context.Context, id string, v NewVehicle) error
	// ApplyInspection overwrites the vehicle's status, odometer and fuel level
	// from an inspection taken at checkout or check-in.
	ApplyInspection(ctx context.Context, id string, status vehicle.Status, odometer int32, fuel vehicle.FuelLevel) error
}

type InspectionRepository interface {
	Create(ctx context.Context, reservationID string, rec inspection.Record) error
}

type EligibilityRepository interface {
	Create(ctx context.Context, reservationID string, checklist reservation.Eligibility, verifiedBy string) error
}
