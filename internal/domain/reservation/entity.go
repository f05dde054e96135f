package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrVehicleRequired  = errors.New("vehicle is required")
	ErrAdvisorRequired  = errors.New("advisor is required")
	ErrCustomerRequired = errors.New("customer is required")
)

type Reservation struct {
	id         string
	customerID string
	vehicleID  string
	advisorID  string
	dates      DateRange
	status     Status
	checkOutAt *time.Time
	checkInAt  *time.Time
	createdAt  time.Time
	updatedAt  time.Time
}

// NewReservation builds a booking in its initial state. Callers resolve the
// customer beforehand; the conflict check against other bookings for the
// vehicle happens in the same transaction as the insert, not here.
func NewReservation(customerID, vehicleID, advisorID string, dates DateRange, status Status) (*Reservation, error) {
	if customerID == "" {
		return nil, ErrCustomerRequired
	}
	if vehicleID == "" {
		return nil, ErrVehicleRequired
	}
	if advisorID == "" {
		return nil, ErrAdvisorRequired
	}
	if status == "" {
		status = StatusReserved
	} else if _, err := ParseStatus(string(status)); err != nil {
		return nil, err
	}

	return &Reservation{
		id:         NewReservationID(),
		customerID: customerID,
		vehicleID:  vehicleID,
		advisorID:  advisorID,
		dates:      dates,
		status:     status,
	}, nil
}

func (r *Reservation) ID() string             { return r.id }
func (r *Reservation) CustomerID() string     { return r.customerID }
func (r *Reservation) VehicleID() string      { return r.vehicleID }
func (r *Reservation) AdvisorID() string      { return r.advisorID }
func (r *Reservation) Dates() DateRange       { return r.dates }
func (r *Reservation) Status() Status         { return r.status }
func (r *Reservation) CheckOutAt() *time.Time { return r.checkOutAt }
func (r *Reservation) CheckInAt() *time.Time  { return r.checkInAt }
func (r *Reservation) CreatedAt() time.Time   { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time   { return r.updatedAt }

// NewReservationID generates a reservation identifier. The RES prefix keeps
// ids recognizable on the service desk; seeded rows may use any string.
func NewReservationID() string {
	return "RES-" + uuid.NewString()
}

// NewCustomerID generates an identifier for a customer created inline during
// reservation creation.
func NewCustomerID() string {
	return "CUST-" + uuid.NewString()
}
