package queries

import (
	"time"

	"loanerdesk/internal/domain/reservation"
)

// Read models (DTO for read side)

// ReservationView is the joined view returned by every read and broadcast:
// the reservation row plus nested customer, vehicle, advisor and eligibility
// sub-objects. Inspections are attached on single-row fetches only, newest
// first.
type ReservationView struct {
	ReservationID string           `json:"reservationId"`
	CustomerID    string           `json:"customerId"`
	VehicleID     string           `json:"vehicleId"`
	AdvisorID     string           `json:"assignedAdvisorId"`
	StartDate     reservation.Date `json:"startDate"`
	EndDate       reservation.Date `json:"endDate"`
	Status        string           `json:"status"`
	CheckOutAt    *time.Time       `json:"checkOutTimestamp,omitempty"`
	CheckInAt     *time.Time       `json:"checkInTimestamp,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`

	Customer    *CustomerSummary `json:"customer"`
	Vehicle     *VehicleSummary  `json:"vehicle"`
	Advisor     *AdvisorSummary  `json:"advisor"`
	Eligibility EligibilityView  `json:"eligibility"`
	Inspections []InspectionView `json:"inspections,omitempty"`
}

type CustomerSummary struct {
	CustomerID           string    `json:"customerId"`
	FirstName            string    `json:"firstName"`
	LastName             string    `json:"lastName"`
	DateOfBirth          time.Time `json:"dateOfBirth"`
	DriversLicenseNumber string    `json:"driversLicenseNumber"`
	InsuranceProvider    string    `json:"insuranceProvider"`
	Phone                string    `json:"phone"`
	Email                string    `json:"email"`
}

type VehicleSummary struct {
	VehicleID        string `json:"vehicleId"`
	Make             string `json:"make"`
	Model            string `json:"model"`
	Year             int32  `json:"year"`
	LicensePlate     string `json:"licensePlate"`
	CurrentOdometer  int32  `json:"currentOdometer"`
	CurrentFuelLevel string `json:"currentFuelLevel"`
}

type AdvisorSummary struct {
	AdvisorID string `json:"advisorId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// EligibilityView resolves to all-false booleans when no checklist row was
// ever recorded for the reservation.
type EligibilityView struct {
	AgeVerified       bool `json:"ageVerified"`
	LicenseVerified   bool `json:"licenseVerified"`
	InsuranceVerified bool `json:"insuranceVerified"`
	WaiverSigned      bool `json:"waiverSigned"`
}

type InspectionView struct {
	InspectionID  int64     `json:"inspectionId"`
	ReservationID string    `json:"reservationId"`
	Type          string    `json:"inspectionType"`
	Odometer      int32     `json:"odometer"`
	FuelLevel     string    `json:"fuelLevel"`
	Notes         *string   `json:"notes,omitempty"`
	InspectedBy   *string   `json:"inspectedBy,omitempty"`
	InspectedAt   time.Time `json:"inspectedAt"`
}

type VehicleView struct {
	VehicleID        string    `json:"vehicleId"`
	Make             string    `json:"make"`
	Model            string    `json:"model"`
	Year             int32     `json:"year"`
	LicensePlate     string    `json:"licensePlate"`
	CurrentOdometer  int32     `json:"currentOdometer"`
	CurrentFuelLevel string    `json:"currentFuelLevel"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type CustomerView struct {
	CustomerID           string    `json:"customerId"`
	FirstName            string    `json:"firstName"`
	LastName             string    `json:"lastName"`
	DateOfBirth          time.Time `json:"dateOfBirth"`
	DriversLicenseNumber string    `json:"driversLicenseNumber"`
	InsuranceProvider    string    `json:"insuranceProvider"`
	Phone                string    `json:"phone"`
	Email                string    `json:"email"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

type AdvisorView struct {
	AdvisorID string    `json:"advisorId"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
