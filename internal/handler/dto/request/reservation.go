package request

import (
	"time"

	"loanerdesk/internal/domain/reservation"
	"loanerdesk/internal/usecase/commands"
)

// CustomerPayload is the inline customer accepted on reservation creation.
// A missing customerId means one is generated server-side.
type CustomerPayload struct {
	CustomerID           *string `json:"customerId"`
	FirstName            string  `json:"firstName" binding:"required"`
	LastName             string  `json:"lastName" binding:"required"`
	DateOfBirth          string  `json:"dateOfBirth"`
	DriversLicenseNumber string  `json:"driversLicenseNumber"`
	InsuranceProvider    string  `json:"insuranceProvider"`
	Phone                string  `json:"phone"`
	Email                string  `json:"email"`
}

type EligibilityPayload struct {
	AgeVerified       bool `json:"ageVerified"`
	LicenseVerified   bool `json:"licenseVerified"`
	InsuranceVerified bool `json:"insuranceVerified"`
	WaiverSigned      bool `json:"waiverSigned"`
}

type CreateReservationRequest struct {
	Customer    *CustomerPayload    `json:"customer"`
	CustomerID  *string             `json:"customerId"`
	VehicleID   string              `json:"vehicleId"`
	AdvisorID   string              `json:"assignedAdvisorId"`
	StartDate   string              `json:"startDate"`
	EndDate     string              `json:"endDate"`
	Status      string              `json:"status"`
	Eligibility *EligibilityPayload `json:"eligibility"`
}

func (r *CreateReservationRequest) ToInput() (commands.CreateReservationInput, error) {
	start, err := parseDate(r.StartDate)
	if err != nil {
		return commands.CreateReservationInput{}, err
	}
	end, err := parseDate(r.EndDate)
	if err != nil {
		return commands.CreateReservationInput{}, err
	}

	in := commands.CreateReservationInput{
		VehicleID:  r.VehicleID,
		AdvisorID:  r.AdvisorID,
		StartDate:  start,
		EndDate:    end,
		Status:     r.Status,
		CustomerID: r.CustomerID,
	}

	if r.Customer != nil {
		dob, err := parseOptionalDate(r.Customer.DateOfBirth)
		if err != nil {
			return commands.CreateReservationInput{}, err
		}
		in.Customer = &commands.NewCustomerInput{
			CustomerID:           r.Customer.CustomerID,
			FirstName:            r.Customer.FirstName,
			LastName:             r.Customer.LastName,
			DateOfBirth:          dob,
			DriversLicenseNumber: r.Customer.DriversLicenseNumber,
			InsuranceProvider:    r.Customer.InsuranceProvider,
			Phone:                r.Customer.Phone,
			Email:                r.Customer.Email,
		}
	}
	if r.Eligibility != nil {
		in.Eligibility = &commands.EligibilityInput{
			AgeVerified:       r.Eligibility.AgeVerified,
			LicenseVerified:   r.Eligibility.LicenseVerified,
			InsuranceVerified: r.Eligibility.InsuranceVerified,
			WaiverSigned:      r.Eligibility.WaiverSigned,
		}
	}

	return in, nil
}

type UpdateReservationRequest struct {
	VehicleID *string `json:"vehicleId"`
	AdvisorID *string `json:"assignedAdvisorId"`
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
	Status    *string `json:"status"`
}

func (r *UpdateReservationRequest) ToInput() (commands.UpdateReservationInput, error) {
	in := commands.UpdateReservationInput{
		VehicleID: r.VehicleID,
		AdvisorID: r.AdvisorID,
		Status:    r.Status,
	}

	if r.StartDate != nil {
		d, err := reservation.ParseDate(*r.StartDate)
		if err != nil {
			return commands.UpdateReservationInput{}, err
		}
		in.StartDate = &d
	}
	if r.EndDate != nil {
		d, err := reservation.ParseDate(*r.EndDate)
		if err != nil {
			return commands.UpdateReservationInput{}, err
		}
		in.EndDate = &d
	}

	return in, nil
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type InspectionRequest struct {
	Odometer    int32  `json:"odometer"`
	FuelLevel   string `json:"fuelLevel" binding:"required"`
	Notes       string `json:"notes"`
	InspectedBy string `json:"inspectedBy"`
}

func (r *InspectionRequest) ToInput() commands.InspectionInput {
	return commands.InspectionInput{
		Odometer:    r.Odometer,
		FuelLevel:   r.FuelLevel,
		Notes:       r.Notes,
		InspectedBy: r.InspectedBy,
	}
}

func parseDate(s string) (reservation.Date, error) {
	if s == "" {
		return reservation.Date{}, nil
	}
	return reservation.ParseDate(s)
}

func parseOptionalDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(reservation.DateLayout, s)
	if err != nil {
		return time.Time{}, reservation.ErrInvalidDate
	}
	return t, nil
}
