//go:build unit || e2e

package builder

import (
	"time"

	"loanerdesk/internal/domain/reservation"
	reqdto "loanerdesk/internal/handler/dto/request"
	"loanerdesk/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type ReservationBuilder struct {
	ReservationID string
	CustomerID    string
	VehicleID     string
	AdvisorID     string
	StartDate     string
	EndDate       string
	Status        string

	Customer CustomerFields
	Vehicle  VehicleFields
	Advisor  AdvisorFields
}

type CustomerFields struct {
	CustomerID           string
	FirstName            string
	LastName             string
	DriversLicenseNumber string
	InsuranceProvider    string
	Phone                string
	Email                string
}

type VehicleFields struct {
	VehicleID        string
	Make             string
	Model            string
	Year             int32
	LicensePlate     string
	CurrentOdometer  int32
	CurrentFuelLevel string
}

type AdvisorFields struct {
	AdvisorID string
	FirstName string
	LastName  string
	Email     string
}

func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		ReservationID: reservation.NewReservationID(),
		CustomerID:    "CUST-1001",
		VehicleID:     "LV-001",
		AdvisorID:     "SA-001",
		StartDate:     "2024-06-01",
		EndDate:       "2024-06-05",
		Status:        "reserved",
		Customer: CustomerFields{
			CustomerID:           "CUST-1001",
			FirstName:            "John",
			LastName:             "Smith",
			DriversLicenseNumber: "D1234567",
			InsuranceProvider:    "State Farm",
			Phone:                "555-0100",
			Email:                "john.smith@example.com",
		},
		Vehicle: VehicleFields{
			VehicleID:        "LV-001",
			Make:             "Toyota",
			Model:            "Camry",
			Year:             2023,
			LicensePlate:     "LOANER1",
			CurrentOdometer:  12000,
			CurrentFuelLevel: "full",
		},
		Advisor: AdvisorFields{
			AdvisorID: "SA-001",
			FirstName: "Maria",
			LastName:  "Garcia",
			Email:     "maria.garcia@dealership.example.com",
		},
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	customerID := b.Customer.CustomerID
	return reqdto.CreateReservationRequest{
		Customer: &reqdto.CustomerPayload{
			CustomerID:           &customerID,
			FirstName:            b.Customer.FirstName,
			LastName:             b.Customer.LastName,
			DriversLicenseNumber: b.Customer.DriversLicenseNumber,
			InsuranceProvider:    b.Customer.InsuranceProvider,
			Phone:                b.Customer.Phone,
			Email:                b.Customer.Email,
		},
		VehicleID: b.VehicleID,
		AdvisorID: b.AdvisorID,
		StartDate: b.StartDate,
		EndDate:   b.EndDate,
		Status:    b.Status,
		Eligibility: &reqdto.EligibilityPayload{
			AgeVerified:     true,
			LicenseVerified: true,
			WaiverSigned:    true,
		},
	}
}

func (b *ReservationBuilder) BuildView() *queries.ReservationView {
	start, _ := reservation.ParseDate(b.StartDate)
	end, _ := reservation.ParseDate(b.EndDate)
	now := time.Now()

	view := &queries.ReservationView{
		ReservationID: b.ReservationID,
		CustomerID:    b.CustomerID,
		VehicleID:     b.VehicleID,
		AdvisorID:     b.AdvisorID,
		StartDate:     start,
		EndDate:       end,
		Status:        b.Status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	view.Customer = &queries.CustomerSummary{}
	_ = copier.Copy(view.Customer, &b.Customer)
	view.Vehicle = &queries.VehicleSummary{}
	_ = copier.Copy(view.Vehicle, &b.Vehicle)
	view.Advisor = &queries.AdvisorSummary{}
	_ = copier.Copy(view.Advisor, &b.Advisor)

	return view
}

func (b *ReservationBuilder) BuildInspectionRequestDTO() reqdto.InspectionRequest {
	return reqdto.InspectionRequest{
		Odometer:    b.Vehicle.CurrentOdometer,
		FuelLevel:   b.Vehicle.CurrentFuelLevel,
		Notes:       "No visible damage",
		InspectedBy: b.AdvisorID,
	}
}
