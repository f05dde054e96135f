package request

import (
	"loanerdesk/internal/usecase/commands"
)

type CustomerRequest struct {
	CustomerID           *string `json:"customerId"`
	FirstName            string  `json:"firstName" binding:"required"`
	LastName             string  `json:"lastName" binding:"required"`
	DateOfBirth          string  `json:"dateOfBirth"`
	DriversLicenseNumber string  `json:"driversLicenseNumber"`
	InsuranceProvider    string  `json:"insuranceProvider"`
	Phone                string  `json:"phone"`
	Email                string  `json:"email"`
}

func (r *CustomerRequest) ToInput() (commands.CustomerInput, error) {
	dob, err := parseOptionalDate(r.DateOfBirth)
	if err != nil {
		return commands.CustomerInput{}, err
	}
	return commands.CustomerInput{
		CustomerID:           r.CustomerID,
		FirstName:            r.FirstName,
		LastName:             r.LastName,
		DateOfBirth:          dob,
		DriversLicenseNumber: r.DriversLicenseNumber,
		InsuranceProvider:    r.InsuranceProvider,
		Phone:                r.Phone,
		Email:                r.Email,
	}, nil
}
