package request

import (
	"loanerdesk/internal/usecase/commands"
)

type VehicleRequest struct {
	VehicleID        string `json:"vehicleId"`
	Make             string `json:"make" binding:"required"`
	Model            string `json:"model" binding:"required"`
	Year             int32  `json:"year"`
	LicensePlate     string `json:"licensePlate"`
	CurrentOdometer  int32  `json:"currentOdometer"`
	CurrentFuelLevel string `json:"currentFuelLevel"`
	Status           string `json:"status"`
}

func (r *VehicleRequest) ToInput() commands.VehicleInput {
	return commands.VehicleInput{
		VehicleID:        r.VehicleID,
		Make:             r.Make,
		Model:            r.Model,
		Year:             r.Year,
		LicensePlate:     r.LicensePlate,
		CurrentOdometer:  r.CurrentOdometer,
		CurrentFuelLevel: r.CurrentFuelLevel,
		Status:           r.Status,
	}
}
