package inspection

import (
	"errors"

	"loanerdesk/internal/domain/vehicle"
)

var (
	ErrInvalidType     = errors.New("invalid inspection type")
	ErrInvalidOdometer = errors.New("odometer reading must not be negative")
)

// Type distinguishes the checkout inspection from the check-in inspection.
// Exactly one of each is recorded per reservation, and never rewritten.
type Type string

const (
	TypePreCheck  Type = "pre-check"
	TypePostCheck Type = "post-check"
)

func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypePreCheck, TypePostCheck:
		return Type(s), nil
	default:
		return "", ErrInvalidType
	}
}

func (t Type) String() string { return string(t) }

// Record is a point-in-time snapshot of vehicle condition.
type Record struct {
	Type        Type
	Odometer    int32
	FuelLevel   vehicle.FuelLevel
	Notes       string
	InspectedBy string
}

func NewRecord(typ Type, odometer int32, fuel vehicle.FuelLevel, notes, inspectedBy string) (Record, error) {
	if _, err := ParseType(string(typ)); err != nil {
		return Record{}, err
	}
	if odometer < 0 {
		return Record{}, ErrInvalidOdometer
	}
	if _, err := vehicle.ParseFuelLevel(string(fuel)); err != nil {
		return Record{}, err
	}
	return Record{
		Type:        typ,
		Odometer:    odometer,
		FuelLevel:   fuel,
		Notes:       notes,
		InspectedBy: inspectedBy,
	}, nil
}
